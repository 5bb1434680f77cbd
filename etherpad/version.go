package etherpad

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blang/semver"
)

const versionMethod = "api"

// CheckVersion fetches the server's API version from the base path and
// verifies that it can serve APIVersion. The document at the base path is
// not wrapped in an envelope.
func (c *Client) CheckVersion(ctx context.Context) (semver.Version, error) {
	path := "/" + c.config.basePath

	body, err := c.transport.Send(ctx, http.MethodGet, path, "")
	if err != nil {
		return semver.Version{}, transportError(versionMethod, err)
	}

	var doc versionData
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return semver.Version{}, protocolError(versionMethod, "version document is not valid JSON", body, err)
	}
	if doc.CurrentVersion == "" {
		return semver.Version{}, protocolError(versionMethod, "version document has no currentVersion", body, nil)
	}

	server, err := semver.ParseTolerant(doc.CurrentVersion)
	if err != nil {
		return semver.Version{}, protocolError(versionMethod, "unparsable server version "+doc.CurrentVersion, body, err)
	}

	if err := compatible(server); err != nil {
		return server, protocolError(versionMethod, err.Error(), "", nil)
	}

	c.logger.Debug().Str("server_version", server.String()).Msg("Etherpad API version is compatible")
	return server, nil
}

// compatible checks that the server's major version covers APIVersion
func compatible(server semver.Version) error {
	client, err := semver.ParseTolerant(APIVersion)
	if err != nil {
		return fmt.Errorf("invalid client API version %s: %w", APIVersion, err)
	}
	if server.Major < client.Major {
		return fmt.Errorf("server API version %s is older than client API version %s", server, APIVersion)
	}
	return nil
}
