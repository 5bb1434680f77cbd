package etherpad

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// apiKeyParam is the parameter carrying the API key on every call.
const apiKeyParam = "apikey"

// clientConfig is fixed at construction and never mutated.
type clientConfig struct {
	scheme   string
	host     string
	port     int
	basePath string
	apiKey   string
	caPath   string
}

// Client wraps the Etherpad HTTP API
type Client struct {
	config    clientConfig
	transport Transport
	http      *httpTransport
	logger    zerolog.Logger
}

// NewClient creates a new Etherpad client. baseURL is the API root, usually
// "http://host:9001/api". No network activity happens here.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, invalidArgument("", "API key is required")
	}

	cfg, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	cfg.apiKey = apiKey

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	client := &Client{
		logger: logger.With().Str("component", "etherpad").Logger(),
	}

	if options.transport != nil {
		client.config = cfg
		client.transport = options.transport
		return client, nil
	}

	// a custom http.Client brings its own TLS settings
	fs := afero.NewOsFs()
	if isSecurePort(cfg.port) && options.httpClient == nil {
		if options.caPath != nil {
			cfg.caPath = *options.caPath
		} else {
			cfg.caPath = options.resolver.Path()
			fs = options.resolver.fs
		}
	}
	client.config = cfg

	t, err := newHTTPTransport(fs, cfg.host, cfg.port, cfg.caPath, options, client.logger)
	if err != nil {
		return nil, err
	}
	client.http = t
	client.transport = t

	return client, nil
}

// parseBaseURL validates baseURL and splits it into its parts
func parseBaseURL(baseURL string) (clientConfig, error) {
	if baseURL == "" {
		return clientConfig{}, invalidArgument("", "base URL is required")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return clientConfig{}, invalidArgument("", "invalid base URL %q: %v", baseURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return clientConfig{}, invalidArgument("", "invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Hostname() == "" {
		return clientConfig{}, invalidArgument("", "invalid base URL %q: missing host", baseURL)
	}

	port := 80
	if scheme == "https" {
		port = SecurePort
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			return clientConfig{}, invalidArgument("", "invalid base URL %q: bad port %q", baseURL, p)
		}
	}

	return clientConfig{
		scheme:   scheme,
		host:     u.Hostname(),
		port:     port,
		basePath: strings.Trim(u.Path, "/"),
	}, nil
}

// Secure reports whether calls go over TLS. Only the port decides: a server
// on 443 is secure, HTTPS on any other port is not.
func (c *Client) Secure() bool {
	return isSecurePort(c.config.port)
}

// CAPath returns the trust-anchor path in effect, empty when verification
// is disabled, the client is not secure, or WithHTTPClient was used.
func (c *Client) CAPath() string {
	return c.config.caPath
}

// Close releases the idle connection held by the client.
func (c *Client) Close() {
	if c.http != nil {
		c.http.close()
	}
}

// requestPath joins the non-empty segments with "/"
func (c *Client) requestPath(method string) string {
	var segments []string
	for _, s := range []string{c.config.basePath, APIVersion, method} {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return "/" + strings.Join(segments, "/")
}

// Call invokes an API method and returns the envelope's data field verbatim.
// The result is nil when the server sent no data or null. verb is GET or
// POST; empty means GET.
func (c *Client) Call(ctx context.Context, method string, params Params, verb string) (json.RawMessage, error) {
	if method == "" {
		return nil, invalidArgument("", "method name is required")
	}

	verb = strings.ToUpper(verb)
	if verb == "" {
		verb = http.MethodGet
	}
	if verb != http.MethodGet && verb != http.MethodPost {
		return nil, invalidArgument(method, "unsupported HTTP verb %q", verb)
	}

	values := make(url.Values, len(params)+1)
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set(apiKeyParam, c.config.apiKey)

	path := c.requestPath(method)
	var payload string
	if verb == http.MethodGet {
		path += "?" + values.Encode()
	} else {
		payload = values.Encode()
	}

	c.logger.Debug().
		Str("method", method).
		Str("verb", verb).
		Int("params", len(params)).
		Msg("Making Etherpad API request")

	body, err := c.transport.Send(ctx, verb, path, payload)
	if err != nil {
		return nil, transportError(method, err)
	}

	c.logger.Trace().Str("method", method).Str("body", body).Msg("Etherpad response")

	return decodeResponse(method, body)
}

// decodeResponse validates the envelope and maps its code to a result
func decodeResponse(method, body string) (json.RawMessage, error) {
	var resp Response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, protocolError(method, "response is not valid JSON", body, err)
	}
	if resp.Code == nil {
		return nil, protocolError(method, "response has no code", body, nil)
	}

	if !resp.Code.Known() {
		return nil, &Error{
			Kind:    KindProtocol,
			Method:  method,
			Code:    int(*resp.Code),
			Message: "unknown response code " + strconv.Itoa(int(*resp.Code)),
			Body:    body,
		}
	}

	switch *resp.Code {
	case CodeOK:
		if bytes.Equal(bytes.TrimSpace(resp.Data), []byte("null")) {
			return nil, nil
		}
		return resp.Data, nil
	case CodeInvalidParameters, CodeInvalidMethod, CodeInvalidAPIKey:
		return nil, &Error{Kind: KindInvalidArgument, Method: method, Code: int(*resp.Code), Message: resp.Message}
	default:
		return nil, &Error{Kind: KindServer, Method: method, Code: int(*resp.Code), Message: resp.Message}
	}
}

// decodeData unmarshals a successful payload into v
func decodeData(method string, data json.RawMessage, v any) error {
	if len(data) == 0 {
		return protocolError(method, "response has no data", "", nil)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return protocolError(method, "unexpected data shape", string(data), err)
	}
	return nil
}
