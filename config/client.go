package config

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/s0up4200/etherpad/etherpad"
)

// NewClient creates an Etherpad client from the configuration. An explicit
// tls.ca_path wins; otherwise tls.search_paths (or the default candidates)
// are probed once by the process-wide resolver.
func (c *Config) NewClient(logger zerolog.Logger) (*etherpad.Client, error) {
	opts := []etherpad.Option{
		etherpad.WithTimeout(c.Etherpad.Timeout),
	}

	switch {
	case c.Etherpad.TLS.CAPath != "":
		opts = append(opts, etherpad.WithCAPath(c.Etherpad.TLS.CAPath))
	case len(c.Etherpad.TLS.SearchPaths) > 0:
		resolver := etherpad.NewCAResolver(afero.NewOsFs(), c.Etherpad.TLS.SearchPaths, logger)
		opts = append(opts, etherpad.WithCAResolver(resolver))
	default:
		etherpad.DefaultCAResolver.SetLogger(logger)
	}

	return etherpad.NewClient(c.Etherpad.URL, c.Etherpad.APIKey, logger, opts...)
}
