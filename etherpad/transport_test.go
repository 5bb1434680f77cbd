package etherpad

import (
	"context"
	"crypto/tls"
	"encoding/pem"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Only the port decides whether TLS is used. HTTPS on a non-standard port
// is treated as plain HTTP and plain HTTP on 443 is treated as TLS.
func TestSecureIsPortOnly(t *testing.T) {
	tests := []struct {
		baseURL string
		secure  bool
		scheme  string
	}{
		{"https://pads.example.com/api", true, "https"},
		{"https://pads.example.com:443/api", true, "https"},
		{"http://pads.example.com:443/api", true, "https"},
		{"https://pads.example.com:8443/api", false, "http"},
		{"https://pads.example.com:8080/api", false, "http"},
		{"http://pads.example.com/api", false, "http"},
		{"http://pads.example.com:9001/api", false, "http"},
	}

	for _, tt := range tests {
		t.Run(tt.baseURL, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, "key", zerolog.Nop(), WithCAPath(""))
			require.NoError(t, err)

			assert.Equal(t, tt.secure, client.Secure())
			assert.Equal(t, tt.secure, client.http.Secure())
			assert.Contains(t, client.http.baseURL(), tt.scheme+"://pads.example.com:")

			base := client.http.client.Transport.(*http.Transport)
			if tt.secure {
				require.NotNil(t, base.TLSClientConfig)
			} else {
				assert.Nil(t, base.TLSClientConfig)
			}
		})
	}
}

func TestTLSVerification(t *testing.T) {
	certPEM := testCertPEM(t)

	t.Run("no CA path disables verification", func(t *testing.T) {
		client, err := NewClient("https://pads.example.com/api", "key", zerolog.Nop(), WithCAPath(""))
		require.NoError(t, err)

		cfg := client.http.client.Transport.(*http.Transport).TLSClientConfig
		assert.True(t, cfg.InsecureSkipVerify)
		assert.Nil(t, cfg.RootCAs)
		assert.Equal(t, "", client.CAPath())
	})

	t.Run("resolver path enables verification", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/etc/ssl/certs", 0o755))
		require.NoError(t, afero.WriteFile(fs, "/etc/ssl/certs/ca.pem", certPEM, 0o644))
		resolver := NewCAResolver(fs, []string{"/usr/lib/ssl", "/etc/ssl/certs"}, zerolog.Nop())

		client, err := NewClient("https://pads.example.com/api", "key", zerolog.Nop(), WithCAResolver(resolver))
		require.NoError(t, err)

		cfg := client.http.client.Transport.(*http.Transport).TLSClientConfig
		assert.False(t, cfg.InsecureSkipVerify)
		assert.NotNil(t, cfg.RootCAs)
		assert.Equal(t, "pads.example.com", cfg.ServerName)
		assert.Equal(t, "/etc/ssl/certs", client.CAPath())
	})

	t.Run("empty resolver disables verification", func(t *testing.T) {
		resolver := NewCAResolver(afero.NewMemMapFs(), DefaultCAPaths, zerolog.Nop())

		client, err := NewClient("https://pads.example.com/api", "key", zerolog.Nop(), WithCAResolver(resolver))
		require.NoError(t, err)

		cfg := client.http.client.Transport.(*http.Transport).TLSClientConfig
		assert.True(t, cfg.InsecureSkipVerify)
	})

	t.Run("resolver not consulted for plain endpoints", func(t *testing.T) {
		resolver := NewCAResolver(afero.NewMemMapFs(), []string{"/etc/ssl"}, zerolog.Nop())

		client, err := NewClient("http://pads.example.com:9001/api", "key", zerolog.Nop(), WithCAResolver(resolver))
		require.NoError(t, err)
		assert.False(t, resolver.probed)
		assert.Equal(t, "", client.CAPath())
	})

	t.Run("explicit CA path without certificates is a construction error", func(t *testing.T) {
		_, err := NewClient("https://pads.example.com/api", "key", zerolog.Nop(), WithCAPath(t.TempDir()))
		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "trust anchors")
	})

	t.Run("detected path skips empty certs directory", func(t *testing.T) {
		root := t.TempDir()
		certsDir := filepath.Join(root, "etc", "ssl", "certs")
		require.NoError(t, os.MkdirAll(certsDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "etc", "ssl", "cert.pem"), certPEM, 0o644))
		resolver := NewCAResolver(afero.NewOsFs(), []string{certsDir, filepath.Join(root, "etc", "ssl")}, zerolog.Nop())

		client, err := NewClient("https://pads.example.com/api", "key", zerolog.Nop(), WithCAResolver(resolver))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "etc", "ssl"), client.CAPath())

		cfg := client.http.client.Transport.(*http.Transport).TLSClientConfig
		assert.False(t, cfg.InsecureSkipVerify)
		assert.NotNil(t, cfg.RootCAs)
	})

	t.Run("custom http client skips trust resolution", func(t *testing.T) {
		resolver := NewCAResolver(afero.NewMemMapFs(), []string{"/etc/ssl"}, zerolog.Nop())

		client, err := NewClient("https://pads.example.com/api", "key", zerolog.Nop(),
			WithCAResolver(resolver), WithHTTPClient(&http.Client{}))
		require.NoError(t, err)
		assert.False(t, resolver.probed)
		assert.Equal(t, "", client.CAPath())
		assert.True(t, client.Secure())
	})
}

// redirectDial points a secure client's connection at addr while keeping its
// configured host for SNI and certificate checks.
func redirectDial(t *testing.T, client *Client, addr string) {
	t.Helper()
	base := client.http.client.Transport.(*http.Transport)
	base.DialContext = func(ctx context.Context, network, _ string) (net.Conn, error) {
		return (&net.Dialer{}).DialContext(ctx, network, addr)
	}
}

func TestTLSHandshake(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"message":"ok","data":{"padIDs":[]}}`))
	}))
	defer server.Close()

	caDir := t.TempDir()
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	require.NoError(t, os.WriteFile(filepath.Join(caDir, "server.pem"), certPEM, 0o644))

	t.Run("trusted peer", func(t *testing.T) {
		client, err := NewClient("https://example.com/api", "key", zerolog.Nop(), WithCAPath(caDir))
		require.NoError(t, err)
		defer client.Close()
		redirectDial(t, client, server.Listener.Addr().String())

		pads, err := client.ListPads(context.Background(), "g.1")
		require.NoError(t, err)
		assert.Empty(t, pads)
	})

	t.Run("certificate not valid for host", func(t *testing.T) {
		client, err := NewClient("https://pads.test/api", "key", zerolog.Nop(), WithCAPath(caDir))
		require.NoError(t, err)
		defer client.Close()
		redirectDial(t, client, server.Listener.Addr().String())

		_, err = client.ListPads(context.Background(), "g.1")
		require.Error(t, err)
		assert.True(t, IsTransportError(err))

		var verifyErr *tls.CertificateVerificationError
		assert.True(t, errors.As(err, &verifyErr))
	})
}
