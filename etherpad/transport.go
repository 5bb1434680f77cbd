package etherpad

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// SecurePort is the only port treated as a TLS endpoint.
const SecurePort = 443

// Transport sends one encoded request and returns the raw response body.
// For GET the query is already part of path and payload is empty; for POST
// payload is the form-encoded body.
type Transport interface {
	Send(ctx context.Context, verb, path, payload string) (string, error)
}

// httpTransport keeps a single connection to host:port.
type httpTransport struct {
	host   string
	port   int
	caPath string
	client *http.Client
	logger zerolog.Logger
}

func newHTTPTransport(fs afero.Fs, host string, port int, caPath string, opts clientOptions, logger zerolog.Logger) (*httpTransport, error) {
	t := &httpTransport{
		host:   host,
		port:   port,
		caPath: caPath,
		logger: logger,
	}

	if opts.httpClient != nil {
		t.client = opts.httpClient
		return t, nil
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        1,
		MaxIdleConnsPerHost: 1,
		MaxConnsPerHost:     1,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if t.Secure() {
		tlsConfig, err := t.tlsConfig(fs)
		if err != nil {
			return nil, err
		}
		base.TLSClientConfig = tlsConfig
	}

	t.client = &http.Client{
		Timeout:   opts.timeout,
		Transport: base,
	}
	return t, nil
}

// Secure reports whether the port is SecurePort. The URL scheme is ignored.
func (t *httpTransport) Secure() bool {
	return isSecurePort(t.port)
}

func isSecurePort(port int) bool {
	return port == SecurePort
}

func (t *httpTransport) tlsConfig(fs afero.Fs) (*tls.Config, error) {
	cfg := &tls.Config{
		ServerName: t.host,
		MinVersion: tls.VersionTLS12,
	}

	if t.caPath == "" {
		t.logger.Warn().
			Str("host", t.host).
			Msg("No CA path configured; TLS peer verification is disabled")
		cfg.InsecureSkipVerify = true
		return cfg, nil
	}

	pool, err := loadCertPool(fs, t.caPath)
	if err != nil {
		return nil, invalidArgument("", "failed to load trust anchors: %v", err)
	}
	cfg.RootCAs = pool
	return cfg, nil
}

func (t *httpTransport) baseURL() string {
	scheme := "http"
	if t.Secure() {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(t.host, strconv.Itoa(t.port))
}

// Send implements Transport
func (t *httpTransport) Send(ctx context.Context, verb, path, payload string) (string, error) {
	var body io.Reader
	if payload != "" {
		body = strings.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, verb, t.baseURL()+path, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if verb == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.logger.Debug().
			Int("status", resp.StatusCode).
			Str("verb", verb).
			Msg("Non-200 response from Etherpad; decoding envelope anyway")
	}

	return string(raw), nil
}

func (t *httpTransport) close() {
	t.client.CloseIdleConnections()
}
