package etherpad

import (
	"crypto/x509"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultCAPaths lists the conventional trust-anchor locations, in probe order.
var DefaultCAPaths = []string{
	"/etc/ssl/certs",
	"/etc/ssl",
	"/usr/share/ssl",
	"/usr/lib/ssl",
	"/System/Library/OpenSSL",
	"/usr/local/ssl",
}

// DefaultCAResolver is shared by every client that is not given its own
// trust-anchor path or resolver.
var DefaultCAResolver = NewCAResolver(afero.NewOsFs(), DefaultCAPaths, zerolog.Nop())

// CAResolver finds the trust-anchor path once and remembers it.
type CAResolver struct {
	fs         afero.Fs
	candidates []string
	logger     zerolog.Logger

	mu     sync.Mutex
	probed bool
	path   string
}

// NewCAResolver creates a resolver probing candidates on fs
func NewCAResolver(fs afero.Fs, candidates []string, logger zerolog.Logger) *CAResolver {
	return &CAResolver{
		fs:         fs,
		candidates: append([]string(nil), candidates...),
		logger:     logger,
	}
}

// SetLogger replaces the logger used for the probe warning.
func (r *CAResolver) SetLogger(logger zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Path returns the trust-anchor path, probing the candidates on first use.
// A candidate is chosen only if it holds at least one PEM certificate. An
// empty result means no candidate qualified and nothing was set.
func (r *CAResolver) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.probed {
		r.path = r.probe()
		r.probed = true
	}
	return r.path
}

// SetPath overrides the resolved path. Clients created afterwards use it.
func (r *CAResolver) SetPath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = path
	r.probed = true
}

func (r *CAResolver) probe() string {
	for _, candidate := range r.candidates {
		if ok, err := afero.Exists(r.fs, candidate); err != nil || !ok {
			continue
		}
		if _, err := loadCertPool(r.fs, candidate); err != nil {
			r.logger.Debug().Err(err).Str("ca_path", candidate).Msg("Skipping trust-anchor candidate")
			continue
		}
		r.logger.Debug().Str("ca_path", candidate).Msg("Found trust-anchor path")
		return candidate
	}

	r.logger.Warn().
		Strs("searched", r.candidates).
		Msg("No trust-anchor path found; TLS certificate verification is disabled until a CA path is set")
	return ""
}

// loadCertPool reads every PEM certificate under path. path may be a single
// file or a directory; subdirectories are not walked.
func loadCertPool(fs afero.Fs, path string) (*x509.CertPool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat CA path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		entries, err := afero.ReadDir(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA directory %s: %w", path, err)
		}
		files = files[:0]
		for _, entry := range entries {
			file := filepath.Join(path, entry.Name())
			// entries come from Lstat; Stat follows symlinks to directories
			if st, err := fs.Stat(file); err != nil || st.IsDir() {
				continue
			}
			files = append(files, file)
		}
	}

	pool := x509.NewCertPool()
	var loaded int
	for _, file := range files {
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			continue
		}
		if pool.AppendCertsFromPEM(data) {
			loaded++
		}
	}

	if loaded == 0 {
		return nil, fmt.Errorf("no PEM certificates found in %s", path)
	}
	return pool, nil
}
