package paths

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/quantmind-br/pyfind/internal/config"
)

const appName = "pyfind"

// Resolver centralizes pyfind's default locations.
// XDG base directories are honoured when set, otherwise everything lives under HOME.
type Resolver struct {
	homeDir string
	cfg     *config.Config
	getenv  func(string) string
}

// NewResolver creates a Resolver for the current user
func NewResolver(cfg *config.Config) *Resolver {
	homeDir, err := homedir.Dir()
	if err != nil {
		homeDir = "."
	}
	return &Resolver{
		homeDir: homeDir,
		cfg:     cfg,
		getenv:  os.Getenv,
	}
}

// NewResolverWithHome creates a Resolver with an explicit home and no XDG overrides (for tests)
func NewResolverWithHome(cfg *config.Config, homeDir string) *Resolver {
	return &Resolver{
		homeDir: homeDir,
		cfg:     cfg,
		getenv:  func(string) string { return "" },
	}
}

// HomeDir returns the resolved home directory
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// ConfigDir returns $XDG_CONFIG_HOME/pyfind or ~/.config/pyfind
func (r *Resolver) ConfigDir() string {
	return r.xdg("XDG_CONFIG_HOME", ".config")
}

// CacheDir returns $XDG_CACHE_HOME/pyfind or ~/.cache/pyfind
func (r *Resolver) CacheDir() string {
	return r.xdg("XDG_CACHE_HOME", ".cache")
}

// DataDir returns $XDG_DATA_HOME/pyfind or ~/.local/share/pyfind
func (r *Resolver) DataDir() string {
	return r.xdg("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// CacheFile returns the interpreter cache database, cfg.Paths.CacheFile when set
func (r *Resolver) CacheFile() string {
	if r.cfg != nil && r.cfg.Paths.CacheFile != "" {
		return r.cfg.Paths.CacheFile
	}
	return filepath.Join(r.CacheDir(), "interpreters.db")
}

// LogFile returns the log file, cfg.Paths.LogFile when set
func (r *Resolver) LogFile() string {
	if r.cfg != nil && r.cfg.Paths.LogFile != "" {
		return r.cfg.Paths.LogFile
	}
	return filepath.Join(r.DataDir(), appName+".log")
}

func (r *Resolver) xdg(env, fallback string) string {
	if base := r.getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, appName)
	}
	return filepath.Join(r.homeDir, fallback, appName)
}
