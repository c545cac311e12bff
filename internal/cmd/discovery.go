package cmd

import (
	"context"

	"github.com/quantmind-br/pyfind/internal/cache"
	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/quantmind-br/pyfind/internal/helpers"
	"github.com/quantmind-br/pyfind/internal/interpreter"
	"github.com/quantmind-br/pyfind/internal/paths"
	"github.com/quantmind-br/pyfind/internal/python"
	"github.com/rs/zerolog"
)

// discovery bundles what a command needs to look for interpreters
type discovery struct {
	finder *python.Finder
	cache  *cache.Cache
}

// openDiscovery wires the finder for the current process environment.
// An unusable cache is logged and discovery continues without it.
func openDiscovery(ctx context.Context, cfg *config.Config, log *zerolog.Logger, useCache bool) *discovery {
	d := &discovery{}

	var store interpreter.Store
	if useCache && cfg.Cache.Enabled {
		cachePath := paths.NewResolver(cfg).CacheFile()
		c, err := cache.Open(ctx, cachePath)
		if err != nil {
			log.Warn().Err(err).Str("path", cachePath).Msg("interpreter cache unavailable, continuing without it")
		} else {
			d.cache = c
			store = c
		}
	}

	runner := helpers.NewOSCommandRunner()
	querier := interpreter.NewOSQuerier(runner, store, cfg.Discovery.QueryTimeout, log)

	env := python.EnvironmentFromOS(cfg.Discovery.OverrideEnv, cfg.Discovery.Launcher)
	d.finder = python.NewFinder(querier, env, log)
	return d
}

func (d *discovery) Close() error {
	if d.cache == nil {
		return nil
	}
	return d.cache.Close()
}
