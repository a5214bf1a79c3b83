package cli

import (
	"github.com/waveforge/waveforge/pkg/cache"
	"github.com/waveforge/waveforge/pkg/cells"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/tech"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// pdk bundles the loaded technology with the registries built on top of it.
type pdk struct {
	Tech  *tech.Tech
	XS    *xsection.Registry
	Cells *layout.Registry
}

// loadPDK loads a TOML tech file, or the built-in generic technology when
// path is empty, and registers the standard cell library against it. A nil
// store disables component caching.
func loadPDK(path string, store cache.Cache) (*pdk, error) {
	var (
		t   *tech.Tech
		err error
	)
	if path == "" {
		t = tech.Generic()
	} else if t, err = tech.Load(path); err != nil {
		return nil, err
	}

	xreg, err := xsection.NewRegistry(t)
	if err != nil {
		return nil, err
	}
	reg := layout.NewRegistry(store)
	if err := cells.RegisterAll(reg, xreg); err != nil {
		return nil, err
	}
	return &pdk{Tech: t, XS: xreg, Cells: reg}, nil
}

// openCache opens the file cache under the user cache directory.
func openCache() (cache.Cache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}
