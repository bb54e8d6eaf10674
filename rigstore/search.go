// Package rigstore discovers rig-def files across local filesystems or
// object stores and indexes finalized rigs for cross-rig analytics,
// both via TileDB-Go (grounded: sixy6e-go-gsf's search/search.go,
// schema.go, tiledb.go). Neither the rig parser nor the builder
// package imports rigstore; it consumes a *builder.Rig through the
// rig-def file discovery surface alone (spec §1, §9 sink interfaces).
package rigstore

import (
	"path/filepath"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// extensions lists the rig-def file suffixes the format defines (spec
// §1: "a vehicle-definition text file", typically one of these per
// vehicle kind).
var extensions = []string{
	"*.truck", "*.car", "*.airplane", "*.boat", "*.trailer", "*.load", "*.fixed",
}

func trawl(vfs *tiledb.VFS, patterns []string, uri string, items []string) []string {
	dirs, files, err := vfs.List(uri)
	if err != nil {
		panic(err)
	}

	for _, file := range files {
		base := filepath.Base(file)
		for _, pattern := range patterns {
			match, err := filepath.Match(pattern, base)
			if err != nil {
				panic(err)
			}
			if match {
				items = append(items, file)
				break
			}
		}
	}

	for _, dir := range dirs {
		items = trawl(vfs, patterns, dir, items)
	}

	return items
}

// Find recursively searches uri (a local path or object-store URI) for
// rig-def files, using the TileDB-Go VFS bindings so both backends are
// seamless (grounded: FindGsf).
func Find(uri, configUri string) ([]string, error) {
	var cfg *tiledb.Config
	var err error

	if configUri == "" {
		cfg, err = tiledb.NewConfig()
	} else {
		cfg, err = tiledb.LoadConfig(configUri)
	}
	if err != nil {
		return nil, err
	}
	defer cfg.Free()

	ctx, err := tiledb.NewContext(cfg)
	if err != nil {
		return nil, err
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer vfs.Free()

	items := make([]string, 0)
	items = trawl(vfs, extensions, uri, items)

	return items, nil
}
