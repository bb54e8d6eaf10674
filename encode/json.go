// Package encode serializes a finalized Rig plus its diagnostics and
// writes the result through TileDB's VFS, the same abstraction
// rigstore uses for discovery, so local paths and object-store URIs
// are both write targets without a branch in caller code (grounded:
// sixy6e-go-gsf's json.go WriteJson).
package encode

import (
	"encoding/json"

	tiledb "github.com/TileDB-Inc/TileDB-Go"

	"github.com/sixy6e/go-rigdef/builder"
	"github.com/sixy6e/go-rigdef/rig"
)

// Document is the on-disk shape a built rig encodes to: the full
// materialized graph alongside the diagnostics stream produced while
// getting there (spec §4.6, §7).
type Document struct {
	Rig         *builder.Rig    `json:"rig"`
	Diagnostics rig.Diagnostics `json:"diagnostics"`
}

// WriteJson marshals doc and writes it to fileUri via TileDB's VFS,
// using configUri (or the default config when empty) to resolve
// backend credentials (grounded: WriteJson).
func WriteJson(fileUri, configUri string, doc Document) (int, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}

	var cfg *tiledb.Config
	if configUri == "" {
		cfg, err = tiledb.NewConfig()
	} else {
		cfg, err = tiledb.LoadConfig(configUri)
	}
	if err != nil {
		return 0, err
	}
	defer cfg.Free()

	ctx, err := tiledb.NewContext(cfg)
	if err != nil {
		return 0, err
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer vfs.Free()

	stream, err := vfs.Open(fileUri, tiledb.TILEDB_VFS_WRITE)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	written, err := stream.Write(data)
	if err != nil {
		return 0, err
	}

	return written, nil
}
