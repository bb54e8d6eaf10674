package rigstore

import (
	"errors"
	"os"

	tiledb "github.com/TileDB-Inc/TileDB-Go"

	"github.com/sixy6e/go-rigdef/builder"
)

var (
	ErrCreateQuery = errors.New("error creating TileDB query")
	ErrSetLayout   = errors.New("error setting TileDB layout")
	ErrSetBuffer   = errors.New("error setting TileDB data buffer")
	ErrSubmit      = errors.New("error submitting TileDB query")
	ErrFinalize    = errors.New("error finalizing TileDB query")
)

func arrayCreate(ctx *tiledb.Context, uri string, schema *tiledb.ArraySchema) error {
	if err := schema.Check(); err != nil {
		return err
	}
	return tiledb.CreateArray(ctx, uri, schema)
}

func arrayOpen(ctx *tiledb.Context, uri string, mode tiledb.QueryType) (*tiledb.Array, error) {
	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return nil, err
	}
	if err := array.Open(mode); err != nil {
		array.Free()
		return nil, err
	}
	return array, nil
}

func writeNodes(ctx *tiledb.Context, array *tiledb.Array, nodes []*builder.Node, rigId float64) error {
	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return errors.Join(ErrCreateQuery, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_UNORDERED); err != nil {
		return errors.Join(ErrSetLayout, err)
	}

	x := make([]float64, len(nodes))
	y := make([]float64, len(nodes))
	z := make([]float64, len(nodes))
	mass := make([]float64, len(nodes))
	rigIds := make([]float64, len(nodes))
	for i, n := range nodes {
		x[i], y[i], z[i] = n.Position.X, n.Position.Y, n.Position.Z
		mass[i] = n.Mass
		rigIds[i] = rigId
	}

	for name, buf := range map[string][]float64{"X": x, "Y": y, "Z": z, "Mass": mass, "RigId": rigIds} {
		if _, err := query.SetDataBuffer(name, buf); err != nil {
			return errors.Join(ErrSetBuffer, err)
		}
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrSubmit, err)
	}
	if err := query.Finalize(); err != nil {
		return errors.Join(ErrFinalize, err)
	}
	return nil
}

func writeBeams(ctx *tiledb.Context, array *tiledb.Array, beams []*builder.Beam) error {
	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return errors.Join(ErrCreateQuery, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_UNORDERED); err != nil {
		return errors.Join(ErrSetLayout, err)
	}

	nodeA := make([]int32, len(beams))
	nodeB := make([]int32, len(beams))
	spring := make([]float64, len(beams))
	damp := make([]float64, len(beams))
	refL := make([]float64, len(beams))
	for i, b := range beams {
		nodeA[i], nodeB[i] = int32(b.NodeA), int32(b.NodeB)
		spring[i], damp[i], refL[i] = b.Spring, b.Damp, b.RefL
	}

	if _, err := query.SetDataBuffer("NodeA", nodeA); err != nil {
		return errors.Join(ErrSetBuffer, err)
	}
	if _, err := query.SetDataBuffer("NodeB", nodeB); err != nil {
		return errors.Join(ErrSetBuffer, err)
	}
	for name, buf := range map[string][]float64{"Spring": spring, "Damp": damp, "RefL": refL} {
		if _, err := query.SetDataBuffer(name, buf); err != nil {
			return errors.Join(ErrSetBuffer, err)
		}
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrSubmit, err)
	}
	if err := query.Finalize(); err != nil {
		return errors.Join(ErrFinalize, err)
	}
	return nil
}

// Index writes a finalized rig's node and beam arrays into the
// nodeUri/beamUri TileDB arrays, creating each array if it does not
// already exist (grounded: ping.go writeBeamData / tiledb.go ArrayOpen).
// rigId distinguishes rows from separate rigs indexed into the same
// arrays during a build-trawl run.
func Index(rig *builder.Rig, nodeUri, beamUri, configUri string, rigId float64) error {
	var cfg *tiledb.Config
	var err error
	if configUri == "" {
		cfg, err = tiledb.NewConfig()
	} else {
		cfg, err = tiledb.LoadConfig(configUri)
	}
	if err != nil {
		return err
	}
	defer cfg.Free()

	ctx, err := tiledb.NewContext(cfg)
	if err != nil {
		return err
	}
	defer ctx.Free()

	if _, statErr := os.Stat(nodeUri); os.IsNotExist(statErr) {
		schema, err := nodeSparseSchema(ctx)
		if err != nil {
			return err
		}
		defer schema.Free()
		if err := arrayCreate(ctx, nodeUri, schema); err != nil {
			return err
		}
	}
	if _, statErr := os.Stat(beamUri); os.IsNotExist(statErr) {
		schema, err := beamSparseSchema(ctx)
		if err != nil {
			return err
		}
		defer schema.Free()
		if err := arrayCreate(ctx, beamUri, schema); err != nil {
			return err
		}
	}

	nodeArray, err := arrayOpen(ctx, nodeUri, tiledb.TILEDB_WRITE)
	if err != nil {
		return err
	}
	defer nodeArray.Free()
	defer nodeArray.Close()
	if err := writeNodes(ctx, nodeArray, rig.Nodes, rigId); err != nil {
		return err
	}

	beamArray, err := arrayOpen(ctx, beamUri, tiledb.TILEDB_WRITE)
	if err != nil {
		return err
	}
	defer beamArray.Free()
	defer beamArray.Close()
	return writeBeams(ctx, beamArray, rig.Beams)
}
