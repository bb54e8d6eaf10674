package rigstore

import (
	"errors"
	"math"
	"reflect"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

var (
	ErrCreateAttributeTdb  = errors.New("error creating attribute for TileDB array")
	ErrCreateNodeSparseTdb = errors.New("error creating node sparse TileDB array")
	ErrCreateBeamSparseTdb = errors.New("error creating beam sparse TileDB array")
)

// nodeAttrs tags the node attribute columns (the X/Y/Z dimensions are
// not fields here; nodeSparseSchema sets them up directly, grounded:
// schema.go's struct family such as attitude.go's Attitude) so schema
// construction reads the column list off the struct instead of a
// hand-maintained slice.
type nodeAttrs struct {
	Mass  float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	RigId float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
}

// beamAttrs tags the beam attribute columns (NodeA/NodeB are
// dimensions, set up directly in beamSparseSchema).
type beamAttrs struct {
	Spring float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	Damp   float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	RefL   float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
}

func zstdFilter(ctx *tiledb.Context, level int32) (*tiledb.Filter, error) {
	filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_ZSTD)
	if err != nil {
		return nil, err
	}
	if err := filt.SetOption(tiledb.TILEDB_COMPRESSION_LEVEL, level); err != nil {
		filt.Free()
		return nil, err
	}
	return filt, nil
}

func dimFilterList(ctx *tiledb.Context) (*tiledb.FilterList, error) {
	fl, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return nil, err
	}
	filt, err := zstdFilter(ctx, 16)
	if err != nil {
		fl.Free()
		return nil, err
	}
	defer filt.Free()
	if err := fl.AddFilter(filt); err != nil {
		fl.Free()
		return nil, err
	}
	return fl, nil
}

// createAttr builds one tiledb.Attribute from a field's stagparser tag
// metadata and adds it to schema (grounded: tiledb.go's CreateAttr,
// scoped down to the float64/zstd combination every tagged field here
// uses).
func createAttr(fieldName string, filterDefs []stgpsr.Definition, tiledbDefs map[string]stgpsr.Definition, schema *tiledb.ArraySchema, ctx *tiledb.Context) error {
	def, ok := tiledbDefs["dtype"]
	if !ok {
		return errors.New("dtype tag not found")
	}
	dtype, _ := def.Attribute("dtype")

	var tdbDtype tiledb.Datatype
	switch dtype {
	case "float64":
		tdbDtype = tiledb.TILEDB_FLOAT64
	case "int32":
		tdbDtype = tiledb.TILEDB_INT32
	default:
		return errors.New("unsupported dtype tag: " + dtype.(string))
	}

	attrFilts, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return err
	}
	defer attrFilts.Free()

	for _, filt := range filterDefs {
		if filt.Name() != "zstd" {
			continue
		}
		level, ok := filt.Attribute("level")
		if !ok {
			return errors.New("zstd level not defined")
		}
		f, err := zstdFilter(ctx, int32(level.(int64)))
		if err != nil {
			return err
		}
		defer f.Free()
		if err := attrFilts.AddFilter(f); err != nil {
			return err
		}
	}

	attr, err := tiledb.NewAttribute(ctx, fieldName, tdbDtype)
	if err != nil {
		return err
	}
	if err := attr.SetFilterList(attrFilts); err != nil {
		return err
	}
	return schema.AddAttributes(attr)
}

// schemaAttrs walks every ftype=attr field of a tagged struct and adds
// it to schema, deriving name/dtype/filters from the struct tags
// instead of a hand-maintained column list (grounded: schema.go's
// schemaAttrs).
func schemaAttrs(t any, schema *tiledb.ArraySchema, ctx *tiledb.Context) error {
	values := reflect.ValueOf(t).Elem()
	types := values.Type()

	filtDefs, _ := stgpsr.ParseStruct(t, "filters")
	tdbDefs, _ := stgpsr.ParseStruct(t, "tiledb")

	for i := 0; i < values.NumField(); i++ {
		name := types.Field(i).Name

		fieldTdbDefs := make(map[string]stgpsr.Definition)
		for _, v := range tdbDefs[name] {
			fieldTdbDefs[v.Name()] = v
		}

		def, ok := fieldTdbDefs["ftype"]
		if !ok {
			return errors.Join(ErrCreateAttributeTdb, errors.New("ftype tag not found"))
		}
		ftype, _ := def.Attribute("ftype")
		if ftype == "dim" {
			continue
		}

		if err := createAttr(name, filtDefs[name], fieldTdbDefs, schema, ctx); err != nil {
			return errors.Join(ErrCreateAttributeTdb, err)
		}
	}
	return nil
}

// nodeSparseSchema indexes a rig's nodes by their (X, Y, Z) position,
// the tile-by-position layout cross-rig analytics need to answer
// "which rigs have mass near this point" queries (grounded: schema.go
// beamSparseSchema's dimension setup, attrs via schemaAttrs/nodeAttrs).
func nodeSparseSchema(ctx *tiledb.Context) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateNodeSparseTdb, err)
	}
	defer domain.Free()

	minF64 := math.MaxFloat64 * -1
	tileSz := float64(10)

	filters, err := dimFilterList(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateNodeSparseTdb, err)
	}
	defer filters.Free()

	for _, name := range []string{"X", "Y", "Z"} {
		dim, err := tiledb.NewDimension(ctx, name, tiledb.TILEDB_FLOAT64, []float64{minF64, math.MaxFloat64}, tileSz)
		if err != nil {
			return nil, errors.Join(ErrCreateAttributeTdb, err)
		}
		if err := dim.SetFilterList(filters); err != nil {
			return nil, errors.Join(ErrCreateAttributeTdb, err)
		}
		if err := domain.AddDimensions(dim); err != nil {
			return nil, errors.Join(ErrCreateAttributeTdb, err)
		}
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_SPARSE)
	if err != nil {
		return nil, errors.Join(ErrCreateNodeSparseTdb, err)
	}
	if err := schema.SetDomain(domain); err != nil {
		return nil, errors.Join(ErrCreateNodeSparseTdb, err)
	}
	if err := schema.SetCellOrder(tiledb.TILEDB_HILBERT); err != nil {
		return nil, errors.Join(ErrCreateNodeSparseTdb, err)
	}
	if err := schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return nil, errors.Join(ErrCreateNodeSparseTdb, err)
	}
	if err := schema.SetAllowsDups(true); err != nil {
		return nil, errors.Join(ErrCreateNodeSparseTdb, err)
	}

	if err := schemaAttrs(&nodeAttrs{}, schema, ctx); err != nil {
		return nil, errors.Join(ErrCreateNodeSparseTdb, err)
	}

	return schema, nil
}

// beamSparseSchema indexes a rig's beams by their two node indices
// (grounded: schema.go beamSparseSchema).
func beamSparseSchema(ctx *tiledb.Context) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateBeamSparseTdb, err)
	}
	defer domain.Free()

	tileSz := uint64(1000)
	filters, err := dimFilterList(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateBeamSparseTdb, err)
	}
	defer filters.Free()

	for _, name := range []string{"NodeA", "NodeB"} {
		dim, err := tiledb.NewDimension(ctx, name, tiledb.TILEDB_INT32, []int32{0, math.MaxInt32 - 1}, tileSz)
		if err != nil {
			return nil, errors.Join(ErrCreateAttributeTdb, err)
		}
		if err := dim.SetFilterList(filters); err != nil {
			return nil, errors.Join(ErrCreateAttributeTdb, err)
		}
		if err := domain.AddDimensions(dim); err != nil {
			return nil, errors.Join(ErrCreateAttributeTdb, err)
		}
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_SPARSE)
	if err != nil {
		return nil, errors.Join(ErrCreateBeamSparseTdb, err)
	}
	if err := schema.SetDomain(domain); err != nil {
		return nil, errors.Join(ErrCreateBeamSparseTdb, err)
	}
	if err := schema.SetAllowsDups(true); err != nil {
		return nil, errors.Join(ErrCreateBeamSparseTdb, err)
	}

	if err := schemaAttrs(&beamAttrs{}, schema, ctx); err != nil {
		return nil, errors.Join(ErrCreateBeamSparseTdb, err)
	}

	return schema, nil
}
