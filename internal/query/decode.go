package query

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// Cell decoders turn the string-encoded cells of a RecordSet back into
// typed values. A malformed cell is an ErrInternal: the templates name
// their columns explicitly, so shape mismatches mean a broken catalog,
// not bad caller input.

func cellInt64(cell string) (int64, error) {
	if types.IsNull(cell) {
		return 0, fmt.Errorf("%w: unexpected NULL cell", types.ErrInternal)
	}
	v, err := strconv.ParseInt(cell, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed integer cell %q", types.ErrInternal, cell)
	}
	return v, nil
}

func cellDouble(cell string) (float64, error) {
	if types.IsNull(cell) {
		return 0, fmt.Errorf("%w: unexpected NULL cell", types.ErrInternal)
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed float cell %q", types.ErrInternal, cell)
	}
	return v, nil
}

func cellBool(cell string) (bool, error) {
	v, err := cellInt64(cell)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func cellOptString(cell string) *string {
	if types.IsNull(cell) {
		return nil
	}
	s := cell
	return &s
}

func cellOptInt64(cell string) (*int64, error) {
	if types.IsNull(cell) {
		return nil, nil
	}
	v, err := cellInt64(cell)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// cellInt64OrZero decodes an integer cell treating NULL as zero. Used
// for columns that earlier schema versions left unpopulated.
func cellInt64OrZero(cell string) (int64, error) {
	if types.IsNull(cell) {
		return 0, nil
	}
	return cellInt64(cell)
}
