package program

import (
	"math"

	"github.com/solcash/cashgo/config"
	cerrors "github.com/solcash/cashgo/errors"
)

// ToBaseUnits converts a display amount in SOL to lamports, rounding half up
// so that a non-zero display amount never silently becomes a zero-value
// instruction. Converted values that still round to zero (or below) are
// rejected.
func ToBaseUnits(display float64) (uint64, error) {
	if math.IsNaN(display) || math.IsInf(display, 0) || display <= 0 {
		return 0, cerrors.ErrInvalidAmount
	}
	rounded := math.Round(display * config.BaseUnitFactor)
	if rounded <= 0 || rounded > math.MaxInt64 {
		return 0, cerrors.ErrInvalidAmount
	}
	return uint64(rounded), nil
}
