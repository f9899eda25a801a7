package chemistry

import (
	"strconv"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// Ideal bands per parameter. Calcium hardness depends on the pool surface;
// every other band is fixed. These tables are built once and never mutated.
var (
	idealRanges = map[models.Parameter]models.Range{
		models.ParamPH:         {Min: 7.2, Max: 7.8},
		models.ParamChlorine:   {Min: 1.0, Max: 3.0},
		models.ParamAlkalinity: {Min: 80, Max: 120},
	}

	calciumRanges = map[models.PoolType]models.Range{
		models.PoolTypeConcrete:    {Min: 200, Max: 400},
		models.PoolTypeVinyl:       {Min: 125, Max: 225},
		models.PoolTypeFiberglass:  {Min: 100, Max: 200},
		models.PoolTypeAboveGround: {Min: 175, Max: 225},
	}
)

// IdealRange returns the ideal band for a parameter. For calcium hardness
// the band is keyed by pool type, falling back to the Concrete/Gunite band
// when the type is empty or unrecognized. ok is false for parameters with
// no ideal-range policy; callers must skip adjustment calculation for those.
func IdealRange(param models.Parameter, poolType models.PoolType) (models.Range, bool) {
	if param == models.ParamCalciumHardness {
		if r, ok := calciumRanges[poolType]; ok {
			return r, true
		}
		return calciumRanges[models.PoolTypeConcrete], true
	}
	r, ok := idealRanges[param]
	return r, ok
}

// formatValue renders a reading the way it appears in reasons and errors:
// shortest decimal form, no trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
