package chemistry

import (
	"fmt"
	"math"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// Dosage factors: amount of chemical per unit of change per 10,000 gallons.
const (
	phIncreaserFactor = 4.0  // oz
	phDecreaserFactor = 6.0  // oz
	chlorineFactor    = 1.0  // lbs
	alkalinityFactor  = 1.5  // lbs
	calciumFactor     = 1.25 // lbs
)

// CalculateAdjustments compares the four dosable parameters against their
// ideal bands and returns a recommendation for each out-of-band value,
// scaled to the pool volume. Values exactly on a band edge are in band.
// The result contains only out-of-band parameters; an empty map means the
// water is balanced.
//
// Volume must be positive; callers are expected to reject non-positive
// pool sizes before reaching this function.
func CalculateAdjustments(poolType models.PoolType, ph, chlorine, alkalinity, calciumHardness, volumeGallons float64) models.Adjustments {
	adjustments := models.Adjustments{}
	volumeFactor := volumeGallons / 10000.0

	phRange, _ := IdealRange(models.ParamPH, poolType)
	if ph < phRange.Min {
		adjustments[models.AdjustPHIncreaser] = models.Adjustment{
			Amount: round2((phRange.Min - ph) * volumeFactor * phIncreaserFactor),
			Unit:   "oz",
			Reason: fmt.Sprintf("Increase pH from %s to %s-%s",
				formatValue(ph), formatValue(phRange.Min), formatValue(phRange.Max)),
		}
	} else if ph > phRange.Max {
		adjustments[models.AdjustPHDecreaser] = models.Adjustment{
			Amount: round2((ph - phRange.Max) * volumeFactor * phDecreaserFactor),
			Unit:   "oz",
			Reason: fmt.Sprintf("Decrease pH from %s to %s-%s",
				formatValue(ph), formatValue(phRange.Min), formatValue(phRange.Max)),
		}
	}

	clRange, _ := IdealRange(models.ParamChlorine, poolType)
	if chlorine < clRange.Min {
		adjustments[models.AdjustChlorine] = models.Adjustment{
			Amount: round2((clRange.Min - chlorine) * volumeFactor * chlorineFactor),
			Unit:   "lbs",
			Reason: fmt.Sprintf("Increase chlorine from %s to %s-%s",
				formatValue(chlorine), formatValue(clRange.Min), formatValue(clRange.Max)),
		}
	} else if chlorine > clRange.Max {
		// No computed dose: excess chlorine dissipates on its own.
		adjustments[models.AdjustChlorineReduce] = models.Adjustment{
			Amount: 0,
			Unit:   "",
			Reason: fmt.Sprintf("Reduce chlorine from %s to %s-%s by waiting or diluting",
				formatValue(chlorine), formatValue(clRange.Min), formatValue(clRange.Max)),
		}
	}

	alkRange, _ := IdealRange(models.ParamAlkalinity, poolType)
	if alkalinity < alkRange.Min {
		adjustments[models.AdjustAlkalinityUp] = models.Adjustment{
			Amount: round2((alkRange.Min - alkalinity) * volumeFactor * alkalinityFactor),
			Unit:   "lbs",
			Reason: fmt.Sprintf("Increase alkalinity from %s to %s-%s",
				formatValue(alkalinity), formatValue(alkRange.Min), formatValue(alkRange.Max)),
		}
	} else if alkalinity > alkRange.Max {
		adjustments[models.AdjustAlkalinityDown] = models.Adjustment{
			Amount: 0,
			Unit:   "",
			Reason: fmt.Sprintf("Decrease alkalinity from %s to %s-%s by adding acid",
				formatValue(alkalinity), formatValue(alkRange.Min), formatValue(alkRange.Max)),
		}
	}

	chRange, _ := IdealRange(models.ParamCalciumHardness, poolType)
	if calciumHardness < chRange.Min {
		adjustments[models.AdjustCalciumIncreaser] = models.Adjustment{
			Amount: round2((chRange.Min - calciumHardness) * volumeFactor * calciumFactor),
			Unit:   "lbs",
			Reason: fmt.Sprintf("Increase calcium hardness from %s to %s-%s",
				formatValue(calciumHardness), formatValue(chRange.Min), formatValue(chRange.Max)),
		}
	} else if calciumHardness > chRange.Max {
		adjustments[models.AdjustCalciumReduce] = models.Adjustment{
			Amount: 0,
			Unit:   "",
			Reason: fmt.Sprintf("Reduce calcium hardness from %s to %s-%s by diluting",
				formatValue(calciumHardness), formatValue(chRange.Min), formatValue(chRange.Max)),
		}
	}

	return adjustments
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
