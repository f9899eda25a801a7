package chemistry

// Water balance is expressed as the Langelier Saturation Index (LSI):
// negative values indicate corrosive water, positive values scale-forming
// water, values near zero balanced water.
//
// Each factor is an empirical step lookup: the input is compared against an
// ascending list of upper bounds and the first tier whose bound is not
// exceeded supplies the factor. Inputs above the last bound take the top
// tier. The tables reproduce the empirical pool-industry tiers verbatim,
// irregular jumps included; they are lookup data, not a physical model.

// tier is a single step of a factor table: inputs <= upTo map to factor.
type tier struct {
	upTo   float64
	factor float64
}

var (
	tempTiers = []tier{
		{32, 0.0}, {37, 0.1}, {46, 0.2}, {53, 0.3}, {60, 0.4},
		{66, 0.5}, {76, 0.6}, {84, 0.7}, {94, 0.8}, {105, 0.9},
	}
	tempTopFactor = 1.0

	calciumTiers = []tier{
		{25, 0.4}, {50, 0.7}, {75, 0.9}, {100, 1.0}, {150, 1.1},
		{200, 1.2}, {250, 1.3}, {300, 1.4}, {400, 1.5}, {500, 1.6},
		{600, 1.7}, {800, 1.8}, {1000, 1.9},
	}
	calciumTopFactor = 2.0

	alkalinityTiers = []tier{
		{25, 1.4}, {50, 1.7}, {75, 1.9}, {100, 2.0}, {125, 2.1},
		{150, 2.2}, {200, 2.3}, {250, 2.4}, {300, 2.5}, {400, 2.6},
		{500, 2.7}, {600, 2.8}, {800, 2.9},
	}
	alkalinityTopFactor = 3.0
)

func lookupFactor(tiers []tier, top float64, value float64) float64 {
	for _, t := range tiers {
		if value <= t.upTo {
			return t.factor
		}
	}
	return top
}

// EvaluateWaterBalance computes the LSI from pH, alkalinity (ppm), calcium
// hardness (ppm) and temperature (°F), rounded to two decimals. It performs
// no validation: out-of-domain inputs simply land in the lowest or highest
// tier. Callers validate readings first via ValidateReading.
func EvaluateWaterBalance(ph, alkalinity, calciumHardness, temperature float64) float64 {
	tempFactor := lookupFactor(tempTiers, tempTopFactor, temperature)
	chFactor := lookupFactor(calciumTiers, calciumTopFactor, calciumHardness)
	alkFactor := lookupFactor(alkalinityTiers, alkalinityTopFactor, alkalinity)

	return round2(ph + tempFactor + chFactor + alkFactor - 12.1)
}
