package models

// AdjustmentKind is the closed set of dosage recommendations the calculator
// can produce. Using a named type instead of open string keys keeps unknown
// kinds out of the result map.
type AdjustmentKind string

const (
	AdjustPHIncreaser      AdjustmentKind = "ph_increaser"
	AdjustPHDecreaser      AdjustmentKind = "ph_decreaser"
	AdjustChlorine         AdjustmentKind = "chlorine"
	AdjustChlorineReduce   AdjustmentKind = "chlorine_reduction"
	AdjustAlkalinityUp     AdjustmentKind = "alkalinity_increaser"
	AdjustAlkalinityDown   AdjustmentKind = "alkalinity_decreaser"
	AdjustCalciumIncreaser AdjustmentKind = "calcium_hardness_increaser"
	AdjustCalciumReduce    AdjustmentKind = "calcium_hardness_reduction"
)

// Parameter returns the measured parameter an adjustment kind corrects.
func (k AdjustmentKind) Parameter() Parameter {
	switch k {
	case AdjustPHIncreaser, AdjustPHDecreaser:
		return ParamPH
	case AdjustChlorine, AdjustChlorineReduce:
		return ParamChlorine
	case AdjustAlkalinityUp, AdjustAlkalinityDown:
		return ParamAlkalinity
	case AdjustCalciumIncreaser, AdjustCalciumReduce:
		return ParamCalciumHardness
	}
	return ""
}

// Adjustment is a single dosage recommendation. Advisory entries (reduce by
// waiting, diluting or adding acid) carry a zero amount and empty unit.
type Adjustment struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Reason string  `json:"reason"`
}

// Adjustments maps each out-of-band parameter to its recommendation. An
// empty map means the water is balanced and no adjustment is needed.
type Adjustments map[AdjustmentKind]Adjustment

// ChemistryResult is the bundle returned by a calculation: dosage
// recommendations, the water balance index when computable, and the ideal
// bands the dosages aim for.
type ChemistryResult struct {
	Adjustments  Adjustments         `json:"adjustments"`
	WaterBalance *float64            `json:"water_balance"`
	IdealRanges  map[Parameter]Range `json:"ideal_ranges"`
}
