package chemistry

import (
	"fmt"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// RangeError reports a reading outside its acceptable range. The acceptable
// range is the wide sanity-check band, not the narrower ideal band.
type RangeError struct {
	Parameter models.Parameter
	Value     float64
	Min       float64
	Max       float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s value %s is outside acceptable range (%s-%s)",
		e.Parameter, formatValue(e.Value), formatValue(e.Min), formatValue(e.Max))
}

// acceptableRanges holds the absolute sanity-check band per parameter.
// Readings outside these bands are rejected as invalid input.
var acceptableRanges = map[models.Parameter]models.Range{
	models.ParamPH:              {Min: 5.0, Max: 9.0},
	models.ParamChlorine:        {Min: 0.0, Max: 10.0},
	models.ParamAlkalinity:      {Min: 0, Max: 300},
	models.ParamCalciumHardness: {Min: 0, Max: 1000},
	models.ParamCyanuricAcid:    {Min: 0, Max: 300},
	models.ParamTemperature:     {Min: 32, Max: 104},
}

// ValidateReading checks a single reading against its acceptable range.
// Parameters without a defined range (e.g. salt) always pass. Returns a
// *RangeError describing the violation, never a bare boolean.
func ValidateReading(param models.Parameter, value float64) error {
	r, ok := acceptableRanges[param]
	if !ok {
		return nil
	}
	if value < r.Min || value > r.Max {
		return &RangeError{Parameter: param, Value: value, Min: r.Min, Max: r.Max}
	}
	return nil
}
