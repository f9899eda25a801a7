package models

// Parameter identifies a water chemistry parameter as it appears in a
// submitted test input.
type Parameter string

const (
	ParamPH              Parameter = "ph"
	ParamChlorine        Parameter = "chlorine"
	ParamAlkalinity      Parameter = "alkalinity"
	ParamCalciumHardness Parameter = "calcium_hardness"
	ParamCyanuricAcid    Parameter = "cyanuric_acid"
	ParamTemperature     Parameter = "temperature"
	ParamSalt            Parameter = "salt"
)

// DisplayName returns the human-readable name used in stored test results
// and recommendations.
func (p Parameter) DisplayName() string {
	switch p {
	case ParamPH:
		return "pH"
	case ParamChlorine:
		return "Chlorine"
	case ParamAlkalinity:
		return "Alkalinity"
	case ParamCalciumHardness:
		return "Calcium Hardness"
	case ParamCyanuricAcid:
		return "Cyanuric Acid"
	case ParamTemperature:
		return "Temperature"
	case ParamSalt:
		return "Salt"
	}
	return string(p)
}

// Unit returns the measurement unit recorded alongside a stored reading.
// pH is unitless.
func (p Parameter) Unit() string {
	switch p {
	case ParamPH:
		return ""
	case ParamTemperature:
		return "°F"
	default:
		return "ppm"
	}
}

// PoolType represents the pool surface type. It selects the calcium
// hardness ideal band; every other band is type-independent.
type PoolType string

const (
	PoolTypeConcrete    PoolType = "Concrete/Gunite"
	PoolTypeVinyl       PoolType = "Vinyl"
	PoolTypeFiberglass  PoolType = "Fiberglass"
	PoolTypeAboveGround PoolType = "Above Ground"
)

// TestInput is a reading set as submitted by a caller (GUI, HTTP, MQTT).
// Parameter fields hold numeric strings; an absent or empty field means
// "not measured this round" and is silently skipped. PoolType and PoolSize
// are mandatory.
type TestInput struct {
	Location        string `json:"location,omitempty"`
	PoolType        string `json:"pool_type"`
	PoolSize        string `json:"pool_size"`
	PH              string `json:"ph,omitempty"`
	Chlorine        string `json:"chlorine,omitempty"`
	Alkalinity      string `json:"alkalinity,omitempty"`
	CalciumHardness string `json:"calcium_hardness,omitempty"`
	CyanuricAcid    string `json:"cyanuric_acid,omitempty"`
	Temperature     string `json:"temperature,omitempty"`
	Salt            string `json:"salt,omitempty"`
}

// Raw returns the raw string value for a parameter.
func (in *TestInput) Raw(p Parameter) string {
	switch p {
	case ParamPH:
		return in.PH
	case ParamChlorine:
		return in.Chlorine
	case ParamAlkalinity:
		return in.Alkalinity
	case ParamCalciumHardness:
		return in.CalciumHardness
	case ParamCyanuricAcid:
		return in.CyanuricAcid
	case ParamTemperature:
		return in.Temperature
	case ParamSalt:
		return in.Salt
	}
	return ""
}

// Has reports whether a parameter was measured in this reading set.
func (in *TestInput) Has(p Parameter) bool {
	return in.Raw(p) != ""
}

// MeasuredParameters is the fixed order in which parameters are validated
// and persisted.
var MeasuredParameters = []Parameter{
	ParamPH,
	ParamChlorine,
	ParamAlkalinity,
	ParamCalciumHardness,
	ParamCyanuricAcid,
	ParamTemperature,
	ParamSalt,
}

// Range is an inclusive [Min, Max] band for a parameter.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
