package controller

import "fmt"

// Recommend produces the short prose recommendation stored alongside each
// saved reading. This is a deliberately simpler engine than the dosage
// calculator: plain threshold checks keyed by display name, no amounts.
func Recommend(parameter string, value float64) string {
	switch parameter {
	case "pH":
		if value < 7.2 {
			return "Add pH increaser to raise pH level"
		}
		if value > 7.8 {
			return "Add pH decreaser to lower pH level"
		}
		return "pH level is within ideal range"
	case "Chlorine":
		if value < 1.0 {
			return "Add chlorine to increase level"
		}
		if value > 3.0 {
			return "Chlorine level is high, avoid adding more until level drops"
		}
		return "Chlorine level is within ideal range"
	case "Alkalinity":
		if value < 80 {
			return "Add alkalinity increaser to raise level"
		}
		if value > 120 {
			return "Add acid to lower alkalinity level"
		}
		return "Alkalinity level is within ideal range"
	case "Calcium Hardness":
		if value < 200 {
			return "Add calcium hardness increaser to raise level"
		}
		if value > 400 {
			return "Dilute pool water to lower calcium hardness"
		}
		return "Calcium hardness level is within ideal range"
	default:
		return fmt.Sprintf("Maintain %s at optimal levels", parameter)
	}
}
