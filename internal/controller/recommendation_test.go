package controller

import "testing"

func TestRecommend_PH(t *testing.T) {
	if got := Recommend("pH", 6.9); got != "Add pH increaser to raise pH level" {
		t.Errorf("Unexpected low pH recommendation: '%s'", got)
	}
	if got := Recommend("pH", 8.1); got != "Add pH decreaser to lower pH level" {
		t.Errorf("Unexpected high pH recommendation: '%s'", got)
	}
	if got := Recommend("pH", 7.5); got != "pH level is within ideal range" {
		t.Errorf("Unexpected ideal pH recommendation: '%s'", got)
	}
	// Thresholds themselves are ideal
	if got := Recommend("pH", 7.2); got != "pH level is within ideal range" {
		t.Errorf("Expected 7.2 to be ideal, got '%s'", got)
	}
	if got := Recommend("pH", 7.8); got != "pH level is within ideal range" {
		t.Errorf("Expected 7.8 to be ideal, got '%s'", got)
	}
}

func TestRecommend_Chlorine(t *testing.T) {
	if got := Recommend("Chlorine", 0.4); got != "Add chlorine to increase level" {
		t.Errorf("Unexpected low chlorine recommendation: '%s'", got)
	}
	if got := Recommend("Chlorine", 4.2); got != "Chlorine level is high, avoid adding more until level drops" {
		t.Errorf("Unexpected high chlorine recommendation: '%s'", got)
	}
	if got := Recommend("Chlorine", 2.0); got != "Chlorine level is within ideal range" {
		t.Errorf("Unexpected ideal chlorine recommendation: '%s'", got)
	}
}

func TestRecommend_Alkalinity(t *testing.T) {
	if got := Recommend("Alkalinity", 60); got != "Add alkalinity increaser to raise level" {
		t.Errorf("Unexpected low alkalinity recommendation: '%s'", got)
	}
	if got := Recommend("Alkalinity", 140); got != "Add acid to lower alkalinity level" {
		t.Errorf("Unexpected high alkalinity recommendation: '%s'", got)
	}
	if got := Recommend("Alkalinity", 100); got != "Alkalinity level is within ideal range" {
		t.Errorf("Unexpected ideal alkalinity recommendation: '%s'", got)
	}
}

func TestRecommend_CalciumHardness(t *testing.T) {
	if got := Recommend("Calcium Hardness", 150); got != "Add calcium hardness increaser to raise level" {
		t.Errorf("Unexpected low calcium recommendation: '%s'", got)
	}
	if got := Recommend("Calcium Hardness", 450); got != "Dilute pool water to lower calcium hardness" {
		t.Errorf("Unexpected high calcium recommendation: '%s'", got)
	}
	if got := Recommend("Calcium Hardness", 300); got != "Calcium hardness level is within ideal range" {
		t.Errorf("Unexpected ideal calcium recommendation: '%s'", got)
	}
}

func TestRecommend_UnknownParameter(t *testing.T) {
	if got := Recommend("Cyanuric Acid", 45); got != "Maintain Cyanuric Acid at optimal levels" {
		t.Errorf("Unexpected fallback recommendation: '%s'", got)
	}
	if got := Recommend("Salt", 3200); got != "Maintain Salt at optimal levels" {
		t.Errorf("Unexpected fallback recommendation: '%s'", got)
	}
}
