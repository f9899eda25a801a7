package chemistry

import (
	"testing"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

func TestCalculateAdjustments_BalancedWater(t *testing.T) {
	adjustments := CalculateAdjustments(models.PoolTypeConcrete, 7.5, 2.0, 100, 300, 10000)

	if len(adjustments) != 0 {
		t.Errorf("Expected no adjustments for balanced water, got %d: %v", len(adjustments), adjustments)
	}
}

func TestCalculateAdjustments_BandEdgesAreInBand(t *testing.T) {
	// Values exactly on a band edge need no adjustment
	adjustments := CalculateAdjustments(models.PoolTypeConcrete, 7.2, 1.0, 80, 200, 10000)
	if len(adjustments) != 0 {
		t.Errorf("Expected no adjustments at lower band edges, got %v", adjustments)
	}

	adjustments = CalculateAdjustments(models.PoolTypeConcrete, 7.8, 3.0, 120, 400, 10000)
	if len(adjustments) != 0 {
		t.Errorf("Expected no adjustments at upper band edges, got %v", adjustments)
	}
}

func TestCalculateAdjustments_AllLow(t *testing.T) {
	adjustments := CalculateAdjustments(models.PoolTypeConcrete, 6.8, 0.5, 60, 150, 20000)

	if len(adjustments) != 4 {
		t.Fatalf("Expected 4 adjustments, got %d: %v", len(adjustments), adjustments)
	}

	ph, ok := adjustments[models.AdjustPHIncreaser]
	if !ok {
		t.Fatal("Expected a pH increaser adjustment")
	}
	if ph.Amount != 3.2 {
		t.Errorf("Expected 3.2 oz of pH increaser, got %v", ph.Amount)
	}
	if ph.Unit != "oz" {
		t.Errorf("Expected oz unit, got '%s'", ph.Unit)
	}
	if ph.Reason != "Increase pH from 6.8 to 7.2-7.8" {
		t.Errorf("Unexpected pH reason: '%s'", ph.Reason)
	}

	chlorine, ok := adjustments[models.AdjustChlorine]
	if !ok {
		t.Fatal("Expected a chlorine adjustment")
	}
	if chlorine.Amount != 1.0 {
		t.Errorf("Expected 1 lbs of chlorine, got %v", chlorine.Amount)
	}
	if chlorine.Unit != "lbs" {
		t.Errorf("Expected lbs unit, got '%s'", chlorine.Unit)
	}

	alkalinity, ok := adjustments[models.AdjustAlkalinityUp]
	if !ok {
		t.Fatal("Expected an alkalinity increaser adjustment")
	}
	if alkalinity.Amount != 60.0 {
		t.Errorf("Expected 60 lbs of alkalinity increaser, got %v", alkalinity.Amount)
	}

	calcium, ok := adjustments[models.AdjustCalciumIncreaser]
	if !ok {
		t.Fatal("Expected a calcium hardness increaser adjustment")
	}
	if calcium.Amount != 125.0 {
		t.Errorf("Expected 125 lbs of calcium increaser, got %v", calcium.Amount)
	}
}

func TestCalculateAdjustments_HighPH(t *testing.T) {
	adjustments := CalculateAdjustments(models.PoolTypeConcrete, 8.2, 2.0, 100, 300, 10000)

	if len(adjustments) != 1 {
		t.Fatalf("Expected 1 adjustment, got %d: %v", len(adjustments), adjustments)
	}

	ph, ok := adjustments[models.AdjustPHDecreaser]
	if !ok {
		t.Fatal("Expected a pH decreaser adjustment")
	}
	if ph.Amount != 2.4 {
		t.Errorf("Expected 2.4 oz of pH decreaser, got %v", ph.Amount)
	}
	if ph.Reason != "Decrease pH from 8.2 to 7.2-7.8" {
		t.Errorf("Unexpected pH reason: '%s'", ph.Reason)
	}
}

func TestCalculateAdjustments_HighValuesAreAdvisory(t *testing.T) {
	// Excess chlorine, alkalinity and calcium have no computed dose, only
	// a prose recommendation.
	adjustments := CalculateAdjustments(models.PoolTypeConcrete, 7.5, 5.0, 200, 500, 10000)

	if len(adjustments) != 3 {
		t.Fatalf("Expected 3 adjustments, got %d: %v", len(adjustments), adjustments)
	}

	chlorine, ok := adjustments[models.AdjustChlorineReduce]
	if !ok {
		t.Fatal("Expected a chlorine reduction entry")
	}
	if chlorine.Amount != 0 || chlorine.Unit != "" {
		t.Errorf("Expected advisory entry with no amount, got %v %s", chlorine.Amount, chlorine.Unit)
	}
	if chlorine.Reason != "Reduce chlorine from 5 to 1-3 by waiting or diluting" {
		t.Errorf("Unexpected chlorine reason: '%s'", chlorine.Reason)
	}

	alkalinity, ok := adjustments[models.AdjustAlkalinityDown]
	if !ok {
		t.Fatal("Expected an alkalinity decrease entry")
	}
	if alkalinity.Amount != 0 {
		t.Errorf("Expected advisory alkalinity entry, got amount %v", alkalinity.Amount)
	}

	calcium, ok := adjustments[models.AdjustCalciumReduce]
	if !ok {
		t.Fatal("Expected a calcium hardness reduction entry")
	}
	if calcium.Reason != "Reduce calcium hardness from 500 to 200-400 by diluting" {
		t.Errorf("Unexpected calcium reason: '%s'", calcium.Reason)
	}
}

func TestCalculateAdjustments_CalciumBandByPoolType(t *testing.T) {
	// 150 ppm calcium is low for concrete but fine for vinyl and fiberglass
	cases := []struct {
		poolType models.PoolType
		calcium  float64
		needsUp  bool
	}{
		{models.PoolTypeConcrete, 150, true},
		{models.PoolTypeVinyl, 150, false},
		{models.PoolTypeFiberglass, 150, false},
		{models.PoolTypeAboveGround, 150, true},
	}

	for _, c := range cases {
		adjustments := CalculateAdjustments(c.poolType, 7.5, 2.0, 100, c.calcium, 10000)
		_, hasUp := adjustments[models.AdjustCalciumIncreaser]
		if hasUp != c.needsUp {
			t.Errorf("%s with calcium %v: expected increaser=%v, got %v",
				c.poolType, c.calcium, c.needsUp, hasUp)
		}
	}
}

func TestCalculateAdjustments_UnknownPoolTypeUsesConcreteBand(t *testing.T) {
	adjustments := CalculateAdjustments(models.PoolType("Igloo"), 7.5, 2.0, 100, 150, 10000)

	calcium, ok := adjustments[models.AdjustCalciumIncreaser]
	if !ok {
		t.Fatal("Expected calcium increaser using the Concrete/Gunite band")
	}
	// (200 - 150) * 1 * 1.25
	if calcium.Amount != 62.5 {
		t.Errorf("Expected 62.5 lbs, got %v", calcium.Amount)
	}
}

func TestCalculateAdjustments_ScalesWithVolume(t *testing.T) {
	small := CalculateAdjustments(models.PoolTypeConcrete, 6.8, 2.0, 100, 300, 10000)
	large := CalculateAdjustments(models.PoolTypeConcrete, 6.8, 2.0, 100, 300, 30000)

	smallDose := small[models.AdjustPHIncreaser].Amount
	largeDose := large[models.AdjustPHIncreaser].Amount

	if largeDose <= smallDose {
		t.Errorf("Expected dose to grow with volume, got %v for 10k and %v for 30k", smallDose, largeDose)
	}
	if largeDose != round2(smallDose*3) {
		t.Errorf("Expected linear scaling, got %v vs %v", smallDose, largeDose)
	}
}

func TestCalculateAdjustments_DoseGrowsWithDeviation(t *testing.T) {
	near := CalculateAdjustments(models.PoolTypeConcrete, 7.0, 2.0, 100, 300, 10000)
	far := CalculateAdjustments(models.PoolTypeConcrete, 6.5, 2.0, 100, 300, 10000)

	if far[models.AdjustPHIncreaser].Amount <= near[models.AdjustPHIncreaser].Amount {
		t.Errorf("Expected larger deviation to need a larger dose, got %v vs %v",
			near[models.AdjustPHIncreaser].Amount, far[models.AdjustPHIncreaser].Amount)
	}
}
