package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore_InsertAndGetTest(t *testing.T) {
	s := NewMemoryStore(100)

	testID, err := s.InsertTest("Backyard")
	if err != nil {
		t.Fatalf("InsertTest failed: %v", err)
	}
	if testID != 1 {
		t.Errorf("Expected first test id 1, got %d", testID)
	}

	test, err := s.GetTest(testID)
	if err != nil {
		t.Fatalf("GetTest failed: %v", err)
	}
	if test.Location != "Backyard" {
		t.Errorf("Expected location 'Backyard', got '%s'", test.Location)
	}
	if test.TestDate.IsZero() {
		t.Error("Expected test date to be set")
	}

	if _, err := s.GetTest(99); err == nil {
		t.Error("Expected error for missing test")
	}
}

func TestMemoryStore_InsertRowsRequireTest(t *testing.T) {
	s := NewMemoryStore(100)

	if err := s.InsertTestResult(1, "pH", 7.4, ""); err == nil {
		t.Error("Expected error inserting result for missing test")
	}
	if err := s.InsertRecommendation(1, "pH", 7.4, "fine"); err == nil {
		t.Error("Expected error inserting recommendation for missing test")
	}
}

func TestMemoryStore_ResultsAndRecommendations(t *testing.T) {
	s := NewMemoryStore(100)

	testID, _ := s.InsertTest("Backyard")
	otherID, _ := s.InsertTest("Community Pool")

	if err := s.InsertTestResult(testID, "pH", 7.4, ""); err != nil {
		t.Fatalf("InsertTestResult failed: %v", err)
	}
	if err := s.InsertTestResult(testID, "Chlorine", 2.0, "ppm"); err != nil {
		t.Fatalf("InsertTestResult failed: %v", err)
	}
	if err := s.InsertTestResult(otherID, "pH", 8.1, ""); err != nil {
		t.Fatalf("InsertTestResult failed: %v", err)
	}
	if err := s.InsertRecommendation(testID, "pH", 7.4, "pH level is within ideal range"); err != nil {
		t.Fatalf("InsertRecommendation failed: %v", err)
	}

	results, err := s.GetTestResults(testID)
	if err != nil {
		t.Fatalf("GetTestResults failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	// Insertion order preserved
	if results[0].Parameter != "pH" || results[1].Parameter != "Chlorine" {
		t.Errorf("Unexpected result order: %v", results)
	}

	recs, err := s.GetRecommendations(testID)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Recommendation != "pH level is within ideal range" {
		t.Errorf("Unexpected recommendation: '%s'", recs[0].Recommendation)
	}
}

func TestMemoryStore_GetRecentTests(t *testing.T) {
	s := NewMemoryStore(100)

	s.InsertTest("first")
	s.InsertTest("second")
	s.InsertTest("third")

	tests, err := s.GetRecentTests(2)
	if err != nil {
		t.Fatalf("GetRecentTests failed: %v", err)
	}
	if len(tests) != 2 {
		t.Fatalf("Expected 2 tests, got %d", len(tests))
	}
	// Newest first
	if tests[0].Location != "third" || tests[1].Location != "second" {
		t.Errorf("Unexpected order: %v", tests)
	}
}

func TestMemoryStore_EvictsOldestTest(t *testing.T) {
	s := NewMemoryStore(2)

	firstID, _ := s.InsertTest("first")
	s.InsertTestResult(firstID, "pH", 7.4, "")
	s.InsertRecommendation(firstID, "pH", 7.4, "fine")

	s.InsertTest("second")
	s.InsertTest("third") // evicts "first" and its rows

	if _, err := s.GetTest(firstID); err == nil {
		t.Error("Expected oldest test to be evicted")
	}
	results, _ := s.GetTestResults(firstID)
	if len(results) != 0 {
		t.Errorf("Expected evicted test's results to be dropped, got %v", results)
	}
	recs, _ := s.GetRecommendations(firstID)
	if len(recs) != 0 {
		t.Errorf("Expected evicted test's recommendations to be dropped, got %v", recs)
	}

	tests, _ := s.GetRecentTests(10)
	if len(tests) != 2 {
		t.Errorf("Expected 2 tests retained, got %d", len(tests))
	}
}

func TestMemoryStore_ExportToCSV(t *testing.T) {
	s := NewMemoryStore(100)

	testID, _ := s.InsertTest("Backyard")
	s.InsertTestResult(testID, "pH", 7.4, "")
	s.InsertTestResult(testID, "Chlorine", 0.5, "ppm")
	s.InsertRecommendation(testID, "Chlorine", 0.5, "Add chlorine to increase level")

	filename := filepath.Join(t.TempDir(), "report.csv")
	if err := s.ExportToCSV(testID, filename); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open exported file: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read exported CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Parameter" || rows[0][3] != "Recommendation" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	// pH has no stored recommendation, falls back to placeholder
	if rows[1][0] != "pH" || rows[1][3] != "No recommendation" {
		t.Errorf("Unexpected pH row: %v", rows[1])
	}
	if rows[2][0] != "Chlorine" || rows[2][1] != "0.5" || rows[2][3] != "Add chlorine to increase level" {
		t.Errorf("Unexpected chlorine row: %v", rows[2])
	}
}

func TestMemoryStore_ExportToCSV_NoResults(t *testing.T) {
	s := NewMemoryStore(100)
	testID, _ := s.InsertTest("Backyard")

	filename := filepath.Join(t.TempDir(), "report.csv")
	if err := s.ExportToCSV(testID, filename); err == nil {
		t.Error("Expected error exporting a test with no results")
	}
}

func TestUnavailable_ReturnsSentinel(t *testing.T) {
	u := Unavailable{}

	if _, err := u.InsertTest("x"); err != ErrUnavailable {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if err := u.Ping(); err != ErrUnavailable {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if _, err := u.GetRecentTests(5); err != ErrUnavailable {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}
