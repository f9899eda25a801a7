package models

import "time"

// TestRecord is one persisted pool test.
type TestRecord struct {
	ID       int64     `json:"id"`
	TestDate time.Time `json:"test_date"`
	Location string    `json:"location_name"`
}

// TestResult is one persisted parameter reading belonging to a test.
type TestResult struct {
	ID        int64   `json:"id"`
	TestID    int64   `json:"test_id"`
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
}

// Recommendation is the stored threshold-prose advice for one reading.
type Recommendation struct {
	ID             int64   `json:"id"`
	TestID         int64   `json:"test_id"`
	Parameter      string  `json:"parameter"`
	Value          float64 `json:"value"`
	Recommendation string  `json:"recommendation"`
}

// TestReport bundles a test with its readings and recommendations for
// API responses and exports.
type TestReport struct {
	Test            TestRecord       `json:"test"`
	Results         []TestResult     `json:"results"`
	Recommendations []Recommendation `json:"recommendations"`
}
