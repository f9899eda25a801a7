package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// MemoryStore is an in-memory TestStore used when no database is reachable
// and as a test double. Safe for concurrent callers.
type MemoryStore struct {
	mu              sync.RWMutex
	tests           []models.TestRecord
	results         []models.TestResult
	recommendations []models.Recommendation
	nextTestID      int64
	nextRowID       int64
	maxTests        int
}

// NewMemoryStore creates an in-memory store keeping at most maxTests tests.
func NewMemoryStore(maxTests int) *MemoryStore {
	if maxTests <= 0 {
		maxTests = 1000
	}
	return &MemoryStore{
		nextTestID: 1,
		nextRowID:  1,
		maxTests:   maxTests,
	}
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping() error { return nil }

// RunMigrations is a no-op for the in-memory store.
func (s *MemoryStore) RunMigrations() error { return nil }

// InsertTest records a new test and returns its id.
func (s *MemoryStore) InsertTest(locationName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	test := models.TestRecord{
		ID:       s.nextTestID,
		TestDate: time.Now(),
		Location: locationName,
	}
	s.nextTestID++
	s.tests = append(s.tests, test)

	// Drop the oldest test (and its rows) when over capacity.
	if len(s.tests) > s.maxTests {
		evicted := s.tests[0].ID
		s.tests = s.tests[1:]
		s.results = dropResults(s.results, evicted)
		s.recommendations = dropRecommendations(s.recommendations, evicted)
	}

	return test.ID, nil
}

func dropResults(rows []models.TestResult, testID int64) []models.TestResult {
	kept := rows[:0]
	for _, r := range rows {
		if r.TestID != testID {
			kept = append(kept, r)
		}
	}
	return kept
}

func dropRecommendations(rows []models.Recommendation, testID int64) []models.Recommendation {
	kept := rows[:0]
	for _, r := range rows {
		if r.TestID != testID {
			kept = append(kept, r)
		}
	}
	return kept
}

// InsertTestResult records one parameter reading for a test.
func (s *MemoryStore) InsertTestResult(testID int64, parameter string, value float64, unit string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.testExists(testID) {
		return fmt.Errorf("test %d not found", testID)
	}
	s.results = append(s.results, models.TestResult{
		ID:        s.nextRowID,
		TestID:    testID,
		Parameter: parameter,
		Value:     value,
		Unit:      unit,
	})
	s.nextRowID++
	return nil
}

// InsertRecommendation records one recommendation for a test.
func (s *MemoryStore) InsertRecommendation(testID int64, parameter string, value float64, recommendation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.testExists(testID) {
		return fmt.Errorf("test %d not found", testID)
	}
	s.recommendations = append(s.recommendations, models.Recommendation{
		ID:             s.nextRowID,
		TestID:         testID,
		Parameter:      parameter,
		Value:          value,
		Recommendation: recommendation,
	})
	s.nextRowID++
	return nil
}

func (s *MemoryStore) testExists(testID int64) bool {
	for _, t := range s.tests {
		if t.ID == testID {
			return true
		}
	}
	return false
}

// GetTest returns one test record.
func (s *MemoryStore) GetTest(testID int64) (*models.TestRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tests {
		if t.ID == testID {
			test := t
			return &test, nil
		}
	}
	return nil, fmt.Errorf("test %d not found", testID)
}

// GetTestResults returns the readings saved for a test, in insertion order.
func (s *MemoryStore) GetTestResults(testID int64) ([]models.TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []models.TestResult
	for _, r := range s.results {
		if r.TestID == testID {
			results = append(results, r)
		}
	}
	return results, nil
}

// GetRecommendations returns the recommendations saved for a test.
func (s *MemoryStore) GetRecommendations(testID int64) ([]models.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []models.Recommendation
	for _, r := range s.recommendations {
		if r.TestID == testID {
			recs = append(recs, r)
		}
	}
	return recs, nil
}

// GetRecentTests returns the most recent tests, newest first.
func (s *MemoryStore) GetRecentTests(limit int) ([]models.TestRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	tests := make([]models.TestRecord, len(s.tests))
	copy(tests, s.tests)
	sort.Slice(tests, func(i, j int) bool {
		return tests[i].ID > tests[j].ID
	})
	if len(tests) > limit {
		tests = tests[:limit]
	}
	return tests, nil
}

// ExportToCSV writes the readings of one test, joined with their
// recommendations, to a CSV file.
func (s *MemoryStore) ExportToCSV(testID int64, filename string) error {
	results, err := s.GetTestResults(testID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no results found for test %d", testID)
	}
	recs, err := s.GetRecommendations(testID)
	if err != nil {
		return err
	}
	recByParam := make(map[string]string, len(recs))
	for _, r := range recs {
		recByParam[r.Parameter] = r.Recommendation
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Parameter", "Value", "Unit", "Recommendation"}); err != nil {
		return err
	}
	for _, r := range results {
		rec := recByParam[r.Parameter]
		if rec == "" {
			rec = "No recommendation"
		}
		row := []string{
			r.Parameter,
			strconv.FormatFloat(r.Value, 'g', -1, 64),
			r.Unit,
			rec,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}
