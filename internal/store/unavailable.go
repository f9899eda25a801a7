package store

import (
	"log"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// Unavailable is the null-object TestStore used when persistence is disabled
// entirely. Every operation logs a warning and returns a safe default, so
// callers never have to nil-check their store.
type Unavailable struct{}

func (Unavailable) warn(op string) {
	log.Printf("⚠️  Warning: persistence service not available, skipping %s", op)
}

func (u Unavailable) Ping() error {
	u.warn("health check")
	return ErrUnavailable
}

func (u Unavailable) RunMigrations() error {
	u.warn("migrations")
	return ErrUnavailable
}

func (u Unavailable) InsertTest(string) (int64, error) {
	u.warn("insert test")
	return 0, ErrUnavailable
}

func (u Unavailable) InsertTestResult(int64, string, float64, string) error {
	u.warn("insert test result")
	return ErrUnavailable
}

func (u Unavailable) InsertRecommendation(int64, string, float64, string) error {
	u.warn("insert recommendation")
	return ErrUnavailable
}

func (u Unavailable) GetTest(int64) (*models.TestRecord, error) {
	u.warn("get test")
	return nil, ErrUnavailable
}

func (u Unavailable) GetTestResults(int64) ([]models.TestResult, error) {
	u.warn("get test results")
	return nil, ErrUnavailable
}

func (u Unavailable) GetRecommendations(int64) ([]models.Recommendation, error) {
	u.warn("get recommendations")
	return nil, ErrUnavailable
}

func (u Unavailable) GetRecentTests(int) ([]models.TestRecord, error) {
	u.warn("get recent tests")
	return nil, ErrUnavailable
}

func (u Unavailable) ExportToCSV(int64, string) error {
	u.warn("CSV export")
	return ErrUnavailable
}
