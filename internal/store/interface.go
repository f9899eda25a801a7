package store

import (
	"errors"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// ErrUnavailable is returned by every operation of the Unavailable store and
// by stores whose backing connection is gone. Callers on the save path treat
// it as a warning, not a hard failure.
var ErrUnavailable = errors.New("persistence service not available")

// TestStore defines the persistence contract for pool tests, readings and
// recommendations.
type TestStore interface {
	// Health check
	Ping() error

	RunMigrations() error

	InsertTest(locationName string) (int64, error)
	InsertTestResult(testID int64, parameter string, value float64, unit string) error
	InsertRecommendation(testID int64, parameter string, value float64, recommendation string) error

	GetTest(testID int64) (*models.TestRecord, error)
	GetTestResults(testID int64) ([]models.TestResult, error)
	GetRecommendations(testID int64) ([]models.Recommendation, error)
	GetRecentTests(limit int) ([]models.TestRecord, error)

	// ExportToCSV writes the Parameter/Value/Unit/Recommendation rows of one
	// test to a CSV file.
	ExportToCSV(testID int64, filename string) error
}
