package database

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// DatabaseStore implements store.TestStore on top of an SQL database.
type DatabaseStore struct {
	db *DB
}

// NewDatabaseStore creates a new database-backed test store.
func NewDatabaseStore(db *DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Ping checks the underlying connection.
func (s *DatabaseStore) Ping() error {
	return s.db.Ping()
}

// RunMigrations creates the schema if it does not exist.
func (s *DatabaseStore) RunMigrations() error {
	return s.db.CreateTables()
}

// InsertTest stores a new test record and returns its id.
func (s *DatabaseStore) InsertTest(locationName string) (int64, error) {
	now := time.Now()

	if s.db.Dialect == DialectPostgres {
		var id int64
		query := "INSERT INTO tests (test_date, location_name) VALUES ($1, $2) RETURNING id"
		if err := s.db.QueryRow(query, now, locationName).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert test: %w", err)
		}
		return id, nil
	}

	result, err := s.db.Exec("INSERT INTO tests (test_date, location_name) VALUES (?, ?)", now, locationName)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted test id: %w", err)
	}
	return id, nil
}

// InsertTestResult stores one parameter reading for a test.
func (s *DatabaseStore) InsertTestResult(testID int64, parameter string, value float64, unit string) error {
	query := s.db.Dialect.Rebind(
		"INSERT INTO test_results (test_id, parameter, value, unit) VALUES (?, ?, ?, ?)")
	if _, err := s.db.Exec(query, testID, parameter, value, unit); err != nil {
		return fmt.Errorf("failed to insert test result: %w", err)
	}
	return nil
}

// InsertRecommendation stores one recommendation for a test.
func (s *DatabaseStore) InsertRecommendation(testID int64, parameter string, value float64, recommendation string) error {
	query := s.db.Dialect.Rebind(
		"INSERT INTO recommendations (test_id, parameter, value, recommendation) VALUES (?, ?, ?, ?)")
	if _, err := s.db.Exec(query, testID, parameter, value, recommendation); err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return nil
}

// GetTest returns one test record.
func (s *DatabaseStore) GetTest(testID int64) (*models.TestRecord, error) {
	query := s.db.Dialect.Rebind(
		"SELECT id, test_date, location_name FROM tests WHERE id = ?")

	var test models.TestRecord
	err := s.db.QueryRow(query, testID).Scan(&test.ID, &test.TestDate, &test.Location)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("test %d not found", testID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	return &test, nil
}

// GetTestResults returns the readings saved for a test.
func (s *DatabaseStore) GetTestResults(testID int64) ([]models.TestResult, error) {
	query := s.db.Dialect.Rebind(
		"SELECT id, test_id, parameter, value, unit FROM test_results WHERE test_id = ? ORDER BY id")

	rows, err := s.db.Query(query, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test results: %w", err)
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		var r models.TestResult
		if err := rows.Scan(&r.ID, &r.TestID, &r.Parameter, &r.Value, &r.Unit); err != nil {
			log.Printf("⚠️  Warning: error scanning test result: %v", err)
			continue
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetRecommendations returns the recommendations saved for a test.
func (s *DatabaseStore) GetRecommendations(testID int64) ([]models.Recommendation, error) {
	query := s.db.Dialect.Rebind(
		"SELECT id, test_id, parameter, value, recommendation FROM recommendations WHERE test_id = ? ORDER BY id")

	rows, err := s.db.Query(query, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		var r models.Recommendation
		if err := rows.Scan(&r.ID, &r.TestID, &r.Parameter, &r.Value, &r.Recommendation); err != nil {
			log.Printf("⚠️  Warning: error scanning recommendation: %v", err)
			continue
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// GetRecentTests returns the most recent tests, newest first.
func (s *DatabaseStore) GetRecentTests(limit int) ([]models.TestRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.Dialect.Rebind(
		"SELECT id, test_date, location_name FROM tests ORDER BY test_date DESC, id DESC LIMIT ?")

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent tests: %w", err)
	}
	defer rows.Close()

	var tests []models.TestRecord
	for rows.Next() {
		var t models.TestRecord
		if err := rows.Scan(&t.ID, &t.TestDate, &t.Location); err != nil {
			log.Printf("⚠️  Warning: error scanning test: %v", err)
			continue
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// ExportToCSV writes the readings of one test, joined with their
// recommendations, to a CSV file.
func (s *DatabaseStore) ExportToCSV(testID int64, filename string) error {
	query := s.db.Dialect.Rebind(`
		SELECT tr.parameter, tr.value, tr.unit, r.recommendation
		FROM test_results tr
		LEFT JOIN recommendations r ON tr.test_id = r.test_id AND tr.parameter = r.parameter
		WHERE tr.test_id = ?
		ORDER BY tr.id`)

	rows, err := s.db.Query(query, testID)
	if err != nil {
		return fmt.Errorf("failed to query test report: %w", err)
	}
	defer rows.Close()

	type reportRow struct {
		parameter      string
		value          float64
		unit           string
		recommendation sql.NullString
	}
	var report []reportRow
	for rows.Next() {
		var r reportRow
		if err := rows.Scan(&r.parameter, &r.value, &r.unit, &r.recommendation); err != nil {
			return fmt.Errorf("failed to scan test report row: %w", err)
		}
		report = append(report, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(report) == 0 {
		return fmt.Errorf("no results found for test %d", testID)
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
	for _, r := range report {
		recommendation := "No recommendation"
		if r.recommendation.Valid && r.recommendation.String != "" {
			recommendation = r.recommendation.String
		}
		row := []string{
			r.parameter,
			strconv.FormatFloat(r.value, 'g', -1, 64),
			r.unit,
			recommendation,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	log.Printf("📄 Test report exported to %s", filename)
	return nil
}
