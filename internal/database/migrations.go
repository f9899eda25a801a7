package database

import (
	"fmt"
	"log"
)

// autoIncrementPK returns the dialect's auto-incrementing primary key column.
func autoIncrementPK(d Dialect) string {
	switch d {
	case DialectPostgres:
		return "id SERIAL PRIMARY KEY"
	case DialectMySQL:
		return "id INT AUTO_INCREMENT PRIMARY KEY"
	default:
		return "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

func timestampType(d Dialect) string {
	switch d {
	case DialectPostgres:
		return "TIMESTAMP WITH TIME ZONE"
	case DialectMySQL:
		return "DATETIME"
	default:
		return "DATETIME"
	}
}

// CreateTables creates the tests, test_results and recommendations tables.
func (db *DB) CreateTables() error {
	log.Println("Creating database tables...")

	pk := autoIncrementPK(db.Dialect)
	ts := timestampType(db.Dialect)

	testsTable := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS tests (
		%s,
		test_date %s NOT NULL,
		location_name VARCHAR(255) NOT NULL DEFAULT 'Unknown'
	);`, pk, ts)

	if _, err := db.Exec(testsTable); err != nil {
		return fmt.Errorf("failed to create tests table: %w", err)
	}

	testResultsTable := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS test_results (
		%s,
		test_id INTEGER NOT NULL,
		parameter VARCHAR(100) NOT NULL,
		value DECIMAL(10,2) NOT NULL,
		unit VARCHAR(20) NOT NULL DEFAULT ''
	);`, pk)

	if _, err := db.Exec(testResultsTable); err != nil {
		return fmt.Errorf("failed to create test_results table: %w", err)
	}

	recommendationsTable := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS recommendations (
		%s,
		test_id INTEGER NOT NULL,
		parameter VARCHAR(100) NOT NULL,
		value DECIMAL(10,2) NOT NULL,
		recommendation TEXT NOT NULL
	);`, pk)

	if _, err := db.Exec(recommendationsTable); err != nil {
		return fmt.Errorf("failed to create recommendations table: %w", err)
	}

	// Indexes for the report and export lookups
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_tests_test_date ON tests(test_date);",
		"CREATE INDEX IF NOT EXISTS idx_test_results_test_id ON test_results(test_id);",
		"CREATE INDEX IF NOT EXISTS idx_recommendations_test_id ON recommendations(test_id);",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
		}
	}

	log.Println("✅ Database tables created successfully")
	return nil
}

// DropTables drops all tables (useful for testing).
func (db *DB) DropTables() error {
	log.Println("Dropping database tables...")

	tables := []string{
		"recommendations",
		"test_results",
		"tests",
	}

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s;", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	log.Println("✅ Database tables dropped successfully")
	return nil
}

// CheckTablesExist verifies all required tables are present.
func (db *DB) CheckTablesExist() error {
	requiredTables := []string{
		"tests",
		"test_results",
		"recommendations",
	}

	for _, table := range requiredTables {
		var query string
		switch db.Dialect {
		case DialectSQLite:
			query = "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?);"
		default:
			query = "SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = ?);"
		}

		var exists bool
		if err := db.QueryRow(db.Dialect.Rebind(query), table).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("table %s does not exist", table)
		}
	}

	log.Println("✅ All required tables exist")
	return nil
}
