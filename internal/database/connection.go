package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/deep-blue-pool/poolchem_backend/config"
)

// Dialect identifies the SQL flavor behind a connection.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

// DB holds a database connection and its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Connect opens a connection for the configured driver: postgres, mysql or
// sqlite. Unknown drivers are rejected rather than guessed at.
func Connect(cfg config.DatabaseConfig) (*DB, error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)

	switch strings.ToLower(cfg.Driver) {
	case "postgres", "postgresql":
		dialect = DialectPostgres
		db, err = sql.Open("postgres", postgresConnString(cfg))
	case "mysql":
		dialect = DialectMySQL
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		db, err = sql.Open("mysql", dsn)
	case "sqlite", "sqlite3":
		dialect = DialectSQLite
		db, err = sql.Open("sqlite3", cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Configure connection pool. SQLite writes go through one connection.
	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
	}

	log.Printf("✅ Connected to %s database", dialect)
	return &DB{DB: db, Dialect: dialect}, nil
}

func postgresConnString(cfg config.DatabaseConfig) string {
	// DATABASE_URL (e.g. from a hosting platform) wins over individual values.
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		log.Println("Using DATABASE_URL from environment")
		return databaseURL
	}
	log.Printf("Connecting to database at %s:%s/%s", cfg.Host, cfg.Port, cfg.DBName)
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}

// Rebind converts a query written with ? placeholders to the dialect's
// placeholder style ($1, $2, ... for postgres).
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
