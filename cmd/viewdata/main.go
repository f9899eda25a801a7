package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/deep-blue-pool/poolchem_backend/config"
	"github.com/deep-blue-pool/poolchem_backend/internal/database"
)

func main() {
	var (
		table = flag.String("table", "tests", "Table to view (tests, test_results, recommendations)")
		limit = flag.Int("limit", 10, "Number of records to show")
	)
	flag.Parse()

	log.Println("🔍 Pool Chemistry Database Viewer")
	log.Println("=================================")

	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: .env file not found")
	}

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.Database.Driver == "sqlite" {
		log.Printf("✅ Connected to database: %s", cfg.Database.SQLitePath)
	} else {
		log.Printf("✅ Connected to database: %s@%s:%s/%s",
			cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	switch *table {
	case "tests":
		viewTests(db, *limit)
	case "test_results":
		viewTestResults(db, *limit)
	case "recommendations":
		viewRecommendations(db, *limit)
	default:
		log.Printf("Unknown table: %s", *table)
		log.Println("Available tables: tests, test_results, recommendations")
	}
}

func viewTests(db *database.DB, limit int) {
	query := db.Dialect.Rebind(`
		SELECT id, test_date, location_name
		FROM tests
		ORDER BY test_date DESC
		LIMIT ?`)

	rows, err := db.Query(query, limit)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}
	defer rows.Close()

	fmt.Printf("\n🧪 Latest %d Pool Tests:\n", limit)
	fmt.Println("=========================")
	fmt.Printf("%-4s %-20s %-30s\n", "ID", "Test Date", "Location")
	fmt.Println("--------------------------------------------------------")

	count := 0
	for rows.Next() {
		var id int64
		var testDate, location string

		err := rows.Scan(&id, &testDate, &location)
		if err != nil {
			log.Printf("❌ Error scanning row: %v", err)
			continue
		}

		if len(testDate) > 19 {
			testDate = testDate[:19]
		}
		fmt.Printf("%-4d %-20s %-30s\n", id, testDate, location)
		count++
	}

	if count == 0 {
		fmt.Println("No tests found.")
	} else {
		fmt.Printf("\nTotal: %d tests\n", count)
	}
}

func viewTestResults(db *database.DB, limit int) {
	query := db.Dialect.Rebind(`
		SELECT id, test_id, parameter, value, unit
		FROM test_results
		ORDER BY id DESC
		LIMIT ?`)

	rows, err := db.Query(query, limit)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}
	defer rows.Close()

	fmt.Printf("\n📊 Latest %d Test Results:\n", limit)
	fmt.Println("===========================")
	fmt.Printf("%-4s %-8s %-18s %-10s %-6s\n", "ID", "Test", "Parameter", "Value", "Unit")
	fmt.Println("----------------------------------------------------")

	count := 0
	for rows.Next() {
		var id, testID int64
		var parameter, unit string
		var value float64

		err := rows.Scan(&id, &testID, &parameter, &value, &unit)
		if err != nil {
			log.Printf("❌ Error scanning row: %v", err)
			continue
		}

		fmt.Printf("%-4d %-8d %-18s %-10.2f %-6s\n", id, testID, parameter, value, unit)
		count++
	}

	if count == 0 {
		fmt.Println("No test results found.")
	} else {
		fmt.Printf("\nTotal: %d results\n", count)
	}
}

func viewRecommendations(db *database.DB, limit int) {
	query := db.Dialect.Rebind(`
		SELECT id, test_id, parameter, value, recommendation
		FROM recommendations
		ORDER BY id DESC
		LIMIT ?`)

	rows, err := db.Query(query, limit)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}
	defer rows.Close()

	fmt.Printf("\n💡 Latest %d Recommendations:\n", limit)
	fmt.Println("==============================")
	fmt.Printf("%-4s %-8s %-18s %-10s %-50s\n", "ID", "Test", "Parameter", "Value", "Recommendation")
	fmt.Println("--------------------------------------------------------------------------------------------")

	count := 0
	for rows.Next() {
		var id, testID int64
		var parameter, recommendation string
		var value float64

		err := rows.Scan(&id, &testID, &parameter, &value, &recommendation)
		if err != nil {
			log.Printf("❌ Error scanning row: %v", err)
			continue
		}

		fmt.Printf("%-4d %-8d %-18s %-10.2f %-50s\n", id, testID, parameter, value, recommendation)
		count++
	}

	if count == 0 {
		fmt.Println("No recommendations found.")
	} else {
		fmt.Printf("\nTotal: %d recommendations\n", count)
	}
}
