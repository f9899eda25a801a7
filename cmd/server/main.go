package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/deep-blue-pool/poolchem_backend/config"
	"github.com/deep-blue-pool/poolchem_backend/internal/controller"
	"github.com/deep-blue-pool/poolchem_backend/internal/database"
	"github.com/deep-blue-pool/poolchem_backend/internal/export"
	httphandlers "github.com/deep-blue-pool/poolchem_backend/internal/http"
	"github.com/deep-blue-pool/poolchem_backend/internal/models"
	"github.com/deep-blue-pool/poolchem_backend/internal/mqtt"
	"github.com/deep-blue-pool/poolchem_backend/internal/services"
	"github.com/deep-blue-pool/poolchem_backend/internal/store"
	"github.com/deep-blue-pool/poolchem_backend/internal/ws"
)

func main() {
	log.Println("🌊 Starting Deep Blue Pool Chemistry Backend...")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found: %v", err)
	} else {
		log.Println("✅ Loaded .env file")
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Loaded configuration: Server port=%s, DB driver=%s",
		cfg.Server.Port, cfg.Database.Driver)

	// Initialize test store, falling back to in-memory storage when the
	// database is unreachable
	var testStore store.TestStore

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to connect to database: %v", err)
		log.Println("📱 Falling back to in-memory storage")
		testStore = store.NewMemoryStore(1000)
		log.Println("💾 Initialized in-memory test store")
	} else {
		log.Printf("✅ Connected to %s database", cfg.Database.Driver)

		if err := db.CreateTables(); err != nil {
			log.Fatalf("❌ Failed to run migrations: %v", err)
		}

		testStore = database.NewDatabaseStore(db)
		log.Printf("💾 Initialized database test store (%s)", cfg.Database.Driver)
	}

	// Initialize the chemistry controller
	ctrl := controller.New(testStore, cfg.Export.CSVFile)

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()
	log.Println("🔌 Started WebSocket hub")

	// Initialize MQTT client (skip if no broker URL configured)
	var mqttClient *mqtt.Client
	if cfg.MQTT.BrokerURL != "" {
		log.Println("📡 Attempting to connect to MQTT broker...")
		client := mqtt.NewClient(cfg.MQTT)
		client.SetReadingHandler(func(input *models.TestInput) {
			result, err := ctrl.CalculateChemicals(input)
			if err != nil {
				log.Printf("❌ Rejected probe reading set: %v", err)
				wsHub.BroadcastError(err.Error())
				return
			}
			wsHub.BroadcastChemistryResult(result)

			testID, err := ctrl.SaveTestResults(input)
			if err != nil {
				log.Printf("❌ Failed to save probe reading set: %v", err)
				wsHub.BroadcastError(err.Error())
				return
			}
			if testID == 0 {
				return
			}

			location := input.Location
			if location == "" {
				location = "Unknown"
			}
			wsHub.BroadcastTestSaved(&ws.TestSavedEvent{
				TestID:       testID,
				Location:     location,
				Adjustments:  result.Adjustments,
				WaterBalance: result.WaterBalance,
			})
		})
		client.SetErrorHandler(func(err error) {
			wsHub.BroadcastError(err.Error())
		})

		if err := client.Connect(); err != nil {
			log.Printf("⚠️  Warning: Failed to connect to MQTT broker: %v", err)
			log.Println("📡 Continuing without MQTT support")
		} else {
			if err := client.SubscribeToReadings(); err != nil {
				log.Printf("⚠️  Warning: Failed to subscribe to reading topics: %v", err)
			}
			log.Printf("📡 MQTT client connected - Broker: %s", cfg.MQTT.BrokerURL)
			mqttClient = client
			defer mqttClient.Disconnect()
		}
	} else {
		log.Println("📡 MQTT broker not configured, skipping MQTT initialization")
	}

	// Initialize and start the maintenance scheduler
	var scheduler *services.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = services.NewScheduler(ctrl, export.NewExportService(), cfg.Scheduler)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("❌ Failed to start scheduler: %v", err)
		}
	} else {
		log.Println("🕐 Scheduler disabled by configuration")
	}

	// Setup HTTP routes
	router := httphandlers.SetupRoutes(ctrl, wsHub)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Printf("🚀 Starting HTTP server on port %s", cfg.Server.Port)
		log.Println("📡 API endpoints available:")
		log.Println("  GET /api/v1/health - Service and persistence health")
		log.Println("  POST /api/v1/chemistry/validate - Validate a reading set")
		log.Println("  POST /api/v1/chemistry/calculate - Dosage and water balance")
		log.Println("  POST /api/v1/tests - Calculate, persist and broadcast a test")
		log.Println("  GET /api/v1/tests/recent?limit=50 - Recent test history")
		log.Println("  GET /api/v1/tests/{testID} - Single test with readings")
		log.Println("  GET /api/v1/export/report.xlsx - Export history to Excel")
		log.Println("  GET /api/v1/export/report.csv - Export history to CSV")
		log.Println("  WS /ws - WebSocket for real-time updates")
		log.Printf("🌐 Server running at http://localhost:%s", cfg.Server.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server shutdown complete")
}
