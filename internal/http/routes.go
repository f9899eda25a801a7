package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/deep-blue-pool/poolchem_backend/internal/controller"
	"github.com/deep-blue-pool/poolchem_backend/internal/ws"
)

// SetupRoutes configures all HTTP routes for the pool chemistry API
func SetupRoutes(ctrl *controller.Controller, wsHub *ws.Hub) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, specify allowed origins
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers := NewHandlers(ctrl, wsHub)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handlers.GetHealth)

		// Chemistry engine routes (stateless, nothing persisted)
		r.Route("/chemistry", func(r chi.Router) {
			r.Post("/validate", handlers.ValidatePoolData)
			r.Post("/calculate", handlers.CalculateChemicals)
		})

		// Pool test routes
		r.Route("/tests", func(r chi.Router) {
			r.Post("/", handlers.SaveTest)            // Calculate, persist and broadcast
			r.Get("/recent", handlers.GetRecentTests) // Recent test history
			r.Get("/{testID}", handlers.GetTest)      // Single test with readings
		})

		// Export routes for test history
		r.Route("/export", func(r chi.Router) {
			r.Get("/report.xlsx", handlers.ExportReportExcel)
			r.Get("/report.csv", handlers.ExportReportCSV)
		})
	})

	// WebSocket route for real-time updates
	r.HandleFunc("/ws", wsHub.HandleWebSocket)

	return r
}
