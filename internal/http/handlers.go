package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deep-blue-pool/poolchem_backend/internal/controller"
	"github.com/deep-blue-pool/poolchem_backend/internal/export"
	"github.com/deep-blue-pool/poolchem_backend/internal/models"
	"github.com/deep-blue-pool/poolchem_backend/internal/ws"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	controller    *controller.Controller
	exportService *export.ExportService
	wsHub         *ws.Hub
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *controller.Controller, wsHub *ws.Hub) *Handlers {
	return &Handlers{
		controller:    ctrl,
		exportService: export.NewExportService(),
		wsHub:         wsHub,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ValidationResponse carries the per-field validation outcome
type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// ValidatePoolData handles POST requests to validate a reading set without
// calculating anything
func (h *Handlers) ValidatePoolData(w http.ResponseWriter, r *http.Request) {
	var input models.TestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fieldErrors := h.controller.ValidatePoolData(&input)

	response := APIResponse{
		Success: true,
		Data: ValidationResponse{
			Valid:  len(fieldErrors) == 0,
			Errors: fieldErrors,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// CalculateChemicals handles POST requests to compute dosage adjustments and
// water balance for a reading set
func (h *Handlers) CalculateChemicals(w http.ResponseWriter, r *http.Request) {
	var input models.TestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.controller.CalculateChemicals(&input)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	response := APIResponse{
		Success: true,
		Data:    result,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SaveTest handles POST requests to calculate and persist a pool test. The
// saved test is broadcast to WebSocket clients.
func (h *Handlers) SaveTest(w http.ResponseWriter, r *http.Request) {
	var input models.TestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.controller.CalculateChemicals(&input)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	testID, err := h.controller.SaveTestResults(&input)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	location := input.Location
	if location == "" {
		location = "Unknown"
	}

	if h.wsHub != nil {
		h.wsHub.BroadcastTestSaved(&ws.TestSavedEvent{
			TestID:       testID,
			Location:     location,
			Adjustments:  result.Adjustments,
			WaterBalance: result.WaterBalance,
		})
	}

	message := "Test results saved"
	if testID == 0 {
		message = "Persistence unavailable, results not saved"
	}

	response := APIResponse{
		Success: true,
		Message: message,
		Data: map[string]interface{}{
			"test_id": testID,
			"result":  result,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetRecentTests returns the most recent pool tests with their readings and
// recommendations
func (h *Handlers) GetRecentTests(w http.ResponseWriter, r *http.Request) {
	limit := 50 // Default limit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	reports, err := h.controller.BuildReports(limit)
	if err != nil {
		h.sendErrorResponse(w, "Failed to load test history", http.StatusInternalServerError)
		return
	}

	response := APIResponse{
		Success: true,
		Data:    reports,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetTest returns one pool test with its readings and recommendations
func (h *Handlers) GetTest(w http.ResponseWriter, r *http.Request) {
	testID, err := strconv.ParseInt(chi.URLParam(r, "testID"), 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "Invalid test ID", http.StatusBadRequest)
		return
	}

	testStore := h.controller.Store()

	test, err := testStore.GetTest(testID)
	if err != nil {
		h.sendErrorResponse(w, "Test not found", http.StatusNotFound)
		return
	}

	results, err := testStore.GetTestResults(testID)
	if err != nil {
		h.sendErrorResponse(w, "Failed to load test results", http.StatusInternalServerError)
		return
	}

	recommendations, err := testStore.GetRecommendations(testID)
	if err != nil {
		h.sendErrorResponse(w, "Failed to load recommendations", http.StatusInternalServerError)
		return
	}

	response := APIResponse{
		Success: true,
		Data: models.TestReport{
			Test:            *test,
			Results:         results,
			Recommendations: recommendations,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ExportReportExcel handles GET requests to export the test history as an
// Excel workbook
func (h *Handlers) ExportReportExcel(w http.ResponseWriter, r *http.Request) {
	reports, err := h.controller.BuildReports(h.exportLimit(r))
	if err != nil {
		h.sendErrorResponse(w, "Failed to load test history", http.StatusInternalServerError)
		return
	}

	exportData := export.ExportData{
		Reports: reports,
		Metadata: export.ExportMetadata{
			GeneratedAt: time.Now(),
			TotalTests:  len(reports),
		},
	}

	excelFile, err := h.exportService.GenerateExcel(exportData)
	if err != nil {
		h.sendErrorResponse(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	defer excelFile.Close()

	filename := fmt.Sprintf("pool_report_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	if err := excelFile.Write(w); err != nil {
		h.sendErrorResponse(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}
}

// ExportReportCSV handles GET requests to export the test history as CSV
func (h *Handlers) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	reports, err := h.controller.BuildReports(h.exportLimit(r))
	if err != nil {
		h.sendErrorResponse(w, "Failed to load test history", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("pool_report_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	if err := h.exportService.WriteCSV(w, reports); err != nil {
		h.sendErrorResponse(w, "Failed to write CSV data", http.StatusInternalServerError)
		return
	}
}

// GetHealth returns service and persistence health
func (h *Handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthy := h.controller.CheckDatabaseHealth()

	status := "ok"
	if !dbHealthy {
		status = "degraded"
	}

	response := APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    status,
			"database":  dbHealthy,
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// exportLimit reads the optional limit query parameter for export endpoints
func (h *Handlers) exportLimit(r *http.Request) int {
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			return parsedLimit
		}
	}
	return 0
}

// sendErrorResponse sends a standardized error response
func (h *Handlers) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
