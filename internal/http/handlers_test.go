package http

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/deep-blue-pool/poolchem_backend/internal/controller"
	"github.com/deep-blue-pool/poolchem_backend/internal/store"
	"github.com/deep-blue-pool/poolchem_backend/internal/ws"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	memStore := store.NewMemoryStore(100)
	exportFile := filepath.Join(t.TempDir(), "test_report.csv")
	ctrl := controller.New(memStore, exportFile)

	wsHub := ws.NewHub()
	go wsHub.Run()

	return SetupRoutes(ctrl, wsHub)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var response APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v\nBody: %s", err, rec.Body.String())
	}
	return response
}

func TestValidateEndpoint_Valid(t *testing.T) {
	router := newTestRouter(t)

	body := `{"pool_type": "Concrete/Gunite", "pool_size": "20000", "ph": "7.4"}`
	req := httptest.NewRequest("POST", "/api/v1/chemistry/validate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	response := decodeResponse(t, rec)
	if !response.Success {
		t.Errorf("Expected success, got: %s", response.Error)
	}

	data := response.Data.(map[string]interface{})
	if data["valid"] != true {
		t.Errorf("Expected valid input, got: %v", data)
	}
}

func TestValidateEndpoint_FieldErrors(t *testing.T) {
	router := newTestRouter(t)

	body := `{"pool_size": "0", "ph": "9.5"}`
	req := httptest.NewRequest("POST", "/api/v1/chemistry/validate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	response := decodeResponse(t, rec)
	data := response.Data.(map[string]interface{})
	if data["valid"] != false {
		t.Fatalf("Expected invalid input, got: %v", data)
	}

	errs := data["errors"].(map[string]interface{})
	if len(errs) != 3 {
		t.Errorf("Expected 3 field errors (pool_type, pool_size, ph), got: %v", errs)
	}
}

func TestCalculateEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"pool_type": "Concrete/Gunite",
		"pool_size": "20000",
		"ph": "6.8",
		"chlorine": "0.5",
		"alkalinity": "60",
		"calcium_hardness": "150"
	}`
	req := httptest.NewRequest("POST", "/api/v1/chemistry/calculate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	response := decodeResponse(t, rec)
	data := response.Data.(map[string]interface{})

	adjustments := data["adjustments"].(map[string]interface{})
	if len(adjustments) != 4 {
		t.Errorf("Expected 4 adjustments, got: %v", adjustments)
	}
	if _, ok := adjustments["ph_increaser"]; !ok {
		t.Errorf("Expected ph_increaser entry, got: %v", adjustments)
	}

	if data["water_balance"] == nil {
		t.Error("Expected water balance in response")
	}
}

func TestCalculateEndpoint_ValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	body := `{"pool_type": "Concrete/Gunite", "pool_size": "20000", "ph": "12"}`
	req := httptest.NewRequest("POST", "/api/v1/chemistry/calculate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	response := decodeResponse(t, rec)
	if response.Success {
		t.Error("Expected failure response")
	}
	if response.Error == "" {
		t.Error("Expected error message")
	}
}

func TestCalculateEndpoint_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/chemistry/calculate", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestSaveTestEndpoint_AndFetch(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"location": "Backyard",
		"pool_type": "Concrete/Gunite",
		"pool_size": "20000",
		"ph": "6.8",
		"chlorine": "0.5"
	}`
	req := httptest.NewRequest("POST", "/api/v1/tests/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	response := decodeResponse(t, rec)
	data := response.Data.(map[string]interface{})
	testID := int64(data["test_id"].(float64))
	if testID == 0 {
		t.Fatal("Expected a non-zero test id")
	}

	// Fetch the saved test back
	req = httptest.NewRequest("GET", "/api/v1/tests/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	response = decodeResponse(t, rec)
	report := response.Data.(map[string]interface{})
	test := report["test"].(map[string]interface{})
	if test["location_name"] != "Backyard" {
		t.Errorf("Expected location 'Backyard', got: %v", test)
	}
	results := report["results"].([]interface{})
	if len(results) != 2 {
		t.Errorf("Expected 2 saved readings, got %d", len(results))
	}
	recommendations := report["recommendations"].([]interface{})
	if len(recommendations) != 2 {
		t.Errorf("Expected 2 recommendations, got %d", len(recommendations))
	}
}

func TestSaveTestEndpoint_RejectsInvalidInput(t *testing.T) {
	router := newTestRouter(t)

	body := `{"pool_type": "Concrete/Gunite", "pool_size": "0"}`
	req := httptest.NewRequest("POST", "/api/v1/tests/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetTestEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/tests/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestGetTestEndpoint_BadID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/tests/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestRecentTestsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{"pool_type": "Vinyl", "pool_size": "15000", "ph": "7.4"}`
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/v1/tests/", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("Save %d failed with %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest("GET", "/api/v1/tests/recent?limit=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	response := decodeResponse(t, rec)
	reports := response.Data.([]interface{})
	if len(reports) != 2 {
		t.Errorf("Expected 2 reports with limit=2, got %d", len(reports))
	}
}

func TestExportCSVEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{"pool_type": "Vinyl", "pool_size": "15000", "ph": "6.9", "chlorine": "2.0"}`
	req := httptest.NewRequest("POST", "/api/v1/tests/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Save failed with %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/v1/export/report.csv", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected text/csv content type, got '%s'", ct)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV body: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Test ID" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
}

func TestExportExcelEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/export/report.xlsx", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type: '%s'", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected a non-empty workbook body")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	data := response.Data.(map[string]interface{})
	if data["status"] != "ok" {
		t.Errorf("Expected status ok with in-memory store, got: %v", data)
	}
	if data["database"] != true {
		t.Errorf("Expected healthy database flag, got: %v", data)
	}
}
