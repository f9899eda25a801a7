package controller

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/deep-blue-pool/poolchem_backend/internal/chemistry"
	"github.com/deep-blue-pool/poolchem_backend/internal/models"
	"github.com/deep-blue-pool/poolchem_backend/internal/store"
)

// defaultTemperature is assumed for water balance evaluation when no
// temperature reading was taken.
const defaultTemperature = 79.0

// savedParameters are the readings persisted by the save path, in order.
var savedParameters = []models.Parameter{
	models.ParamPH,
	models.ParamChlorine,
	models.ParamAlkalinity,
	models.ParamCalciumHardness,
	models.ParamCyanuricAcid,
	models.ParamSalt,
}

// Controller is the single entry point for pool chemistry operations:
// validation, dosage calculation, water balance evaluation and the
// best-effort save path.
type Controller struct {
	store      store.TestStore
	exportFile string
}

// New creates a controller backed by the given store. exportFile is where
// the save path writes its CSV report; empty means "test_report.csv".
func New(testStore store.TestStore, exportFile string) *Controller {
	if exportFile == "" {
		exportFile = "test_report.csv"
	}
	return &Controller{store: testStore, exportFile: exportFile}
}

// ValidatePoolData checks a reading set and returns per-field error
// messages. An empty map means the input is valid. Validation never stops
// at the first failure; every offending field is reported.
func (c *Controller) ValidatePoolData(input *models.TestInput) map[string]string {
	fieldErrors := make(map[string]string)

	if input.PoolType == "" {
		fieldErrors["pool_type"] = "Pool type is required"
	}

	poolSize, err := strconv.ParseFloat(input.PoolSize, 64)
	if err != nil {
		fieldErrors["pool_size"] = "Pool size must be a numeric value"
	} else if poolSize <= 0 {
		fieldErrors["pool_size"] = "Pool size must be greater than zero"
	}

	for _, param := range models.MeasuredParameters {
		raw := input.Raw(param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldErrors[string(param)] = fmt.Sprintf("%s must be a numeric value", param)
			continue
		}
		if err := chemistry.ValidateReading(param, value); err != nil {
			fieldErrors[string(param)] = err.Error()
		}
	}

	return fieldErrors
}

// CalculateChemicals validates the reading set, computes dosage adjustments
// for every measured out-of-band parameter and evaluates the water balance
// when pH, alkalinity and calcium hardness were all measured (temperature
// falls back to 79°F when absent). It refuses to calculate on any field
// error, returning one aggregated error listing all of them.
func (c *Controller) CalculateChemicals(input *models.TestInput) (*models.ChemistryResult, error) {
	if fieldErrors := c.ValidatePoolData(input); len(fieldErrors) > 0 {
		fields := make([]string, 0, len(fieldErrors))
		for field := range fieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		lines := make([]string, 0, len(fields))
		for _, field := range fields {
			lines = append(lines, fmt.Sprintf("%s: %s", field, fieldErrors[field]))
		}
		return nil, fmt.Errorf("validation errors:\n%s", strings.Join(lines, "\n"))
	}

	poolType := models.PoolType(input.PoolType)
	poolSize, _ := strconv.ParseFloat(input.PoolSize, 64)

	ph := parsedOrZero(input, models.ParamPH)
	chlorine := parsedOrZero(input, models.ParamChlorine)
	alkalinity := parsedOrZero(input, models.ParamAlkalinity)
	calcium := parsedOrZero(input, models.ParamCalciumHardness)

	adjustments := chemistry.CalculateAdjustments(poolType, ph, chlorine, alkalinity, calcium, poolSize)

	// An unmeasured parameter must not be dosed as if it read zero.
	for kind := range adjustments {
		if !input.Has(kind.Parameter()) {
			delete(adjustments, kind)
		}
	}

	result := &models.ChemistryResult{
		Adjustments: adjustments,
		IdealRanges: idealRanges(poolType),
	}

	if input.Has(models.ParamPH) && input.Has(models.ParamAlkalinity) && input.Has(models.ParamCalciumHardness) {
		temperature := defaultTemperature
		if input.Has(models.ParamTemperature) {
			temperature = parsedOrZero(input, models.ParamTemperature)
		}
		balance := chemistry.EvaluateWaterBalance(ph, alkalinity, calcium, temperature)
		result.WaterBalance = &balance
	}

	log.Printf("🧪 Calculated chemicals for %s pool (%d adjustments)", input.PoolType, len(adjustments))
	return result, nil
}

func parsedOrZero(input *models.TestInput, param models.Parameter) float64 {
	value, err := strconv.ParseFloat(input.Raw(param), 64)
	if err != nil {
		return 0
	}
	return value
}

func idealRanges(poolType models.PoolType) map[models.Parameter]models.Range {
	ranges := make(map[models.Parameter]models.Range, 4)
	for _, param := range []models.Parameter{
		models.ParamPH,
		models.ParamChlorine,
		models.ParamAlkalinity,
		models.ParamCalciumHardness,
	} {
		if r, ok := chemistry.IdealRange(param, poolType); ok {
			ranges[param] = r
		}
	}
	return ranges
}

// SaveTestResults persists a reading set: one test record, then one reading
// and one recommendation per measured parameter, then a CSV export. Each
// per-parameter insert is best-effort: a failure is logged and skipped.
// Returns the new test id, or 0 without error when persistence is
// unavailable.
func (c *Controller) SaveTestResults(input *models.TestInput) (int64, error) {
	location := input.Location
	if location == "" {
		location = "Unknown"
	}

	testID, err := c.store.InsertTest(location)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			log.Printf("⚠️  Warning: results not saved, persistence unavailable")
			return 0, nil
		}
		return 0, fmt.Errorf("storage error: %w", err)
	}

	for _, param := range savedParameters {
		raw := input.Raw(param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("⚠️  Warning: skipping invalid %s value %q: %v", param, raw, err)
			continue
		}

		name := param.DisplayName()
		if err := c.store.InsertTestResult(testID, name, value, param.Unit()); err != nil {
			log.Printf("⚠️  Warning: failed to insert %s result: %v", name, err)
			continue
		}

		recommendation := Recommend(name, value)
		if err := c.store.InsertRecommendation(testID, name, value, recommendation); err != nil {
			log.Printf("⚠️  Warning: failed to insert %s recommendation: %v", name, err)
		}
	}

	if err := c.store.ExportToCSV(testID, c.exportFile); err != nil {
		log.Printf("⚠️  Warning: failed to export test %d to CSV: %v", testID, err)
	}

	log.Printf("💾 Test results saved with ID %d", testID)
	return testID, nil
}

// BuildReports assembles full reports (test record, readings,
// recommendations) for the most recent tests. limit <= 0 means the store
// default of 50.
func (c *Controller) BuildReports(limit int) ([]models.TestReport, error) {
	tests, err := c.store.GetRecentTests(limit)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage error: %w", err)
	}

	reports := make([]models.TestReport, 0, len(tests))
	for _, test := range tests {
		results, err := c.store.GetTestResults(test.ID)
		if err != nil {
			return nil, fmt.Errorf("storage error: %w", err)
		}
		recommendations, err := c.store.GetRecommendations(test.ID)
		if err != nil {
			return nil, fmt.Errorf("storage error: %w", err)
		}
		reports = append(reports, models.TestReport{
			Test:            test,
			Results:         results,
			Recommendations: recommendations,
		})
	}

	return reports, nil
}

// CheckDatabaseHealth reports whether the persistence service answers a ping.
func (c *Controller) CheckDatabaseHealth() bool {
	if err := c.store.Ping(); err != nil {
		log.Printf("❌ Database health check failed: %v", err)
		return false
	}
	return true
}

// RunDatabaseMigrations applies the schema migrations, reporting success.
func (c *Controller) RunDatabaseMigrations() bool {
	if err := c.store.RunMigrations(); err != nil {
		log.Printf("❌ Database migrations failed: %v", err)
		return false
	}
	log.Println("✅ Database migrations completed")
	return true
}

// Store exposes the controller's backing store for read-side consumers
// (HTTP handlers, exports).
func (c *Controller) Store() store.TestStore {
	return c.store
}
