package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// ExportService handles data export functionality
type ExportService struct{}

// NewExportService creates a new export service instance
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportData represents data to be exported
type ExportData struct {
	Reports  []models.TestReport
	Metadata ExportMetadata
}

// ExportMetadata contains information about the export
type ExportMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	TotalTests  int       `json:"total_tests"`
}

// GenerateExcel creates an Excel workbook with pool test history
func (es *ExportService) GenerateExcel(data ExportData) (*excelize.File, error) {
	f := excelize.NewFile()

	es.createSummarySheet(f, data)
	es.createResultsSheet(f, data.Reports)
	es.createRecommendationsSheet(f, data.Reports)

	// Set active sheet to Summary
	f.SetActiveSheet(0)

	return f, nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	return style
}

// createSummarySheet creates the summary overview sheet
func (es *ExportService) createSummarySheet(f *excelize.File, data ExportData) {
	sheetName := "Summary"
	f.SetSheetName("Sheet1", sheetName)

	style := headerStyle(f)

	f.SetCellValue(sheetName, "A1", "Pool Chemistry Test Report")
	f.MergeCell(sheetName, "A1", "C1")
	f.SetCellStyle(sheetName, "A1", "C1", style)
	f.SetRowHeight(sheetName, 1, 25)

	f.SetCellValue(sheetName, "A3", "Generated At:")
	f.SetCellValue(sheetName, "B3", data.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"))
	f.SetCellValue(sheetName, "A4", "Total Tests:")
	f.SetCellValue(sheetName, "B4", data.Metadata.TotalTests)

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "C", 22)
}

// createResultsSheet creates the test readings sheet
func (es *ExportService) createResultsSheet(f *excelize.File, reports []models.TestReport) {
	sheetName := "Test Results"
	f.NewSheet(sheetName)

	headers := []string{"Test ID", "Test Date", "Location", "Parameter", "Value", "Unit"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", "F1", headerStyle(f))

	row := 2
	for _, report := range reports {
		for _, result := range report.Results {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), report.Test.ID)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), report.Test.TestDate.Format("2006-01-02 15:04:05"))
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), report.Test.Location)
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), result.Parameter)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), result.Value)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), result.Unit)
			row++
		}
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "C", 22)
	f.SetColWidth(sheetName, "D", "F", 18)
}

// createRecommendationsSheet creates the recommendations sheet
func (es *ExportService) createRecommendationsSheet(f *excelize.File, reports []models.TestReport) {
	sheetName := "Recommendations"
	f.NewSheet(sheetName)

	headers := []string{"Test ID", "Parameter", "Value", "Recommendation"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", "D1", headerStyle(f))

	row := 2
	for _, report := range reports {
		for _, rec := range report.Recommendations {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), report.Test.ID)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), rec.Parameter)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), rec.Value)
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), rec.Recommendation)
			row++
		}
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "C", 18)
	f.SetColWidth(sheetName, "D", "D", 60)
}

// WriteCSV streams the report history as CSV.
func (es *ExportService) WriteCSV(w io.Writer, reports []models.TestReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Test ID", "Test Date", "Location", "Parameter", "Value", "Unit", "Recommendation"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, report := range reports {
		recByParam := make(map[string]string, len(report.Recommendations))
		for _, rec := range report.Recommendations {
			recByParam[rec.Parameter] = rec.Recommendation
		}
		for _, result := range report.Results {
			recommendation := recByParam[result.Parameter]
			if recommendation == "" {
				recommendation = "No recommendation"
			}
			row := []string{
				strconv.FormatInt(report.Test.ID, 10),
				report.Test.TestDate.Format("2006-01-02 15:04:05"),
				report.Test.Location,
				result.Parameter,
				strconv.FormatFloat(result.Value, 'g', -1, 64),
				result.Unit,
				recommendation,
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	return writer.Error()
}
