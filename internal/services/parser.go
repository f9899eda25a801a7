package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deep-blue-pool/poolchem_backend/internal/models"
)

// ReadingParser handles parsing of pool reading sets from various sources
type ReadingParser struct{}

// NewReadingParser creates a new instance of ReadingParser
func NewReadingParser() *ReadingParser {
	return &ReadingParser{}
}

// ParseReadingJSON parses a JSON reading set as submitted by a probe bridge
// or lab device. pool_type and pool_size must be present; parameter fields
// are optional numeric strings.
func (rp *ReadingParser) ParseReadingJSON(payload []byte) (*models.TestInput, error) {
	var input models.TestInput

	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, fmt.Errorf("failed to parse reading JSON: %w", err)
	}

	if input.PoolType == "" {
		return nil, fmt.Errorf("reading set is missing pool_type")
	}
	if input.PoolSize == "" {
		return nil, fmt.Errorf("reading set is missing pool_size")
	}

	return &input, nil
}

// ParseReadingString parses comma-separated readings (fallback format).
// Expected format: "ph,chlorine,alkalinity,calcium_hardness[,temperature]".
// Pool type and size come from the caller since fixed probes don't report
// them per message.
func (rp *ReadingParser) ParseReadingString(payload, poolType, poolSize string) (*models.TestInput, error) {
	fields := strings.Split(strings.TrimSpace(payload), ",")
	if len(fields) != 4 && len(fields) != 5 {
		return nil, fmt.Errorf("failed to parse reading string: expected 4 or 5 values (ph,chlorine,alkalinity,calcium_hardness[,temperature]), got %d", len(fields))
	}

	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	input := &models.TestInput{
		PoolType:        poolType,
		PoolSize:        poolSize,
		PH:              fields[0],
		Chlorine:        fields[1],
		Alkalinity:      fields[2],
		CalciumHardness: fields[3],
	}
	if len(fields) == 5 {
		input.Temperature = fields[4]
	}

	return input, nil
}

// FormatReading returns a compact log line for a parsed reading set.
func (rp *ReadingParser) FormatReading(input *models.TestInput) string {
	parts := make([]string, 0, len(models.MeasuredParameters))
	for _, param := range models.MeasuredParameters {
		if raw := input.Raw(param); raw != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", param, raw))
		}
	}
	return fmt.Sprintf("pool_type=%s pool_size=%s %s",
		input.PoolType, input.PoolSize, strings.Join(parts, " "))
}
