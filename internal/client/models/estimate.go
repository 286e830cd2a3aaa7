package models

import (
	"fmt"
	"io"
	"slices"

	"github.com/dmitrijs2005/costestimator/internal/common"
)

// Cities accepted by the estimation engine.
var Cities = []string{"Chennai", "Bengaluru", "Coimbatore", "Mumbai", "Delhi", "Hyderabad", "Ahmedabad"}

// Qualities accepted by the estimation engine.
var Qualities = []string{"basic", "standard", "premium"}

const (
	DefaultCity        = "Chennai"
	DefaultQuality     = "standard"
	DefaultFloors      = 2
	DefaultCarpetRatio = 0.72
)

// EstimateInput holds the project parameters submitted to POST /data/estimate.
//
// AreaSqft, Rooms and WallLength are manual overrides; nil means "derive from
// the blueprint or use the engine default". Blueprint is an optional image
// streamed as a multipart file part named "blueprint".
type EstimateInput struct {
	City         string
	Quality      string
	Floors       int
	CarpetRatio  float64
	IsCommercial bool

	AreaSqft   *float64
	Rooms      *int
	WallLength *float64

	Blueprint     io.Reader
	BlueprintName string
}

// NewEstimateInput returns an input pre-filled with the form defaults.
func NewEstimateInput() *EstimateInput {
	return &EstimateInput{
		City:        DefaultCity,
		Quality:     DefaultQuality,
		Floors:      DefaultFloors,
		CarpetRatio: DefaultCarpetRatio,
	}
}

// Validate rejects values the engine cannot price. Errors wrap
// common.ErrInvalidInput.
func (in *EstimateInput) Validate() error {
	if !slices.Contains(Cities, in.City) {
		return fmt.Errorf("%w: unknown city %q", common.ErrInvalidInput, in.City)
	}
	if !slices.Contains(Qualities, in.Quality) {
		return fmt.Errorf("%w: unknown quality %q", common.ErrInvalidInput, in.Quality)
	}
	if in.Floors < 1 {
		return fmt.Errorf("%w: floors must be at least 1", common.ErrInvalidInput)
	}
	if in.CarpetRatio <= 0 || in.CarpetRatio > 1 {
		return fmt.Errorf("%w: carpet ratio must be in (0, 1]", common.ErrInvalidInput)
	}
	if in.AreaSqft != nil && *in.AreaSqft <= 0 {
		return fmt.Errorf("%w: area must be positive", common.ErrInvalidInput)
	}
	if in.Rooms != nil && *in.Rooms < 1 {
		return fmt.Errorf("%w: rooms must be at least 1", common.ErrInvalidInput)
	}
	if in.WallLength != nil && *in.WallLength <= 0 {
		return fmt.Errorf("%w: wall length must be positive", common.ErrInvalidInput)
	}
	return nil
}

// EstimateResult is the response of POST /data/estimate.
type EstimateResult struct {
	ID            int64              `json:"id"`
	TotalCost     float64            `json:"total_cost"`
	Predicted2026 float64            `json:"predicted_2026"`
	Quantities    map[string]int     `json:"quantities"`
	Breakdown     map[string]float64 `json:"breakdown"`
	PDFGenerated  bool               `json:"pdf_generated"`
}

// EstimationSummary is one row of the dashboard history.
type EstimationSummary struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	City          string  `json:"city"`
	TotalCost     float64 `json:"total_cost"`
	Predicted2026 float64 `json:"predicted_2026"`
}

// Dashboard is the response of GET /data/dashboard.
type Dashboard struct {
	Estimations []EstimationSummary `json:"estimations"`
	TotalValue  float64             `json:"total_value"`
	Count       int                 `json:"count"`
}

// Result is the response of GET /data/result/{id}.
type Result struct {
	Inputs        map[string]any     `json:"inputs"`
	Quantities    map[string]float64 `json:"quantities"`
	Breakdown     map[string]float64 `json:"breakdown"`
	TotalCost     float64            `json:"total_cost"`
	Predicted2026 float64            `json:"predicted_2026"`
	Date          string             `json:"date"`
}
