package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/costestimator/internal/client/client"
	"github.com/dmitrijs2005/costestimator/internal/client/models"
)

// blueprintField is the multipart part name the backend reads the image from.
const blueprintField = "blueprint"

// EstimateService covers the /data endpoints.
type EstimateService struct {
	r client.Requester
}

func NewEstimateService(r client.Requester) *EstimateService {
	return &EstimateService{r: r}
}

// Submit validates in and posts it as multipart form data. Unset overrides
// are omitted so the engine falls back to blueprint extraction or defaults.
func (s *EstimateService) Submit(ctx context.Context, in *models.EstimateInput) (*models.EstimateResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var res models.EstimateResult
	if err := s.r.Do(ctx, client.PostForm("/data/estimate", estimateForm(in)), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func estimateForm(in *models.EstimateInput) *client.Form {
	f := &client.Form{}
	f.Add("city", in.City)
	f.Add("quality", in.Quality)
	f.Add("floors", strconv.Itoa(in.Floors))
	f.Add("carpet_ratio", strconv.FormatFloat(in.CarpetRatio, 'f', -1, 64))
	f.Add("is_commercial", strconv.FormatBool(in.IsCommercial))

	if in.AreaSqft != nil {
		f.Add("area_sqft", strconv.FormatFloat(*in.AreaSqft, 'f', -1, 64))
	}
	if in.Rooms != nil {
		f.Add("rooms", strconv.Itoa(*in.Rooms))
	}
	if in.WallLength != nil {
		f.Add("wall_length", strconv.FormatFloat(*in.WallLength, 'f', -1, 64))
	}

	if in.Blueprint != nil {
		name := in.BlueprintName
		if name == "" {
			name = "blueprint"
		}
		f.AddFile(blueprintField, name, in.Blueprint)
	}
	return f
}

// Dashboard returns the caller's estimation history and totals.
func (s *EstimateService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	if err := s.r.Do(ctx, client.Get("/data/dashboard"), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Result returns one stored estimation.
func (s *EstimateService) Result(ctx context.Context, id int64) (*models.Result, error) {
	var res models.Result
	if err := s.r.Do(ctx, client.Get(fmt.Sprintf("/data/result/%d", id)), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
