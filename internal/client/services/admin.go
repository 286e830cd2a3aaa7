package services

import (
	"context"

	"github.com/dmitrijs2005/costestimator/internal/client/client"
	"github.com/dmitrijs2005/costestimator/internal/client/models"
)

// AdminService covers the /admin endpoints. The backend answers 403
// (client.ErrForbidden) for non-administrators.
type AdminService struct {
	r client.Requester
}

func NewAdminService(r client.Requester) *AdminService {
	return &AdminService{r: r}
}

func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	var st models.AdminStats
	if err := s.r.Do(ctx, client.Get("/admin/stats"), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.r.Do(ctx, client.Get("/admin/users"), &users); err != nil {
		return nil, err
	}
	return users, nil
}
