package serviceImp

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"krishi/entities"
	"krishi/pkg/farmer/repository"
	"krishi/pkg/farmer/service"
)

type farmerSvc struct{ repo repository.FarmerRepository }

func NewFarmerService(repo repository.FarmerRepository) service.FarmerService {
	return &farmerSvc{repo}
}

func (s *farmerSvc) Register(ctx context.Context, in service.Registration) (*entities.Farmer, error) {
	f := &entities.Farmer{
		Name:       strings.TrimSpace(in.Name),
		Phone:      strings.TrimSpace(in.Phone),
		Location:   strings.TrimSpace(in.Location),
		Crop:       strings.TrimSpace(in.Crop),
		SoilType:   strings.TrimSpace(in.SoilType),
		Irrigation: strings.TrimSpace(in.Irrigation),
	}
	required := []struct{ field, v string }{
		{"name", f.Name}, {"phone", f.Phone}, {"location", f.Location}, {"crop", f.Crop},
	}
	for _, r := range required {
		if r.v == "" {
			return nil, fmt.Errorf("%w: %s", service.ErrMissingField, r.field)
		}
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		f.Email = &email
	}
	if ls := strings.TrimSpace(in.LandSize); ls != "" {
		v, err := strconv.ParseFloat(ls, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("land size %q is not a valid number", ls)
		}
		f.LandSize = &v
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *farmerSvc) Login(ctx context.Context, phone string) (*entities.Farmer, error) {
	return s.repo.FindByPhone(ctx, strings.TrimSpace(phone))
}

func (s *farmerSvc) ByEmail(ctx context.Context, email string) (*entities.Farmer, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
