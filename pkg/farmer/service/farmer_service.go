package service

import (
	"context"
	"errors"

	"krishi/entities"
)

var ErrMissingField = errors.New("required field missing")

// Registration is the sign-up form. LandSize stays a string so the form can
// be re-rendered exactly as submitted.
type Registration struct {
	Name       string
	Phone      string
	Email      string
	Location   string
	Crop       string
	LandSize   string
	SoilType   string
	Irrigation string
}

type FarmerService interface {
	Register(ctx context.Context, in Registration) (*entities.Farmer, error)
	Login(ctx context.Context, phone string) (*entities.Farmer, error)
	ByEmail(ctx context.Context, email string) (*entities.Farmer, error)
}
