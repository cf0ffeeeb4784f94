package service

import "context"

const (
	SourceRemote  = "remote"
	SourceOffline = "offline"
)

type Result struct {
	Prediction string
	Care       string
	Source     string
}

type DiagnosisService interface {
	Diagnose(ctx context.Context, farmerPhone string, image []byte, filename string) (*Result, error)
}
