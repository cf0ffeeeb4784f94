package ai

import "context"

type disabledClient struct{}

// NewDisabled is used when no provider is configured.
func NewDisabled() Client { return disabledClient{} }

func (disabledClient) Generate(context.Context, string, *Image) (string, error) {
	return "", ErrNotConfigured
}

func (disabledClient) Configured() bool { return false }
