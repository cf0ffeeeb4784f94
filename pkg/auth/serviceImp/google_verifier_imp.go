package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"krishi/pkg/auth/service"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com"

type googleVerifier struct {
	client   *resty.Client
	clientID string
}

// NewGoogleVerifier checks ID tokens against Google's tokeninfo endpoint.
// With an empty clientID the audience is not checked.
func NewGoogleVerifier(clientID string) service.GoogleVerifier {
	return newGoogleVerifier(googleTokenInfoURL, clientID)
}

func newGoogleVerifier(baseURL, clientID string) *googleVerifier {
	return &googleVerifier{
		client:   resty.New().SetBaseURL(baseURL).SetTimeout(10 * time.Second),
		clientID: clientID,
	}
}

type tokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

func (v *googleVerifier) Verify(ctx context.Context, idToken string) (service.GoogleIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return service.GoogleIdentity{}, service.ErrInvalidToken
	}
	var info tokenInfo
	resp, err := v.client.R().
		SetContext(ctx).
		SetQueryParam("id_token", idToken).
		SetResult(&info).
		Get("/tokeninfo")
	if err != nil {
		return service.GoogleIdentity{}, fmt.Errorf("tokeninfo: %w", err)
	}
	if resp.IsError() {
		return service.GoogleIdentity{}, service.ErrInvalidToken
	}
	if v.clientID != "" && info.Aud != v.clientID {
		return service.GoogleIdentity{}, fmt.Errorf("%w: audience mismatch", service.ErrInvalidToken)
	}
	if info.Email == "" {
		return service.GoogleIdentity{}, fmt.Errorf("%w: email not found in token", service.ErrInvalidToken)
	}
	return service.GoogleIdentity{Email: strings.ToLower(info.Email), Name: info.Name}, nil
}
