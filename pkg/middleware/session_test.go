package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"krishi/entities"
)

type fakeResolver map[string]*entities.Farmer

func (f fakeResolver) Resolve(_ context.Context, token string) (*entities.Farmer, error) {
	if v, ok := f[token]; ok {
		return v, nil
	}
	return nil, errors.New("no session")
}

func newEcho(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.Use(RequestLogger(log))
	e.Use(Session(fakeResolver{"tok-1": {Name: "Anu", Phone: "9000"}}))
	e.GET("/whoami", func(c echo.Context) error {
		if f := CurrentFarmer(c); f != nil {
			return c.String(http.StatusOK, f.Name)
		}
		return c.String(http.StatusOK, "anonymous")
	})
	e.GET("/private", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, RequireFarmer())
	return e
}

func do(e *echo.Echo, path, cookie string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSession_ResolvesCookie(t *testing.T) {
	e := newEcho(zap.NewNop())

	assert.Equal(t, "Anu", do(e, "/whoami", "tok-1", nil).Body.String())
	assert.Equal(t, "anonymous", do(e, "/whoami", "", nil).Body.String())

	rec := do(e, "/whoami", "stale", nil)
	assert.Equal(t, "anonymous", rec.Body.String())
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestRequireFarmer(t *testing.T) {
	e := newEcho(zap.NewNop())

	rec := do(e, "/private", "", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	rec = do(e, "/private", "", map[string]string{echo.HeaderAccept: echo.MIMEApplicationJSON})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"login required"}`, rec.Body.String())

	rec = do(e, "/private", "tok-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger_IncludesFarmer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := newEcho(zap.New(core))

	do(e, "/whoami", "tok-1", nil)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/whoami", fields["uri"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "9000", fields["farmer_phone"])
}
