package controllerImp

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishi/entities"
	"krishi/pkg/diagnosis/service"
	"krishi/pkg/middleware"
	"krishi/web"
)

type stubSvc struct {
	gotName, gotPhone string
	gotLen            int
	called            bool
}

func (s *stubSvc) Diagnose(_ context.Context, phone string, img []byte, filename string) (*service.Result, error) {
	s.gotName, s.gotPhone, s.gotLen, s.called = filename, phone, len(img), true
	return &service.Result{Prediction: "Diagnosis: Banana - Sigatoka (Medium)", Care: "- Remove infected leaves"}, nil
}

func newEcho(t *testing.T, svc service.DiagnosisService) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := web.NewRenderer()
	require.NoError(t, err)
	e.Renderer = r
	ctrl := New(svc)
	asFarmer := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetFarmer(c, &entities.Farmer{Name: "Anu", Phone: "9000"})
			return next(c)
		}
	}
	e.GET("/diagnose", ctrl.Page, asFarmer)
	e.POST("/diagnose", ctrl.Diagnose, asFarmer)
	return e
}

func upload(t *testing.T, e *echo.Echo, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/diagnose", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDiagnose_Upload(t *testing.T) {
	svc := &stubSvc{}
	e := newEcho(t, svc)

	rec := upload(t, e, "banana.jpg", []byte{0xff, 0xd8, 0xff})

	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "Diagnosis: Banana - Sigatoka (Medium)", doc.Find("#prediction").Text())
	assert.Equal(t, "- Remove infected leaves", doc.Find("#care").Text())
	assert.Equal(t, "banana.jpg", svc.gotName)
	assert.Equal(t, "9000", svc.gotPhone)
}

func TestDiagnose_NoImage(t *testing.T) {
	e := newEcho(t, &stubSvc{})
	req := httptest.NewRequest(http.MethodPost, "/diagnose", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "No image selected.", doc.Find("#prediction").Text())
	assert.Zero(t, doc.Find("#care").Length())
}

func TestDiagnose_TooLarge(t *testing.T) {
	svc := &stubSvc{}
	e := newEcho(t, svc)

	rec := upload(t, e, "huge.jpg", make([]byte, maxImageBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.Find("#prediction").Text(), "Image too large")
	assert.False(t, svc.called)

	rec = upload(t, e, "edge.jpg", make([]byte, maxImageBytes))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, maxImageBytes, svc.gotLen)
}
