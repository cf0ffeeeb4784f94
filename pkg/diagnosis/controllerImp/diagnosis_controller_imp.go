package controllerImp

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"krishi/pkg/diagnosis/service"
	"krishi/pkg/middleware"
)

const maxImageBytes = 10 << 20

type DiagnosisCtrl struct{ svc service.DiagnosisService }

func New(svc service.DiagnosisService) *DiagnosisCtrl { return &DiagnosisCtrl{svc} }

func (h *DiagnosisCtrl) Page(c echo.Context) error {
	return c.Render(http.StatusOK, "diagnose.html", map[string]any{})
}

func (h *DiagnosisCtrl) Diagnose(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil || fh.Filename == "" {
		return c.Render(http.StatusBadRequest, "diagnose.html", map[string]any{"Prediction": "No image selected."})
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	img, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return err
	}
	if len(img) > maxImageBytes {
		return c.Render(http.StatusRequestEntityTooLarge, "diagnose.html",
			map[string]any{"Prediction": "Image too large. Please upload a picture under 10 MB."})
	}

	f := middleware.CurrentFarmer(c)
	res, err := h.svc.Diagnose(c.Request().Context(), f.Phone, img, fh.Filename)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "diagnose.html", map[string]any{
		"Prediction": res.Prediction,
		"Care":       res.Care,
	})
}
