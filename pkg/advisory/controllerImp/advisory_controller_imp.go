package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krishi/pkg/advisory/service"
	"krishi/pkg/middleware"
)

type AdvisoryCtrl struct{ svc service.AdvisoryService }

func New(svc service.AdvisoryService) *AdvisoryCtrl { return &AdvisoryCtrl{svc} }

type advisoryReq struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *AdvisoryCtrl) GetAdvisory(c echo.Context) error {
	var req advisoryReq
	if err := c.Bind(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Location not provided"})
	}
	text := h.svc.Advise(c.Request().Context(), middleware.CurrentFarmer(c), *req.Latitude, *req.Longitude)
	return c.JSON(http.StatusOK, map[string]string{"advisory": text})
}
