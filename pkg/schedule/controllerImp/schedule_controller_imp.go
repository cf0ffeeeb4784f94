package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"krishi/pkg/middleware"
	"krishi/pkg/schedule/service"
)

type FarmCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) *FarmCtrl { return &FarmCtrl{svc} }

// MyFarm records a sowing date on POST and always renders the projected
// calendar for every tracked crop.
func (h *FarmCtrl) MyFarm(c echo.Context) error {
	ctx := c.Request().Context()
	f := middleware.CurrentFarmer(c)
	data := map[string]any{}
	status := http.StatusOK

	if c.Request().Method == http.MethodPost {
		err := h.svc.TrackSowing(ctx, f.Phone, c.FormValue("crop"), c.FormValue("sowing_date"))
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			status = http.StatusBadRequest
			data["Error"] = "Please enter a crop and a valid sowing date."
		case err != nil:
			return err
		}
	}

	schedules, err := h.svc.Schedules(ctx, f.Phone)
	if err != nil {
		return err
	}
	crops, err := h.svc.KnownCrops(ctx)
	if err != nil {
		return err
	}
	data["Schedules"] = schedules
	data["Crops"] = crops
	return c.Render(status, "my_farm.html", data)
}
