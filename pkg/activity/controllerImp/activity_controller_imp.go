package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"krishi/entities"
	"krishi/pkg/activity/repository"
	"krishi/pkg/middleware"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ActivityCtrl struct{ repo repository.ActivityRepository }

func New(repo repository.ActivityRepository) *ActivityCtrl { return &ActivityCtrl{repo} }

func (h *ActivityCtrl) List(c echo.Context) error {
	f := middleware.CurrentFarmer(c)
	rows, err := h.repo.ListByFarmer(c.Request().Context(), f.Phone)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "activity_log.html", map[string]any{"Activities": rows})
}

func (h *ActivityCtrl) Export(c echo.Context) error {
	f := middleware.CurrentFarmer(c)
	rows, err := h.repo.ListByFarmer(c.Request().Context(), f.Phone)
	if err != nil {
		return err
	}
	buf, err := activityWorkbook(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="activity_%s.xlsx"`, f.Phone))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func activityWorkbook(rows []entities.ActivityLogEntry) (*bytes.Buffer, error) {
	x := excelize.NewFile()
	defer x.Close()

	const sheet = "Activities"
	if err := x.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := x.SetSheetRow(sheet, "A1", &[]interface{}{"Timestamp", "Type", "Content", "Response"}); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		vals := []interface{}{r.Timestamp.UTC().Format("2006-01-02 15:04:05"), r.ActivityType, r.Content, r.Response}
		if err := x.SetSheetRow(sheet, cell, &vals); err != nil {
			return nil, err
		}
	}
	return x.WriteToBuffer()
}
