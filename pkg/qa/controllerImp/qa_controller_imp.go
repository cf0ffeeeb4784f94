package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krishi/pkg/middleware"
	"krishi/pkg/qa/service"
)

type QACtrl struct{ svc service.QAService }

func New(svc service.QAService) *QACtrl { return &QACtrl{svc} }

func (h *QACtrl) Page(c echo.Context) error {
	return c.Render(http.StatusOK, "ask.html", map[string]any{})
}

func (h *QACtrl) Ask(c echo.Context) error {
	q := c.FormValue("question")
	answer := h.svc.Answer(c.Request().Context(), middleware.CurrentFarmer(c), q)
	return c.Render(http.StatusOK, "ask.html", map[string]any{"Question": q, "Answer": answer})
}
