package router

import (
	"github.com/labstack/echo/v4"

	"krishi/pkg/middleware"
	"krishi/web"
)

type AuthHandlers interface {
	Home(echo.Context) error
	LoginPage(echo.Context) error
	Login(echo.Context) error
	RegisterPage(echo.Context) error
	Register(echo.Context) error
	Logout(echo.Context) error
	GoogleAuth(echo.Context) error
	WhoAmI(echo.Context) error
}

type DiagnosisHandlers interface {
	Page(echo.Context) error
	Diagnose(echo.Context) error
}

type QAHandlers interface {
	Page(echo.Context) error
	Ask(echo.Context) error
}

type ActivityHandlers interface {
	List(echo.Context) error
	Export(echo.Context) error
}

type Handlers struct {
	Auth      AuthHandlers
	Diagnosis DiagnosisHandlers
	QA        QAHandlers
	Farm      interface{ MyFarm(echo.Context) error }
	Activity  ActivityHandlers
	Advisory  interface{ GetAdvisory(echo.Context) error }
	Health    interface{ Health(echo.Context) error }
}

func New(e *echo.Echo, sessions middleware.SessionResolver, h Handlers) *echo.Echo {
	e.Use(middleware.Session(sessions))

	e.GET("/health", h.Health.Health)
	e.StaticFS("/static", echo.MustSubFS(web.StaticFS(), "static"))

	e.GET("/login", h.Auth.LoginPage)
	e.POST("/login", h.Auth.Login)
	e.GET("/register", h.Auth.RegisterPage)
	e.POST("/register", h.Auth.Register)
	e.GET("/logout", h.Auth.Logout)
	e.POST("/google_auth", h.Auth.GoogleAuth)

	app := e.Group("", middleware.RequireFarmer())
	app.GET("/", h.Auth.Home)
	app.GET("/whoami", h.Auth.WhoAmI)

	app.GET("/diagnose", h.Diagnosis.Page)
	app.POST("/diagnose", h.Diagnosis.Diagnose)

	app.GET("/ask", h.QA.Page)
	app.POST("/ask", h.QA.Ask)

	app.GET("/my_farm", h.Farm.MyFarm)
	app.POST("/my_farm", h.Farm.MyFarm)

	app.GET("/activity_log", h.Activity.List)
	app.GET("/activity_log/export.xlsx", h.Activity.Export)

	app.POST("/get_advisory", h.Advisory.GetAdvisory)
	return e
}
