package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"krishi/pkg/auth/controller"
	"krishi/pkg/auth/service"
	"krishi/pkg/farmer"
	farmerSvc "krishi/pkg/farmer/service"
	"krishi/pkg/middleware"
)

const (
	msgPhoneNotFound = "Phone number not found."
	msgDuplicate     = "This phone number or email is already registered."
)

// CropLister supplies crop names for the registration form.
type CropLister interface {
	KnownCrops(ctx context.Context) ([]string, error)
}

type Options struct {
	CookieSecure   bool
	GoogleClientID string
}

type authCtrl struct {
	farmers  farmerSvc.FarmerService
	sessions service.SessionService
	google   service.GoogleVerifier
	crops    CropLister
	opts     Options
	log      *zap.Logger
}

func NewAuthController(farmers farmerSvc.FarmerService, sessions service.SessionService, google service.GoogleVerifier,
	crops CropLister, opts Options, log *zap.Logger) controller.AuthController {
	return &authCtrl{farmers: farmers, sessions: sessions, google: google, crops: crops, opts: opts, log: log}
}

func (h *authCtrl) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]any{})
}

func (h *authCtrl) LoginPage(c echo.Context) error {
	if middleware.CurrentFarmer(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return h.renderLogin(c, http.StatusOK, "", "")
}

func (h *authCtrl) Login(c echo.Context) error {
	phone := c.FormValue("phone")
	f, err := h.farmers.Login(c.Request().Context(), phone)
	if errors.Is(err, farmer.ErrNotFound) {
		return h.renderLogin(c, http.StatusUnauthorized, phone, msgPhoneNotFound)
	}
	if err != nil {
		return err
	}
	if err := h.startSession(c, f.Phone); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *authCtrl) RegisterPage(c echo.Context) error {
	form := farmerSvc.Registration{Email: c.QueryParam("email"), Name: c.QueryParam("name")}
	return h.renderRegister(c, http.StatusOK, form, "")
}

func (h *authCtrl) Register(c echo.Context) error {
	form := farmerSvc.Registration{
		Name:       c.FormValue("name"),
		Phone:      c.FormValue("phone"),
		Email:      c.FormValue("email"),
		Location:   c.FormValue("location"),
		Crop:       c.FormValue("crop"),
		LandSize:   c.FormValue("land_size"),
		SoilType:   c.FormValue("soil_type"),
		Irrigation: c.FormValue("irrigation"),
	}
	_, err := h.farmers.Register(c.Request().Context(), form)
	switch {
	case errors.Is(err, farmer.ErrDuplicate):
		return h.renderRegister(c, http.StatusConflict, form, msgDuplicate)
	case errors.Is(err, farmerSvc.ErrMissingField):
		return h.renderRegister(c, http.StatusBadRequest, form, "Please fill in name, phone, location and crop.")
	case err != nil:
		h.log.Info("registration rejected", zap.Error(err))
		return h.renderRegister(c, http.StatusBadRequest, form, "Land size must be a number.")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *authCtrl) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.SessionCookie); err == nil && ck.Value != "" {
		if err := h.sessions.End(c.Request().Context(), ck.Value); err != nil {
			h.log.Warn("end session", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// GoogleAuth logs in a farmer by a verified Google email, or sends the
// browser to a prefilled registration form.
func (h *authCtrl) GoogleAuth(c echo.Context) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&body); err != nil || body.Token == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": "No token provided"})
	}
	ctx := c.Request().Context()
	id, err := h.google.Verify(ctx, body.Token)
	if errors.Is(err, service.ErrInvalidToken) {
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "error": "Invalid Token"})
	}
	if err != nil {
		h.log.Error("google token verification", zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]any{"success": false, "error": "Server Error"})
	}

	f, err := h.farmers.ByEmail(ctx, id.Email)
	if errors.Is(err, farmer.ErrNotFound) {
		q := url.Values{"email": {id.Email}, "name": {id.Name}}
		return c.JSON(http.StatusOK, map[string]any{"success": true, "redirect": "/register?" + q.Encode()})
	}
	if err != nil {
		return err
	}
	if err := h.startSession(c, f.Phone); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "redirect": "/"})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	f := middleware.CurrentFarmer(c)
	if f == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
	}
	return c.JSON(http.StatusOK, f)
}

func (h *authCtrl) startSession(c echo.Context, phone string) error {
	token, expires, err := h.sessions.Start(c.Request().Context(), phone)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, token, expires, h.opts.CookieSecure)
	return nil
}

func (h *authCtrl) renderLogin(c echo.Context, status int, phone, msg string) error {
	return c.Render(status, "login.html", map[string]any{
		"Phone":          phone,
		"Error":          msg,
		"GoogleClientID": h.opts.GoogleClientID,
	})
}

func (h *authCtrl) renderRegister(c echo.Context, status int, form farmerSvc.Registration, msg string) error {
	crops, err := h.crops.KnownCrops(c.Request().Context())
	if err != nil {
		h.log.Warn("list crops", zap.Error(err))
	}
	return c.Render(status, "register.html", map[string]any{"Form": form, "Crops": crops, "Error": msg})
}
