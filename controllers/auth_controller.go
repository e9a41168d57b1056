package controllers

import (
	"context"
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/helpers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/gofiber/fiber/v2"
)

type AuthFlow interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, in services.LoginInput, client services.ClientInfo) (*services.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*services.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateUsername(ctx context.Context, p services.Principal, in services.UsernameInput) (*models.User, error)
}

type AuthController struct {
	auth AuthFlow
}

func NewAuthController(auth AuthFlow) *AuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var input services.RegisterInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}

	user, err := c.auth.Register(ctx.UserContext(), input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusCreated, roles.SignInPath, "Registrasi berhasil, silakan masuk", user)
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input services.LoginInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}

	res, err := c.auth.Login(ctx.UserContext(), input, getClientInfo(ctx))
	if err != nil {
		return err
	}

	// Simpan refresh token ke cookie
	ctx.Cookie(config.GetTokenCookie(res.RefreshToken))

	return helpers.Success(ctx, fiber.StatusOK, res.Redirect(), "Login berhasil", sessionPayload(res))
}

func (c *AuthController) Refresh(ctx *fiber.Ctx) error {
	res, err := c.auth.Refresh(ctx.UserContext(), ctx.Cookies("refresh_token"))
	if err != nil {
		ctx.Cookie(config.GetTokenCookie(""))
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, res.Redirect(), "Token diperbarui", sessionPayload(res))
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	if err := c.auth.Logout(ctx.UserContext(), p.SessionID); err != nil {
		return err
	}

	// Hapus token dari cookie
	ctx.Cookie(config.GetTokenCookie(""))

	return helpers.Success(ctx, fiber.StatusOK, roles.SignInPath, "Logout berhasil", nil)
}

func (c *AuthController) Me(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	return helpers.OK(ctx, "Profil ditemukan", profilePayload(p.User, p.Role))
}

func (c *AuthController) UpdateUsername(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	var input services.UsernameInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}

	user, err := c.auth.UpdateUsername(ctx.UserContext(), p, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, p.Role.DashboardPath(), "Username berhasil diperbarui", user)
}

func sessionPayload(res *services.LoginResult) fiber.Map {
	payload := profilePayload(res.User, res.Role)
	payload["x_token"] = res.AccessToken
	payload["expires_at"] = res.ExpiresAt
	return payload
}

func profilePayload(user *models.User, role roles.Role) fiber.Map {
	return fiber.Map{
		"user":         user,
		"role":         role,
		"role_label":   role.Label(),
		"dashboard":    role.DashboardPath(),
		"menus":        role.Menus(),
		"capabilities": role.Capabilities(),
	}
}

func getClientInfo(ctx *fiber.Ctx) services.ClientInfo {
	info := services.ClientInfo{
		IP:        ctx.IP(),
		UserAgent: ctx.Get("User-Agent"),
	}

	uaLower := strings.ToLower(info.UserAgent)

	switch {
	case strings.Contains(uaLower, "edg/"):
		info.Browser = "Edge"
	case strings.Contains(uaLower, "chrome"):
		info.Browser = "Chrome"
	case strings.Contains(uaLower, "firefox"):
		info.Browser = "Firefox"
	case strings.Contains(uaLower, "safari"):
		info.Browser = "Safari"
	default:
		info.Browser = "Unknown"
	}

	switch {
	case strings.Contains(uaLower, "windows"):
		info.OS = "Windows"
	case strings.Contains(uaLower, "android"):
		info.OS = "Android"
	case strings.Contains(uaLower, "iphone"):
		info.OS = "iOS"
	case strings.Contains(uaLower, "linux"):
		info.OS = "Linux"
	default:
		info.OS = "Unknown"
	}

	if strings.Contains(uaLower, "mobile") {
		info.Device = "MOBILE"
	} else {
		info.Device = "DESKTOP"
	}

	return info
}
