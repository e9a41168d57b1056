package middleware

import (
	"context"
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/gofiber/fiber/v2"
)

type Resolver interface {
	Resolve(ctx context.Context, accessToken string) (*services.Principal, error)
}

const principalLocal = "principal"

// Auth memvalidasi access token dan membaca ulang peran dari database pada
// setiap request, lalu menyimpan Principal di Locals.
func Auth(resolver Resolver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token, err := bearerToken(ctx)
		if err != nil {
			return err
		}

		p, err := resolver.Resolve(ctx.UserContext(), token)
		if err != nil {
			return err
		}

		ctx.Locals(principalLocal, *p)
		ctx.Locals("userID", p.UserID)
		ctx.Locals("sessionID", p.SessionID)
		ctx.Locals(apperror.HomeLocal, p.Role.DashboardPath())
		return ctx.Next()
	}
}

func bearerToken(ctx *fiber.Ctx) (string, error) {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return "", apperror.Wrap(apperror.ErrUnauthorized, "header Authorization tidak ditemukan")
	}

	// Ambil token dari "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" || tokenParts[1] == "" {
		return "", apperror.Wrap(apperror.ErrUnauthorized, "format header Authorization tidak valid")
	}
	return tokenParts[1], nil
}

// CurrentPrincipal membaca Principal yang disimpan Auth.
func CurrentPrincipal(ctx *fiber.Ctx) (services.Principal, error) {
	p, ok := ctx.Locals(principalLocal).(services.Principal)
	if !ok {
		return services.Principal{}, apperror.ErrUnauthorized
	}
	return p, nil
}

// RequireCapability meloloskan request bila peran memiliki salah satu
// kemampuan yang diminta. Selain itu 403 dengan redirect ke dashboard peran.
func RequireCapability(caps ...roles.Capability) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		p, err := CurrentPrincipal(ctx)
		if err != nil {
			return err
		}
		for _, c := range caps {
			if p.Can(c) {
				return ctx.Next()
			}
		}
		return apperror.Wrap(apperror.ErrForbidden, "peran %s tidak dapat membuka halaman ini", p.Role.Label())
	}
}
