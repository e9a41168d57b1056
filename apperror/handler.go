package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
)

// HomeLocal berisi dashboard peran pemanggil; diisi middleware auth.
const HomeLocal = "home"

const genericMessage = "terjadi kesalahan pada server, silakan coba beberapa saat lagi"

// Handler dipasang sebagai fiber.Config.ErrorHandler.
func Handler(ctx *fiber.Ctx, err error) error {
	code, ok := CodeOf(err)
	message := err.Error()
	if !ok {
		code = fiber.StatusInternalServerError
		logger.Error("unhandled error",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
		message = genericMessage
	}

	body := fiber.Map{
		"status":  "error",
		"message": message,
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		body["message"] = ErrValidation.Error()
		body["errors"] = fe.Fields
	}
	switch code {
	case fiber.StatusUnauthorized:
		body["redirect"] = "/sign-in"
	case fiber.StatusForbidden:
		if home, ok := ctx.Locals(HomeLocal).(string); ok && home != "" {
			body["redirect"] = home
		}
	}
	return ctx.Status(code).JSON(body)
}
