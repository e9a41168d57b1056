package helpers

import (
	"strconv"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"github.com/gofiber/fiber/v2"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusInfo    = "info"
)

// Response adalah bentuk jawaban semua handler form: status, tujuan redirect,
// dan pesan. Data hanya diisi oleh endpoint baca.
type Response struct {
	Status   string      `json:"status"`
	Redirect string      `json:"redirect,omitempty"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
}

func Success(ctx *fiber.Ctx, code int, redirect, message string, data interface{}) error {
	return ctx.Status(code).JSON(Response{
		Status:   StatusSuccess,
		Redirect: redirect,
		Message:  message,
		Data:     data,
	})
}

func OK(ctx *fiber.Ctx, message string, data interface{}) error {
	return Success(ctx, fiber.StatusOK, "", message, data)
}

// Info dipakai untuk hasil yang bukan kegagalan tetapi tidak menghasilkan
// data, misalnya ekspor tanpa baris.
func Info(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusOK).JSON(Response{Status: StatusInfo, Message: message})
}

func SnowflakeParam(ctx *fiber.Ctx, name string) (types.SnowflakeID, error) {
	id, err := types.ParseSnowflakeID(ctx.Params(name))
	if err != nil {
		return 0, apperror.Wrap(apperror.ErrNotFound, "id tidak valid")
	}
	return id, nil
}

func UintParam(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Wrap(apperror.ErrNotFound, "id tidak valid")
	}
	return uint(id), nil
}
