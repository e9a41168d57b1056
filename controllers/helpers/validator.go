package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "domisili", func(fl validator.FieldLevel) bool {
		return constants.IsDomisili(fl.Field().String())
	})
	mustRegister(v, "zona", func(fl validator.FieldLevel) bool {
		return constants.IsZonaTangkap(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

// mustRegister panik bila tag validasi gagal didaftarkan.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registrasi validasi %q: %v", tag, err))
	}
}

// Validate mengubah hasil validator menjadi peta field -> tag.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(apperror.ErrValidation, "%s", err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = fe.Tag()
	}
	return &apperror.FieldError{Fields: fields}
}

// fieldName membuang nama struct di depan namespace: "PengajuanInput.items[0].jumlah"
// menjadi "items[0].jumlah".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Bind mengurai body request lalu memvalidasinya.
func Bind(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Wrap(apperror.ErrValidation, "format data tidak valid")
	}
	return Validate(out)
}
