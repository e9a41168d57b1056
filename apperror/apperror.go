package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CodedError membawa status HTTP yang dipakai oleh Handler.
type CodedError struct {
	code    int
	message string
}

func New(code int, message string) *CodedError {
	return &CodedError{code: code, message: message}
}

func (e *CodedError) Error() string { return e.message }

func (e *CodedError) Code() int { return e.code }

var (
	ErrUnauthorized      = New(fiber.StatusUnauthorized, "sesi tidak valid, silakan masuk kembali")
	ErrForbidden         = New(fiber.StatusForbidden, "anda tidak memiliki akses ke fitur ini")
	ErrNotFound          = New(fiber.StatusNotFound, "data tidak ditemukan")
	ErrValidation        = New(fiber.StatusUnprocessableEntity, "validasi gagal")
	ErrInvalidTransition = New(fiber.StatusConflict, "perubahan status tidak diizinkan")
	ErrConflict          = New(fiber.StatusConflict, "data telah diubah oleh pengguna lain, muat ulang lalu coba lagi")
	ErrNothingToExport   = New(fiber.StatusNotFound, "tidak ada data untuk diekspor")
)

// wrapped menjaga errors.Is terhadap sentinel sambil mengganti pesan.
type wrapped struct {
	base    *CodedError
	message string
}

func (w *wrapped) Error() string { return w.message }

func (w *wrapped) Unwrap() error { return w.base }

// Wrap mengembalikan error dengan kode milik base dan pesan baru.
func Wrap(base *CodedError, format string, args ...any) error {
	return &wrapped{base: base, message: fmt.Sprintf(format, args...)}
}

// CodeOf mencari CodedError pertama pada rantai error.
func CodeOf(err error) (int, bool) {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code(), true
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, true
	}
	return 0, false
}

// FieldError adalah kesalahan validasi per field; kuncinya nama field JSON,
// nilainya tag validasi yang gagal.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, f)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, f := range keys {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return strings.Join(parts, "; ")
}

func (e *FieldError) Unwrap() error { return ErrValidation }

func Field(field, tag string) error {
	return &FieldError{Fields: map[string]string{field: tag}}
}
