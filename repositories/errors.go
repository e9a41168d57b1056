package repositories

import (
	"errors"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"gorm.io/gorm"
)

func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Wrap(apperror.ErrNotFound, "%s tidak ditemukan", what)
	}
	return err
}

func staleWrite(what string) error {
	return apperror.Wrap(apperror.ErrConflict, "%s telah diubah pengguna lain, muat ulang data lalu coba lagi", what)
}
