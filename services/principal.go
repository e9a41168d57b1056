// Package services berisi alur kerja portal. Setiap service bergantung pada
// interface store yang diimplementasikan oleh package repositories.
package services

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
)

// Principal adalah pengguna yang sudah terautentikasi pada satu request.
type Principal struct {
	UserID    uint
	SessionID string
	Role      roles.Role
	User      *models.User
}

func (p Principal) Can(c roles.Capability) bool {
	return p.Role.Can(c)
}

func (p Principal) require(c roles.Capability) error {
	if !p.Can(c) {
		return apperror.Wrap(apperror.ErrForbidden, "peran %s tidak dapat melakukan aksi ini", p.Role.Label())
	}
	return nil
}

// mayView: pemilik data, atau peran yang boleh melihat semua data.
func (p Principal) mayView(ownerID uint, all roles.Capability) error {
	if p.UserID == ownerID || p.Can(all) {
		return nil
	}
	return apperror.Wrap(apperror.ErrForbidden, "data ini bukan milik anda")
}

func (p Principal) mustOwn(ownerID uint) error {
	if p.UserID != ownerID {
		return apperror.Wrap(apperror.ErrForbidden, "data ini bukan milik anda")
	}
	return nil
}
