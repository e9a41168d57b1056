package database

import (
	"errors"
	"fmt"

	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/Annisa878/perikanan-tangkap-sub001/master/wilayah"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB, password string) error {
	if err := SeedUserMaster(db, password); err != nil {
		return err
	}
	return wilayah.SeedWilayah(db)
}

// StaffUsers adalah akun awal untuk peran yang tidak bisa mendaftar sendiri.
func StaffUsers() []models.User {
	return []models.User{
		{Username: "admin", Name: "Admin Bidang Perikanan Tangkap", Email: "admin@dkp.sumselprov.go.id", Role: string(roles.Admin)},
		{Username: "kabid", Name: "Kepala Bidang Perikanan Tangkap", Email: "kabid@dkp.sumselprov.go.id", Role: string(roles.KepalaBidang)},
		{Username: "kadis", Name: "Kepala Dinas Kelautan dan Perikanan", Email: "kadis@dkp.sumselprov.go.id", Role: string(roles.KepalaDinas)},
	}
}

// SeedUserMaster hanya menambah akun yang email-nya belum terdaftar,
// password akun lama tidak disentuh.
func SeedUserMaster(db *gorm.DB, password string) error {
	if password == "" {
		return errors.New("seed password kosong")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, user := range StaffUsers() {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cek user %s: %w", user.Username, err)
		}

		user.Password = string(hash)
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("insert user %s: %w", user.Username, err)
		}
		logger.L().Info("Insert user", zap.String("username", user.Username), zap.String("role", user.Role))
	}
	return nil
}
