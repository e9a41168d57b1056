package wilayah

import (
	"errors"
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"gorm.io/gorm"
)

// Rows menurunkan data wilayah dari daftar domisili baku.
func Rows() []Wilayah {
	rows := make([]Wilayah, 0, len(constants.Domisili))
	for i, nama := range constants.Domisili {
		jenis := JenisKabupaten
		if strings.HasPrefix(nama, "Kota ") {
			jenis = JenisKota
		}
		rows = append(rows, Wilayah{Nama: nama, Jenis: jenis, Urutan: i + 1})
	}
	return rows
}

func SeedWilayah(db *gorm.DB) error {
	for _, w := range Rows() {
		var existing Wilayah
		err := db.Where("nama = ?", w.Nama).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&w).Error; err != nil {
			return err
		}
	}
	return nil
}
