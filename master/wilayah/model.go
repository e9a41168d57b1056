package wilayah

import (
	"gorm.io/gorm"
)

const (
	JenisKabupaten = "Kabupaten"
	JenisKota      = "Kota"
)

// Wilayah adalah kabupaten/kota yang boleh dipilih sebagai domisili.
type Wilayah struct {
	gorm.Model
	Nama   string `json:"nama" gorm:"size:100;unique"`
	Jenis  string `json:"jenis" gorm:"size:20"`
	Urutan int    `json:"urutan"`
}

func (Wilayah) TableName() string {
	return "wilayah"
}
