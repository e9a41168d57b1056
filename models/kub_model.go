package models

import (
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"gorm.io/gorm"
)

// Kub adalah Kelompok Usaha Bersama milik seorang nelayan.
type Kub struct {
	gorm.Model
	UserID   uint         `json:"user_id" gorm:"index;not null"`
	NamaKub  string       `json:"nama_kub" gorm:"size:150;not null"`
	Alamat   string       `json:"alamat"`
	Domisili string       `json:"domisili" gorm:"size:64;index"`
	Anggota  []KubAnggota `json:"anggota" gorm:"foreignKey:KubID"`
}

func (Kub) TableName() string {
	return "kub"
}

type KubAnggota struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	KubID   uint   `json:"kub_id" gorm:"index;not null"`
	Nama    string `json:"nama" gorm:"size:150;not null"`
	Jabatan string `json:"jabatan" gorm:"size:32;not null"`
	Urutan  int    `json:"urutan"`
}

func (KubAnggota) TableName() string {
	return "kub_anggota"
}

// NamaKetua mengembalikan nama anggota berjabatan ketua, atau "" bila tidak ada.
func (k Kub) NamaKetua() string {
	for _, a := range k.Anggota {
		if strings.EqualFold(a.Jabatan, constants.JabatanKetua) {
			return a.Nama
		}
	}
	return ""
}
