package migration

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/master/wilayah"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"

	"gorm.io/gorm"
)

// Models adalah daftar tabel yang dikelola AutoMigrate, urut dari induk ke anak.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&wilayah.Wilayah{},
		&models.Kub{},
		&models.KubAnggota{},
		&models.Pengajuan{},
		&models.PengajuanItem{},
		&models.Monitoring{},
		&models.MonitoringProduksi{},
		&models.StatusHistory{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
