package repositories

import (
	"context"

	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"gorm.io/gorm"
)

type KubRepository struct {
	DB *gorm.DB
}

func NewKubRepository(DB *gorm.DB) *KubRepository {
	return &KubRepository{DB: DB}
}

func orderedAnggota(db *gorm.DB) *gorm.DB {
	return db.Order("urutan ASC, id ASC")
}

func (r *KubRepository) Create(ctx context.Context, kub *models.Kub) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		anggota := kub.Anggota
		if err := tx.Omit("Anggota").Create(kub).Error; err != nil {
			return err
		}
		for i := range anggota {
			anggota[i].ID = 0
			anggota[i].KubID = kub.ID
			anggota[i].Urutan = i + 1
		}
		if len(anggota) > 0 {
			if err := tx.Create(&anggota).Error; err != nil {
				return err
			}
		}
		kub.Anggota = anggota
		return nil
	})
}

// Update mengganti data KUB beserta seluruh daftar anggotanya.
func (r *KubRepository) Update(ctx context.Context, kub *models.Kub) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Kub{}).Where("id = ?", kub.ID).Updates(map[string]interface{}{
			"nama_kub": kub.NamaKub,
			"alamat":   kub.Alamat,
			"domisili": kub.Domisili,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "KUB")
		}
		if err := tx.Where("kub_id = ?", kub.ID).Delete(&models.KubAnggota{}).Error; err != nil {
			return err
		}
		for i := range kub.Anggota {
			kub.Anggota[i].ID = 0
			kub.Anggota[i].KubID = kub.ID
			kub.Anggota[i].Urutan = i + 1
		}
		if len(kub.Anggota) > 0 {
			return tx.Create(&kub.Anggota).Error
		}
		return nil
	})
}

func (r *KubRepository) GetByID(ctx context.Context, id uint) (*models.Kub, error) {
	var kub models.Kub
	if err := r.DB.WithContext(ctx).Preload("Anggota", orderedAnggota).First(&kub, id).Error; err != nil {
		return nil, translate(err, "KUB")
	}
	return &kub, nil
}

func (r *KubRepository) ListByUser(ctx context.Context, userID uint) ([]models.Kub, error) {
	var kubs []models.Kub
	q := r.DB.WithContext(ctx).Preload("Anggota", orderedAnggota).Order("nama_kub ASC")
	if userID > 0 {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Find(&kubs).Error
	return kubs, err
}
