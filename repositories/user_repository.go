package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(DB *gorm.DB) *UserRepository {
	return &UserRepository{DB: DB}
}

// Create user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// Get user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "pengguna")
	}
	return &user, nil
}

// GetByLogin mencari berdasarkan email atau username.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	login = strings.TrimSpace(login)
	err := r.DB.WithContext(ctx).
		Where("LOWER(email) = ? OR username = ?", strings.ToLower(login), login).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "pengguna")
	}
	return &user, nil
}

// Taken memeriksa apakah email atau username sudah dipakai pengguna lain.
func (r *UserRepository) Taken(ctx context.Context, email, username string, exceptID uint) (emailTaken, usernameTaken bool, err error) {
	db := r.DB.WithContext(ctx)
	var n int64
	if email != "" {
		q := db.Model(&models.User{}).Where("LOWER(email) = ?", strings.ToLower(email))
		if exceptID > 0 {
			q = q.Where("id <> ?", exceptID)
		}
		if err = q.Count(&n).Error; err != nil {
			return
		}
		emailTaken = n > 0
	}
	if username != "" {
		q := db.Model(&models.User{}).Where("username = ?", username)
		if exceptID > 0 {
			q = q.Where("id <> ?", exceptID)
		}
		if err = q.Count(&n).Error; err != nil {
			return
		}
		usernameTaken = n > 0
	}
	return
}

// Get all users
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateUsername(ctx context.Context, id uint, username string) error {
	return r.update(ctx, id, map[string]interface{}{"username": username, "updated_by": id})
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role string, actor uint) error {
	return r.update(ctx, id, map[string]interface{}{"role": role, "updated_by": actor})
}

func (r *UserRepository) update(ctx context.Context, id uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "pengguna")
	}
	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	q := r.DB.WithContext(ctx).Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Count(&n).Error
	return n, err
}
