package repositories

import (
	"context"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(DB *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: DB}
}

func (r *SessionRepository) CreateSession(ctx context.Context, s *models.UserSession) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// ActiveSession mengembalikan sesi aktif yang belum kedaluwarsa dan
// memperbarui last_activity_at.
func (r *SessionRepository) ActiveSession(ctx context.Context, sessionID string, now time.Time) (*models.UserSession, error) {
	var s models.UserSession
	db := r.DB.WithContext(ctx)
	if err := db.Where("session_id = ? AND is_active = ? AND expires_at > ?", sessionID, true, now).First(&s).Error; err != nil {
		return nil, translate(err, "sesi")
	}
	if err := db.Model(&s).Update("last_activity_at", now).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) EndSession(ctx context.Context, sessionID string, now time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.LoginLog{}).
			Where("session_id = ? AND logout_at IS NULL", sessionID).
			Update("logout_at", &now).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserSession{}).
			Where("session_id = ?", sessionID).
			Updates(map[string]interface{}{"is_active": false, "last_activity_at": now}).Error
	})
}

func (r *SessionRepository) WriteLoginLog(ctx context.Context, l *models.LoginLog) error {
	return r.DB.WithContext(ctx).Create(l).Error
}
