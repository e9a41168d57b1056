package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"size:64;unique;not null"`
	Password  string `json:"-" gorm:"not null"`
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"size:128;unique;not null"`
	Role      string `json:"role" gorm:"size:32;not null;index"`
	Domisili  string `json:"domisili" gorm:"size:64"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
}

type UserSession struct {
	ID             uint64    `json:"id" gorm:"primaryKey"`
	UserID         uint64    `json:"user_id" gorm:"index;not null"`
	SessionID      string    `json:"session_id" gorm:"size:64;uniqueIndex;not null"`
	DeviceID       string    `json:"device_id"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	IsActive       bool      `json:"is_active" gorm:"index"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoginLog mencatat setiap percobaan login, berhasil maupun gagal.
type LoginLog struct {
	ID            uint64     `json:"id" gorm:"primaryKey"`
	UserID        *uint64    `json:"user_id" gorm:"index"`
	SessionID     string     `json:"session_id" gorm:"size:64;index"`
	Username      string     `json:"username"`
	LoginAt       *time.Time `json:"login_at"`
	LogoutAt      *time.Time `json:"logout_at"`
	IPAddress     string     `json:"ip_address"`
	UserAgent     string     `json:"user_agent"`
	Browser       string     `json:"browser"`
	OS            string     `json:"os"`
	DeviceType    string     `json:"device_type"`
	LoginStatus   string     `json:"login_status" gorm:"size:16"`
	FailureReason *string    `json:"failure_reason"`
	CreatedAt     time.Time  `json:"created_at"`
}
