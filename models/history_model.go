package models

import (
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/idgen"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	HistoryPengajuan  = "pengajuan"
	HistoryMonitoring = "monitoring"
)

// StatusHistory mencatat setiap perubahan status pengajuan dan laporan monitoring.
type StatusHistory struct {
	ID         types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	RefID      types.SnowflakeID `json:"ref_id" gorm:"index;not null"`
	Type       string            `json:"type" gorm:"size:32;index"`
	Track      string            `json:"track" gorm:"size:32"`
	FromStatus string            `json:"from_status" gorm:"size:32"`
	ToStatus   string            `json:"to_status" gorm:"size:32"`
	Catatan    string            `json:"catatan"`
	Detail     datatypes.JSON    `json:"detail"`
	CreatedAt  time.Time         `json:"created_at"`
	CreatedBy  uint              `json:"created_by"`
}

func (h *StatusHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == 0 {
		h.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
