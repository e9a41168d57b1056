package models

import (
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/idgen"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"github.com/Annisa878/perikanan-tangkap-sub001/workflow"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Monitoring adalah laporan bulanan hasil tangkapan seorang anggota KUB.
type Monitoring struct {
	ID                    types.SnowflakeID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserID                uint                 `json:"user_id" gorm:"index;not null"`
	KubID                 uint                 `json:"kub_id" gorm:"index;not null"`
	Kub                   *Kub                 `json:"kub,omitempty" gorm:"foreignKey:KubID"`
	NamaAnggota           string               `json:"nama_anggota" gorm:"size:150;not null"`
	Domisili              string               `json:"domisili" gorm:"size:64;index"`
	Bulan                 int                  `json:"bulan" gorm:"index"`
	Tahun                 int                  `json:"tahun" gorm:"index"`
	JumlahTrip            int                  `json:"jumlah_trip"`
	JenisBBM              string               `json:"jenis_bbm" gorm:"column:jenis_bbm;size:50"`
	VolumeBBM             decimal.Decimal      `json:"volume_bbm" gorm:"column:volume_bbm;type:decimal(18,2)"`
	DaerahPenangkapan     string               `json:"daerah_penangkapan"`
	Keterangan            string               `json:"keterangan"`
	StatusVerifikasiKabid string               `json:"status_verifikasi_kabid" gorm:"size:32;not null;index"`
	CatatanKabid          string               `json:"catatan_kabid"`
	Version               int                  `json:"version" gorm:"not null;default:1"`
	Produksi              []MonitoringProduksi `json:"produksi" gorm:"foreignKey:MonitoringID"`
	CreatedAt             time.Time            `json:"created_at" gorm:"index"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

func (Monitoring) TableName() string {
	return "monitoring"
}

func (m *Monitoring) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == 0 {
		m.ID = types.SnowflakeID(idgen.GenerateID())
	}
	if m.Version == 0 {
		m.Version = 1
	}
	return
}

type MonitoringProduksi struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	MonitoringID types.SnowflakeID `json:"monitoring_id" gorm:"index;not null"`
	JenisIkan    string            `json:"jenis_ikan" gorm:"size:100;not null"`
	JumlahKg     decimal.Decimal   `json:"jumlah_kg" gorm:"type:decimal(18,2)"`
	HargaPerKg   decimal.Decimal   `json:"harga_per_kg" gorm:"type:decimal(18,2)"`
	Urutan       int               `json:"urutan"`
}

func (MonitoringProduksi) TableName() string {
	return "monitoring_produksi"
}

func (d MonitoringProduksi) Total() decimal.Decimal {
	return d.JumlahKg.Mul(d.HargaPerKg)
}

func (m Monitoring) Status() (workflow.ReportStatus, error) {
	return workflow.ParseReportStatus(m.StatusVerifikasiKabid)
}

// TotalKg dan TotalPendapatan selalu dihitung dari rincian, tidak disimpan.
func (m Monitoring) TotalKg() decimal.Decimal {
	total := decimal.Zero
	for _, d := range m.Produksi {
		total = total.Add(d.JumlahKg)
	}
	return total
}

func (m Monitoring) TotalPendapatan() decimal.Decimal {
	total := decimal.Zero
	for _, d := range m.Produksi {
		total = total.Add(d.Total())
	}
	return total
}

type MonitoringView struct {
	Monitoring
	NamaKub         string          `json:"nama_kub"`
	TotalKg         decimal.Decimal `json:"total_kg"`
	TotalPendapatan decimal.Decimal `json:"total_pendapatan"`
	CanEdit         bool            `json:"can_edit"`
	CanDelete       bool            `json:"can_delete"`
}

func (m Monitoring) View() MonitoringView {
	v := MonitoringView{
		Monitoring:      m,
		TotalKg:         m.TotalKg(),
		TotalPendapatan: m.TotalPendapatan(),
	}
	if v.Produksi == nil {
		v.Produksi = []MonitoringProduksi{}
	}
	if m.Kub != nil {
		v.NamaKub = m.Kub.NamaKub
	}
	if st, err := m.Status(); err == nil {
		v.StatusVerifikasiKabid = string(st)
		v.CanEdit = st.Editable()
		v.CanDelete = st.Deletable()
	}
	return v
}
