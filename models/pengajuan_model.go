package models

import (
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/idgen"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"github.com/Annisa878/perikanan-tangkap-sub001/workflow"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Pengajuan struct {
	ID                    types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserID                uint              `json:"user_id" gorm:"index;not null"`
	KubID                 uint              `json:"kub_id" gorm:"index;not null"`
	Kub                   *Kub              `json:"kub,omitempty" gorm:"foreignKey:KubID"`
	ZonaTangkap           string            `json:"zona_tangkap" gorm:"size:32;not null"`
	TanggalPengajuan      time.Time         `json:"tanggal_pengajuan" gorm:"index"`
	DokumenPendukung      string            `json:"dokumen_pendukung"`
	StatusVerifikasi      string            `json:"status_verifikasi" gorm:"size:32;not null;index"`
	CatatanVerifikasi     string            `json:"catatan_verifikasi"`
	StatusVerifikasiKabid *string           `json:"status_verifikasi_kabid" gorm:"size:32;index"`
	CatatanKabid          string            `json:"catatan_kabid"`
	NoBAST                string            `json:"no_bast" gorm:"column:no_bast;size:100"`
	TanggalBAST           *time.Time        `json:"tanggal_bast" gorm:"column:tanggal_bast"`
	Version               int               `json:"version" gorm:"not null;default:1"`
	Items                 []PengajuanItem   `json:"items" gorm:"foreignKey:PengajuanID"`
	CreatedAt             time.Time         `json:"created_at" gorm:"index"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

func (Pengajuan) TableName() string {
	return "pengajuan"
}

func (p *Pengajuan) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == 0 {
		p.ID = types.SnowflakeID(idgen.GenerateID())
	}
	if p.Version == 0 {
		p.Version = 1
	}
	return
}

// PengajuanItem adalah satu baris alat yang diminta dalam pengajuan.
type PengajuanItem struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	PengajuanID types.SnowflakeID `json:"pengajuan_id" gorm:"index;not null"`
	NamaAlat    string            `json:"nama_alat" gorm:"size:150;not null"`
	Jumlah      int               `json:"jumlah"`
	HargaSatuan decimal.Decimal   `json:"harga_satuan" gorm:"type:decimal(18,2)"`
	TotalHarga  decimal.Decimal   `json:"total_harga" gorm:"type:decimal(18,2)"`
	Urutan      int               `json:"urutan"`
}

func (PengajuanItem) TableName() string {
	return "pengajuan_alat"
}

func (p Pengajuan) State() (workflow.SubmissionState, error) {
	admin, err := workflow.ParseAdminStatus(p.StatusVerifikasi)
	if err != nil {
		return workflow.SubmissionState{}, err
	}
	kabid, err := workflow.ParseKabidStatus(p.StatusVerifikasiKabid)
	if err != nil {
		return workflow.SubmissionState{}, err
	}
	return workflow.SubmissionState{Admin: admin, Kabid: kabid}, nil
}

func (p Pengajuan) TotalJumlah() int {
	total := 0
	for _, it := range p.Items {
		total += it.Jumlah
	}
	return total
}

func (p Pengajuan) TotalHarga() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.TotalHarga)
	}
	return total
}

// KabidLabel menampilkan NULL sebagai Menunggu.
func (p Pengajuan) KabidLabel() string {
	if p.StatusVerifikasiKabid == nil || *p.StatusVerifikasiKabid == "" {
		return string(workflow.KabidMenunggu)
	}
	return *p.StatusVerifikasiKabid
}

// PengajuanView adalah bentuk JSON yang dikirim ke klien.
type PengajuanView struct {
	ID                    types.SnowflakeID `json:"id"`
	UserID                uint              `json:"user_id"`
	KubID                 uint              `json:"kub_id"`
	NamaKub               string            `json:"nama_kub"`
	Domisili              string            `json:"domisili"`
	ZonaTangkap           string            `json:"zona_tangkap"`
	TanggalPengajuan      time.Time         `json:"tanggal_pengajuan"`
	DokumenPendukung      string            `json:"dokumen_pendukung"`
	StatusVerifikasi      string            `json:"status_verifikasi"`
	CatatanVerifikasi     string            `json:"catatan_verifikasi"`
	StatusVerifikasiKabid string            `json:"status_verifikasi_kabid"`
	CatatanKabid          string            `json:"catatan_kabid"`
	NoBAST                string            `json:"no_bast"`
	TanggalBAST           *time.Time        `json:"tanggal_bast"`
	Version               int               `json:"version"`
	Items                 []PengajuanItem   `json:"items"`
	TotalJumlah           int               `json:"total_jumlah"`
	TotalHarga            decimal.Decimal   `json:"total_harga"`
	CanEdit               bool              `json:"can_edit"`
	CanDelete             bool              `json:"can_delete"`
	CreatedAt             time.Time         `json:"created_at"`
}

func (p Pengajuan) View() PengajuanView {
	v := PengajuanView{
		ID:                    p.ID,
		UserID:                p.UserID,
		KubID:                 p.KubID,
		ZonaTangkap:           p.ZonaTangkap,
		TanggalPengajuan:      p.TanggalPengajuan,
		DokumenPendukung:      p.DokumenPendukung,
		StatusVerifikasi:      p.StatusVerifikasi,
		CatatanVerifikasi:     p.CatatanVerifikasi,
		StatusVerifikasiKabid: p.KabidLabel(),
		CatatanKabid:          p.CatatanKabid,
		NoBAST:                p.NoBAST,
		TanggalBAST:           p.TanggalBAST,
		Version:               p.Version,
		Items:                 p.Items,
		TotalJumlah:           p.TotalJumlah(),
		TotalHarga:            p.TotalHarga(),
		CreatedAt:             p.CreatedAt,
	}
	if v.Items == nil {
		v.Items = []PengajuanItem{}
	}
	if p.Kub != nil {
		v.NamaKub = p.Kub.NamaKub
		v.Domisili = p.Kub.Domisili
	}
	if st, err := p.State(); err == nil {
		v.CanEdit = st.Editable()
		v.CanDelete = st.CanDelete()
	}
	return v
}
