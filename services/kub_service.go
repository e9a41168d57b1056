package services

import (
	"context"
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
)

type KubReader interface {
	GetByID(ctx context.Context, id uint) (*models.Kub, error)
}

type KubStore interface {
	KubReader
	Create(ctx context.Context, kub *models.Kub) error
	Update(ctx context.Context, kub *models.Kub) error
	ListByUser(ctx context.Context, userID uint) ([]models.Kub, error)
}

type KubService struct {
	store KubStore
}

func NewKubService(store KubStore) *KubService {
	return &KubService{store: store}
}

type AnggotaInput struct {
	Nama    string `json:"nama" validate:"required"`
	Jabatan string `json:"jabatan" validate:"required,oneof=ketua anggota"`
}

type KubInput struct {
	NamaKub  string         `json:"nama_kub" validate:"required,max=150"`
	Alamat   string         `json:"alamat"`
	Domisili string         `json:"domisili" validate:"required,domisili"`
	Anggota  []AnggotaInput `json:"anggota" validate:"required,min=1,dive"`
}

func (in KubInput) build() (*models.Kub, error) {
	nama := strings.TrimSpace(in.NamaKub)
	if nama == "" {
		return nil, fieldError("nama_kub", "required")
	}
	domisili, ok := constants.NormalizeDomisili(in.Domisili)
	if !ok {
		return nil, fieldError("domisili", "domisili")
	}

	kub := &models.Kub{NamaKub: nama, Alamat: strings.TrimSpace(in.Alamat), Domisili: domisili}
	ketua := 0
	for _, a := range in.Anggota {
		n := strings.TrimSpace(a.Nama)
		if n == "" {
			return nil, fieldError("anggota", "required")
		}
		jabatan := strings.ToLower(strings.TrimSpace(a.Jabatan))
		switch jabatan {
		case constants.JabatanKetua:
			ketua++
		case constants.JabatanAnggota:
		default:
			return nil, fieldError("anggota", "oneof")
		}
		kub.Anggota = append(kub.Anggota, models.KubAnggota{Nama: n, Jabatan: jabatan})
	}
	if ketua != 1 {
		return nil, apperror.Wrap(apperror.ErrValidation, "KUB harus memiliki tepat satu ketua")
	}
	return kub, nil
}

func (s *KubService) Create(ctx context.Context, p Principal, in KubInput) (*models.Kub, error) {
	if err := p.require(roles.ManageKub); err != nil {
		return nil, err
	}
	kub, err := in.build()
	if err != nil {
		return nil, err
	}
	kub.UserID = p.UserID
	if err := s.store.Create(ctx, kub); err != nil {
		return nil, err
	}
	return kub, nil
}

func (s *KubService) Update(ctx context.Context, p Principal, id uint, in KubInput) (*models.Kub, error) {
	if err := p.require(roles.ManageKub); err != nil {
		return nil, err
	}
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.mustOwn(current.UserID); err != nil {
		return nil, err
	}
	kub, err := in.build()
	if err != nil {
		return nil, err
	}
	kub.ID = current.ID
	kub.UserID = current.UserID
	if err := s.store.Update(ctx, kub); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *KubService) Get(ctx context.Context, p Principal, id uint) (*models.Kub, error) {
	kub, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.mayView(kub.UserID, roles.ViewAllPengajuan); err != nil {
		return nil, err
	}
	return kub, nil
}

// List: pengguna melihat KUB miliknya, peran lain melihat semua.
func (s *KubService) List(ctx context.Context, p Principal) ([]models.Kub, error) {
	if p.Can(roles.ManageKub) {
		return s.store.ListByUser(ctx, p.UserID)
	}
	if err := p.require(roles.ViewAllPengajuan); err != nil {
		return nil, err
	}
	return s.store.ListByUser(ctx, 0)
}

// ownedKub memastikan KUB ada dan milik p. Dipakai pengajuan dan monitoring.
func ownedKub(ctx context.Context, store KubReader, p Principal, id uint) (*models.Kub, error) {
	if id == 0 {
		return nil, fieldError("kub_id", "required")
	}
	kub, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kub.UserID != p.UserID {
		return nil, apperror.Wrap(apperror.ErrForbidden, "KUB ini bukan milik anda")
	}
	return kub, nil
}
