package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/Annisa878/perikanan-tangkap-sub001/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pengajuanFixture struct {
	svc    *PengajuanService
	store  *fakePengajuan
	kubs   *fakeKubs
	mailer *fakeMailer

	owner, other, admin, kabid, kadis Principal
	kubOwner, kubOther                *models.Kub
}

func newPengajuanFixture() *pengajuanFixture {
	users := newFakeUsers()
	users.add(modelsUser("nelayan", "nelayan@example.com", roles.User))
	users.add(modelsUser("lain", "lain@example.com", roles.User))
	users.add(modelsUser("admin", "admin@example.com", roles.Admin))
	users.add(modelsUser("kabid", "kabid@example.com", roles.KepalaBidang))
	users.add(modelsUser("kadis", "kadis@example.com", roles.KepalaDinas))

	kubs := newFakeKubs()
	store := newFakePengajuan(kubs)
	mailer := &fakeMailer{}
	return &pengajuanFixture{
		svc:      NewPengajuanService(store, kubs, users, mailer),
		store:    store,
		kubs:     kubs,
		mailer:   mailer,
		owner:    principal(1, roles.User),
		other:    principal(2, roles.User),
		admin:    principal(3, roles.Admin),
		kabid:    principal(4, roles.KepalaBidang),
		kadis:    principal(5, roles.KepalaDinas),
		kubOwner: kubs.add(1, "KUB Bahari", "Banyuasin"),
		kubOther: kubs.add(2, "KUB Sejahtera", "Kota Palembang"),
	}
}

func (f *pengajuanFixture) input() PengajuanInput {
	return PengajuanInput{
		KubID:            f.kubOwner.ID,
		ZonaTangkap:      "laut",
		TanggalPengajuan: "2024-03-05",
		Items: []ItemInput{
			{NamaAlat: "Jaring insang", Jumlah: 2, HargaSatuan: decimal.NewFromInt(1500000)},
			{NamaAlat: "GPS", Jumlah: 1, HargaSatuan: decimal.NewFromInt(3000000)},
		},
	}
}

func (f *pengajuanFixture) create(t *testing.T) *models.Pengajuan {
	t.Helper()
	row, err := f.svc.Create(context.Background(), f.owner, f.input())
	require.NoError(t, err)
	return row
}

func verify(status string) VerifyInput { return VerifyInput{Status: status} }

func TestPengajuanCreate(t *testing.T) {
	f := newPengajuanFixture()
	row := f.create(t)

	assert.Equal(t, string(workflow.AdminMenunggu), row.StatusVerifikasi)
	assert.Nil(t, row.StatusVerifikasiKabid)
	assert.Equal(t, 3, row.TotalJumlah())
	assert.True(t, decimal.NewFromInt(6000000).Equal(row.TotalHarga()))
	assert.True(t, decimal.NewFromInt(3000000).Equal(row.Items[0].TotalHarga))
	assert.Equal(t, "KUB Bahari", row.Kub.NamaKub)
	assert.Equal(t, 2024, row.TanggalPengajuan.Year())

	history, err := f.svc.History(context.Background(), f.owner, row.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Menunggu", history[0].ToStatus)
}

func TestPengajuanCreateRules(t *testing.T) {
	f := newPengajuanFixture()
	ctx := context.Background()

	in := f.input()
	in.KubID = f.kubOther.ID
	_, err := f.svc.Create(ctx, f.owner, in)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	_, err = f.svc.Create(ctx, f.admin, f.input())
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	in = f.input()
	in.Items = nil
	_, err = f.svc.Create(ctx, f.owner, in)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	in = f.input()
	in.ZonaTangkap = "darat"
	_, err = f.svc.Create(ctx, f.owner, in)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	in = f.input()
	in.Items[0].Jumlah = 0
	_, err = f.svc.Create(ctx, f.owner, in)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	assert.Empty(t, f.store.rows)
}

func TestPengajuanTwoStageVerification(t *testing.T) {
	f := newPengajuanFixture()
	ctx := context.Background()
	row := f.create(t)

	_, err := f.svc.VerifyKabid(ctx, f.kabid, row.ID, verify("Disetujui Sepenuhnya"))
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition), "kabid sebelum admin")

	_, err = f.svc.VerifyAdmin(ctx, f.owner, row.ID, verify("Diterima"))
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	got, err := f.svc.VerifyAdmin(ctx, f.admin, row.ID, VerifyInput{Status: "Diterima", Catatan: "lengkap"})
	require.NoError(t, err)
	assert.Equal(t, "Diterima", got.StatusVerifikasi)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "nelayan@example.com", f.mailer.sent[0].To)

	_, err = f.svc.VerifyAdmin(ctx, f.admin, row.ID, verify("Ditolak"))
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))

	got, err = f.svc.VerifyKabid(ctx, f.kabid, row.ID, verify("Disetujui Sebagian"))
	require.NoError(t, err)
	assert.Equal(t, "Disetujui Sebagian", got.KabidLabel())

	_, err = f.svc.VerifyKabid(ctx, f.kabid, row.ID, verify("Ditolak"))
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	_, err = f.svc.VerifyAdmin(ctx, f.admin, row.ID, verify("Perlu Revisi"))
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))

	stored, err := f.store.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Version)
	assert.False(t, stored.View().CanEdit)

	history, err := f.svc.History(ctx, f.owner, row.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "kabid", history[2].Track)
	assert.Equal(t, "Disetujui Sebagian", history[2].ToStatus)
}

func TestPengajuanKabidRejectsWrongTarget(t *testing.T) {
	f := newPengajuanFixture()
	ctx := context.Background()
	row := f.create(t)
	_, err := f.svc.VerifyAdmin(ctx, f.admin, row.ID, verify("Diterima"))
	require.NoError(t, err)

	_, err = f.svc.VerifyKabid(ctx, f.kabid, row.ID, verify("Menunggu"))
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	_, err = f.svc.VerifyKabid(ctx, f.kadis, row.ID, verify("Ditolak"))
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestPengajuanRevisionGoesBackToQueue(t *testing.T) {
	f := newPengajuanFixture()
	ctx := context.Background()
	row := f.create(t)

	_, err := f.svc.VerifyAdmin(ctx, f.admin, row.ID, VerifyInput{Status: "Perlu Revisi", Catatan: "lampirkan foto"})
	require.NoError(t, err)

	in := f.input()
	in.Items = in.Items[:1]
	in.Version = 2
	got, err := f.svc.Update(ctx, f.owner, row.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Menunggu", got.StatusVerifikasi)
	assert.Empty(t, got.CatatanVerifikasi)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Version)

	_, err = f.svc.VerifyAdmin(ctx, f.admin, row.ID, verify("Diterima"))
	assert.NoError(t, err)

	_, err = f.svc.Update(ctx, f.owner, row.ID, f.input())
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition), "pengajuan diterima tidak dapat diubah")
}

func TestPengajuanStaleVersion(t *testing.T) {
	f := newPengajuanFixture()
	ctx := context.Background()
	row := f.create(t)

	_, err := f.svc.VerifyAdmin(ctx, f.admin, row.ID, VerifyInput{Status: "Diterima", Version: 7})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	stored, _ := f.store.GetByID(ctx, row.ID)
	assert.Equal(t, "Menunggu", stored.StatusVerifikasi)
	assert.Empty(t, f.mailer.sent)
}

func TestPengajuanMailFailureIsIgnored(t *testing.T) {
	f := newPengajuanFixture()
	f.mailer.err = errors.New("smtp down")
	row := f.create(t)

	got, err := f.svc.VerifyAdmin(context.Background(), f.admin, row.ID, verify("Ditolak"))
	require.NoError(t, err)
	assert.Equal(t, "Ditolak", got.StatusVerifikasi)
}

func TestPengajuanDelete(t *testing.T) {
	f := newPengajuanFixture()
	ctx := context.Background()

	pending := f.create(t)
	assert.True(t, errors.Is(f.svc.Delete(ctx, f.other, pending.ID), apperror.ErrForbidden))
	require.NoError(t, f.svc.Delete(ctx, f.owner, pending.ID))
	_, err := f.store.GetByID(ctx, pending.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	accepted := f.create(t)
	_, err = f.svc.VerifyAdmin(ctx, f.admin, accepted.ID, verify("Diterima"))
	require.NoError(t, err)
	assert.True(t, errors.Is(f.svc.Delete(ctx, f.owner, accepted.ID), apperror.ErrInvalidTransition))

	rejected := f.create(t)
	_, err = f.svc.VerifyAdmin(ctx, f.admin, rejected.ID, verify("Ditolak"))
	require.NoError(t, err)
	assert.NoError(t, f.svc.Delete(ctx, f.owner, rejected.ID))
}

func TestPengajuanRecordBAST(t *testing.T) {
	f := newPengajuanFixture()
	ctx := context.Background()
	row := f.create(t)
	bast := BASTInput{NoBAST: "BAST/001/2024", TanggalBAST: "2024-04-01"}

	_, err := f.svc.VerifyAdmin(ctx, f.admin, row.ID, verify("Diterima"))
	require.NoError(t, err)
	_, err = f.svc.RecordBAST(ctx, f.admin, row.ID, bast)
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))

	_, err = f.svc.VerifyKabid(ctx, f.kabid, row.ID, verify("Disetujui Sepenuhnya"))
	require.NoError(t, err)

	_, err = f.svc.RecordBAST(ctx, f.kabid, row.ID, bast)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	got, err := f.svc.RecordBAST(ctx, f.admin, row.ID, bast)
	require.NoError(t, err)
	assert.Equal(t, "BAST/001/2024", got.NoBAST)
	require.NotNil(t, got.TanggalBAST)
	assert.Equal(t, "Disetujui Sepenuhnya", got.KabidLabel())

	_, err = f.svc.RecordBAST(ctx, f.admin, row.ID, BASTInput{NoBAST: "x", TanggalBAST: "kemarin"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestPengajuanListScope(t *testing.T) {
	f := newPengajuanFixture()
	ctx := context.Background()
	mine := f.create(t)

	in := f.input()
	in.KubID = f.kubOther.ID
	_, err := f.svc.Create(ctx, f.other, in)
	require.NoError(t, err)

	rows, err := f.svc.List(ctx, f.owner, PengajuanQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mine.ID, rows[0].ID)

	rows, err = f.svc.List(ctx, f.admin, PengajuanQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = f.svc.VerifyAdmin(ctx, f.admin, mine.ID, verify("Diterima"))
	require.NoError(t, err)
	rows, err = f.svc.List(ctx, f.kabid, PengajuanQuery{Inbox: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mine.ID, rows[0].ID)

	_, err = f.svc.Get(ctx, f.other, mine.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
	_, err = f.svc.Get(ctx, f.kadis, mine.ID)
	assert.NoError(t, err)
}

func TestPengajuanQueryFilter(t *testing.T) {
	f, err := PengajuanQuery{Tahun: "2024", Bulan: "3", Domisili: "kota palembang"}.Filter(principal(9, roles.KepalaDinas))
	require.NoError(t, err)
	require.NotNil(t, f.Period)
	assert.Equal(t, "Kota Palembang", f.Domisili)
	assert.Zero(t, f.UserID)

	f, err = PengajuanQuery{}.Filter(principal(9, roles.User))
	require.NoError(t, err)
	assert.Equal(t, uint(9), f.UserID)
	assert.Nil(t, f.Period)

	_, err = PengajuanQuery{Bulan: "3"}.Filter(principal(9, roles.Admin))
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = PengajuanQuery{Domisili: "Bandung"}.Filter(principal(9, roles.Admin))
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
