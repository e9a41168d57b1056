package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/notify"
	"github.com/Annisa878/perikanan-tangkap-sub001/repositories"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
)

func principal(id uint, role roles.Role) Principal {
	return Principal{UserID: id, Role: role, SessionID: "sess", User: &models.User{Role: string(role)}}
}

func modelsUser(username, email string, role roles.Role) models.User {
	return models.User{Username: username, Email: email, Name: username, Role: string(role)}
}

// ---- users & sessions ----

type fakeUsers struct {
	mu   sync.Mutex
	rows map[uint]*models.User
	next uint
	err  error
}

func newFakeUsers() *fakeUsers { return &fakeUsers{rows: map[uint]*models.User{}} }

func (f *fakeUsers) add(u models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	u.ID = f.next
	f.rows[u.ID] = &u
	return &u
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	u.ID = f.next
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, apperror.Wrap(apperror.ErrNotFound, "pengguna tidak ditemukan")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if strings.EqualFold(u.Email, login) || u.Username == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.Wrap(apperror.ErrNotFound, "pengguna tidak ditemukan")
}

func (f *fakeUsers) Taken(_ context.Context, email, username string, exceptID uint) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var e, u bool
	for id, row := range f.rows {
		if id == exceptID {
			continue
		}
		if email != "" && strings.EqualFold(row.Email, email) {
			e = true
		}
		if username != "" && row.Username == username {
			u = true
		}
	}
	return e, u, nil
}

func (f *fakeUsers) GetAll(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, u := range f.rows {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) UpdateUsername(_ context.Context, id uint, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id].Username = username
	return nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, id uint, role string, _ uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id].Role = role
	return nil
}

func (f *fakeUsers) CountByRole(_ context.Context, role string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.rows {
		if role == "" || u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*models.UserSession
	logs     []models.LoginLog
	err      error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*models.UserSession{}}
}

func (f *fakeSessions) CreateSession(_ context.Context, s *models.UserSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sessions[s.SessionID] = &cp
	return nil
}

func (f *fakeSessions) ActiveSession(_ context.Context, id string, now time.Time) (*models.UserSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || !s.IsActive || !s.ExpiresAt.After(now) {
		return nil, apperror.Wrap(apperror.ErrNotFound, "sesi tidak ditemukan")
	}
	s.LastActivityAt = now
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) EndSession(_ context.Context, id string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		s.IsActive = false
	}
	for i := range f.logs {
		if f.logs[i].SessionID == id && f.logs[i].LogoutAt == nil {
			t := now
			f.logs[i].LogoutAt = &t
		}
	}
	return nil
}

func (f *fakeSessions) WriteLoginLog(_ context.Context, l *models.LoginLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *l)
	return nil
}

// ---- kub ----

type fakeKubs struct {
	mu   sync.Mutex
	rows map[uint]*models.Kub
	next uint
}

func newFakeKubs() *fakeKubs { return &fakeKubs{rows: map[uint]*models.Kub{}} }

func (f *fakeKubs) add(userID uint, nama, domisili string) *models.Kub {
	k := &models.Kub{UserID: userID, NamaKub: nama, Domisili: domisili, Anggota: []models.KubAnggota{{Nama: "Ketua " + nama, Jabatan: "ketua"}}}
	_ = f.Create(context.Background(), k)
	return k
}

func (f *fakeKubs) Create(_ context.Context, k *models.Kub) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	k.ID = f.next
	cp := *k
	cp.Anggota = append([]models.KubAnggota(nil), k.Anggota...)
	f.rows[k.ID] = &cp
	return nil
}

func (f *fakeKubs) Update(_ context.Context, k *models.Kub) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[k.ID]; !ok {
		return apperror.Wrap(apperror.ErrNotFound, "KUB tidak ditemukan")
	}
	cp := *k
	cp.Anggota = append([]models.KubAnggota(nil), k.Anggota...)
	f.rows[k.ID] = &cp
	return nil
}

func (f *fakeKubs) GetByID(_ context.Context, id uint) (*models.Kub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k, ok := f.rows[id]
	if !ok {
		return nil, apperror.Wrap(apperror.ErrNotFound, "KUB tidak ditemukan")
	}
	cp := *k
	cp.Anggota = append([]models.KubAnggota(nil), k.Anggota...)
	return &cp, nil
}

func (f *fakeKubs) ListByUser(_ context.Context, userID uint) ([]models.Kub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Kub{}
	for _, k := range f.rows {
		if userID == 0 || k.UserID == userID {
			out = append(out, *k)
		}
	}
	return out, nil
}

// ---- pengajuan ----

type fakePengajuan struct {
	mu        sync.Mutex
	rows      map[types.SnowflakeID]*models.Pengajuan
	history   []models.StatusHistory
	next      types.SnowflakeID
	kubs      *fakeKubs
	listErr   error
	countErr  func(f repositories.PengajuanFilter) error
	createdAt []time.Time
}

func newFakePengajuan(kubs *fakeKubs) *fakePengajuan {
	return &fakePengajuan{rows: map[types.SnowflakeID]*models.Pengajuan{}, next: 1000, kubs: kubs}
}

func clonePengajuan(p *models.Pengajuan) *models.Pengajuan {
	cp := *p
	cp.Items = append([]models.PengajuanItem(nil), p.Items...)
	if p.StatusVerifikasiKabid != nil {
		v := *p.StatusVerifikasiKabid
		cp.StatusVerifikasiKabid = &v
	}
	return &cp
}

func (f *fakePengajuan) Create(_ context.Context, p *models.Pengajuan, h *models.StatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	p.ID = f.next
	p.Version = 1
	p.CreatedAt = time.Now()
	f.rows[p.ID] = clonePengajuan(p)
	if h != nil {
		h.RefID = p.ID
		f.history = append(f.history, *h)
	}
	return nil
}

func (f *fakePengajuan) Replace(_ context.Context, p *models.Pengajuan, expected int, h *models.StatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[p.ID]
	if !ok || cur.Version != expected {
		return apperror.ErrConflict
	}
	p.Version = expected + 1
	f.rows[p.ID] = clonePengajuan(p)
	if h != nil {
		f.history = append(f.history, *h)
	}
	return nil
}

func (f *fakePengajuan) UpdateStatus(_ context.Context, id types.SnowflakeID, expected int, fields map[string]interface{}, h *models.StatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[id]
	if !ok || cur.Version != expected {
		return apperror.ErrConflict
	}
	for k, v := range fields {
		switch k {
		case "status_verifikasi":
			cur.StatusVerifikasi = v.(string)
		case "catatan_verifikasi":
			cur.CatatanVerifikasi = v.(string)
		case "status_verifikasi_kabid":
			cur.StatusVerifikasiKabid = v.(*string)
		case "catatan_kabid":
			cur.CatatanKabid = v.(string)
		case "no_bast":
			cur.NoBAST = v.(string)
		case "tanggal_bast":
			t := v.(time.Time)
			cur.TanggalBAST = &t
		}
	}
	cur.Version++
	if h != nil {
		f.history = append(f.history, *h)
	}
	return nil
}

func (f *fakePengajuan) Delete(_ context.Context, id types.SnowflakeID, expected int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[id]
	if !ok || cur.Version != expected {
		return apperror.ErrConflict
	}
	delete(f.rows, id)
	return nil
}

func (f *fakePengajuan) GetByID(ctx context.Context, id types.SnowflakeID) (*models.Pengajuan, error) {
	f.mu.Lock()
	p, ok := f.rows[id]
	f.mu.Unlock()
	if !ok {
		return nil, apperror.Wrap(apperror.ErrNotFound, "pengajuan tidak ditemukan")
	}
	cp := clonePengajuan(p)
	if f.kubs != nil {
		cp.Kub, _ = f.kubs.GetByID(ctx, cp.KubID)
	}
	return cp, nil
}

func (f *fakePengajuan) match(p *models.Pengajuan, flt repositories.PengajuanFilter) bool {
	kabid := p.KabidLabel()
	switch {
	case flt.UserID > 0 && p.UserID != flt.UserID:
		return false
	case flt.StatusVerifikasi != "" && p.StatusVerifikasi != flt.StatusVerifikasi:
		return false
	case flt.StatusKabid != "" && kabid != flt.StatusKabid:
		return false
	case flt.KabidInbox && (p.StatusVerifikasi != "Diterima" || kabid != "Menunggu"):
		return false
	case flt.KabidApproved && kabid != "Disetujui Sepenuhnya" && kabid != "Disetujui Sebagian":
		return false
	}
	return true
}

func (f *fakePengajuan) List(ctx context.Context, flt repositories.PengajuanFilter) ([]models.Pengajuan, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	var ids []types.SnowflakeID
	for id, p := range f.rows {
		if f.match(p, flt) {
			ids = append(ids, id)
		}
	}
	f.mu.Unlock()
	out := []models.Pengajuan{}
	for _, id := range ids {
		p, _ := f.GetByID(ctx, id)
		out = append(out, *p)
	}
	if flt.Limit > 0 && len(out) > flt.Limit {
		out = out[:flt.Limit]
	}
	return out, nil
}

func (f *fakePengajuan) Count(ctx context.Context, flt repositories.PengajuanFilter) (int64, error) {
	if f.countErr != nil {
		if err := f.countErr(flt); err != nil {
			return 0, err
		}
	}
	rows, err := f.List(ctx, flt)
	return int64(len(rows)), err
}

func (f *fakePengajuan) CreatedAt(ctx context.Context, flt repositories.PengajuanFilter) ([]time.Time, error) {
	if f.createdAt != nil {
		return f.createdAt, nil
	}
	rows, err := f.List(ctx, flt)
	out := []time.Time{}
	for _, r := range rows {
		out = append(out, r.CreatedAt)
	}
	return out, err
}

func (f *fakePengajuan) Statuses(ctx context.Context, flt repositories.PengajuanFilter, column string) ([]*string, error) {
	rows, err := f.List(ctx, flt)
	out := []*string{}
	for i := range rows {
		if column == "status_verifikasi_kabid" {
			out = append(out, rows[i].StatusVerifikasiKabid)
		} else {
			out = append(out, &rows[i].StatusVerifikasi)
		}
	}
	return out, err
}

func (f *fakePengajuan) History(_ context.Context, id types.SnowflakeID) ([]models.StatusHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.StatusHistory{}
	for _, h := range f.history {
		if h.RefID == id {
			out = append(out, h)
		}
	}
	return out, nil
}

// ---- monitoring ----

type fakeMonitoring struct {
	mu      sync.Mutex
	rows    map[types.SnowflakeID]*models.Monitoring
	history []models.StatusHistory
	next    types.SnowflakeID
	listErr error
	lastFlt repositories.MonitoringFilter
}

func newFakeMonitoring() *fakeMonitoring {
	return &fakeMonitoring{rows: map[types.SnowflakeID]*models.Monitoring{}, next: 5000}
}

func cloneMonitoring(m *models.Monitoring) *models.Monitoring {
	cp := *m
	cp.Produksi = append([]models.MonitoringProduksi(nil), m.Produksi...)
	return &cp
}

func (f *fakeMonitoring) Create(_ context.Context, m *models.Monitoring, h *models.StatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	m.ID = f.next
	m.Version = 1
	m.CreatedAt = time.Now()
	f.rows[m.ID] = cloneMonitoring(m)
	if h != nil {
		h.RefID = m.ID
		f.history = append(f.history, *h)
	}
	return nil
}

func (f *fakeMonitoring) Replace(_ context.Context, m *models.Monitoring, expected int, h *models.StatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[m.ID]
	if !ok || cur.Version != expected {
		return apperror.ErrConflict
	}
	m.Version = expected + 1
	f.rows[m.ID] = cloneMonitoring(m)
	if h != nil {
		f.history = append(f.history, *h)
	}
	return nil
}

func (f *fakeMonitoring) UpdateStatus(_ context.Context, id types.SnowflakeID, expected int, fields map[string]interface{}, h *models.StatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[id]
	if !ok || cur.Version != expected {
		return apperror.ErrConflict
	}
	if v, ok := fields["status_verifikasi_kabid"]; ok {
		cur.StatusVerifikasiKabid = v.(string)
	}
	if v, ok := fields["catatan_kabid"]; ok {
		cur.CatatanKabid = v.(string)
	}
	cur.Version++
	if h != nil {
		f.history = append(f.history, *h)
	}
	return nil
}

func (f *fakeMonitoring) Delete(_ context.Context, id types.SnowflakeID, expected int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[id]
	if !ok || cur.Version != expected {
		return apperror.ErrConflict
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeMonitoring) GetByID(_ context.Context, id types.SnowflakeID) (*models.Monitoring, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[id]
	if !ok {
		return nil, apperror.Wrap(apperror.ErrNotFound, "laporan monitoring tidak ditemukan")
	}
	return cloneMonitoring(m), nil
}

func (f *fakeMonitoring) List(_ context.Context, flt repositories.MonitoringFilter) ([]models.Monitoring, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFlt = flt
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Monitoring{}
	for _, m := range f.rows {
		switch {
		case flt.UserID > 0 && m.UserID != flt.UserID:
			continue
		case flt.Status != "" && m.StatusVerifikasiKabid != flt.Status:
			continue
		case flt.Domisili != "" && m.Domisili != flt.Domisili:
			continue
		case flt.Bulan > 0 && m.Bulan != flt.Bulan:
			continue
		case flt.Tahun > 0 && m.Tahun != flt.Tahun:
			continue
		}
		out = append(out, *cloneMonitoring(m))
	}
	return out, nil
}

func (f *fakeMonitoring) Count(ctx context.Context, flt repositories.MonitoringFilter) (int64, error) {
	rows, err := f.List(ctx, flt)
	return int64(len(rows)), err
}

func (f *fakeMonitoring) CreatedAt(ctx context.Context, flt repositories.MonitoringFilter) ([]time.Time, error) {
	rows, err := f.List(ctx, flt)
	out := []time.Time{}
	for _, r := range rows {
		out = append(out, r.CreatedAt)
	}
	return out, err
}

func (f *fakeMonitoring) Statuses(ctx context.Context, flt repositories.MonitoringFilter) ([]*string, error) {
	rows, err := f.List(ctx, flt)
	out := []*string{}
	for i := range rows {
		out = append(out, &rows[i].StatusVerifikasiKabid)
	}
	return out, err
}

func (f *fakeMonitoring) History(_ context.Context, id types.SnowflakeID) ([]models.StatusHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.StatusHistory{}
	for _, h := range f.history {
		if h.RefID == id {
			out = append(out, h)
		}
	}
	return out, nil
}

// ---- mailer ----

type fakeMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}
