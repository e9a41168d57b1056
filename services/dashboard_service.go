package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/reports"
	"github.com/Annisa878/perikanan-tangkap-sub001/repositories"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/Annisa878/perikanan-tangkap-sub001/workflow"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PengajuanReader interface {
	List(ctx context.Context, f repositories.PengajuanFilter) ([]models.Pengajuan, error)
	Count(ctx context.Context, f repositories.PengajuanFilter) (int64, error)
	CreatedAt(ctx context.Context, f repositories.PengajuanFilter) ([]time.Time, error)
	Statuses(ctx context.Context, f repositories.PengajuanFilter, column string) ([]*string, error)
}

type MonitoringReader interface {
	List(ctx context.Context, f repositories.MonitoringFilter) ([]models.Monitoring, error)
	Count(ctx context.Context, f repositories.MonitoringFilter) (int64, error)
	CreatedAt(ctx context.Context, f repositories.MonitoringFilter) ([]time.Time, error)
	Statuses(ctx context.Context, f repositories.MonitoringFilter) ([]*string, error)
}

type UserCounter interface {
	CountByRole(ctx context.Context, role string) (int64, error)
}

type Dashboard struct {
	Role     roles.Role                       `json:"role"`
	Redirect string                           `json:"redirect"`
	Counts   map[string]int64                 `json:"counts"`
	Status   map[string][]reports.StatusCount `json:"status"`
	Trend    map[string][]reports.TrendPoint  `json:"trend"`
	Totals   map[string]decimal.Decimal       `json:"totals,omitempty"`
	Recent   []models.PengajuanView           `json:"recent"`
	Warnings []string                         `json:"warnings"`
}

// DashboardService menyusun data dashboard per peran. Semua query baca
// dijalankan bersamaan; query yang gagal bernilai nol dan menambah warning.
type DashboardService struct {
	pengajuan  PengajuanReader
	monitoring MonitoringReader
	users      UserCounter
}

func NewDashboardService(pengajuan PengajuanReader, monitoring MonitoringReader, users UserCounter) *DashboardService {
	return &DashboardService{pengajuan: pengajuan, monitoring: monitoring, users: users}
}

const (
	colAdmin = "status_verifikasi"
	colKabid = "status_verifikasi_kabid"
	maxQuery = 8
	recentN  = 5
)

type collector struct {
	mu sync.Mutex
	d  *Dashboard
	g  *errgroup.Group
}

func (c *collector) warn(label string, err error) {
	logger.Warn("query dashboard gagal", zap.String("query", label), zap.Error(err))
	c.mu.Lock()
	c.d.Warnings = append(c.d.Warnings, fmt.Sprintf("%s gagal dimuat", label))
	c.mu.Unlock()
}

func (c *collector) count(ctx context.Context, key, label string, fn func(context.Context) (int64, error)) {
	c.mu.Lock()
	c.d.Counts[key] = 0
	c.mu.Unlock()
	c.g.Go(func() error {
		n, err := fn(ctx)
		if err != nil {
			c.warn(label, err)
			return nil
		}
		c.mu.Lock()
		c.d.Counts[key] = n
		c.mu.Unlock()
		return nil
	})
}

func (c *collector) status(ctx context.Context, key, label string, expected []string, fn func(context.Context) ([]*string, error)) {
	c.mu.Lock()
	c.d.Status[key] = reports.CountByStatus(nil, expected)
	c.mu.Unlock()
	c.g.Go(func() error {
		values, err := fn(ctx)
		if err != nil {
			c.warn(label, err)
			return nil
		}
		counts := reports.CountByStatus(values, expected)
		c.mu.Lock()
		c.d.Status[key] = counts
		c.mu.Unlock()
		return nil
	})
}

func (c *collector) trend(ctx context.Context, key, label string, fn func(context.Context) ([]time.Time, error)) {
	c.mu.Lock()
	c.d.Trend[key] = []reports.TrendPoint{}
	c.mu.Unlock()
	c.g.Go(func() error {
		times, err := fn(ctx)
		if err != nil {
			c.warn(label, err)
			return nil
		}
		points := reports.MonthlyTrend(times)
		c.mu.Lock()
		c.d.Trend[key] = points
		c.mu.Unlock()
		return nil
	})
}

func (c *collector) recent(ctx context.Context, label string, fn func(context.Context) ([]models.Pengajuan, error)) {
	c.g.Go(func() error {
		rows, err := fn(ctx)
		if err != nil {
			c.warn(label, err)
			return nil
		}
		views := make([]models.PengajuanView, 0, len(rows))
		for _, r := range rows {
			views = append(views, r.View())
		}
		c.mu.Lock()
		c.d.Recent = views
		c.mu.Unlock()
		return nil
	})
}

func adminStatuses() []string {
	out := make([]string, len(workflow.AdminStatuses))
	for i, s := range workflow.AdminStatuses {
		out[i] = string(s)
	}
	return out
}

func kabidStatuses() []string {
	out := make([]string, len(workflow.KabidStatuses))
	for i, s := range workflow.KabidStatuses {
		out[i] = string(s)
	}
	return out
}

func reportStatuses() []string {
	out := make([]string, len(workflow.ReportStatuses))
	for i, s := range workflow.ReportStatuses {
		out[i] = string(s)
	}
	return out
}

func (s *DashboardService) Build(ctx context.Context, p Principal) (*Dashboard, error) {
	d := &Dashboard{
		Role:     p.Role,
		Redirect: p.Role.DashboardPath(),
		Counts:   map[string]int64{},
		Status:   map[string][]reports.StatusCount{},
		Trend:    map[string][]reports.TrendPoint{},
		Recent:   []models.PengajuanView{},
		Warnings: []string{},
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxQuery)
	c := &collector{d: d, g: g}

	switch p.Role {
	case roles.User:
		s.userTasks(gctx, c, p.UserID)
	case roles.Admin:
		s.adminTasks(gctx, c)
	case roles.KepalaBidang:
		s.kabidTasks(gctx, c)
	case roles.KepalaDinas:
		s.kadisTasks(gctx, c)
	default:
		return nil, p.require(roles.ViewAllPengajuan)
	}

	_ = g.Wait()
	return d, nil
}

func (s *DashboardService) countPengajuan(f repositories.PengajuanFilter) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) { return s.pengajuan.Count(ctx, f) }
}

func (s *DashboardService) countMonitoring(f repositories.MonitoringFilter) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) { return s.monitoring.Count(ctx, f) }
}

func (s *DashboardService) pengajuanStatuses(f repositories.PengajuanFilter, col string) func(context.Context) ([]*string, error) {
	return func(ctx context.Context) ([]*string, error) { return s.pengajuan.Statuses(ctx, f, col) }
}

func (s *DashboardService) listPengajuan(f repositories.PengajuanFilter) func(context.Context) ([]models.Pengajuan, error) {
	f.Limit = recentN
	return func(ctx context.Context) ([]models.Pengajuan, error) { return s.pengajuan.List(ctx, f) }
}

func (s *DashboardService) userTasks(ctx context.Context, c *collector, userID uint) {
	own := repositories.PengajuanFilter{UserID: userID}
	ownReports := repositories.MonitoringFilter{UserID: userID}

	c.count(ctx, "pengajuan_total", "jumlah pengajuan", s.countPengajuan(own))
	c.count(ctx, "monitoring_total", "jumlah laporan monitoring", s.countMonitoring(ownReports))
	c.status(ctx, "pengajuan_admin", "status verifikasi admin", adminStatuses(), s.pengajuanStatuses(own, colAdmin))
	c.status(ctx, "pengajuan_kabid", "status verifikasi kepala bidang", kabidStatuses(), s.pengajuanStatuses(own, colKabid))
	c.status(ctx, "monitoring", "status laporan monitoring", reportStatuses(), func(ctx context.Context) ([]*string, error) {
		return s.monitoring.Statuses(ctx, ownReports)
	})
	c.trend(ctx, "pengajuan", "tren pengajuan", func(ctx context.Context) ([]time.Time, error) {
		return s.pengajuan.CreatedAt(ctx, own)
	})
	c.recent(ctx, "pengajuan terbaru", s.listPengajuan(own))
}

func (s *DashboardService) adminTasks(ctx context.Context, c *collector) {
	all := repositories.PengajuanFilter{}

	c.count(ctx, "pengajuan_total", "jumlah pengajuan", s.countPengajuan(all))
	for _, st := range workflow.AdminStatuses {
		key := "pengajuan_" + statusKey(string(st))
		c.count(ctx, key, "jumlah pengajuan "+string(st), s.countPengajuan(repositories.PengajuanFilter{StatusVerifikasi: string(st)}))
	}
	c.count(ctx, "pengguna", "jumlah pengguna", func(ctx context.Context) (int64, error) {
		return s.users.CountByRole(ctx, string(roles.User))
	})
	c.count(ctx, "monitoring_total", "jumlah laporan monitoring", s.countMonitoring(repositories.MonitoringFilter{}))
	c.status(ctx, "pengajuan_admin", "status verifikasi admin", adminStatuses(), s.pengajuanStatuses(all, colAdmin))
	c.trend(ctx, "pengajuan", "tren pengajuan", func(ctx context.Context) ([]time.Time, error) {
		return s.pengajuan.CreatedAt(ctx, all)
	})
	c.recent(ctx, "pengajuan menunggu verifikasi", s.listPengajuan(repositories.PengajuanFilter{StatusVerifikasi: string(workflow.AdminMenunggu)}))
}

func (s *DashboardService) kabidTasks(ctx context.Context, c *collector) {
	inbox := repositories.PengajuanFilter{KabidInbox: true}
	final := repositories.MonitoringFilter{Status: string(workflow.KabidApprovedStatus)}

	c.count(ctx, "pengajuan_menunggu", "antrean persetujuan", s.countPengajuan(inbox))
	c.count(ctx, "pengajuan_disetujui", "jumlah pengajuan disetujui", s.countPengajuan(repositories.PengajuanFilter{KabidApproved: true}))
	c.count(ctx, "monitoring_menunggu", "laporan menunggu verifikasi", s.countMonitoring(repositories.MonitoringFilter{Status: string(workflow.ReportMenunggu)}))
	c.count(ctx, "laporan_akhir", "jumlah laporan akhir", s.countMonitoring(final))
	c.status(ctx, "pengajuan_kabid", "status verifikasi kepala bidang", kabidStatuses(),
		s.pengajuanStatuses(repositories.PengajuanFilter{StatusVerifikasi: string(workflow.AdminDiterima)}, colKabid))
	c.status(ctx, "monitoring", "status laporan monitoring", reportStatuses(), func(ctx context.Context) ([]*string, error) {
		return s.monitoring.Statuses(ctx, repositories.MonitoringFilter{})
	})
	c.trend(ctx, "pengajuan", "tren pengajuan", func(ctx context.Context) ([]time.Time, error) {
		return s.pengajuan.CreatedAt(ctx, repositories.PengajuanFilter{})
	})
	c.trend(ctx, "monitoring", "tren laporan monitoring", func(ctx context.Context) ([]time.Time, error) {
		return s.monitoring.CreatedAt(ctx, repositories.MonitoringFilter{})
	})
	c.recent(ctx, "antrean persetujuan", s.listPengajuan(inbox))
}

func (s *DashboardService) kadisTasks(ctx context.Context, c *collector) {
	final := repositories.MonitoringFilter{Status: string(workflow.KabidApprovedStatus)}

	c.count(ctx, "pengajuan_total", "jumlah pengajuan", s.countPengajuan(repositories.PengajuanFilter{}))
	c.count(ctx, "pengajuan_disetujui", "jumlah pengajuan disetujui", s.countPengajuan(repositories.PengajuanFilter{KabidApproved: true}))
	c.count(ctx, "laporan_akhir", "jumlah laporan akhir", s.countMonitoring(final))
	c.status(ctx, "pengajuan_kabid", "status verifikasi kepala bidang", kabidStatuses(),
		s.pengajuanStatuses(repositories.PengajuanFilter{StatusVerifikasi: string(workflow.AdminDiterima)}, colKabid))
	c.trend(ctx, "laporan_akhir", "tren laporan akhir", func(ctx context.Context) ([]time.Time, error) {
		return s.monitoring.CreatedAt(ctx, final)
	})

	c.mu.Lock()
	c.d.Totals = map[string]decimal.Decimal{"produksi_kg": decimal.Zero, "pendapatan": decimal.Zero}
	c.mu.Unlock()
	c.g.Go(func() error {
		rows, err := s.monitoring.List(ctx, final)
		if err != nil {
			c.warn("total produksi", err)
			return nil
		}
		kg, rp := decimal.Zero, decimal.Zero
		for _, m := range rows {
			kg = kg.Add(m.TotalKg())
			rp = rp.Add(m.TotalPendapatan())
		}
		c.mu.Lock()
		c.d.Totals["produksi_kg"] = kg
		c.d.Totals["pendapatan"] = rp
		c.mu.Unlock()
		return nil
	})
}

// statusKey: "Perlu Revisi" -> "perlu_revisi".
func statusKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}
