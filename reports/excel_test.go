package reports

import (
	"strconv"
	"testing"

	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func raw(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func num(t *testing.T, f *excelize.File, sheet, axis string) float64 {
	t.Helper()
	v := raw(t, f, sheet, axis)
	n, err := strconv.ParseFloat(v, 64)
	require.NoError(t, err, "cell %s = %q", axis, v)
	return n
}

func merges(t *testing.T, f *excelize.File, sheet string) map[string]bool {
	t.Helper()
	mc, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	out := map[string]bool{}
	for _, m := range mc {
		out[m.GetStartAxis()+":"+m.GetEndAxis()] = true
	}
	return out
}

func samplePengajuan() []models.Pengajuan {
	kub := &models.Kub{
		NamaKub:  "KUB Bahari Jaya",
		Alamat:   "Jl. Dermaga 1",
		Domisili: "Banyuasin",
		Anggota: []models.KubAnggota{
			{Nama: "Rahmat", Jabatan: "anggota"},
			{Nama: "Sulaiman", Jabatan: "ketua"},
		},
	}
	return []models.Pengajuan{
		{
			Kub:              kub,
			DokumenPendukung: "proposal.pdf",
			Items: []models.PengajuanItem{
				{NamaAlat: "Jaring Insang", Jumlah: 2, TotalHarga: decimal.NewFromInt(3000000)},
				{NamaAlat: "Mesin Tempel", Jumlah: 1, TotalHarga: decimal.NewFromInt(7000000)},
			},
		},
		{Kub: &models.Kub{NamaKub: "KUB Sungsang", Domisili: "Banyuasin"}},
	}
}

func TestBuildPengajuanWorkbookLayout(t *testing.T) {
	f, err := BuildPengajuanWorkbook(samplePengajuan(), "Periode: Maret 2024")
	require.NoError(t, err)
	defer f.Close()

	s := SheetPengajuan
	assert.Equal(t, "No", raw(t, f, s, "A5"))
	assert.Equal(t, "Dokumen", raw(t, f, s, "I5"))
	assert.Equal(t, "Periode: Maret 2024", raw(t, f, s, "A3"))

	assert.Equal(t, "1", raw(t, f, s, "A6"))
	assert.Equal(t, "Banyuasin", raw(t, f, s, "B6"))
	assert.Equal(t, "Sulaiman", raw(t, f, s, "E6"))
	assert.Equal(t, "Jaring Insang", raw(t, f, s, "F6"))
	assert.Equal(t, "Mesin Tempel", raw(t, f, s, "F7"))

	m := merges(t, f, s)
	assert.True(t, m["A1:I1"])
	assert.True(t, m["A6:A7"])
	assert.True(t, m["C6:C7"])
	assert.True(t, m["I6:I7"])
	assert.False(t, m["F6:F7"])
}

func TestBuildPengajuanWorkbookPlaceholderRow(t *testing.T) {
	f, err := BuildPengajuanWorkbook(samplePengajuan(), "")
	require.NoError(t, err)
	defer f.Close()

	s := SheetPengajuan
	assert.Equal(t, "2", raw(t, f, s, "A8"))
	assert.Equal(t, "KUB Sungsang", raw(t, f, s, "C8"))
	assert.Equal(t, 0.0, num(t, f, s, "G8"))
	assert.Equal(t, 0.0, num(t, f, s, "H8"))
	assert.Equal(t, "TOTAL", raw(t, f, s, "A9"))
}

func TestBuildPengajuanWorkbookGrandTotalMatchesRows(t *testing.T) {
	f, err := BuildPengajuanWorkbook(samplePengajuan(), "")
	require.NoError(t, err)
	defer f.Close()

	s := SheetPengajuan
	var jumlah, harga float64
	for row := pengajuanFirstDataRow; row <= 8; row++ {
		jumlah += num(t, f, s, cell("G", row))
		harga += num(t, f, s, cell("H", row))
	}
	assert.Equal(t, jumlah, num(t, f, s, "G9"))
	assert.Equal(t, harga, num(t, f, s, "H9"))
	assert.Equal(t, 10000000.0, harga)
	assert.True(t, merges(t, f, s)["A9:F9"])
}

func TestBuildPengajuanWorkbookEmpty(t *testing.T) {
	f, err := BuildPengajuanWorkbook(nil, "")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "TOTAL", raw(t, f, SheetPengajuan, "A6"))
	assert.Equal(t, 0.0, num(t, f, SheetPengajuan, "H6"))
}

func TestBuildMonitoringWorkbook(t *testing.T) {
	rows := []models.Monitoring{
		{
			Kub:         &models.Kub{NamaKub: "KUB Bahari Jaya"},
			NamaAnggota: "Sulaiman",
			Domisili:    "Banyuasin",
			Bulan:       3,
			Tahun:       2024,
			JumlahTrip:  12,
			JenisBBM:    "Solar",
			VolumeBBM:   decimal.NewFromInt(200),
			Produksi: []models.MonitoringProduksi{
				{JenisIkan: "Tongkol", JumlahKg: decimal.NewFromInt(10), HargaPerKg: decimal.NewFromInt(1000)},
				{JenisIkan: "Udang", JumlahKg: decimal.NewFromInt(5), HargaPerKg: decimal.NewFromInt(2000)},
			},
		},
		{NamaAnggota: "Rahmat", Bulan: 4, Tahun: 2024},
	}

	f, err := BuildMonitoringWorkbook(rows, "")
	require.NoError(t, err)
	defer f.Close()

	s := SheetMonitoring
	m := merges(t, f, s)
	assert.True(t, m["A1:N1"])
	assert.True(t, m["G5:H5"])
	assert.True(t, m["J5:M5"])
	assert.True(t, m["A5:A6"])
	assert.True(t, m["B7:B8"])

	assert.Equal(t, "BBM", raw(t, f, s, "G5"))
	assert.Equal(t, "Jenis Ikan", raw(t, f, s, "J6"))
	assert.Equal(t, "Maret 2024", raw(t, f, s, "E7"))
	assert.Equal(t, 10000.0, num(t, f, s, "M7"))
	assert.Equal(t, 10000.0, num(t, f, s, "M8"))

	assert.Equal(t, "Subtotal", raw(t, f, s, "A9"))
	assert.Equal(t, 15.0, num(t, f, s, "K9"))
	assert.Equal(t, 20000.0, num(t, f, s, "M9"))

	assert.Equal(t, "Rahmat", raw(t, f, s, "B10"))
	assert.Equal(t, 0.0, num(t, f, s, "K10"))
	assert.Equal(t, "Subtotal", raw(t, f, s, "A11"))

	assert.Equal(t, "TOTAL", raw(t, f, s, "A12"))
	assert.Equal(t, 15.0, num(t, f, s, "K12"))
	assert.Equal(t, 20000.0, num(t, f, s, "M12"))
}

func TestBuildPengajuanWorkbookFractionalGrandTotal(t *testing.T) {
	rows := []models.Pengajuan{
		{Kub: &models.Kub{NamaKub: "KUB Pecahan"}, Items: []models.PengajuanItem{
			{NamaAlat: "Pelampung", Jumlah: 1, TotalHarga: decimal.RequireFromString("0.10")},
			{NamaAlat: "Tali", Jumlah: 1, TotalHarga: decimal.RequireFromString("0.20")},
		}},
	}
	f, err := BuildPengajuanWorkbook(rows, "")
	require.NoError(t, err)
	defer f.Close()

	s := SheetPengajuan
	sum := num(t, f, s, "H6") + num(t, f, s, "H7")
	assert.Equal(t, sum, num(t, f, s, "H8"))
	assert.Equal(t, "TOTAL", raw(t, f, s, "A8"))
}

func TestBuildMonitoringWorkbookFractionalTotals(t *testing.T) {
	rows := []models.Monitoring{
		{NamaAnggota: "Sulaiman", Bulan: 3, Tahun: 2024, Produksi: []models.MonitoringProduksi{
			{JenisIkan: "Teri", JumlahKg: decimal.RequireFromString("0.1"), HargaPerKg: decimal.NewFromInt(1)},
			{JenisIkan: "Udang", JumlahKg: decimal.RequireFromString("0.2"), HargaPerKg: decimal.NewFromInt(1)},
		}},
		{NamaAnggota: "Rahmat", Bulan: 3, Tahun: 2024, Produksi: []models.MonitoringProduksi{
			{JenisIkan: "Tongkol", JumlahKg: decimal.RequireFromString("0.3"), HargaPerKg: decimal.RequireFromString("0.7")},
		}},
	}
	f, err := BuildMonitoringWorkbook(rows, "")
	require.NoError(t, err)
	defer f.Close()

	s := SheetMonitoring
	// baris 7-8 rincian, 9 subtotal, 10 rincian, 11 subtotal, 12 total
	assert.Equal(t, num(t, f, s, "K7")+num(t, f, s, "K8"), num(t, f, s, "K9"))
	assert.Equal(t, num(t, f, s, "M7")+num(t, f, s, "M8"), num(t, f, s, "M9"))

	var kg, total float64
	for _, r := range []int{7, 8, 10} {
		kg += num(t, f, s, cell("K", r))
		total += num(t, f, s, cell("M", r))
	}
	assert.Equal(t, "TOTAL", raw(t, f, s, "A12"))
	assert.Equal(t, kg, num(t, f, s, "K12"))
	assert.Equal(t, total, num(t, f, s, "M12"))
}
