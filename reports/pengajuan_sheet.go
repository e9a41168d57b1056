package reports

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetPengajuan        = "Pengajuan"
	pengajuanHeaderRow    = 5
	pengajuanFirstDataRow = 6
)

var pengajuanHeaders = []struct {
	col   string
	label string
	width float64
}{
	{"A", "No", 6},
	{"B", "Kabupaten/Kota", 22},
	{"C", "Nama KUB", 28},
	{"D", "Alamat", 34},
	{"E", "Nama Ketua", 24},
	{"F", "Nama Alat", 30},
	{"G", "Jumlah", 10},
	{"H", "Total Harga", 18},
	{"I", "Dokumen", 30},
}

// kolom induk yang digabung vertikal untuk semua baris alat satu pengajuan
var pengajuanParentCols = []string{"A", "B", "C", "D", "E", "I"}

// BuildPengajuanWorkbook menulis satu baris per alat. Data induk hanya diisi di
// baris pertama setiap pengajuan; pengajuan tanpa alat tetap mendapat satu
// baris bernilai nol. Baris terakhir adalah total keseluruhan.
func BuildPengajuanWorkbook(rows []models.Pengajuan, keterangan string) (*excelize.File, error) {
	w, err := newSheetWriter(SheetPengajuan)
	if err != nil {
		return nil, err
	}

	w.titles("I",
		"REKAP PENGAJUAN BANTUAN SARANA PERIKANAN TANGKAP",
		"DINAS KELAUTAN DAN PERIKANAN PROVINSI SUMATERA SELATAN",
		keterangan,
	)

	for _, h := range pengajuanHeaders {
		w.set(h.col, pengajuanHeaderRow, h.label)
		w.width(h.col, h.width)
	}
	w.paint("A", pengajuanHeaderRow, "I", pengajuanHeaderRow, w.header)

	row := pengajuanFirstDataRow
	totalJumlah := 0
	// total dijumlahkan dari nilai float yang sama dengan sel baris
	totalHarga := 0.0

	for n, p := range rows {
		items := p.Items
		if len(items) == 0 {
			items = []models.PengajuanItem{{NamaAlat: "-", TotalHarga: decimal.Zero}}
		}

		var domisili, namaKub, alamat, ketua string
		if p.Kub != nil {
			domisili = p.Kub.Domisili
			namaKub = p.Kub.NamaKub
			alamat = p.Kub.Alamat
			ketua = p.Kub.NamaKetua()
		}

		start := row
		for j, it := range items {
			if j == 0 {
				w.set("A", row, n+1)
				w.set("B", row, domisili)
				w.set("C", row, namaKub)
				w.set("D", row, alamat)
				w.set("E", row, ketua)
				w.set("I", row, p.DokumenPendukung)
			}
			w.set("F", row, it.NamaAlat)
			w.set("G", row, it.Jumlah)
			harga := it.TotalHarga.InexactFloat64()
			w.set("H", row, harga)

			totalJumlah += it.Jumlah
			totalHarga += harga
			row++
		}
		end := row - 1

		w.paint("A", start, "F", end, w.text)
		w.paint("G", start, "H", end, w.number)
		w.paint("I", start, "I", end, w.text)
		for _, col := range pengajuanParentCols {
			w.merge(col, start, col, end)
		}
	}

	w.set("A", row, "TOTAL")
	w.merge("A", row, "F", row)
	w.set("G", row, totalJumlah)
	w.set("H", row, totalHarga)
	w.paint("A", row, "I", row, w.total)

	return w.finish()
}
