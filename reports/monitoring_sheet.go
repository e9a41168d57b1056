package reports

import (
	"fmt"

	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetMonitoring        = "Monitoring"
	monitoringHeaderTop    = 5
	monitoringHeaderBottom = 6
	monitoringFirstDataRow = 7
)

var monitoringParentCols = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "N"}

// BuildMonitoringWorkbook menulis satu baris per rincian produksi dengan
// subtotal per laporan dan satu total keseluruhan. Filter wilayah, KUB, dan
// periode sudah diterapkan pemanggil sebelum rows diberikan.
func BuildMonitoringWorkbook(rows []models.Monitoring, keterangan string) (*excelize.File, error) {
	w, err := newSheetWriter(SheetMonitoring)
	if err != nil {
		return nil, err
	}

	w.titles("N",
		"LAPORAN MONITORING HASIL TANGKAPAN NELAYAN PENERIMA BANTUAN",
		"DINAS KELAUTAN DAN PERIKANAN PROVINSI SUMATERA SELATAN",
		keterangan,
	)

	top, bottom := monitoringHeaderTop, monitoringHeaderBottom
	single := []struct {
		col   string
		label string
		width float64
	}{
		{"A", "No", 6},
		{"B", "Nama Anggota", 24},
		{"C", "KUB", 24},
		{"D", "Kabupaten/Kota", 20},
		{"E", "Bulan", 16},
		{"F", "Jumlah Trip", 10},
		{"I", "Daerah Penangkapan", 24},
		{"N", "Keterangan", 28},
	}
	for _, h := range single {
		w.set(h.col, top, h.label)
		w.merge(h.col, top, h.col, bottom)
		w.width(h.col, h.width)
	}

	w.set("G", top, "BBM")
	w.merge("G", top, "H", top)
	w.set("G", bottom, "Jenis")
	w.set("H", bottom, "Volume (L)")

	w.set("J", top, "Produksi")
	w.merge("J", top, "M", top)
	w.set("J", bottom, "Jenis Ikan")
	w.set("K", bottom, "Jumlah (Kg)")
	w.set("L", bottom, "Harga/Kg")
	w.set("M", bottom, "Total")

	for col, width := range map[string]float64{"G": 12, "H": 12, "J": 20, "K": 12, "L": 14, "M": 16} {
		w.width(col, width)
	}
	w.paint("A", top, "N", bottom, w.header)

	row := monitoringFirstDataRow
	// subtotal dan total dijumlahkan dari nilai float yang sama dengan sel baris
	grandKg, grandTotal := 0.0, 0.0

	for n, m := range rows {
		details := m.Produksi
		if len(details) == 0 {
			details = []models.MonitoringProduksi{{JenisIkan: "-"}}
		}

		namaKub := ""
		if m.Kub != nil {
			namaKub = m.Kub.NamaKub
		}

		start := row
		subKg, subTotal := 0.0, 0.0
		for j, d := range details {
			if j == 0 {
				w.set("A", row, n+1)
				w.set("B", row, m.NamaAnggota)
				w.set("C", row, namaKub)
				w.set("D", row, m.Domisili)
				w.set("E", row, fmt.Sprintf("%s %d", constants.NamaBulan(m.Bulan), m.Tahun))
				w.set("F", row, m.JumlahTrip)
				w.set("G", row, m.JenisBBM)
				w.set("H", row, m.VolumeBBM.InexactFloat64())
				w.set("I", row, m.DaerahPenangkapan)
				w.set("N", row, m.Keterangan)
			}
			w.set("J", row, d.JenisIkan)
			kg, total := d.JumlahKg.InexactFloat64(), d.Total().InexactFloat64()
			w.set("K", row, kg)
			w.set("L", row, d.HargaPerKg.InexactFloat64())
			w.set("M", row, total)
			subKg += kg
			subTotal += total
			grandKg += kg
			grandTotal += total
			row++
		}
		end := row - 1

		w.paint("A", start, "G", end, w.text)
		w.paint("H", start, "H", end, w.number)
		w.paint("I", start, "J", end, w.text)
		w.paint("K", start, "M", end, w.number)
		w.paint("N", start, "N", end, w.text)
		for _, col := range monitoringParentCols {
			w.merge(col, start, col, end)
		}

		w.set("A", row, "Subtotal")
		w.merge("A", row, "J", row)
		w.set("K", row, subKg)
		w.set("M", row, subTotal)
		w.paint("A", row, "N", row, w.total)
		row++
	}

	w.set("A", row, "TOTAL")
	w.merge("A", row, "J", row)
	w.set("K", row, grandKg)
	w.set("M", row, grandTotal)
	w.paint("A", row, "N", row, w.total)

	return w.finish()
}
