package constants

// BulanSingkat memakai singkatan bulan bahasa Indonesia, indeks 0 = Januari.
var BulanSingkat = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

var BulanPanjang = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// NamaBulan mengembalikan nama bulan 1..12, string kosong bila di luar rentang.
func NamaBulan(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return BulanPanjang[month-1]
}
