package constants

import "strings"

// Domisili adalah 17 kabupaten/kota di Provinsi Sumatera Selatan.
var Domisili = []string{
	"Banyuasin",
	"Empat Lawang",
	"Lahat",
	"Muara Enim",
	"Musi Banyuasin",
	"Musi Rawas",
	"Musi Rawas Utara",
	"Ogan Ilir",
	"Ogan Komering Ilir",
	"Ogan Komering Ulu",
	"Ogan Komering Ulu Selatan",
	"Ogan Komering Ulu Timur",
	"Penukal Abab Lematang Ilir",
	"Kota Lubuklinggau",
	"Kota Pagar Alam",
	"Kota Palembang",
	"Kota Prabumulih",
}

var domisiliIndex = func() map[string]string {
	m := make(map[string]string, len(Domisili))
	for _, d := range Domisili {
		m[strings.ToLower(d)] = d
	}
	return m
}()

// NormalizeDomisili mengembalikan ejaan baku dari nama daerah (tanpa membedakan huruf besar).
func NormalizeDomisili(s string) (string, bool) {
	d, ok := domisiliIndex[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

func IsDomisili(s string) bool {
	_, ok := NormalizeDomisili(s)
	return ok
}
