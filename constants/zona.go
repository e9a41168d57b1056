package constants

// Kategori wilayah tangkap pengajuan.
const (
	ZonaLaut         = "laut"
	ZonaPerairanUmum = "perairan_umum"
)

var zonaLabels = map[string]string{
	ZonaLaut:         "Laut",
	ZonaPerairanUmum: "Perairan Umum Daratan",
}

func IsZonaTangkap(s string) bool {
	_, ok := zonaLabels[s]
	return ok
}

func ZonaLabel(s string) string {
	if l, ok := zonaLabels[s]; ok {
		return l
	}
	return s
}

// Jabatan anggota KUB.
const (
	JabatanKetua   = "ketua"
	JabatanAnggota = "anggota"
)
