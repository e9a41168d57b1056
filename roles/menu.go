package roles

type Menu struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Items []Menu `json:"items,omitempty"`
}

var menus = map[Role][]Menu{
	User: {
		{Title: "Dashboard", URL: "/user/dashboard", Icon: "LayoutDashboard"},
		{Title: "Data KUB", URL: "/user/kub", Icon: "Users"},
		{Title: "Pengajuan", URL: "#", Icon: "FileText", Items: []Menu{
			{Title: "Buat Pengajuan", URL: "/user/pengajuan/tambah"},
			{Title: "Riwayat Pengajuan", URL: "/user/pengajuan"},
		}},
		{Title: "Monitoring", URL: "#", Icon: "Fish", Items: []Menu{
			{Title: "Input Laporan", URL: "/user/monitoring/tambah"},
			{Title: "Riwayat Laporan", URL: "/user/monitoring"},
		}},
	},
	Admin: {
		{Title: "Dashboard", URL: "/admin/dashboard", Icon: "LayoutDashboard"},
		{Title: "Verifikasi Pengajuan", URL: "/admin/pengajuan", Icon: "ClipboardCheck"},
		{Title: "Data Monitoring", URL: "/admin/monitoring", Icon: "Fish"},
		{Title: "Pengguna", URL: "/admin/users", Icon: "UserCog"},
	},
	KepalaBidang: {
		{Title: "Dashboard", URL: "/kepala-bidang/dashboard", Icon: "LayoutDashboard"},
		{Title: "Persetujuan Pengajuan", URL: "/kepala-bidang/pengajuan", Icon: "ClipboardCheck"},
		{Title: "Verifikasi Monitoring", URL: "/kepala-bidang/monitoring", Icon: "Fish"},
		{Title: "Laporan Akhir", URL: "/kepala-bidang/laporan-akhir", Icon: "FileSpreadsheet"},
	},
	KepalaDinas: {
		{Title: "Dashboard", URL: "/kepala-dinas/dashboard", Icon: "LayoutDashboard"},
		{Title: "Rekap Pengajuan", URL: "/kepala-dinas/pengajuan", Icon: "FileText"},
		{Title: "Laporan Akhir", URL: "/kepala-dinas/laporan-akhir", Icon: "FileSpreadsheet"},
	},
}

func (r Role) Menus() []Menu {
	return menus[r]
}
