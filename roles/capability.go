package roles

type Capability string

const (
	ManageKub            Capability = "manage_kub"
	SubmitPengajuan      Capability = "submit_pengajuan"
	VerifyPengajuanAdmin Capability = "verify_pengajuan_admin"
	VerifyPengajuanKabid Capability = "verify_pengajuan_kabid"
	RecordBAST           Capability = "record_bast"
	SubmitMonitoring     Capability = "submit_monitoring"
	VerifyMonitoring     Capability = "verify_monitoring"
	ViewAllPengajuan     Capability = "view_all_pengajuan"
	ViewAllMonitoring    Capability = "view_all_monitoring"
	ViewFinalReport      Capability = "view_final_report"
	ExportPengajuan      Capability = "export_pengajuan"
	ExportMonitoring     Capability = "export_monitoring"
	ManageUsers          Capability = "manage_users"
)

var capabilities = map[Role][]Capability{
	User: {
		ManageKub,
		SubmitPengajuan,
		SubmitMonitoring,
	},
	Admin: {
		VerifyPengajuanAdmin,
		RecordBAST,
		ViewAllPengajuan,
		ViewAllMonitoring,
		ExportPengajuan,
		ManageUsers,
	},
	KepalaBidang: {
		VerifyPengajuanKabid,
		VerifyMonitoring,
		ViewAllPengajuan,
		ViewAllMonitoring,
		ViewFinalReport,
		ExportPengajuan,
		ExportMonitoring,
	},
	KepalaDinas: {
		ViewAllPengajuan,
		ViewAllMonitoring,
		ViewFinalReport,
		ExportPengajuan,
		ExportMonitoring,
	},
}

func (r Role) Can(c Capability) bool {
	for _, have := range capabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// Capabilities mengembalikan salinan daftar kapabilitas peran.
func (r Role) Capabilities() []Capability {
	return append([]Capability(nil), capabilities[r]...)
}
