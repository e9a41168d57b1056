package notify

import (
	"fmt"
	"html"
)

func PengajuanDecision(to, namaKub, tahap, status, catatan string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Pengajuan %s: %s", namaKub, status),
		Body:    decisionBody("Pengajuan bantuan sarana", namaKub, tahap, status, catatan),
	}
}

func MonitoringDecision(to, namaKub, periode, status, catatan string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Laporan monitoring %s: %s", periode, status),
		Body:    decisionBody("Laporan monitoring "+periode, namaKub, "Kepala Bidang", status, catatan),
	}
}

func decisionBody(judul, namaKub, tahap, status, catatan string) string {
	body := fmt.Sprintf(
		"<p>%s untuk <b>%s</b> telah diverifikasi oleh %s.</p><p>Status: <b>%s</b></p>",
		html.EscapeString(judul), html.EscapeString(namaKub), html.EscapeString(tahap), html.EscapeString(status),
	)
	if catatan != "" {
		body += fmt.Sprintf("<p>Catatan: %s</p>", html.EscapeString(catatan))
	}
	return body
}
