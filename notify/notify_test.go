package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPicksNopWithoutHost(t *testing.T) {
	m := New(SMTPConfig{})
	_, ok := m.(NopMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), Message{To: "a@b.c"}))

	_, ok = New(SMTPConfig{Host: "smtp.example.com", Port: 465}).(*SMTPMailer)
	assert.True(t, ok)
}

func TestSMTPMailerRejectsEmptyRecipient(t *testing.T) {
	err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 465}).Send(context.Background(), Message{})
	require.Error(t, err)
}

func TestPengajuanDecisionEscapesInput(t *testing.T) {
	msg := PengajuanDecision("u@x.id", "KUB <Bahari>", "Admin", "Perlu Revisi", "lengkapi & kirim ulang")
	assert.Equal(t, "u@x.id", msg.To)
	assert.Equal(t, "Pengajuan KUB <Bahari>: Perlu Revisi", msg.Subject)
	assert.Contains(t, msg.Body, "KUB &lt;Bahari&gt;")
	assert.Contains(t, msg.Body, "lengkapi &amp; kirim ulang")
}
