package email

import (
	"testing"
	"time"

	"github.com/jtrs/licence-expiration-report/internal/report"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSubject(t *testing.T) {
	delivery := report.Delivery{Date: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Licence Expiration Report (01/09/26)", Subject(delivery))
}

func TestAttachmentName(t *testing.T) {
	subject := "Licence Expiration Report (01/09/26)"
	assert.Equal(t, "Licence_Expiration_Report__01_09_26_.xlsx", AttachmentName(subject))
}

func TestBody(t *testing.T) {
	t.Run("includes the configured company name", func(t *testing.T) {
		html := body("JTRS Ltd")
		assert.Contains(t, html, "JTRS Ltd")
		assert.Contains(t, html, "Please find attached a Licence Expiration Report.")
	})

	t.Run("falls back when no company is configured", func(t *testing.T) {
		html := body("")
		assert.Contains(t, html, "Kind regards,")
	})
}

func TestSend_RejectsBadAddressing(t *testing.T) {
	sender := NewSender(Config{Host: "localhost", Port: 2525}, zap.NewNop())

	t.Run("no recipients", func(t *testing.T) {
		err := sender.Send(report.Delivery{From: "odoo@example.com"})
		assert.Error(t, err)
	})

	t.Run("malformed recipient", func(t *testing.T) {
		err := sender.Send(report.Delivery{To: "not-an-address", From: "odoo@example.com"})
		assert.Error(t, err)
	})
}
