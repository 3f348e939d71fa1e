package email

import (
	"fmt"
	"io"
	"regexp"

	"github.com/jtrs/licence-expiration-report/internal/report"
	"github.com/jtrs/licence-expiration-report/pkg/utils"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const subjectPrefix = "Licence Expiration Report"

// Characters not welcome in attachment filenames
var attachmentNameUnsafe = regexp.MustCompile(`[() /]`)

// Config holds SMTP transport settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Sender delivers the rendered report by email
type Sender struct {
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSender creates a new SMTP sender
func NewSender(cfg Config, logger *zap.Logger) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// Subject builds the dated report subject, e.g.
// "Licence Expiration Report (02/09/26)"
func Subject(delivery report.Delivery) string {
	return fmt.Sprintf("%s (%s)", subjectPrefix, delivery.Date.Format("02/01/06"))
}

// AttachmentName derives the spreadsheet filename from the subject,
// replacing parentheses, spaces, and slashes with underscores
func AttachmentName(subject string) string {
	return attachmentNameUnsafe.ReplaceAllString(subject+".xlsx", "_")
}

// Send dispatches the report with the spreadsheet attached
func (s *Sender) Send(delivery report.Delivery) error {
	to := utils.SplitAddressList(delivery.To)
	if len(to) == 0 {
		return fmt.Errorf("no recipient addresses")
	}
	for _, addr := range to {
		if err := utils.ValidateEmail(addr); err != nil {
			return fmt.Errorf("bad recipient address: %w", err)
		}
	}

	subject := Subject(delivery)

	m := gomail.NewMessage()
	m.SetHeader("From", delivery.From)
	m.SetHeader("To", to...)
	if cc := utils.SplitAddressList(delivery.CC); len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	if delivery.ReplyTo != "" {
		m.SetHeader("Reply-To", delivery.ReplyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body(delivery.CompanyName))

	m.Attach(AttachmentName(subject), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(delivery.Attachment)
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send report email",
			zap.String("to", delivery.To),
			zap.Error(err))
		return fmt.Errorf("failed to send report email: %w", err)
	}

	s.logger.Info("Report email sent",
		zap.String("to", delivery.To),
		zap.String("subject", subject))
	return nil
}

// body renders the fixed HTML template around the configured company name
func body(companyName string) string {
	if companyName == "" {
		companyName = subjectPrefix
	}

	return fmt.Sprintf(`
<div style="background:#F0F0F0;color:#515166;padding:10px 0px;font-family:Arial,Helvetica,sans-serif;font-size:12px;">
    <table style="background-color:transparent;width:600px;margin:0px auto;background:white;border:1px solid #e1e1e1;">
        <tbody>
            <tr>
                <td style="padding:15px 20px 10px 20px;">
                    <p>Hi,</p>
                    <br/>
                    <p>Please find attached a %s.</p>
                    <br/>
                    <p style="padding-top:20px;">Kind regards,</p>
                    <p>%s</p>
                </td>
            </tr>
        </tbody>
    </table>
</div>
`, subjectPrefix, companyName)
}
