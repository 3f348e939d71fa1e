package report

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// System parameter keys read at the start of every run
const (
	ParamRecipientEmail   = "licence_expiration_report.recipient_email"
	ParamSenderEmail      = "licence_expiration_report.sender_email"
	ParamCCEmail          = "licence_expiration_report.cc_email"
	ParamReplyToEmail     = "licence_expiration_report.reply_to_email"
	ParamTimeCheckpoints  = "licence_expiration_report.time_checkpoints"
	ParamEmailCompanyName = "licence_expiration_report.email_company_name"
)

// ParamStore reads resolved configuration values from the system of record
type ParamStore interface {
	Get(key string) (string, error)
}

// Renderer turns an assembled report into a spreadsheet file
type Renderer interface {
	Render(rep *Report) ([]byte, error)
}

// Delivery carries everything the mail collaborator needs to dispatch one
// report email
type Delivery struct {
	To          string // comma-separated
	From        string
	CC          string // comma-separated, may be empty
	ReplyTo     string // may be empty
	CompanyName string
	Date        time.Time
	Attachment  []byte
}

// Sender dispatches the report email
type Sender interface {
	Send(delivery Delivery) error
}

// TaskRequester requests an idempotent follow-up task for one match
type TaskRequester interface {
	RequestForMatch(today time.Time, match *LineMatch) error
}

// Runner executes one synchronous report pass: configuration, assembly,
// rendering, email, reminders
type Runner struct {
	params    ParamStore
	builder   *Builder
	renderer  Renderer
	sender    Sender
	requester TaskRequester
	logger    *zap.Logger
	now       func() time.Time
}

// NewRunner creates a new report runner
func NewRunner(
	params ParamStore,
	builder *Builder,
	renderer Renderer,
	sender Sender,
	requester TaskRequester,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		params:    params,
		builder:   builder,
		renderer:  renderer,
		sender:    sender,
		requester: requester,
		logger:    logger,
		now:       time.Now,
	}
}

// Run performs one full report pass. Mail and task failures are logged and
// swallowed; only configuration reads, report assembly, and rendering can
// fail the run.
func (r *Runner) Run() error {
	today := dateOnly(r.now())

	rawCheckpoints, err := r.params.Get(ParamTimeCheckpoints)
	if err != nil {
		return err
	}

	checkpoints := ParseCheckpoints(rawCheckpoints)
	if len(checkpoints) == 0 {
		r.logger.Info("No time checkpoints configured, nothing to report")
		return nil
	}

	rep, matches, err := r.builder.Build(today, checkpoints)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if rep.Empty() {
		r.logger.Info("No expiring licences found, skipping report",
			zap.Ints("checkpoints", checkpoints))
		return nil
	}

	data, err := r.renderer.Render(rep)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	r.sendEmail(today, data)

	for _, match := range matches {
		if err := r.requester.RequestForMatch(today, match); err != nil {
			r.logger.Error("Failed to request follow-up task",
				zap.Int64("invoice_line_id", match.Line.ID),
				zap.Error(err))
		}
	}

	r.logger.Info("Licence expiration report completed",
		zap.Int("products", len(rep.Blocks)),
		zap.Int("matches", len(matches)))

	return nil
}

// sendEmail dispatches the report; a transport failure is logged and never
// propagated to the caller
func (r *Runner) sendEmail(today time.Time, attachment []byte) {
	recipient, err := r.params.Get(ParamRecipientEmail)
	if err != nil {
		r.logger.Error("Failed to read recipient email", zap.Error(err))
		return
	}
	sender, err := r.params.Get(ParamSenderEmail)
	if err != nil {
		r.logger.Error("Failed to read sender email", zap.Error(err))
		return
	}
	if recipient == "" || sender == "" {
		r.logger.Warn("Recipient or sender email not configured, skipping email")
		return
	}

	cc, _ := r.params.Get(ParamCCEmail)
	replyTo, _ := r.params.Get(ParamReplyToEmail)
	company, _ := r.params.Get(ParamEmailCompanyName)

	delivery := Delivery{
		To:          recipient,
		From:        sender,
		CC:          cc,
		ReplyTo:     replyTo,
		CompanyName: company,
		Date:        today,
		Attachment:  attachment,
	}

	if err := r.sender.Send(delivery); err != nil {
		r.logger.Error("Failed to send report email", zap.Error(err))
	}
}
