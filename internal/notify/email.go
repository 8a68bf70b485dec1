package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/openbanqr/internal/config"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// sendFunc delivers a built message; replaced in tests
type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

func smtpSend(e *email.Email, addr string, auth smtp.Auth) error {
	return e.Send(addr, auth)
}

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   sendFunc
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send:   smtpSend,
	}
}

// WeeklyStatement emails the student a summary of the week just simulated
func (s *Sender) WeeklyStatement(ctx context.Context, user *models.User, r *models.WeeklySimulationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{user.Email}
	e.Subject = fmt.Sprintf("Your week %d statement", r.WeeksPlayed)
	e.Text = []byte(statementBody(user, r))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send weekly statement to %s: %v", user.Email, err)
		return fmt.Errorf("failed to send weekly statement: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", user.Email, e.Subject)
	return nil
}

func statementBody(user *models.User, r *models.WeeklySimulationResult) string {
	name := user.FullName
	if name == "" {
		name = user.Username
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Here is what happened in week %d.\n\n", r.WeeksPlayed)
	fmt.Fprintf(&b, "Gross income:         %s\n", r.GrossIncome.StringFixed(2))
	fmt.Fprintf(&b, "Tax:                  -%s\n", r.Tax.StringFixed(2))
	if r.LoanPayment.IsPositive() {
		fmt.Fprintf(&b, "Student loan:         -%s\n", r.LoanPayment.StringFixed(2))
	}
	fmt.Fprintf(&b, "Housing:              -%s\n", r.HousingCost.StringFixed(2))
	fmt.Fprintf(&b, "Other expenses:       -%s\n", r.OtherExpenses.StringFixed(2))
	for _, ev := range r.Events {
		fmt.Fprintf(&b, "Event (%s):  %s\n", ev.Title, ev.Amount.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nLeft over this week:  %s\n", r.Remaining.StringFixed(2))
	fmt.Fprintf(&b, "Savings balance:      %s\n", r.NewSavingsBalance.StringFixed(2))
	if r.NewLoanBalance.IsPositive() {
		fmt.Fprintf(&b, "Student loan balance: %s\n", r.NewLoanBalance.StringFixed(2))
	}
	b.WriteString("\nBest regards,\nOpenBanqr")
	return b.String()
}
