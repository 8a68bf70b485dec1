package notify

import (
	"context"
	"errors"
	"io"
	"net/smtp"
	"testing"

	"github.com/Dan9191/openbanqr/internal/config"
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSender(send sendFunc) *Sender {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: "587", SenderEmail: "noreply@example.com"}, log)
	s.send = send
	return s
}

func week() *models.WeeklySimulationResult {
	d := decimal.RequireFromString
	return &models.WeeklySimulationResult{
		GrossIncome: d("1250"), Tax: d("240.77"), LoanPayment: d("97.32"),
		HousingCost: d("300"), OtherExpenses: d("200"), Remaining: d("411.91"),
		NewSavingsBalance: d("411.91"), NewLoanBalance: d("34902.68"), WeeksPlayed: 3,
		Events: []models.TriggeredEvent{{Title: "Parking ticket", Amount: d("-45")}},
	}
}

func TestWeeklyStatement(t *testing.T) {
	var (
		sent *email.Email
		addr string
	)
	s := newSender(func(e *email.Email, a string, _ smtp.Auth) error {
		sent, addr = e, a
		return nil
	})

	user := &models.User{Email: "alice@example.com", Username: "alice"}
	require.NoError(t, s.WeeklyStatement(context.Background(), user, week()))

	require.NotNil(t, sent)
	assert.Equal(t, "smtp.example.com:587", addr)
	assert.Equal(t, []string{"alice@example.com"}, sent.To)
	assert.Equal(t, "Your week 3 statement", sent.Subject)
	body := string(sent.Text)
	assert.Contains(t, body, "Dear alice")
	assert.Contains(t, body, "240.77")
	assert.Contains(t, body, "Parking ticket")
	assert.Contains(t, body, "34902.68")
}

func TestWeeklyStatementFailure(t *testing.T) {
	s := newSender(func(*email.Email, string, smtp.Auth) error { return errors.New("connection refused") })
	err := s.WeeklyStatement(context.Background(), &models.User{Email: "a@example.com"}, week())
	assert.ErrorContains(t, err, "connection refused")
}
