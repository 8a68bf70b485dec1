package handler

import (
	"net/http"

	"github.com/Dan9191/openbanqr/internal/service"
	"github.com/shopspring/decimal"
)

type transferRequest struct {
	FromAccountID int64           `json:"from_account_id" validate:"required,gt=0"`
	ToAccountID   int64           `json:"to_account_id" validate:"required,gt=0,nefield=FromAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" validate:"max=255"`
}

type loanRequest struct {
	LoanType     string          `json:"loan_type" validate:"required,oneof=student personal auto credit_card"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"term_months" validate:"gte=0,lte=600"`
}

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) ListAccountTransactions(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	limit := q.integer("limit", service.DefaultTransactionLimit)
	if q.err != nil {
		h.writeError(w, r, q.err)
		return
	}
	txs, err := h.svc.ListAccountTransactions(r.Context(), currentUser(r), pathID(r), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, txs)
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !h.decode(w, r, &req) {
		return
	}
	posted, err := h.svc.Transfer(r.Context(), currentUser(r), service.TransferInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"message": "Transfer completed", "transactions": posted})
}

func (h *Handler) CreditScore(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.CreditReport(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListLoans(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loans)
}

func (h *Handler) OpenLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !h.decode(w, r, &req) {
		return
	}
	loan, err := h.svc.OpenLoan(r.Context(), currentUser(r), service.LoanRequest{
		LoanType:     req.LoanType,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, loan)
}

// LoanCalculator prices a loan from query parameters without opening it
func (h *Handler) LoanCalculator(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	q.required("loan_amount", "annual_rate", "term_months")
	amount := q.dec("loan_amount", decimal.Zero)
	rate := q.dec("annual_rate", decimal.Zero)
	months := q.integer("term_months", 0)
	loanType := q.str("loan_type", "personal")
	if q.err != nil {
		h.writeError(w, r, q.err)
		return
	}
	quote, err := h.svc.QuoteLoan(amount, rate, months, loanType)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) PayLoan(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.PayLoan(r.Context(), currentUser(r), pathID(r), req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) FinancialSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.FinancialSummary(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	quote, err := h.svc.KeyRate(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quote)
}
