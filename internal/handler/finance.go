package handler

import (
	"net/http"

	"github.com/Dan9191/openbanqr/internal/service"
	"github.com/shopspring/decimal"
)

type updateProfileRequest struct {
	CareerID          *int64           `json:"career_id" validate:"omitempty,gt=0"`
	CurrentSalary     *decimal.Decimal `json:"current_salary"`
	HousingType       *string          `json:"housing_type" validate:"omitempty,oneof=renting mortgage owned"`
	HousingWeeklyCost *decimal.Decimal `json:"housing_weekly_cost"`
	WeeklyExpenses    *decimal.Decimal `json:"weekly_expenses"`
}

type transactionRequest struct {
	TransactionType string          `json:"transaction_type" validate:"required,max=50"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"max=50"`
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetProfile(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}
	profile, err := h.svc.UpdateProfile(r.Context(), currentUser(r), service.ProfileUpdate{
		CareerID:          req.CareerID,
		CurrentSalary:     req.CurrentSalary,
		HousingType:       req.HousingType,
		HousingWeeklyCost: req.HousingWeeklyCost,
		WeeklyExpenses:    req.WeeklyExpenses,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

// SimulateWeek advances the caller's simulation by one week
func (h *Handler) SimulateWeek(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.AdvanceWeekForUser(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	limit := q.integer("limit", service.DefaultTransactionLimit)
	if q.err != nil {
		h.writeError(w, r, q.err)
		return
	}
	txs, err := h.svc.ListTransactions(r.Context(), currentUser(r), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, txs)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !h.decode(w, r, &req) {
		return
	}
	tx, err := h.svc.CreateTransaction(r.Context(), currentUser(r), service.TransactionInput{
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tx)
}
