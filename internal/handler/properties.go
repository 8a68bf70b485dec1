package handler

import (
	"net/http"

	"github.com/Dan9191/openbanqr/internal/finance"
	"github.com/Dan9191/openbanqr/internal/service"
	"github.com/shopspring/decimal"
)

var (
	defaultPropertyTaxRate = decimal.RequireFromString("0.012")
	defaultInsuranceAnnual = decimal.NewFromInt(1200)
)

const defaultTermYears = 30

type mortgageRequest struct {
	HomePrice    decimal.Decimal `json:"home_price"`
	DownPayment  decimal.Decimal `json:"down_payment"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermYears    int             `json:"term_years" validate:"required,gt=0,lte=50"`
}

func (h *Handler) Affordability(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	q.required("annual_income")
	req := service.AffordabilityRequest{
		AnnualIncome:        q.dec("annual_income", decimal.Zero),
		MonthlyDebtPayments: q.dec("monthly_debt_payments", decimal.Zero),
		DownPayment:         q.dec("down_payment", decimal.Zero),
		InterestRate:        q.optDec("interest_rate"),
		TermYears:           q.integer("term_years", defaultTermYears),
	}
	if q.err != nil {
		h.writeError(w, r, q.err)
		return
	}
	res, err := h.svc.Affordability(r.Context(), currentUser(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) MortgageCalculator(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	q.required("home_price", "down_payment", "interest_rate")
	in := finance.MortgageInput{
		HomePrice:       q.dec("home_price", decimal.Zero),
		DownPayment:     q.dec("down_payment", decimal.Zero),
		InterestRate:    q.dec("interest_rate", decimal.Zero),
		TermYears:       q.integer("term_years", defaultTermYears),
		PropertyTaxRate: q.dec("property_tax_rate", defaultPropertyTaxRate),
		InsuranceAnnual: q.dec("insurance_annual", defaultInsuranceAnnual),
		HOAMonthly:      q.dec("hoa_monthly", decimal.Zero),
	}
	if q.err != nil {
		h.writeError(w, r, q.err)
		return
	}
	res, err := h.svc.MortgageCalculator(r.Context(), currentUser(r), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) MarketData(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	h.writeJSON(w, http.StatusOK, h.svc.MarketData(q.str("location", "National"), q.str("property_type", "single_family")))
}

func (h *Handler) Listings(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := finance.ListingFilter{
		MinPrice:     q.dec("min_price", decimal.Zero).IntPart(),
		MaxPrice:     q.dec("max_price", decimal.NewFromInt(1000000)).IntPart(),
		Bedrooms:     q.integer("bedrooms", 0),
		PropertyType: q.str("property_type", ""),
		Location:     q.str("location", "National"),
	}
	if q.err != nil {
		h.writeError(w, r, q.err)
		return
	}
	listings, err := h.svc.Listings(r.Context(), currentUser(r), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"listings": listings, "total_count": len(listings)})
}

// TakeMortgage buys a home with the caller's savings as the down payment
func (h *Handler) TakeMortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	if !h.decode(w, r, &req) {
		return
	}
	loan, err := h.svc.TakeMortgage(r.Context(), currentUser(r), service.MortgageRequest{
		HomePrice:    req.HomePrice,
		DownPayment:  req.DownPayment,
		InterestRate: req.InterestRate,
		TermYears:    req.TermYears,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, loan)
}
