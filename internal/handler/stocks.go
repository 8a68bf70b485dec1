package handler

import (
	"fmt"
	"net/http"

	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/shopspring/decimal"
)

type tradeRequest struct {
	StockID       int64           `json:"stock_id" validate:"required,gt=0"`
	Shares        decimal.Decimal `json:"shares"`
	PricePerShare decimal.Decimal `json:"price_per_share"`
}

type priceRequest struct {
	Price decimal.Decimal `json:"price"`
}

func (h *Handler) ListStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.svc.ListStocks(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stocks)
}

func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.svc.GetStock(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stock)
}

// SetStockPrice lets a teacher move a stock to an exact price
func (h *Handler) SetStockPrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if !h.decode(w, r, &req) {
		return
	}
	stock, err := h.svc.SetStockPriceAsTeacher(r.Context(), currentUser(r), pathID(r), req.Price)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stock)
}

func (h *Handler) InitializeStocks(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.InitializeStocks(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// UpdatePrices moves every stock by one random-walk step
func (h *Handler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.RefreshPrices(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"message": fmt.Sprintf("Updated %d stock prices", n), "updated": n})
}

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.svc.GetPortfolio(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, portfolio)
}

func (h *Handler) BuyStock(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, models.TxBuy)
}

func (h *Handler) SellStock(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, models.TxSell)
}

func (h *Handler) trade(w http.ResponseWriter, r *http.Request, side string) {
	var req tradeRequest
	if !h.decode(w, r, &req) {
		return
	}
	tx, err := h.svc.TradeForUser(r.Context(), currentUser(r), side, req.StockID, req.Shares, req.PricePerShare)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}
