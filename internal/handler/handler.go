package handler

import (
	"net/http"

	"github.com/Dan9191/openbanqr/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes registers the public and authenticated API on r
func (h *Handler) Routes(r *mux.Router, auth mux.MiddlewareFunc) {
	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	// Public routes
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	// Protected routes
	p := api.NewRoute().Subrouter()
	p.Use(auth)

	p.HandleFunc("/users/me", h.GetMe).Methods(http.MethodGet)
	p.HandleFunc("/users/me", h.UpdateMe).Methods(http.MethodPut)
	p.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	p.HandleFunc("/users/{id:[0-9]+}", h.GetUser).Methods(http.MethodGet)

	p.HandleFunc("/classrooms", h.CreateClassroom).Methods(http.MethodPost)
	p.HandleFunc("/classrooms", h.ListClassrooms).Methods(http.MethodGet)
	p.HandleFunc("/classrooms/{id:[0-9]+}", h.GetClassroom).Methods(http.MethodGet)
	p.HandleFunc("/classrooms/join/{code}", h.JoinClassroom).Methods(http.MethodPost)
	p.HandleFunc("/classrooms/{id:[0-9]+}", h.UpdateClassroom).Methods(http.MethodPut)
	p.HandleFunc("/classrooms/{id:[0-9]+}", h.DeleteClassroom).Methods(http.MethodDelete)

	p.HandleFunc("/careers", h.ListCareers).Methods(http.MethodGet)
	p.HandleFunc("/careers", h.CreateCareer).Methods(http.MethodPost)
	p.HandleFunc("/careers/{id:[0-9]+}", h.GetCareer).Methods(http.MethodGet)
	p.HandleFunc("/careers/apply", h.ApplyForCareer).Methods(http.MethodPost)
	p.HandleFunc("/careers/applications/me", h.ListApplications).Methods(http.MethodGet)

	p.HandleFunc("/finance/profile", h.GetProfile).Methods(http.MethodGet)
	p.HandleFunc("/finance/profile", h.UpdateProfile).Methods(http.MethodPut)
	p.HandleFunc("/finance/simulate-week", h.SimulateWeek).Methods(http.MethodPost)
	p.HandleFunc("/finance/transactions", h.ListTransactions).Methods(http.MethodGet)
	p.HandleFunc("/finance/transactions", h.CreateTransaction).Methods(http.MethodPost)

	p.HandleFunc("/stocks", h.ListStocks).Methods(http.MethodGet)
	p.HandleFunc("/stocks/{id:[0-9]+}", h.GetStock).Methods(http.MethodGet)
	p.HandleFunc("/stocks/{id:[0-9]+}/price", h.SetStockPrice).Methods(http.MethodPut)
	p.HandleFunc("/stocks/initialize", h.InitializeStocks).Methods(http.MethodPost)
	p.HandleFunc("/stocks/update-prices", h.UpdatePrices).Methods(http.MethodPost)
	p.HandleFunc("/stocks/portfolio/me", h.GetPortfolio).Methods(http.MethodGet)
	p.HandleFunc("/stocks/buy", h.BuyStock).Methods(http.MethodPost)
	p.HandleFunc("/stocks/sell", h.SellStock).Methods(http.MethodPost)

	p.HandleFunc("/properties/affordability", h.Affordability).Methods(http.MethodGet)
	p.HandleFunc("/properties/mortgage-calculator", h.MortgageCalculator).Methods(http.MethodGet)
	p.HandleFunc("/properties/market-data", h.MarketData).Methods(http.MethodGet)
	p.HandleFunc("/properties/listings", h.Listings).Methods(http.MethodGet)
	p.HandleFunc("/properties/mortgage", h.TakeMortgage).Methods(http.MethodPost)

	p.HandleFunc("/banking/accounts", h.ListAccounts).Methods(http.MethodGet)
	p.HandleFunc("/banking/accounts/{id:[0-9]+}/transactions", h.ListAccountTransactions).Methods(http.MethodGet)
	p.HandleFunc("/banking/transfer", h.Transfer).Methods(http.MethodPost)
	p.HandleFunc("/banking/credit-score", h.CreditScore).Methods(http.MethodGet)
	p.HandleFunc("/banking/loans", h.ListLoans).Methods(http.MethodGet)
	p.HandleFunc("/banking/loans", h.OpenLoan).Methods(http.MethodPost)
	p.HandleFunc("/banking/loans/calculator", h.LoanCalculator).Methods(http.MethodPost)
	p.HandleFunc("/banking/loans/{id:[0-9]+}/payments", h.PayLoan).Methods(http.MethodPost)
	p.HandleFunc("/banking/financial-summary", h.FinancialSummary).Methods(http.MethodGet)
	p.HandleFunc("/banking/key-rate", h.KeyRate).Methods(http.MethodGet)
}

// Home identifies the service
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "OpenBanqr API", "version": "1.0.0"})
}

// Health reports that the process is serving
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
