package handler

import (
	"net/http"

	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/shopspring/decimal"
)

type careerRequest struct {
	Title               string          `json:"title" validate:"required,max=100"`
	Description         string          `json:"description"`
	EducationRequired   string          `json:"education_required"`
	RequiresStudentLoan bool            `json:"requires_student_loan"`
	StudentLoanAmount   decimal.Decimal `json:"student_loan_amount"`
	BaseSalaryMin       decimal.Decimal `json:"base_salary_min"`
	BaseSalaryMax       decimal.Decimal `json:"base_salary_max"`
	Industry            string          `json:"industry"`
}

type applyRequest struct {
	CareerID    int64  `json:"career_id" validate:"required,gt=0"`
	CoverLetter string `json:"cover_letter"`
}

func (h *Handler) ListCareers(w http.ResponseWriter, r *http.Request) {
	careers, err := h.svc.ListCareers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, careers)
}

func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	career, err := h.svc.GetCareer(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, career)
}

func (h *Handler) CreateCareer(w http.ResponseWriter, r *http.Request) {
	var req careerRequest
	if !h.decode(w, r, &req) {
		return
	}
	career, err := h.svc.CreateCareer(r.Context(), currentUser(r), &models.Career{
		Title:               req.Title,
		Description:         req.Description,
		EducationRequired:   req.EducationRequired,
		RequiresStudentLoan: req.RequiresStudentLoan,
		StudentLoanAmount:   req.StudentLoanAmount,
		BaseSalaryMin:       req.BaseSalaryMin,
		BaseSalaryMax:       req.BaseSalaryMax,
		Industry:            req.Industry,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, career)
}

func (h *Handler) ApplyForCareer(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !h.decode(w, r, &req) {
		return
	}
	app, err := h.svc.ApplyForCareer(r.Context(), currentUser(r), req.CareerID, req.CoverLetter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, app)
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListApplications(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apps)
}
