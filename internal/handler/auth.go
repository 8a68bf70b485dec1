package handler

import (
	"net/http"
	"strings"

	"github.com/Dan9191/openbanqr/internal/service"
)

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"max=100"`
	IsTeacher bool   `json:"is_teacher"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FullName:  req.FullName,
		IsTeacher: req.IsTeacher,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication. Credentials come as JSON or as an
// OAuth2 password form.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		req.Username, req.Password = r.PostFormValue("username"), r.PostFormValue("password")
		if req.Username == "" || req.Password == "" {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
			return
		}
	} else if !h.decode(w, r, &req) {
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}
