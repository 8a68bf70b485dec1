package handler

import (
	"net/http"

	"github.com/Dan9191/openbanqr/internal/service"
	"github.com/gorilla/mux"
)

type classroomRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type updateClassroomRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) CreateClassroom(w http.ResponseWriter, r *http.Request) {
	var req classroomRequest
	if !h.decode(w, r, &req) {
		return
	}
	classroom, err := h.svc.CreateClassroom(r.Context(), currentUser(r), req.Name, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, classroom)
}

func (h *Handler) ListClassrooms(w http.ResponseWriter, r *http.Request) {
	classrooms, err := h.svc.ListClassrooms(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, classrooms)
}

func (h *Handler) GetClassroom(w http.ResponseWriter, r *http.Request) {
	classroom, err := h.svc.GetClassroom(r.Context(), currentUser(r), pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, classroom)
}

func (h *Handler) JoinClassroom(w http.ResponseWriter, r *http.Request) {
	classroom, err := h.svc.JoinClassroom(r.Context(), currentUser(r), mux.Vars(r)["code"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, classroom)
}

func (h *Handler) UpdateClassroom(w http.ResponseWriter, r *http.Request) {
	var req updateClassroomRequest
	if !h.decode(w, r, &req) {
		return
	}
	classroom, err := h.svc.UpdateClassroom(r.Context(), currentUser(r), pathID(r), service.ClassroomUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, classroom)
}

func (h *Handler) DeleteClassroom(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteClassroom(r.Context(), currentUser(r), pathID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Classroom deleted successfully"})
}
