package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	app, _ := h.scoped(r)
	employees, err := app.Employees()
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, "Employees loaded.", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req repository.EmployeeInput
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, p := h.scoped(r)
	emp, err := app.CreateEmployee(req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Employee saved successfully!"), emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req repository.EmployeeInput
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, p := h.scoped(r)
	emp, err := app.UpdateEmployee(domain.ID(chi.URLParam(r, "id")), req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Employee saved successfully!"), emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	app, p := h.scoped(r)
	if err := app.DeleteEmployee(domain.ID(chi.URLParam(r, "id"))); err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Employee deleted successfully!"), nil)
}
