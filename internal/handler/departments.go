package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
)

func (h *Handler) GetAllDepartments(w http.ResponseWriter, r *http.Request) {
	app, _ := h.scoped(r)
	departments, err := app.Departments()
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, "Departments loaded.", departments)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req repository.DepartmentInput
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, p := h.scoped(r)
	dept, err := app.CreateDepartment(req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Department saved successfully!"), dept)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req repository.DepartmentInput
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, p := h.scoped(r)
	dept, err := app.UpdateDepartment(domain.ID(chi.URLParam(r, "id")), req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Department saved successfully!"), dept)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	app, p := h.scoped(r)
	if err := app.DeleteDepartment(domain.ID(chi.URLParam(r, "id"))); err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Department deleted successfully!"), nil)
}
