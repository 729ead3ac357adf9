package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
	"github.com/ipt-demo/hr-portal/backend/internal/view"
)

func (h *Handler) GetAllAccounts(w http.ResponseWriter, r *http.Request) {
	app, _ := h.scoped(r)
	accounts, err := app.Accounts()
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, "Accounts loaded.", accounts)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req repository.AccountInput
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, p := h.scoped(r)
	acc, err := app.CreateAccount(req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	identity := r.Context().Value(IdentityCtx).(*domain.Account)
	h.successResponse(w, r, p.message("Account saved successfully!"), view.AccountRowOf(acc, identity))
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req repository.AccountUpdate
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, p := h.scoped(r)
	acc, err := app.UpdateAccount(domain.ID(chi.URLParam(r, "id")), req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	identity := r.Context().Value(IdentityCtx).(*domain.Account)
	h.successResponse(w, r, p.message("Account saved successfully!"), view.AccountRowOf(acc, identity))
}

func (h *Handler) ResetAccountPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password" validate:"required"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	app, p := h.scoped(r)
	if err := app.ResetPassword(domain.ID(chi.URLParam(r, "id")), req.Password); err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Password reset successfully!"), nil)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	app, p := h.scoped(r)
	if err := app.DeleteAccount(domain.ID(chi.URLParam(r, "id"))); err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Account deleted successfully!"), nil)
}
