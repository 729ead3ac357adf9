package handler

import (
	"net/http"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
	"github.com/ipt-demo/hr-portal/backend/internal/view"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value(IdentityCtx).(*domain.Account)
	h.successResponse(w, r, "Profile loaded.", view.Profile(nil, identity))
}

func (h *Handler) UpdateMyInfo(w http.ResponseWriter, r *http.Request) {
	var req repository.ProfileUpdate
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, p := h.scoped(r)
	acc, err := app.UpdateProfile(req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Profile updated."), view.Profile(nil, acc))
}

func (h *Handler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	app, _ := h.scoped(r)
	requests, err := app.MyRequests()
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, "Requests loaded.", requests)
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req repository.RequestInput
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, p := h.scoped(r)
	created, err := app.SubmitRequest(req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Request submitted successfully!"), created)
}
