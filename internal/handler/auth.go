package handler

import (
	"net/http"

	"github.com/ipt-demo/hr-portal/backend/internal/session"
	"github.com/ipt-demo/hr-portal/backend/internal/view"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req session.RegisterInput
	if err := h.readJSON(r, &req); err != nil {
		h.errorResponse(w, r, "Invalid request body.")
		return
	}

	app, _ := h.scoped(r)
	acc, err := app.Register(req)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, "Registration successful! Please verify your email.", view.VerifyEmail(acc.Email))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	app, p := h.scoped(r)
	acc, err := app.Login(req.Email, req.Password)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Login successful!"), view.Home(nil, acc))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	app, _ := h.scoped(r)
	if err := app.Logout(); err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, "Logged out.", nil)
}

func (h *Handler) GetPendingVerification(w http.ResponseWriter, r *http.Request) {
	app, _ := h.scoped(r)
	email, err := app.PendingVerification()
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, "Pending verification found.", view.VerifyEmail(email))
}

// VerifyEmail 模拟用户点击了验证邮件中的链接
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	app, p := h.scoped(r)
	acc, err := app.SimulateVerification()
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Email verified! Please login."), view.AccountRowOf(acc, nil))
}

func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	app, p := h.scoped(r)
	if err := app.ResetDatabase(); err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message("Database reset!"), nil)
}
