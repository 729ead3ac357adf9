package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Navigate 返回路由器最终激活的视图，data 中包含重定向信息和视图模型
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	app, p := h.scoped(r)
	nav, err := app.Navigate(chi.URLParam(r, "*"))
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.successResponse(w, r, p.message(string(nav.View)), nav)
}
