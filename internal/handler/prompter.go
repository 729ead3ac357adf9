package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ipt-demo/hr-portal/backend/internal/portal"
)

// httpPrompter 用查询参数 confirm 回答确认请求，并收集提示作为响应消息
type httpPrompter struct {
	confirmed bool
	asked     []string
	alerts    []string
}

func (p *httpPrompter) Confirm(msg string) bool {
	p.asked = append(p.asked, msg)
	return p.confirmed
}

func (p *httpPrompter) Alert(msg string) {
	p.alerts = append(p.alerts, msg)
}

// message 返回最后一条提示，没有提示时返回 fallback
func (p *httpPrompter) message(fallback string) string {
	if len(p.alerts) == 0 {
		return fallback
	}
	return p.alerts[len(p.alerts)-1]
}

func (h *Handler) prompter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
		ctx := context.WithValue(r.Context(), PrompterCtx, &httpPrompter{confirmed: confirmed})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// scoped 返回绑定了本次请求提示器的 App
func (h *Handler) scoped(r *http.Request) (*portal.App, *httpPrompter) {
	p, ok := r.Context().Value(PrompterCtx).(*httpPrompter)
	if !ok {
		p = &httpPrompter{}
	}
	return h.app.WithPrompter(p), p
}
