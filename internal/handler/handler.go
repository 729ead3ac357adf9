package handler

import (
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/ipt-demo/hr-portal/backend/internal/config"
	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/portal"
)

// Handler 把 HTTP 请求转换成对 App 的调用。
// 整个进程只有一个会话，所有客户端共享同一个登录状态。
type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	app        *portal.App
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, app *portal.App) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		app:        app,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.prompter)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/verify-email", func(r chi.Router) {
			r.Get("/", h.GetPendingVerification)
			r.Post("/", h.VerifyEmail)
		})
	})

	// 视图由路由器决定，未登录或权限不足时会被重定向
	h.Mux.Get("/views", h.Navigate)
	h.Mux.Get("/views/*", h.Navigate)

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/", h.UpdateMyInfo)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/", h.GetMyRequests)
			r.Post("/", h.SubmitRequest)
		})

		// 以下 API 只有管理员可以调用
		r.Group(func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", h.GetAllAccounts)
				r.Post("/", h.CreateAccount)
				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", h.UpdateAccount)
					r.Delete("/", h.DeleteAccount)
					r.Patch("/password", h.ResetAccountPassword)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.GetAllDepartments)
				r.Post("/", h.CreateDepartment)
				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", h.UpdateDepartment)
					r.Delete("/", h.DeleteDepartment)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.GetAllEmployees)
				r.Post("/", h.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", h.UpdateEmployee)
					r.Delete("/", h.DeleteEmployee)
				})
			})

			r.Post("/reset", h.ResetDatabase)
		})
	})
}
