package router

import (
	"fmt"
	"strings"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

type View string

const (
	ViewHome        View = "home"
	ViewLogin       View = "login"
	ViewRegister    View = "register"
	ViewVerifyEmail View = "verify-email"
	ViewProfile     View = "profile"
	ViewRequests    View = "requests"
	ViewEmployees   View = "employees"
	ViewAccounts    View = "accounts"
	ViewDepartments View = "departments"
)

const (
	PathHome  = "/"
	PathLogin = "/login"
)

var views = map[string]View{
	"/":             ViewHome,
	"/login":        ViewLogin,
	"/register":     ViewRegister,
	"/verify-email": ViewVerifyEmail,
	"/profile":      ViewProfile,
	"/requests":     ViewRequests,
	"/employees":    ViewEmployees,
	"/accounts":     ViewAccounts,
	"/departments":  ViewDepartments,
}

// 需要登录的视图
var protected = map[View]bool{
	ViewProfile:     true,
	ViewRequests:    true,
	ViewEmployees:   true,
	ViewAccounts:    true,
	ViewDepartments: true,
}

// 仅管理员可见的视图
var adminOnly = map[View]bool{
	ViewEmployees:   true,
	ViewAccounts:    true,
	ViewDepartments: true,
}

// Path 返回视图对应的导航路径
func (v View) Path() string {
	if v == ViewHome {
		return PathHome
	}
	return "/" + string(v)
}

// RenderHook 在视图激活后调用，参数是数据快照和当前账户（可能为 nil）
type RenderHook func(db *domain.Database, identity *domain.Account) (any, error)

type IdentitySource interface {
	Current() *domain.Account
}

type DatabaseSource interface {
	Database() *domain.Database
}

type Notifier interface {
	Alert(msg string)
}

// Navigation 描述一次导航的结果
type Navigation struct {
	Requested  string `json:"requested"`
	Path       string `json:"path"`
	View       View   `json:"view"`
	Redirected bool   `json:"redirected"`
	Denied     bool   `json:"denied"`
	Output     any    `json:"output,omitempty"`
}

// Decision 是转移函数的结果：要么激活 View，要么重定向到 Redirect
type Decision struct {
	View     View
	Redirect string
	Denied   bool
}

// Resolve 是路由的转移函数，不产生任何副作用
func Resolve(path string, identity *domain.Account) Decision {
	view, known := views[path]

	if known && protected[view] && identity == nil {
		return Decision{Redirect: PathLogin}
	}
	if known && adminOnly[view] && !identity.IsAdmin() {
		return Decision{Redirect: PathHome, Denied: true}
	}
	if !known {
		return Decision{Redirect: PathHome}
	}
	return Decision{View: view}
}

// Normalize 把 "#/accounts"、"accounts"、"" 之类的输入统一成 "/accounts" 形式
func Normalize(token string) string {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "#")
	if token == "" {
		return PathHome
	}
	if !strings.HasPrefix(token, "/") {
		token = "/" + token
	}
	return token
}

// Router 是所有视图渲染的唯一入口
type Router struct {
	identity IdentitySource
	data     DatabaseSource
	notifier Notifier
	hooks    map[View]RenderHook

	active View
}

func New(identity IdentitySource, data DatabaseSource, notifier Notifier) *Router {
	return &Router{
		identity: identity,
		data:     data,
		notifier: notifier,
		hooks:    make(map[View]RenderHook),
	}
}

// Register 注册视图的渲染函数，重复注册会覆盖
func (r *Router) Register(view View, hook RenderHook) {
	r.hooks[view] = hook
}

func (r *Router) Active() View {
	return r.active
}

// 重定向的目标（登录页、首页）不受限制，两次跳转足够
const maxHops = 3

// Navigate 执行导航并跟随重定向，导航本身从不写入存储
func (r *Router) Navigate(token string) (Navigation, error) {
	nav := Navigation{Requested: token}
	path := Normalize(token)

	for hop := 0; hop < maxHops; hop++ {
		identity := r.identity.Current()
		decision := Resolve(path, identity)

		if decision.Redirect != "" {
			if decision.Denied {
				nav.Denied = true
				if r.notifier != nil {
					r.notifier.Alert(domain.ErrAdminOnly.Error())
				}
			}
			nav.Redirected = true
			path = decision.Redirect
			continue
		}

		r.active = decision.View
		nav.Path = path
		nav.View = decision.View

		if hook, ok := r.hooks[decision.View]; ok {
			out, err := hook(r.data.Database(), identity)
			if err != nil {
				return nav, err
			}
			nav.Output = out
		}
		return nav, nil
	}

	return nav, fmt.Errorf("too many redirects while navigating to %q", token)
}
