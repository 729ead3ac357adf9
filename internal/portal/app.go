// Package portal 持有整个应用的状态，所有入口都通过 App 访问数据
package portal

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
	"github.com/ipt-demo/hr-portal/backend/internal/router"
	"github.com/ipt-demo/hr-portal/backend/internal/session"
	"github.com/ipt-demo/hr-portal/backend/internal/view"
)

// Prompter 负责向用户确认操作和展示提示
type Prompter interface {
	Confirm(msg string) bool
	Alert(msg string)
}

// state 由同一个 App 派生出的所有副本共享
type state struct {
	mu      sync.Mutex
	repo    *repository.Repository
	session *session.Session
	router  *router.Router
	logger  *slog.Logger

	// 持有锁的调用方的提示器，路由的拒绝提示会转发给它
	prompter Prompter
}

// relay 把路由产生的提示转发给当前持锁调用方的提示器
type relay struct {
	st *state
}

func (r relay) Alert(msg string) {
	if r.st.prompter != nil {
		r.st.prompter.Alert(msg)
	}
}

type App struct {
	*state
	prompter Prompter
}

func New(repo *repository.Repository, sess *session.Session, prompter Prompter, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	st := &state{
		repo:    repo,
		session: sess,
		logger:  logger,
	}
	st.router = router.New(sess, repo, relay{st: st})

	app := &App{state: st, prompter: prompter}
	app.registerViews()
	return app
}

// WithPrompter 返回使用另一个提示器的 App，数据和会话与原 App 共享
func (a *App) WithPrompter(p Prompter) *App {
	return &App{state: a.state, prompter: p}
}

func (a *App) lock() {
	a.mu.Lock()
	a.state.prompter = a.prompter
}

func (a *App) unlock() {
	a.state.prompter = nil
	a.mu.Unlock()
}

func (a *App) alert(msg string) {
	if a.prompter != nil {
		a.prompter.Alert(msg)
	}
}

func (a *App) confirm(msg string) bool {
	if a.prompter == nil {
		return false
	}
	return a.prompter.Confirm(msg)
}

// fail 把用户可见的错误转成提示，内部错误只记录日志
func (a *App) fail(err error) error {
	var rule *domain.RuleError
	if errors.As(err, &rule) || isUserError(err) {
		a.alert(err.Error())
	} else {
		a.logger.Error("操作失败", "error", err)
	}
	return err
}

func isUserError(err error) bool {
	return errors.Is(err, domain.ErrUnverified) ||
		errors.Is(err, domain.ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrNoPendingVerification)
}

func (a *App) requireLogin() (*domain.Account, error) {
	acc := a.session.Current()
	if acc == nil {
		return nil, a.fail(domain.ErrLoginRequired)
	}
	return acc, nil
}

func (a *App) requireAdmin() (*domain.Account, error) {
	acc, err := a.requireLogin()
	if err != nil {
		return nil, err
	}
	if !acc.IsAdmin() {
		return nil, a.fail(domain.ErrAdminOnly)
	}
	return acc, nil
}

func (a *App) registerViews() {
	r := a.router
	r.Register(router.ViewHome, func(db *domain.Database, acc *domain.Account) (any, error) {
		return view.Home(db, acc), nil
	})
	r.Register(router.ViewProfile, func(db *domain.Database, acc *domain.Account) (any, error) {
		return view.Profile(db, acc), nil
	})
	r.Register(router.ViewVerifyEmail, func(*domain.Database, *domain.Account) (any, error) {
		pending, err := a.session.PendingVerification()
		if err != nil && !errors.Is(err, domain.ErrNoPendingVerification) {
			return nil, err
		}
		return view.VerifyEmail(pending), nil
	})
	r.Register(router.ViewAccounts, func(db *domain.Database, acc *domain.Account) (any, error) {
		return view.Accounts(db, acc), nil
	})
	r.Register(router.ViewDepartments, func(db *domain.Database, acc *domain.Account) (any, error) {
		return view.Departments(db, acc), nil
	})
	r.Register(router.ViewEmployees, func(db *domain.Database, acc *domain.Account) (any, error) {
		return view.Employees(db, acc), nil
	})
	r.Register(router.ViewRequests, func(db *domain.Database, acc *domain.Account) (any, error) {
		return view.MyRequests(db, acc), nil
	})
}

// ── 会话 ──

func (a *App) Navigate(token string) (router.Navigation, error) {
	a.lock()
	defer a.unlock()
	return a.router.Navigate(token)
}

func (a *App) Current() *domain.Account {
	a.lock()
	defer a.unlock()
	return a.session.Current()
}

func (a *App) Register(in session.RegisterInput) (*domain.Account, error) {
	a.lock()
	defer a.unlock()

	acc, err := a.session.Register(in)
	if err != nil {
		return nil, a.fail(err)
	}
	return acc, nil
}

func (a *App) Login(email, password string) (*domain.Account, error) {
	a.lock()
	defer a.unlock()

	acc, err := a.session.Login(email, password)
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Login successful!")
	return acc, nil
}

func (a *App) Logout() error {
	a.lock()
	defer a.unlock()
	return a.session.Logout()
}

func (a *App) PendingVerification() (string, error) {
	a.lock()
	defer a.unlock()
	return a.session.PendingVerification()
}

func (a *App) SimulateVerification() (*domain.Account, error) {
	a.lock()
	defer a.unlock()

	acc, err := a.session.SimulateVerification()
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Email verified! Please login.")
	return acc, nil
}

// ResetDatabase 清空所有数据并重新写入种子数据，当前会话随之结束
func (a *App) ResetDatabase() error {
	a.lock()
	defer a.unlock()

	if !a.confirm("This will delete all data and reset to defaults. Continue?") {
		return domain.ErrCancelled
	}
	if err := a.repo.Reset(); err != nil {
		return a.fail(err)
	}
	a.alert("Database reset!")
	return nil
}

// ── 个人 ──

func (a *App) UpdateProfile(in repository.ProfileUpdate) (*domain.Account, error) {
	a.lock()
	defer a.unlock()

	me, err := a.requireLogin()
	if err != nil {
		return nil, err
	}
	acc, err := a.repo.UpdateProfile(me.ID, in)
	if err != nil {
		return nil, a.fail(err)
	}
	return acc, nil
}

func (a *App) MyRequests() (view.RequestsView, error) {
	a.lock()
	defer a.unlock()

	me, err := a.requireLogin()
	if err != nil {
		return view.RequestsView{}, err
	}
	return view.MyRequests(a.repo.Database(), me), nil
}

func (a *App) SubmitRequest(in repository.RequestInput) (*domain.Request, error) {
	a.lock()
	defer a.unlock()

	me, err := a.requireLogin()
	if err != nil {
		return nil, err
	}
	req, err := a.repo.CreateRequest(me.Email, in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Request submitted successfully!")
	return req, nil
}

// ── 账户 ──

func (a *App) Accounts() (view.AccountsView, error) {
	a.lock()
	defer a.unlock()

	me, err := a.requireAdmin()
	if err != nil {
		return view.AccountsView{}, err
	}
	return view.Accounts(a.repo.Database(), me), nil
}

func (a *App) CreateAccount(in repository.AccountInput) (*domain.Account, error) {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	acc, err := a.repo.CreateAccount(in, false)
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Account saved successfully!")
	return acc, nil
}

func (a *App) UpdateAccount(id domain.ID, in repository.AccountUpdate) (*domain.Account, error) {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	acc, err := a.repo.UpdateAccount(id, in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Account saved successfully!")
	return acc, nil
}

func (a *App) ResetPassword(id domain.ID, password string) error {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.repo.ResetPassword(id, password); err != nil {
		return a.fail(err)
	}
	a.alert("Password reset successfully!")
	return nil
}

// DeleteAccount 先检查是否删除自己，再请求确认
func (a *App) DeleteAccount(id domain.ID) error {
	a.lock()
	defer a.unlock()

	me, err := a.requireAdmin()
	if err != nil {
		return err
	}
	if id == me.ID {
		return a.fail(domain.ErrSelfDeleteForbidden)
	}

	target, err := a.repo.AccountByID(id)
	if err != nil {
		return a.fail(err)
	}
	if !a.confirm(fmt.Sprintf("Are you sure you want to delete %s?", target.Email)) {
		return domain.ErrCancelled
	}

	if err := a.repo.DeleteAccount(id, me.ID); err != nil {
		return a.fail(err)
	}
	a.alert("Account deleted successfully!")
	return nil
}

// ── 部门 ──

func (a *App) Departments() (view.DepartmentsView, error) {
	a.lock()
	defer a.unlock()

	me, err := a.requireAdmin()
	if err != nil {
		return view.DepartmentsView{}, err
	}
	return view.Departments(a.repo.Database(), me), nil
}

func (a *App) CreateDepartment(in repository.DepartmentInput) (*domain.Department, error) {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	dept, err := a.repo.CreateDepartment(in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Department saved successfully!")
	return dept, nil
}

func (a *App) UpdateDepartment(id domain.ID, in repository.DepartmentInput) (*domain.Department, error) {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	dept, err := a.repo.UpdateDepartment(id, in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Department saved successfully!")
	return dept, nil
}

func (a *App) DeleteDepartment(id domain.ID) error {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return err
	}
	if !a.confirm("Are you sure you want to delete this department?") {
		return domain.ErrCancelled
	}
	if err := a.repo.DeleteDepartment(id); err != nil {
		return a.fail(err)
	}
	a.alert("Department deleted successfully!")
	return nil
}

// ── 员工 ──

func (a *App) Employees() (view.EmployeesView, error) {
	a.lock()
	defer a.unlock()

	me, err := a.requireAdmin()
	if err != nil {
		return view.EmployeesView{}, err
	}
	return view.Employees(a.repo.Database(), me), nil
}

func (a *App) CreateEmployee(in repository.EmployeeInput) (*domain.Employee, error) {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	emp, err := a.repo.CreateEmployee(in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Employee saved successfully!")
	return emp, nil
}

func (a *App) UpdateEmployee(id domain.ID, in repository.EmployeeInput) (*domain.Employee, error) {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return nil, err
	}
	emp, err := a.repo.UpdateEmployee(id, in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.alert("Employee saved successfully!")
	return emp, nil
}

func (a *App) DeleteEmployee(id domain.ID) error {
	a.lock()
	defer a.unlock()

	if _, err := a.requireAdmin(); err != nil {
		return err
	}
	if !a.confirm("Are you sure you want to delete this employee?") {
		return domain.ErrCancelled
	}
	if err := a.repo.DeleteEmployee(id); err != nil {
		return a.fail(err)
	}
	a.alert("Employee deleted successfully!")
	return nil
}
