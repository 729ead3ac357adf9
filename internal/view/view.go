// Package view 把数据快照转换成视图模型，所有函数都不修改输入
package view

import (
	"fmt"
	"strings"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

// Identity 是导航栏需要的当前账户信息
type Identity struct {
	ID       domain.ID   `json:"id"`
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	IsAdmin  bool        `json:"isAdmin"`
}

func identityOf(acc *domain.Account) *Identity {
	if acc == nil {
		return nil
	}
	return &Identity{
		ID:       acc.ID,
		FullName: acc.FullName(),
		Email:    acc.Email,
		Role:     acc.Role,
		IsAdmin:  acc.IsAdmin(),
	}
}

type HomeView struct {
	LoggedIn bool      `json:"loggedIn"`
	Identity *Identity `json:"identity,omitempty"`
}

func Home(_ *domain.Database, identity *domain.Account) HomeView {
	return HomeView{
		LoggedIn: identity != nil,
		Identity: identityOf(identity),
	}
}

type ProfileView struct {
	FullName  string      `json:"fullName"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}

func Profile(_ *domain.Database, identity *domain.Account) ProfileView {
	if identity == nil {
		return ProfileView{}
	}
	return ProfileView{
		FullName:  identity.FullName(),
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Role:      identity.Role,
	}
}

// VerifyEmailView 展示等待验证的邮箱，Email 为空表示没有待验证的注册
type VerifyEmailView struct {
	Email string `json:"email"`
}

func VerifyEmail(pending string) VerifyEmailView {
	return VerifyEmailView{Email: pending}
}

// AccountRow 不包含密码
type AccountRow struct {
	ID        domain.ID   `json:"id"`
	FullName  string      `json:"fullName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Verified  bool        `json:"verified"`
	Deletable bool        `json:"deletable"`
}

type AccountsView struct {
	Rows []AccountRow `json:"rows"`
}

// Accounts 中当前账户所在行不可删除
func Accounts(db *domain.Database, identity *domain.Account) AccountsView {
	rows := make([]AccountRow, 0, len(db.Accounts))
	for i := range db.Accounts {
		rows = append(rows, AccountRowOf(&db.Accounts[i], identity))
	}
	return AccountsView{Rows: rows}
}

// AccountRowOf 构造单个账户的行
func AccountRowOf(acc, identity *domain.Account) AccountRow {
	return AccountRow{
		ID:        acc.ID,
		FullName:  acc.FullName(),
		Email:     acc.Email,
		Role:      acc.Role,
		Verified:  acc.Verified,
		Deletable: identity == nil || acc.ID != identity.ID,
	}
}

type DepartmentsView struct {
	Rows []domain.Department `json:"rows"`
}

func Departments(db *domain.Database, _ *domain.Account) DepartmentsView {
	rows := make([]domain.Department, len(db.Departments))
	copy(rows, db.Departments)
	return DepartmentsView{Rows: rows}
}

type EmployeeRow struct {
	ID         domain.ID `json:"id"`
	EmployeeID string    `json:"employeeId"`
	UserEmail  string    `json:"userEmail"`
	UserName   string    `json:"userName"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	HireDate   string    `json:"hireDate"`
}

type EmployeesView struct {
	Rows              []EmployeeRow `json:"rows"`
	DepartmentOptions []string      `json:"departmentOptions"`
}

// Employees 的部门列原样展示员工记录中的名称，部门被删除后也不会改变
func Employees(db *domain.Database, _ *domain.Account) EmployeesView {
	rows := make([]EmployeeRow, 0, len(db.Employees))
	for _, emp := range db.Employees {
		name := emp.UserEmail
		if i, ok := db.FindAccountByEmail(emp.UserEmail); ok {
			name = db.Accounts[i].FullName()
		}
		rows = append(rows, EmployeeRow{
			ID:         emp.ID,
			EmployeeID: emp.EmployeeID,
			UserEmail:  emp.UserEmail,
			UserName:   name,
			Position:   emp.Position,
			Department: emp.Department,
			HireDate:   emp.HireDate,
		})
	}
	return EmployeesView{Rows: rows, DepartmentOptions: db.DepartmentNames()}
}

type RequestRow struct {
	ID     domain.ID            `json:"id"`
	Date   string               `json:"date"`
	Type   string               `json:"type"`
	Items  string               `json:"items"`
	Status domain.RequestStatus `json:"status"`
	Badge  string               `json:"badge"`
}

type RequestsView struct {
	Empty bool         `json:"empty"`
	Rows  []RequestRow `json:"rows"`
}

// MyRequests 只列出当前账户提交的申请
func MyRequests(db *domain.Database, identity *domain.Account) RequestsView {
	rows := make([]RequestRow, 0)
	if identity != nil {
		for _, req := range db.Requests {
			if req.EmployeeEmail != identity.Email {
				continue
			}
			rows = append(rows, RequestRow{
				ID:     req.ID,
				Date:   req.Date,
				Type:   req.Type,
				Items:  FormatItems(req.Items),
				Status: req.Status,
				Badge:  Badge(req.Status),
			})
		}
	}
	return RequestsView{Empty: len(rows) == 0, Rows: rows}
}

// FormatItems 输出形如 "Pen (2), Paper (1)" 的物品列表
func FormatItems(items []domain.RequestItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", item.Name, item.Qty))
	}
	return strings.Join(parts, ", ")
}

// Badge 返回状态标签的样式
func Badge(status domain.RequestStatus) string {
	switch status {
	case domain.StatusPending:
		return "warning"
	case domain.StatusApproved:
		return "success"
	default:
		return "danger"
	}
}
