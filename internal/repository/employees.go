package repository

import (
	"strings"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

type EmployeeInput struct {
	EmployeeID string `json:"employeeId"`
	UserEmail  string `json:"userEmail"`
	Position   string `json:"position"`
	Department string `json:"department"`
	HireDate   string `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
}

func (in *EmployeeInput) trim() {
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.UserEmail = strings.TrimSpace(in.UserEmail)
	in.Position = strings.TrimSpace(in.Position)
}

func (r *Repository) ListEmployees() []domain.Employee {
	return r.Database().Employees
}

func (r *Repository) EmployeeByID(id domain.ID) (*domain.Employee, error) {
	i, ok := r.db.FindEmployee(id)
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	emp := r.db.Employees[i]
	return &emp, nil
}

// checkEmployee 只在保存时检查关联账户是否存在，employeeId 不要求唯一。
// 邮箱为空同样视为账户不存在。
func (r *Repository) checkEmployee(in EmployeeInput) error {
	if _, ok := r.db.FindAccountByEmail(in.UserEmail); !ok {
		return domain.ErrUnknownUser
	}
	return r.valid.Struct(in)
}

func (r *Repository) CreateEmployee(in EmployeeInput) (*domain.Employee, error) {
	in.trim()
	if err := r.checkEmployee(in); err != nil {
		return nil, err
	}

	emp := domain.Employee{
		ID:         domain.NewID(),
		EmployeeID: in.EmployeeID,
		UserEmail:  in.UserEmail,
		Position:   in.Position,
		Department: in.Department,
		HireDate:   in.HireDate,
	}

	if err := r.mutate(func(db *domain.Database) error {
		db.Employees = append(db.Employees, emp)
		return nil
	}); err != nil {
		return nil, err
	}

	r.emit(Event{Entity: EntityEmployee, Op: OpCreate, ID: string(emp.ID)})
	return &emp, nil
}

func (r *Repository) UpdateEmployee(id domain.ID, in EmployeeInput) (*domain.Employee, error) {
	in.trim()
	if err := r.checkEmployee(in); err != nil {
		return nil, err
	}

	i, ok := r.db.FindEmployee(id)
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}

	var updated domain.Employee
	if err := r.mutate(func(db *domain.Database) error {
		emp := &db.Employees[i]
		emp.EmployeeID = in.EmployeeID
		emp.UserEmail = in.UserEmail
		emp.Position = in.Position
		emp.Department = in.Department
		emp.HireDate = in.HireDate
		updated = *emp
		return nil
	}); err != nil {
		return nil, err
	}

	r.emit(Event{Entity: EntityEmployee, Op: OpUpdate, ID: string(id)})
	return &updated, nil
}

func (r *Repository) DeleteEmployee(id domain.ID) error {
	i, ok := r.db.FindEmployee(id)
	if !ok {
		return domain.ErrEmployeeNotFound
	}

	if err := r.mutate(func(db *domain.Database) error {
		db.Employees = append(db.Employees[:i], db.Employees[i+1:]...)
		return nil
	}); err != nil {
		return err
	}

	r.emit(Event{Entity: EntityEmployee, Op: OpDelete, ID: string(id)})
	return nil
}
