package repository

import (
	"strings"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

type DepartmentInput struct {
	Name string `json:"name" validate:"required"`
	Desc string `json:"desc"`
}

func (r *Repository) CreateDepartment(in DepartmentInput) (*domain.Department, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Desc = strings.TrimSpace(in.Desc)

	if err := r.valid.Struct(in); err != nil {
		return nil, err
	}

	dept := domain.Department{
		ID:   domain.NewID(),
		Name: in.Name,
		Desc: in.Desc,
	}

	if err := r.mutate(func(db *domain.Database) error {
		db.Departments = append(db.Departments, dept)
		return nil
	}); err != nil {
		return nil, err
	}

	r.emit(Event{Entity: EntityDepartment, Op: OpCreate, ID: string(dept.ID)})
	return &dept, nil
}

// UpdateDepartment 修改部门。改名不会同步到引用旧名称的员工。
func (r *Repository) UpdateDepartment(id domain.ID, in DepartmentInput) (*domain.Department, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Desc = strings.TrimSpace(in.Desc)

	if err := r.valid.Struct(in); err != nil {
		return nil, err
	}

	i, ok := r.db.FindDepartment(id)
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}

	var updated domain.Department
	if err := r.mutate(func(db *domain.Database) error {
		db.Departments[i].Name = in.Name
		db.Departments[i].Desc = in.Desc
		updated = db.Departments[i]
		return nil
	}); err != nil {
		return nil, err
	}

	r.emit(Event{Entity: EntityDepartment, Op: OpUpdate, ID: string(id)})
	return &updated, nil
}

// DeleteDepartment 无条件删除部门，员工上的部门名称保持不变
func (r *Repository) DeleteDepartment(id domain.ID) error {
	i, ok := r.db.FindDepartment(id)
	if !ok {
		return domain.ErrDepartmentNotFound
	}

	if err := r.mutate(func(db *domain.Database) error {
		db.Departments = append(db.Departments[:i], db.Departments[i+1:]...)
		return nil
	}); err != nil {
		return err
	}

	r.emit(Event{Entity: EntityDepartment, Op: OpDelete, ID: string(id)})
	return nil
}
