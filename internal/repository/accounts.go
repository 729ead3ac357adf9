package repository

import (
	"strings"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

type AccountInput struct {
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role" validate:"omitempty,oneof=Admin User"`
	Verified  bool        `json:"verified"`
}

// AccountUpdate 是管理员编辑账户时可修改的字段，密码只能通过 ResetPassword 修改
type AccountUpdate struct {
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Email     string      `json:"email" validate:"required,email"`
	Role      domain.Role `json:"role" validate:"required,oneof=Admin User"`
	Verified  bool        `json:"verified"`
}

// ProfileUpdate 是用户编辑自己的资料时可修改的字段
type ProfileUpdate struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

func (r *Repository) ListAccounts() []domain.Account {
	return r.Database().Accounts
}

func (r *Repository) AccountByID(id domain.ID) (*domain.Account, error) {
	i, ok := r.db.FindAccount(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	acc := r.db.Accounts[i]
	return &acc, nil
}

func (r *Repository) AccountByEmail(email string) (*domain.Account, error) {
	i, ok := r.db.FindAccountByEmail(email)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	acc := r.db.Accounts[i]
	return &acc, nil
}

// emailTaken 线性扫描其他账户，邮箱比较区分大小写
func emailTaken(db *domain.Database, email string, except domain.ID) bool {
	for _, acc := range db.Accounts {
		if acc.Email == email && acc.ID != except {
			return true
		}
	}
	return false
}

// CreateAccount 创建账户。自助注册的账户总是普通用户且未验证，管理员创建的账户使用输入中的角色和验证状态。
func (r *Repository) CreateAccount(in AccountInput, selfRegistered bool) (*domain.Account, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	if emailTaken(r.db, in.Email, "") {
		return nil, domain.ErrDuplicateEmail
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	if err := r.valid.Struct(in); err != nil {
		return nil, err
	}

	acc := domain.Account{
		ID:        domain.NewID(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Role:      in.Role,
		Verified:  in.Verified,
	}
	if selfRegistered {
		acc.Role = domain.RoleUser
		acc.Verified = false
	}
	if acc.Role == "" {
		acc.Role = domain.RoleUser
	}

	if err := r.mutate(func(db *domain.Database) error {
		db.Accounts = append(db.Accounts, acc)
		return nil
	}); err != nil {
		return nil, err
	}

	r.emit(Event{Entity: EntityAccount, Op: OpCreate, ID: string(acc.ID), Email: acc.Email})
	return &acc, nil
}

func (r *Repository) UpdateAccount(id domain.ID, in AccountUpdate) (*domain.Account, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	return r.updateAccount(id, in, func(acc *domain.Account) {
		acc.FirstName = in.FirstName
		acc.LastName = in.LastName
		acc.Email = in.Email
		acc.Role = in.Role
		acc.Verified = in.Verified
	}, in.Email)
}

func (r *Repository) UpdateProfile(id domain.ID, in ProfileUpdate) (*domain.Account, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	return r.updateAccount(id, in, func(acc *domain.Account) {
		acc.FirstName = in.FirstName
		acc.LastName = in.LastName
		acc.Email = in.Email
	}, in.Email)
}

func (r *Repository) updateAccount(id domain.ID, in any, apply func(acc *domain.Account), email string) (*domain.Account, error) {
	i, ok := r.db.FindAccount(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	prevEmail := r.db.Accounts[i].Email

	// 只有邮箱变化时才需要和其他账户比较
	if email != prevEmail && emailTaken(r.db, email, id) {
		return nil, domain.ErrDuplicateEmail
	}
	if err := r.valid.Struct(in); err != nil {
		return nil, err
	}

	var updated domain.Account
	if err := r.mutate(func(db *domain.Database) error {
		apply(&db.Accounts[i])
		updated = db.Accounts[i]
		return nil
	}); err != nil {
		return nil, err
	}

	r.emit(Event{Entity: EntityAccount, Op: OpUpdate, ID: string(id), Email: updated.Email, PrevEmail: prevEmail})
	return &updated, nil
}

// DeleteAccount 删除账户，actorID 为发起操作的账户，任何角色都不能删除自己
func (r *Repository) DeleteAccount(id, actorID domain.ID) error {
	if id == actorID {
		return domain.ErrSelfDeleteForbidden
	}

	i, ok := r.db.FindAccount(id)
	if !ok {
		return domain.ErrAccountNotFound
	}
	email := r.db.Accounts[i].Email

	if err := r.mutate(func(db *domain.Database) error {
		db.Accounts = append(db.Accounts[:i], db.Accounts[i+1:]...)
		return nil
	}); err != nil {
		return err
	}

	r.emit(Event{Entity: EntityAccount, Op: OpDelete, ID: string(id), Email: email, PrevEmail: email})
	return nil
}

func (r *Repository) ResetPassword(id domain.ID, newPassword string) error {
	if len(newPassword) < domain.MinPasswordLength {
		return domain.ErrWeakPassword
	}

	i, ok := r.db.FindAccount(id)
	if !ok {
		return domain.ErrAccountNotFound
	}

	if err := r.mutate(func(db *domain.Database) error {
		db.Accounts[i].Password = newPassword
		return nil
	}); err != nil {
		return err
	}

	email := r.db.Accounts[i].Email
	r.emit(Event{Entity: EntityAccount, Op: OpUpdate, ID: string(id), Email: email, PrevEmail: email})
	return nil
}

// VerifyAccount 把指定邮箱的账户标记为已验证
func (r *Repository) VerifyAccount(email string) (*domain.Account, error) {
	i, ok := r.db.FindAccountByEmail(email)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	var verified domain.Account
	if err := r.mutate(func(db *domain.Database) error {
		db.Accounts[i].Verified = true
		verified = db.Accounts[i]
		return nil
	}); err != nil {
		return nil, err
	}

	r.emit(Event{Entity: EntityAccount, Op: OpUpdate, ID: string(verified.ID), Email: email, PrevEmail: email})
	return &verified, nil
}
