package store

import (
	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

// SeedAdmin 是种子数据中唯一的管理员。
// 这只是为了原型能直接登录，正式使用前必须替换掉这组凭据。
type SeedAdmin struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Seed 生成初始数据：一个已验证的管理员和两个示例部门
func Seed(admin SeedAdmin) *domain.Database {
	db := domain.NewDatabase()
	db.Accounts = append(db.Accounts, domain.Account{
		ID:        domain.NewID(),
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Email:     admin.Email,
		Password:  admin.Password,
		Role:      domain.RoleAdmin,
		Verified:  true,
	})
	db.Departments = append(db.Departments,
		domain.Department{ID: domain.NewID(), Name: "Engineering", Desc: "Software team"},
		domain.Department{ID: domain.NewID(), Name: "HR", Desc: "People team"},
	)
	return db
}
