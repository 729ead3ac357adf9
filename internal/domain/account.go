package domain

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Account 的密码以明文保存，这是原型的已知限制
type Account struct {
	ID        ID     `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	Verified  bool   `json:"verified"`
}

func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// IsAdmin 对 nil 账户返回 false
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
