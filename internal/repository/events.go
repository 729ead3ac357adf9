package repository

type Entity string

const (
	EntityAccount    Entity = "account"
	EntityDepartment Entity = "department"
	EntityEmployee   Entity = "employee"
	EntityRequest    Entity = "request"
	EntityDatabase   Entity = "database"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpReset  Op = "reset"
)

// Event 在每次修改成功持久化之后同步发出
type Event struct {
	Entity Entity
	Op     Op
	ID     string
	// 仅对账户事件有效
	Email     string
	PrevEmail string
}

// Subscribe 注册变更回调，回调在修改操作返回之前执行
func (r *Repository) Subscribe(fn func(Event)) {
	r.subscribers = append(r.subscribers, fn)
}

func (r *Repository) emit(ev Event) {
	for _, fn := range r.subscribers {
		fn(ev)
	}
}
