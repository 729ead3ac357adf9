package domain

// Database 是整个应用状态的根，总是作为一个整体序列化
type Database struct {
	Accounts    []Account    `json:"accounts"`
	Departments []Department `json:"departments"`
	Employees   []Employee   `json:"employees"`
	Requests    []Request    `json:"requests"`
}

func NewDatabase() *Database {
	return &Database{
		Accounts:    make([]Account, 0),
		Departments: make([]Department, 0),
		Employees:   make([]Employee, 0),
		Requests:    make([]Request, 0),
	}
}

// Clone 返回深拷贝，调用方可以随意读取而不影响原数据
func (db *Database) Clone() *Database {
	c := &Database{
		Accounts:    append(make([]Account, 0, len(db.Accounts)), db.Accounts...),
		Departments: append(make([]Department, 0, len(db.Departments)), db.Departments...),
		Employees:   append(make([]Employee, 0, len(db.Employees)), db.Employees...),
		Requests:    make([]Request, 0, len(db.Requests)),
	}
	for _, req := range db.Requests {
		req.Items = append(make([]RequestItem, 0, len(req.Items)), req.Items...)
		c.Requests = append(c.Requests, req)
	}
	return c
}

// Normalize 把解码后缺失的集合补成空切片
func (db *Database) Normalize() {
	if db.Accounts == nil {
		db.Accounts = make([]Account, 0)
	}
	if db.Departments == nil {
		db.Departments = make([]Department, 0)
	}
	if db.Employees == nil {
		db.Employees = make([]Employee, 0)
	}
	if db.Requests == nil {
		db.Requests = make([]Request, 0)
	}
	for i := range db.Requests {
		if db.Requests[i].Items == nil {
			db.Requests[i].Items = make([]RequestItem, 0)
		}
	}
}

func (db *Database) FindAccountByEmail(email string) (int, bool) {
	for i := range db.Accounts {
		if db.Accounts[i].Email == email {
			return i, true
		}
	}
	return -1, false
}

func (db *Database) FindAccount(id ID) (int, bool) {
	for i := range db.Accounts {
		if db.Accounts[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (db *Database) FindDepartment(id ID) (int, bool) {
	for i := range db.Departments {
		if db.Departments[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// DepartmentNames 返回员工表单中部门下拉框的选项，保持插入顺序
func (db *Database) DepartmentNames() []string {
	names := make([]string, 0, len(db.Departments))
	for _, dept := range db.Departments {
		names = append(names, dept.Name)
	}
	return names
}

func (db *Database) FindEmployee(id ID) (int, bool) {
	for i := range db.Employees {
		if db.Employees[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
