package domain

// Employee 通过 Department 名称（而不是 ID）引用部门，部门改名或删除都不会同步到这里
type Employee struct {
	ID         ID     `json:"id"`
	EmployeeID string `json:"employeeId"`
	UserEmail  string `json:"userEmail"`
	Position   string `json:"position"`
	Department string `json:"department"`
	HireDate   string `json:"hireDate"`
}
