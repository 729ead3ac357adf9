package domain

type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

type RequestItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Request 创建后状态恒为 Pending，目前没有任何审批流程会修改它
type Request struct {
	ID            ID            `json:"id"`
	EmployeeEmail string        `json:"employeeEmail"`
	Type          string        `json:"type"`
	Items         []RequestItem `json:"items"`
	Status        RequestStatus `json:"status"`
	Date          string        `json:"date"`
}
