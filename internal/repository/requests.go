package repository

import (
	"strings"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

const dateLayout = "2006-01-02"

type RequestInput struct {
	Type  string               `json:"type"`
	Items []domain.RequestItem `json:"items"`
}

// RequestsFor 返回指定员工提交的请求，保持提交顺序
func (r *Repository) RequestsFor(email string) []domain.Request {
	result := make([]domain.Request, 0)
	for _, req := range r.Database().Requests {
		if req.EmployeeEmail == email {
			result = append(result, req)
		}
	}
	return result
}

// validItems 丢弃名称为空或数量小于 1 的条目
func validItems(items []domain.RequestItem) []domain.RequestItem {
	result := make([]domain.RequestItem, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.Qty < 1 {
			continue
		}
		result = append(result, domain.RequestItem{Name: name, Qty: item.Qty})
	}
	return result
}

// CreateRequest 以 ownerEmail 的身份提交请求，调用方必须传入当前会话的邮箱。
// 类型是自由文本，可以为空；至少要有一个有效条目。
// 新请求状态总是 Pending，目前没有审批流程修改它。
func (r *Repository) CreateRequest(ownerEmail string, in RequestInput) (*domain.Request, error) {
	in.Type = strings.TrimSpace(in.Type)

	items := validItems(in.Items)
	if len(items) == 0 {
		return nil, domain.ErrNoValidItems
	}

	req := domain.Request{
		ID:            domain.NewID(),
		EmployeeEmail: ownerEmail,
		Type:          in.Type,
		Items:         items,
		Status:        domain.StatusPending,
		Date:          r.now().Format(dateLayout),
	}

	if err := r.mutate(func(db *domain.Database) error {
		db.Requests = append(db.Requests, req)
		return nil
	}); err != nil {
		return nil, err
	}

	r.emit(Event{Entity: EntityRequest, Op: OpCreate, ID: string(req.ID)})
	return &req, nil
}
