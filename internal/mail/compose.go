package mail

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	gomail "github.com/wneessen/go-mail"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var ErrUnsupportedType = errors.New("unsupported mail type")

// queued 是队列中消息的解码形式，Data 按 Type 延迟解码
type queued struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

// Compose 把队列中的消息体转换成可以发送的邮件
func Compose(body []byte, from string) (*gomail.Msg, error) {
	var q queued
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, fmt.Errorf("decode mail message: %w", err)
	}

	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, err
	}
	if err := m.To(q.To); err != nil {
		return nil, err
	}

	switch q.Type {
	case domain.MailTypeVerifyEmail:
		var data domain.VerifyEmailMailData
		if err := json.Unmarshal(q.Data, &data); err != nil {
			return nil, fmt.Errorf("decode verify_email data: %w", err)
		}
		if err := m.SetBodyHTMLTemplate(templates.Lookup("verify_email.html"), data); err != nil {
			return nil, err
		}
		m.Subject("HR Portal - Verify your email")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, q.Type)
	}

	return m, nil
}
