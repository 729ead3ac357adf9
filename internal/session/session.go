package session

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
	"github.com/ipt-demo/hr-portal/backend/internal/store"
)

// Mailer 投递验证邮件，投递失败不会影响注册结果
type Mailer interface {
	SendVerification(acc *domain.Account) error
}

type Keys struct {
	AuthToken  string
	Unverified string
}

// Session 记录当前登录的账户。
// auth_token 中保存的是账户邮箱本身，没有签名，任何写入该条目的值都会被当作对应邮箱登录。
// 只有在单用户、本地可信环境下这才可以接受。
type Session struct {
	repo    *repository.Repository
	adapter *store.Adapter
	keys    Keys
	mailer  Mailer
	logger  *slog.Logger

	current domain.ID
}

func New(repo *repository.Repository, keys Keys, mailer Mailer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		repo:    repo,
		adapter: repo.Adapter(),
		keys:    keys,
		mailer:  mailer,
		logger:  logger,
	}
	repo.Subscribe(s.onChange)
	return s
}

// Current 返回当前登录的账户，未登录时返回 nil
func (s *Session) Current() *domain.Account {
	if s.current == "" {
		return nil
	}
	acc, err := s.repo.AccountByID(s.current)
	if err != nil {
		return nil
	}
	return acc
}

// SetAuthState 传入账户表示登录并写入令牌，传入 nil 表示登出并删除令牌
func (s *Session) SetAuthState(acc *domain.Account) error {
	if acc == nil {
		s.current = ""
		if err := s.adapter.DeleteSlot(s.keys.AuthToken); err != nil {
			return err
		}
		return nil
	}

	s.current = acc.ID
	return s.adapter.SetSlot(s.keys.AuthToken, acc.Email)
}

// Restore 在启动时根据令牌恢复会话。令牌对应的账户不存在或未验证时删除令牌。
func (s *Session) Restore() error {
	token, err := s.adapter.GetSlot(s.keys.AuthToken)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil
		}
		return err
	}

	acc, err := s.repo.AccountByEmail(token)
	if err != nil || !acc.Verified {
		s.logger.Info("令牌对应的账户不可用，已清除", "email", token)
		s.current = ""
		return s.adapter.DeleteSlot(s.keys.AuthToken)
	}

	s.current = acc.ID
	return nil
}

// Login 只有邮箱、密码都匹配且账户已验证时才会成功；
// 凭据正确但未验证时返回 ErrUnverified，其余情况返回 ErrInvalidCredentials。
// 邮箱会去掉首尾空白，密码原样比较。
func (s *Session) Login(email, password string) (*domain.Account, error) {
	acc, err := s.repo.AccountByEmail(strings.TrimSpace(email))
	if err != nil || acc.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	if !acc.Verified {
		return nil, domain.ErrUnverified
	}

	if err := s.SetAuthState(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Session) Logout() error {
	return s.SetAuthState(nil)
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register 创建未验证的普通账户并记录待验证邮箱
func (s *Session) Register(in RegisterInput) (*domain.Account, error) {
	acc, err := s.repo.CreateAccount(repository.AccountInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	}, true)
	if err != nil {
		return nil, err
	}

	if err := s.adapter.SetSlot(s.keys.Unverified, acc.Email); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendVerification(acc); err != nil {
			s.logger.Error("投递验证邮件失败", "email", acc.Email, "error", err)
		}
	}

	return acc, nil
}

// PendingVerification 返回等待验证的邮箱
func (s *Session) PendingVerification() (string, error) {
	email, err := s.adapter.GetSlot(s.keys.Unverified)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return "", domain.ErrNoPendingVerification
		}
		return "", err
	}
	return email, nil
}

// SimulateVerification 模拟用户点击验证链接
func (s *Session) SimulateVerification() (*domain.Account, error) {
	email, err := s.PendingVerification()
	if err != nil {
		return nil, err
	}

	acc, err := s.repo.VerifyAccount(email)
	if err != nil {
		return nil, err
	}

	if err := s.adapter.DeleteSlot(s.keys.Unverified); err != nil {
		return nil, err
	}
	return acc, nil
}

// onChange 保证当前账户的邮箱变化时令牌在同一次操作中更新
func (s *Session) onChange(ev repository.Event) {
	if ev.Entity == repository.EntityDatabase && ev.Op == repository.OpReset {
		// 重置数据库等同于清空所有条目
		s.endSession()
		if err := s.adapter.DeleteSlot(s.keys.Unverified); err != nil {
			s.logger.Error("清除待验证邮箱失败", "error", err)
		}
		return
	}

	if s.current == "" {
		return
	}

	if ev.Entity == repository.EntityAccount && domain.ID(ev.ID) == s.current {
		switch ev.Op {
		case repository.OpUpdate:
			if ev.Email != ev.PrevEmail {
				if err := s.adapter.SetSlot(s.keys.AuthToken, ev.Email); err != nil {
					s.logger.Error("更新令牌失败", "email", ev.Email, "error", err)
				}
			}
		case repository.OpDelete:
			s.endSession()
		}
	}
}

func (s *Session) endSession() {
	if err := s.SetAuthState(nil); err != nil {
		s.logger.Error("清除令牌失败", "error", err)
	}
}
