package domain

import (
	"errors"
)

// 错误分类，具体的规则错误都包裹其中一个，使用 errors.Is 判断
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrAuthorization     = errors.New("not authorized")
	ErrStorageCorruption = errors.New("stored data is corrupted")
)

// RuleError 的 Error() 只返回面向用户的提示，分类通过 Unwrap 暴露
type RuleError struct {
	Kind error
	Msg  string
}

func (e *RuleError) Error() string { return e.Msg }

func (e *RuleError) Unwrap() error { return e.Kind }

func newRuleError(kind error, msg string) error {
	return &RuleError{Kind: kind, Msg: msg}
}

var (
	ErrDuplicateEmail = newRuleError(ErrValidation, "Email already exists! Please use a different email.")
	ErrWeakPassword   = newRuleError(ErrValidation, "Password must be at least 6 characters long.")
	ErrNoValidItems   = newRuleError(ErrValidation, "Please enter valid items.")
	ErrUnknownUser    = newRuleError(ErrValidation, "User with this email does not exist! Please create an account first.")

	ErrAccountNotFound    = newRuleError(ErrNotFound, "Account not found.")
	ErrDepartmentNotFound = newRuleError(ErrNotFound, "Department not found.")
	ErrEmployeeNotFound   = newRuleError(ErrNotFound, "Employee not found.")

	ErrSelfDeleteForbidden = newRuleError(ErrAuthorization, "You cannot delete your own account!")
	ErrAdminOnly           = newRuleError(ErrAuthorization, "Access denied. Admin only.")
	ErrLoginRequired       = newRuleError(ErrAuthorization, "Please login first.")
)

var (
	ErrUnverified            = errors.New("Please verify your email first.")
	ErrInvalidCredentials    = errors.New("Invalid email or password.")
	ErrNoPendingVerification = errors.New("No pending verification found.")
	ErrCancelled             = errors.New("Operation cancelled.")
)

// MinPasswordLength 是账户密码的最小长度
const MinPasswordLength = 6
