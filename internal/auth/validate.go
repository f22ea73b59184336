package auth

import (
	"fmt"
	"strings"
)

const minPasswordLen = 6

type Reason string

const (
	MissingName      Reason = "missing_name"
	MissingEmail     Reason = "missing_email"
	InvalidEmail     Reason = "invalid_email"
	WeakPassword     Reason = "weak_password"
	PasswordMismatch Reason = "password_mismatch"
)

var reasonMessages = map[Reason]string{
	MissingName:      "Vui lòng nhập họ tên!",
	MissingEmail:     "Vui lòng nhập email!",
	InvalidEmail:     "Email không hợp lệ!",
	WeakPassword:     "Mật khẩu phải có ít nhất 6 ký tự!",
	PasswordMismatch: "Mật khẩu xác nhận không khớp!",
}

type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Message is the text shown next to the offending form field.
func (e *ValidationError) Message() string {
	return reasonMessages[e.Reason]
}

func invalid(r Reason) error {
	return &ValidationError{Reason: r}
}

// validateProfile checks the registration form in the order the form shows
// its errors and returns the first failure.
func validateProfile(p Profile) error {
	if err := validateIdentity(p.Name, p.Email); err != nil {
		return err
	}
	if len([]rune(p.Password)) < minPasswordLen {
		return invalid(WeakPassword)
	}
	if p.Password != p.ConfirmPassword {
		return invalid(PasswordMismatch)
	}
	return nil
}

func validateIdentity(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return invalid(MissingName)
	}
	if strings.TrimSpace(email) == "" {
		return invalid(MissingEmail)
	}
	if !strings.Contains(email, "@") {
		return invalid(InvalidEmail)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// sameEmail guards registration against addresses that differ only in case.
// Login matches the stored address exactly.
func sameEmail(a, b string) bool {
	return strings.EqualFold(normalizeEmail(a), normalizeEmail(b))
}
