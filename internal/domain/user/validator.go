package user

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	MinLoginLen    = 3
	MaxLoginLen    = 64
	MinPasswordLen = 8
)

// Validator проверяет учетные данные перед регистрацией и входом
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
	ValidatePassword(password string) error
}

// charClass описывает обязательный класс символов пароля
type charClass struct {
	name  string
	match func(rune) bool
}

var (
	classLetter  = charClass{name: "letter", match: unicode.IsLetter}
	classDigit   = charClass{name: "digit", match: unicode.IsDigit}
	classSpecial = charClass{name: "special character", match: func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}}
)

const loginExtraChars = "_-.@+"

type PasswordValidator struct {
	required []charClass
}

// NewPasswordValidator принимает логин или email; пароль должен содержать букву, цифру и спецсимвол
func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		required: []charClass{classLetter, classDigit, classSpecial},
	}
}

func (v *PasswordValidator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return fmt.Errorf("login validation failed: %w", err)
	}
	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}
	return nil
}

func (v *PasswordValidator) ValidateLogin(login string) error {
	switch n := len(login); {
	case n < MinLoginLen:
		return fmt.Errorf("login must be at least %d characters", MinLoginLen)
	case n > MaxLoginLen:
		return fmt.Errorf("login must be at most %d characters", MaxLoginLen)
	}

	if strings.IndexFunc(login, invalidLoginRune) >= 0 {
		return errors.New("login can only contain letters, digits and '_', '-', '.', '@', '+'")
	}

	// логин с @ считается email: ровно один @ и непустые части по обе стороны
	if strings.Contains(login, "@") {
		local, domain, _ := strings.Cut(login, "@")
		if local == "" || domain == "" || strings.Contains(domain, "@") {
			return errors.New("login is not a valid email address")
		}
	}
	return nil
}

func invalidLoginRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune(loginExtraChars, r)
}

func (v *PasswordValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	for _, class := range v.required {
		if strings.IndexFunc(password, class.match) < 0 {
			return fmt.Errorf("password must contain at least one %s", class.name)
		}
	}
	return nil
}
