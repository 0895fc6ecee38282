package middlewares

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

func CheckRegister(firstName, email, password string) error {
	if strings.TrimSpace(firstName) == "" || email == "" || password == "" {
		return ErrEmptyField
	}

	if !CorrectEmailChecker(email) {
		return ErrInvalidEmail
	}

	return CheckPassword(password)
}

func CheckPassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: minimum 8 characters required", ErrPasswordTooShort)
	}

	return nil
}

func CorrectEmailChecker(email string) bool {
	return emailRegexp.MatchString(email)
}
