package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/AleeDe/nafaverse/internal/common"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

func validEmail(email string) error {
	if err := required("email", email); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return invalid("%q is not a valid email address", email)
	}
	return nil
}
