package validate

import (
	"errors"
	"net/mail"
	"net/url"
	"time"
)

var (
	errNoScheme    = errors.New("missing scheme")
	errDisplayName = errors.New("unexpected display name")
)

var formatCheckers = map[string]func(string) error{
	"date":      checkDate,
	"date-time": checkDateTime,
	"email":     checkEmail,
	"uri":       checkURI,
}

// checkFormat validates s against a named string format. Unknown formats
// are annotations and always pass.
func checkFormat(format, s string) error {
	check, ok := formatCheckers[format]
	if !ok {
		return nil
	}

	return check(s)
}

func checkDate(s string) error {
	_, err := time.Parse(time.DateOnly, s)
	return err
}

func checkDateTime(s string) error {
	_, err := time.Parse(time.RFC3339, s)
	return err
}

func checkEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return err
	}

	if addr.Address != s {
		return errDisplayName
	}

	return nil
}

func checkURI(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}

	if u.Scheme == "" {
		return errNoScheme
	}

	return nil
}
