// Package validation implements the field format rules for user and catalog
// input. Failures are collected as field-level errors rather than a single
// message, so a caller gets every problem in one pass.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Personal names: letters only, including the Polish accented set.
	nameRe = regexp.MustCompile(`^[A-Za-zęĘóÓąĄśŚłŁżŻźŹćĆńŃ]+$`)

	// Free text such as author names: letters plus whitespace, dot and comma.
	freeTextRe = regexp.MustCompile(`^[A-Za-z\s.,ęĘóÓąĄśŚłŁżŻźŹćĆńŃ]+$`)

	phoneRe = regexp.MustCompile(`^\d{9}$`)
	emailRe = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
)

// Name reports whether s is a valid personal name.
func Name(s string) bool {
	return nameRe.MatchString(s)
}

// FreeText reports whether s is acceptable for fields like book author,
// where spaces and basic punctuation are allowed.
func FreeText(s string) bool {
	return freeTextRe.MatchString(s)
}

// PhoneNumber reports whether s is exactly nine decimal digits.
func PhoneNumber(s string) bool {
	return phoneRe.MatchString(s)
}

// Email reports whether s has the local@domain.tld shape.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Password reports whether s satisfies the password policy: at least eight
// characters with at least one lowercase letter, one uppercase letter, and
// one digit. Implemented as an explicit scan because RE2 has no lookaheads.
func Password(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// BookYear reports whether s parses as an integer in (0, currentYear].
func BookYear(s string) bool {
	year, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return year > 0 && year <= time.Now().Year()
}

// PositiveNumber reports whether s parses as an integer greater than zero.
func PositiveNumber(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n > 0
}

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors accumulates field-level failures. The zero value is ready to use;
// a nil or empty Errors means the input was valid.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a failure for the given field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// OrNil returns the accumulated errors as an error value, or nil if none
// were recorded. Returning nil directly avoids the classic non-nil
// interface wrapping a nil slice.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
