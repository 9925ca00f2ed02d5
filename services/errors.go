package services

import (
	"errors"
	"fmt"
	"strings"

	"travelpro/travelers"
)

// ErrUnavailable marks a failed call to an external service (network error,
// timeout, non-2xx). Tool operations never return it; they fall back instead.
var ErrUnavailable = errors.New("service unavailable")

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

type UnknownCityError struct {
	Names     []string
	Supported []string
}

func (e UnknownCityError) Error() string {
	msg := fmt.Sprintf("no airport code found for %s", strings.Join(e.Names, " and "))
	if len(e.Supported) > 0 {
		msg += ". Supported cities include: " + strings.Join(e.Supported, ", ")
	}
	return msg
}

type DateErrorKind string

const (
	InvalidDate DateErrorKind = "invalid_date"
	DateInPast  DateErrorKind = "date_in_past"
)

type DateError struct {
	Kind      DateErrorKind
	Value     string
	Suggested string
}

func (e DateError) Error() string {
	switch e.Kind {
	case DateInPast:
		return fmt.Sprintf("date %s is in the past, try a future date such as %s", e.Value, e.Suggested)
	default:
		return fmt.Sprintf("invalid date %q, use YYYY-MM-DD (for example %s)", e.Value, e.Suggested)
	}
}

type NotFoundError struct {
	Resource string
	Name     string
}

func (e NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
}

func unavailable(service string, err error) error {
	return fmt.Errorf("%s: %w: %v", service, ErrUnavailable, err)
}

func IsValidation(err error) bool {
	var v ValidationError
	var in travelers.InputError
	return errors.As(err, &v) || errors.As(err, &in)
}

func IsUnknownCity(err error) bool {
	var target UnknownCityError
	return errors.As(err, &target)
}

func IsDateError(err error) bool {
	var target DateError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
