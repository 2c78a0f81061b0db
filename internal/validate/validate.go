// Package validate mirrors the backend's request validation on the client
// so obviously-bad input never reaches the network. It is advisory: the
// backend's 400 remains authoritative.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aims-ops/aims-console/internal/models"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs tag-based validation and flattens the result into a single
// readable error.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "ip4_addr":
		return fmt.Sprintf("%s must be a valid IPv4 address", field)
	case "ip6_addr":
		return fmt.Sprintf("%s must be a valid IPv6 address", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Host checks a host create/update body, including the cross-field rule
// that at least one IP address is present.
func Host(req models.HostRequest) error {
	if err := Struct(req); err != nil {
		return err
	}
	if req.IP4 == "" && req.IP6 == "" {
		return errors.New("at least one of ip4 or ip6 is required")
	}
	return nil
}

// Comment checks an incident comment body (1-200 characters).
func Comment(text string) error {
	return Struct(models.CommentRequest{Comment: text})
}

// ProviderType checks the provider_type query discriminator.
func ProviderType(t string) error {
	if t != models.ProviderTypeAlert && t != models.ProviderTypeLog {
		return fmt.Errorf("provider type must be %q or %q", models.ProviderTypeAlert, models.ProviderTypeLog)
	}
	return nil
}

// ProviderFields checks key uniqueness and that every required field's
// value parses according to its declared type.
func ProviderFields(fields []models.ProviderField) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			return errors.New("field key is required")
		}
		if seen[f.Key] {
			return fmt.Errorf("duplicate field key %q", f.Key)
		}
		seen[f.Key] = true

		if !f.Required && f.Value == "" {
			continue
		}
		if _, err := f.TypedValue(); err != nil {
			return err
		}
	}
	return nil
}
