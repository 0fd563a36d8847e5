package entity

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/ashwinbuilds/booking-engine/internal/domain/errors"
)

// phone: 8-15 digits, no leading zero
var phonePattern = regexp.MustCompile(`^[1-9][0-9]{7,14}$`)

// phoneFormatting strips the separators customers type ("+91 98765-43210").
// Anything else, letters included, survives and fails the digit rule.
var phoneFormatting = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "", "+", "")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("booking_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(phoneFormatting.Replace(fl.Field().String()))
	})
	return v
}

// ServiceSelection is the priced service the customer picked, snapshotted
// from the region catalog at order time. Amounts are in minor currency units.
type ServiceSelection struct {
	Name          string `json:"name" validate:"required"`
	TotalAmount   int64  `json:"total_amount" validate:"required,gt=0"`
	DepositAmount int64  `json:"deposit_amount" validate:"required,gt=0"`
	Timeline      string `json:"timeline"`
}

// BookingIntent holds the customer's purchase intent. It lives only in the
// checkout attempt store until payment completes; a cancelled attempt keeps
// it so the customer can retry without re-entering anything.
type BookingIntent struct {
	CustomerName  string           `json:"customer_name" validate:"required"`
	CustomerEmail string           `json:"customer_email" validate:"required,email"`
	CustomerPhone string           `json:"customer_phone,omitempty" validate:"omitempty,booking_phone"`
	ProjectBrief  string           `json:"project_brief,omitempty"`
	Service       ServiceSelection `json:"service"`
	Region        string           `json:"region"`
}

// Validate checks the intent before any network call is made. Field problems
// come back as field-scoped validation errors the customer can correct.
func (b *BookingIntent) Validate() error {
	if err := validate.Struct(b); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return domainErrors.NewValidationError(fieldName(fe), validationMessage(fe))
		}
		return domainErrors.NewValidationError("", err.Error())
	}

	if b.Service.DepositAmount > b.Service.TotalAmount {
		return domainErrors.NewValidationError("service.deposit_amount",
			"deposit amount cannot exceed the total amount")
	}
	return nil
}

// ContactDigits returns the phone number reduced to digits only, the form
// the gateway prefill expects.
func (b *BookingIntent) ContactDigits() string {
	var sb strings.Builder
	for _, r := range b.CustomerPhone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func fieldName(fe validator.FieldError) string {
	// "BookingIntent.CustomerEmail" -> "customer_email" style via namespace tail
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return toSnake(ns)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "booking_phone":
		return "phone must be 8-15 digits without a leading zero"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "invalid value"
	}
}

func toSnake(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '.' {
				sb.WriteByte('_')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
