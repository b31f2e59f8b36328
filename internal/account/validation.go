package account

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	nameRe    = regexp.MustCompile(`^[a-zA-Z]*$`)
	mailboxRe = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

	dobLayouts = []string{time.DateOnly, time.RFC3339, "2006/01/02", "01/02/2006"}
)

// SignupInput is the signup request body.
type SignupInput struct {
	Name        string `json:"name" validate:"required,personname"`
	Email       string `json:"email" validate:"required,mailbox"`
	Password    string `json:"password" validate:"required,min=8,maxbytes=72"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,birthdate"`
}

// SigninInput is the sign-in request body.
type SigninInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResetRequestInput is the reset issuance request body.
type ResetRequestInput struct {
	Email       string `json:"email" validate:"required"`
	RedirectURL string `json:"redirectUrl" validate:"required"`
}

// ResetPasswordInput is the reset consumption request body.
type ResetPasswordInput struct {
	UserID      string `json:"userID" validate:"required"`
	ResetString string `json:"resetString" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,maxbytes=72"`
}

func (in *SignupInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	in.DateOfBirth = strings.TrimSpace(in.DateOfBirth)
}

func (in *SigninInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
}

func (in *ResetRequestInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.RedirectURL = strings.TrimSpace(in.RedirectURL)
}

func (in *ResetPasswordInput) normalize() {
	in.UserID = strings.TrimSpace(in.UserID)
	in.ResetString = strings.TrimSpace(in.ResetString)
	in.NewPassword = strings.TrimSpace(in.NewPassword)
}

// NewValidator returns a validator with the account field rules registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return ValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		_, err := ParseDateOfBirth(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return v
}

// ValidName reports whether name holds only letters once spaces are removed.
func ValidName(name string) bool {
	return nameRe.MatchString(strings.ReplaceAll(name, " ", ""))
}

// ValidEmail reports whether email is a plausible mailbox address.
func ValidEmail(email string) bool {
	return mailboxRe.MatchString(email)
}

// ParseDateOfBirth accepts the calendar date layouts clients send.
func ParseDateOfBirth(raw string) (time.Time, error) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New("unrecognised date")
}

// fieldRule identifies a failing field/tag pair.
type fieldRule struct {
	field string
	tag   string
}

// firstViolation maps validator output to the outcome of the highest ranked
// rule. A failing "required" on any field outranks everything else.
func firstViolation(err error, empty error, ranked []fieldRule, outcomes []error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	best := len(ranked)
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return empty
		}
		for i, rule := range ranked {
			if rule.field == fe.Field() && (rule.tag == "" || rule.tag == fe.Tag()) && i < best {
				best = i
			}
		}
	}
	if best == len(ranked) {
		return err
	}
	return outcomes[best]
}

var (
	signupRules    = []fieldRule{{"Name", ""}, {"Email", ""}, {"DateOfBirth", ""}, {"Password", "min"}, {"Password", "maxbytes"}}
	signupOutcomes = []error{ErrInvalidName, ErrInvalidEmail, ErrInvalidDOB, ErrPasswordTooShort, ErrPasswordTooLong}

	resetRules    = []fieldRule{{"NewPassword", "min"}, {"NewPassword", "maxbytes"}}
	resetOutcomes = []error{ErrResetPasswordShort, ErrResetPasswordLong}
)
