package validation

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/post-engagement-api/internal/models"
)

var (
	// ErrImageTooLarge is returned when the decoded image exceeds the ceiling
	ErrImageTooLarge = errors.New("image is too large")
	// ErrImageEncoding is returned when the image payload is not valid base64
	ErrImageEncoding = errors.New("image is not valid base64")
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks request payloads using struct tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()

	// Report json field names rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateRegistration validates a registration payload after normalization
func (v *Validator) ValidateRegistration(req *models.RegisterRequest) []ValidationError {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)
	return v.check(req)
}

// ValidateLogin validates a login payload after normalization
func (v *Validator) ValidateLogin(req *models.LoginRequest) []ValidationError {
	req.Email = NormalizeEmail(req.Email)
	return v.check(req)
}

// ValidateUserUpdate validates a profile update; at least one field must change
func (v *Validator) ValidateUserUpdate(req *models.UpdateUserRequest) []ValidationError {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	errs := v.check(req)
	if req.Name == "" && req.Email == "" && req.Password == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "nothing to update"})
	}
	return errs
}

// check runs the struct tags and converts failures into ValidationErrors
func (v *Validator) check(req interface{}) []ValidationError {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "body", Message: err.Error()}}
	}

	errs := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Value:   redact(fe),
		})
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// redact never echoes passwords back
func redact(fe validator.FieldError) interface{} {
	if fe.Field() == "password" {
		return nil
	}
	if s, ok := fe.Value().(string); ok && s == "" {
		return nil
	}
	return fe.Value()
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeContent trims post, comment and reply text
func NormalizeContent(content string) string {
	return strings.TrimSpace(content)
}

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// ParseImage checks an image payload given as a data URI or raw base64 and
// returns its decoded size. An empty payload means no image.
func ParseImage(raw string, limit int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	payload := raw
	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ";base64,")
		if idx < 0 {
			return 0, ErrImageEncoding
		}
		payload = raw[idx+len(";base64,"):]
	}
	// MIME-wrapped payloads carry line breaks the decoder ignores anyway
	payload = lineBreaks.Replace(payload)

	// Reject obviously oversized payloads before allocating
	if int64(base64.StdEncoding.DecodedLen(len(payload)))-2 > limit {
		return 0, ErrImageTooLarge
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return 0, ErrImageEncoding
		}
	}

	size := int64(len(decoded))
	if size > limit {
		return size, ErrImageTooLarge
	}
	return size, nil
}
