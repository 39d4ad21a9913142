package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// RectSectionRequest holds the dimensions of a parametric rectangular section
type RectSectionRequest struct {
	Name string  `validate:"required,max=100"`
	Dy   float64 `validate:"gt=0"`
	Dz   float64 `validate:"gt=0"`
}

// CircSectionRequest holds the dimensions of a parametric circular section
type CircSectionRequest struct {
	Name string  `validate:"required,max=100"`
	Dia  float64 `validate:"gt=0"`
}

// TriSectionRequest holds the dimensions of a parametric triangular section
type TriSectionRequest struct {
	Name string  `validate:"required,max=100"`
	Dy   float64 `validate:"gt=0"`
	Dz   float64 `validate:"gt=0"`
}

// MaterialRequest holds the elastic constants of a material.
// Poisson's ratio is physically bounded to (-1, 0.5] for stable materials.
type MaterialRequest struct {
	Name string  `validate:"required,max=100"`
	E    float64 `validate:"gt=0"`
	G    float64 `validate:"gt=0"`
	Nu   float64 `validate:"gt=-1,lte=0.5"`
}

// ConfigRequest holds builder configuration values
type ConfigRequest struct {
	Precision       int `validate:"gte=0,lte=12"`
	AuditBufferSize int `validate:"gte=0"`
}

// ValidateRectSection validates a rectangular section request
func ValidateRectSection(req *RectSectionRequest) error {
	if req == nil {
		return errors.New("section request cannot be nil")
	}
	return formatValidationError(validate.Struct(req))
}

// ValidateCircSection validates a circular section request
func ValidateCircSection(req *CircSectionRequest) error {
	if req == nil {
		return errors.New("section request cannot be nil")
	}
	return formatValidationError(validate.Struct(req))
}

// ValidateTriSection validates a triangular section request
func ValidateTriSection(req *TriSectionRequest) error {
	if req == nil {
		return errors.New("section request cannot be nil")
	}
	return formatValidationError(validate.Struct(req))
}

// ValidateMaterial validates a material request
func ValidateMaterial(req *MaterialRequest) error {
	if req == nil {
		return errors.New("material request cannot be nil")
	}
	return formatValidationError(validate.Struct(req))
}

// ValidateConfig validates builder configuration values
func ValidateConfig(req *ConfigRequest) error {
	if req == nil {
		return errors.New("config request cannot be nil")
	}
	return formatValidationError(validate.Struct(req))
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			switch fieldErr.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s: is required", fieldErr.Field()))
			case "gt":
				msgs = append(msgs, fmt.Sprintf("%s: must be greater than %s", fieldErr.Field(), fieldErr.Param()))
			case "gte":
				msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", fieldErr.Field(), fieldErr.Param()))
			case "lte":
				msgs = append(msgs, fmt.Sprintf("%s: must be at most %s", fieldErr.Field(), fieldErr.Param()))
			case "max":
				msgs = append(msgs, fmt.Sprintf("%s: exceeds maximum length %s", fieldErr.Field(), fieldErr.Param()))
			default:
				msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", fieldErr.Field(), fieldErr.Tag()))
			}
		}
		return errors.New(strings.Join(msgs, "; "))
	}

	return err
}
