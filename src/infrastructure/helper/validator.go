package helper

import (
	"fmt"

	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/go-playground/validator/v10"
)

// Validator translates validator.v10 field errors into user-facing messages.
type Validator interface {
	GetErrorMsg(fe validator.FieldError) string
}

type validatorService struct {
	Logger *logger.Logger
}

func NewValidator(loggerInstance *logger.Logger) Validator {
	return &validatorService{Logger: loggerInstance}
}

func (v *validatorService) GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("Should be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("Should be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("Should be greater than or equal to %s", fe.Param())
	default:
		return "Invalid value"
	}
}
