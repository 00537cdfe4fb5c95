package middleware

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/clgres/resultapi/internal/pkg/validation"
)

var registerOnce sync.Once

// RegisterValidators adds the rollno and semid tags to gin's validator engine
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("rollno", func(fl validator.FieldLevel) bool {
			return validation.IsValidRollNo(fl.Field().String())
		}); err != nil {
			return
		}
		err = v.RegisterValidation("semid", func(fl validator.FieldLevel) bool {
			return validation.IsValidSemesterID(fl.Field().String())
		})
	})
	return err
}

// FormatValidationError creates a human-readable validation error message
func FormatValidationError(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}

	e := errs[0]
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "rollno":
		return "Invalid roll number " + fmt.Sprint(e.Value())
	case "semid":
		return "Invalid semester " + fmt.Sprint(e.Value())
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
