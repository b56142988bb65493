package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/foodcodex/internal/shared"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	return v
}

// RequireUserID returns [shared.ErrMissingUserID] when userID is empty.
func RequireUserID(userID string) error {
	if userID == "" {
		return shared.ErrMissingUserID
	}
	return nil
}

// validateStruct runs struct tag validation and wraps failures in [shared.ErrInvalidInput].
func validateStruct(kind string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s: %s", shared.ErrInvalidInput, kind, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %s: %v", shared.ErrInvalidInput, kind, err)
}
