package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput checks v against its `validate` tags and reports only the first
// failing field, using msgs[field] as the client-facing message.
func validateInput(v any, msgs map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apierr.Internal(fmt.Errorf("validate input: %w", err))
	}
	fe := verrs[0]
	if msg, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return apierr.Validation(msg)
	}
	if msg, ok := msgs[fe.Field()]; ok {
		return apierr.Validation(msg)
	}
	return apierr.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
}
