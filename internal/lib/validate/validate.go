package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var instance = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request body against its struct tags. The returned
// error is safe to surface to API clients.
func Struct(s any) error {
	err := instance.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		field := errs[0]
		return fmt.Errorf("invalid field %q: failed %q validation", field.Field(), field.Tag())
	}
	return err
}
