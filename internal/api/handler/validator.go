package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(form).
// Rules stay at what the browser's own form controls would enforce.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Messages name fields by their form key.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, " ; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a French message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("le champ %s est obligatoire", field)
	case "email":
		return fmt.Sprintf("le champ %s doit être un email valide", field)
	case "number", "numeric":
		return fmt.Sprintf("le champ %s doit être un nombre", field)
	case "oneof":
		return fmt.Sprintf("le champ %s doit valoir l'une de ces valeurs : %s", field, fe.Param())
	default:
		return fmt.Sprintf("le champ %s est invalide (%s)", field, fe.Tag())
	}
}
