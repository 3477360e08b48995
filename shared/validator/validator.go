package validator

import (
	"encoding/json"
	"fmt"
	"garagebook/shared/constant"
	"garagebook/shared/failure"
	"io"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerRFC3339Validation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DateFormat, value)

	return err == nil
}

func registerRoleValidation(field val.FieldLevel) bool {
	switch field.Field().String() {
	case constant.RoleCustomer, constant.RoleGarage, constant.RoleAdmin:
		return true
	default:
		return false
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("rfc3339", registerRFC3339Validation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("role", registerRoleValidation)
	if err != nil {
		panic(err)
	}
}

// Validate decodes a JSON body from r into data and runs struct validation on it.
// Both decode and validation problems come back as 400 failures.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
