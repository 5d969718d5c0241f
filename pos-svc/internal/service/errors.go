package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"mfood/pos-svc/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ValidationError is returned for malformed or inconsistent input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError is returned when the stored status does not allow an action.
type TransitionError struct {
	Entity string
	Action string
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct turns the first failing field into a ValidationError.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return invalid("%s is required", fe.Field())
		case "min", "gte":
			return invalid("%s must be at least %s", fe.Field(), fe.Param())
		case "max", "lte":
			return invalid("%s must be at most %s", fe.Field(), fe.Param())
		case "oneof":
			return invalid("%s must be one of: %s", fe.Field(), fe.Param())
		case "email":
			return invalid("%s must be a valid email", fe.Field())
		default:
			return invalid("%s is invalid", fe.Field())
		}
	}
	return invalid("%s", err.Error())
}

func publish(ctx context.Context, events EventPublisher, event domain.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("event", event.Type).
			Str("restaurant_id", event.RestaurantID.String()).
			Msg("event publish failed")
	}
}
