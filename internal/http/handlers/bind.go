package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gestionrodar/filmoteca/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds and validates a request body, answering 400 with per-field
// violations on failure. All request DTOs here are flat structs, so field
// resolution is a single json-tag lookup on the root type.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		message, fields := parseBindError(err, out)

		RespondValidation(ctx, message, fields)

		return false
	}

	return true
}

func parseBindError(err error, out interface{}) (string, []apperr.FieldViolation) {
	rootType := baseStructType(out)

	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]apperr.FieldViolation, 0, len(validatorError))

		for _, fieldError := range validatorError {
			fields = append(fields, apperr.FieldViolation{
				Field:   jsonFieldName(rootType, fieldError.StructField()),
				Message: validationMessage(fieldError.Tag(), fieldError.Param()),
			})
		}

		return "invalid request body", fields
	}

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return "malformed JSON", nil
	}

	var typeError *json.UnmarshalTypeError

	if errors.As(err, &typeError) {
		field := jsonFieldName(rootType, typeError.Field)

		if field == "" {
			field = strings.TrimSpace(typeError.Field)
		}

		return "invalid request body", []apperr.FieldViolation{
			{
				Field:   field,
				Message: fmt.Sprintf("must be of type %s", typeError.Type.String()),
			},
		}
	}

	// final fallback if the error could not be deciphered
	return "invalid request body", nil
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

func jsonFieldName(rootType reflect.Type, structField string) string {
	if rootType == nil || structField == "" {
		return structField
	}

	sf, ok := rootType.FieldByName(structField)

	if !ok {
		return structField
	}

	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")

	if name == "" || name == "-" {
		return sf.Name
	}

	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
