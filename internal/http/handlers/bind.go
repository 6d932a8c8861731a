package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// BindJSON binds and validates the request body. On failure it writes the 400
// itself and returns false, so handlers can bail with a bare return.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	if err := ctx.ShouldBindJSON(out); err != nil {
		RespondBadRequest(ctx, "Invalid request body", bindErrorDetails(err, out))
		return false
	}

	return true
}

func bindErrorDetails(err error, out interface{}) interface{} {
	var (
		validationErrs validator.ValidationErrors
		syntaxErr      *json.SyntaxError
		typeErr        *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &validationErrs):
		structType := dereference(out)
		fields := make([]FieldError, 0, len(validationErrs))

		for _, fe := range validationErrs {
			fields = append(fields, FieldError{
				Field:   jsonFieldName(structType, fe.StructField()),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: ruleMessage(fe.Tag(), fe.Param()),
			})
		}

		return gin.H{"fields": fields}

	case errors.As(err, &syntaxErr):
		return gin.H{"json": "invalid_json_syntax"}

	case errors.As(err, &typeErr):
		field := strings.TrimSpace(typeErr.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{{
				Field:   field,
				Rule:    "type",
				Message: "must be of type " + typeErr.Type.String(),
			}},
		}

	default:
		return gin.H{"reason": err.Error()}
	}
}

func dereference(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	return t
}

// jsonFieldName maps a struct field back to its json tag. The request payloads
// are flat structs, so a single-level lookup covers everything; dive errors
// carry an index suffix like "Skills[2]" which is preserved.
func jsonFieldName(structType reflect.Type, structField string) string {
	name, suffix := structField, ""

	if i := strings.IndexByte(structField, '['); i >= 0 {
		name, suffix = structField[:i], structField[i:]
	}

	if structType == nil {
		return name + suffix
	}

	sf, ok := structType.FieldByName(name)

	if !ok {
		return name + suffix
	}

	tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")

	if tag == "" || tag == "-" {
		return name + suffix
	}

	return tag + suffix
}

func ruleMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "len":
		return "must be exactly " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	}

	if param != "" {
		return fmt.Sprintf("failed %s validation (%s)", rule, param)
	}

	return "failed " + rule + " validation"
}
