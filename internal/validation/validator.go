// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

// Package validation provides struct validation using go-playground/validator v10.
// It provides a thread-safe singleton validator instance with custom validators
// for the date and timestamp formats the API accepts.
//
// Validation failures are translated into the detail entries the deployed
// service emitted: {"loc": ["query", "site_id"], "msg": ..., "type": ...},
// always listing every offending field, never only the first.
//
// Example usage:
//
//	type HistoryRequest struct {
//	    SiteID string `json:"site_id" validate:"required,oneof=north central south"`
//	    Limit  int    `json:"limit" validate:"min=1,max=10000"`
//	}
//
//	if details := validation.ValidateRequest(&req, validation.InQuery); details != nil {
//	    respondDetails(w, details)
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Parameter locations reported in the loc path of a detail entry.
const (
	InQuery = "query"
	InPath  = "path"
	InBody  = "body"
)

// Layouts accepted by the custom validators.
const (
	dateOnlyLayout    = "2006-01-02"
	datetimeSecLayout = "2006-01-02 15:04:05"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Detail is one entry of a validation error response, shaped like the
// envelope the deployed service emitted.
type Detail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// NewDetail builds a detail entry for a failure detected outside the
// struct validator, such as an unparseable integer parameter.
func NewDetail(location, field, msg, typ string) Detail {
	return Detail{Loc: []string{location, field}, Msg: msg, Type: typ}
}

// Get returns the singleton validator instance. The validator is
// initialized once with the custom validators registered and field
// names taken from json tags, so error entries name wire fields.
// This function is thread-safe.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// dateonly: a calendar date, YYYY-MM-DD
		_ = validate.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dateOnlyLayout, fl.Field().String())
			return err == nil
		})

		// datetimesec: a wall-clock timestamp, YYYY-MM-DD HH:MM:SS
		_ = validate.RegisterValidation("datetimesec", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(datetimeSecLayout, fl.Field().String())
			return err == nil
		})
	})

	return validate
}

// ValidateRequest validates a request struct and returns the complete
// list of detail entries, or nil if the struct is valid. location names
// where the struct's fields were bound from (query, path, body).
func ValidateRequest(s interface{}, location string) []Detail {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Detail{{
			Loc:  []string{location},
			Msg:  err.Error(),
			Type: "value_error",
		}}
	}

	details := make([]Detail, len(fieldErrs))
	for i, fe := range fieldErrs {
		details[i] = Detail{
			Loc:  []string{location, fe.Field()},
			Msg:  translateError(fe),
			Type: errorType(fe.Tag()),
		}
	}
	return details
}

// errorType maps a validation tag to the detail type token.
func errorType(tag string) string {
	switch tag {
	case "required":
		return "missing"
	case "oneof":
		return "enum"
	case "min", "max", "gte", "lte", "gt", "lt":
		return "value_error.number.not_in_range"
	case "dateonly", "datetimesec":
		return "value_error.datetime"
	default:
		return "value_error"
	}
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":    "%s is required",
	"dateonly":    "%s must be a valid date in YYYY-MM-DD format",
	"datetimesec": "%s must be a valid timestamp in YYYY-MM-DD HH:MM:SS format",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, strings.ReplaceAll(param, " ", ", "))
	}
	return translateMinMax(fe, field, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind() == reflect.String

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
