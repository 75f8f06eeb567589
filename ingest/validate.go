// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// OfficeInput is an office as entered by the user.
type OfficeInput struct {
	Name     string `json:"name" validate:"required" label:"Name"`
	Postcode string `json:"postcode" validate:"postcode" label:"Postcode"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
}

// EmployeeInput is an employee as entered by the user.
type EmployeeInput struct {
	Name           string `json:"name" validate:"required" label:"Name"`
	Postcode       string `json:"postcode" validate:"postcode" label:"Postcode"`
	Street         string `json:"street,omitempty"`
	City           string `json:"city,omitempty"`
	Team           string `json:"team" validate:"required" label:"Team"`
	Department     string `json:"department,omitempty"`
	Role           string `json:"role,omitempty"`
	AssignedOffice string `json:"assignedOffice,omitempty"`
}

// Validated is the outcome of validating one input: either a cleaned value or
// the list of violated rules.
type Validated[T any] struct {
	Value  T
	Errors []string
}

// OK reports whether validation passed.
func (v Validated[T]) OK() bool {
	return len(v.Errors) == 0
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return strings.ToLower(fld.Name)
			}

			return name
		})

		if err := validate.RegisterValidation("postcode", isPostcode); err != nil {
			panic(err)
		}
	})

	return validate
}

// isPostcode accepts exactly five ASCII digits.
func isPostcode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// ValidateOffice trims every field and checks the office rules.
func ValidateOffice(in OfficeInput) Validated[OfficeInput] {
	in = OfficeInput{
		Name:     strings.TrimSpace(in.Name),
		Postcode: strings.TrimSpace(in.Postcode),
		Street:   strings.TrimSpace(in.Street),
		City:     strings.TrimSpace(in.City),
	}

	return Validated[OfficeInput]{Value: in, Errors: check(in)}
}

// ValidateEmployee trims every field and checks the employee rules.
func ValidateEmployee(in EmployeeInput) Validated[EmployeeInput] {
	in = EmployeeInput{
		Name:           strings.TrimSpace(in.Name),
		Postcode:       strings.TrimSpace(in.Postcode),
		Street:         strings.TrimSpace(in.Street),
		City:           strings.TrimSpace(in.City),
		Team:           strings.TrimSpace(in.Team),
		Department:     strings.TrimSpace(in.Department),
		Role:           strings.TrimSpace(in.Role),
		AssignedOffice: strings.TrimSpace(in.AssignedOffice),
	}

	return Validated[EmployeeInput]{Value: in, Errors: check(in)}
}

// check returns one message per violated rule, in field order.
func check(v any) []string {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	typ := reflect.TypeOf(v)
	messages := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		label := fe.StructField()
		if f, ok := typ.FieldByName(fe.StructField()); ok && f.Tag.Get("label") != "" {
			label = f.Tag.Get("label")
		}

		messages = append(messages, fmt.Sprintf("%s: %s", fe.Field(), ruleMessage(fe.Tag(), label)))
	}

	return messages
}

func ruleMessage(tag, label string) string {
	switch tag {
	case "required":
		return label + " is required"
	case "postcode":
		return label + " must be exactly 5 digits"
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, tag)
	}
}
