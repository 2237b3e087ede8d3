/*
Copyright 2022 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package errdefs defines the error types returned to gaia clients.
package errdefs

import (
	"errors"
	"fmt"
)

// BadRequestError is returned when a request fails validation or would
// violate the uniqueness of an active record. Field names the offending input.
type BadRequestError struct {
	Field   string
	Message string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BadRequest returns a BadRequestError for the given field.
func BadRequest(field, format string, args ...any) error {
	return &BadRequestError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsBadRequest returns true if err is or wraps a BadRequestError.
func IsBadRequest(err error) bool {
	var e *BadRequestError
	return errors.As(err, &e)
}

// FieldOf returns the offending field of a BadRequestError, or an empty string.
func FieldOf(err error) string {
	var e *BadRequestError
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// NotFoundError is returned when no record matches the lookup.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NotFound returns a NotFoundError with a formatted message.
func NotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// ErrUnrepresentable is returned by the mappers when a cluster object uses a
// feature that has no equivalent in the record model.
var ErrUnrepresentable = errors.New("object is not representable")
