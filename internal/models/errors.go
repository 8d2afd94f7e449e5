package models

import (
	"sort"
	"strings"
)

// FieldErrors maps a field (or "server") to a human readable message.
// It is the shape stored in every entity store's error slot.
type FieldErrors map[string]string

// ServerErrorKey is the key used when the backend gives no structured errors.
const ServerErrorKey = "server"

// BaseError is stored when a request fails without a usable error body.
func BaseError() FieldErrors {
	return FieldErrors{ServerErrorKey: "Something went wrong"}
}

// String joins all messages in key order.
func (fe FieldErrors) String() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// ValidationError is a client-side validation failure computed before any
// network call. It is returned to the caller and never stored in an entity
// store's error slot.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.String()
}
