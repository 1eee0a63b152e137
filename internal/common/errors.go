// Package common defines shared constants and sentinel errors used across
// the postkeeper client and the kvserver. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Input errors, raised before any state is touched.
	ErrValidation = errors.New("validation error")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Remote key-value errors.
	ErrValueTooLarge = errors.New("key or value too long for KeyVal API")
	ErrTransport     = errors.New("transport error")

	// Payload errors (stored or remote data that cannot be decoded).
	ErrSerialization = errors.New("serialization error")
)
