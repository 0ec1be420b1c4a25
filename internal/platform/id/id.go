// Package id generates collision-free identifiers for entities created at
// runtime. Identifiers are UUIDv4 payloads rendered in lowercase base32 so
// they stay URL-safe and case-insensitive.
package id

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a 26-character lowercase base32 identifier backed by a
// random UUID.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// NewPrefixedID returns a short demo-readable identifier of the form
// PREFIX-XXXXXXXX, where the suffix is the first eight hex digits of a
// random UUID. Uniqueness comes from the UUID, not from any counter.
func NewPrefixedID(prefix string) (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	suffix := strings.ToUpper(hex.EncodeToString(value[:4]))
	return prefix + "-" + suffix, nil
}
