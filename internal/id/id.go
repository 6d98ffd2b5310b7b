// Package id generates prefixed, URL-safe identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/shotgallery/gallery-server/internal/domain"
)

// Prefixes for each kind of record.
const (
	PrefixUser  = "usr"
	PrefixToken = "tok"
)

var variantPrefixes = map[domain.Variant]string{
	domain.VariantWebsite:   "web",
	domain.VariantSection:   "sec",
	domain.VariantDashboard: "dsh",
	domain.VariantFlow:      "flw",
}

var axisPrefixes = map[domain.Axis]string{
	domain.AxisCategory: "cat",
	domain.AxisFont:     "fnt",
	domain.AxisColor:    "col",
	domain.AxisLayout:   "lay",
}

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "web-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// ForVariant generates an ID for a content item of variant v.
func ForVariant(v domain.Variant) (string, error) {
	prefix, ok := variantPrefixes[v]
	if !ok {
		return "", fmt.Errorf("no id prefix for variant %q", v)
	}
	return Generate(prefix)
}

// ForAxis generates an ID for a taxonomy entry on axis a.
func ForAxis(a domain.Axis) (string, error) {
	prefix, ok := axisPrefixes[a]
	if !ok {
		return "", fmt.Errorf("no id prefix for axis %q", a)
	}
	return Generate(prefix)
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use only where failure should crash the program (e.g., seeding).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
