package validation

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// String renders the violations as "field: code" pairs sorted by field.
func (v Violations) String() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return strings.Join(parts, ", ")
}

// Basic validators. A field keeps its first violation.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		set(v, field, "required")
	}
}

// MaxLen counts characters, not bytes.
func MaxLen(field, value string, max int, v Violations) {
	if utf8.RuneCountInString(value) > max {
		set(v, field, fmt.Sprintf("max_length_%d", max))
	}
}

func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		set(v, field, "invalid_email")
	}
}

func OneOf(field string, ok bool, v Violations) {
	if !ok {
		set(v, field, "invalid_value")
	}
}

func set(v Violations, field, code string) {
	if _, exists := v[field]; !exists {
		v[field] = code
	}
}
