// internal/app/system/inputval/inputval.go

// Package inputval provides struct-tag driven validation for request
// payloads. Rules live in `validate` tags (required, min=N, max=N,
// email); `label` tags supply the field name used in messages.
package inputval

import (
	"fmt"
	"net/mail"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Result collects validation failures in field-declaration order.
type Result struct {
	errs []string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.errs) > 0 }

// First returns the first failure message, or "".
func (r Result) First() string {
	if len(r.errs) == 0 {
		return ""
	}
	return r.errs[0]
}

// All returns every failure message.
func (r Result) All() []string { return r.errs }

// Validate checks the string fields of a struct against its `validate`
// tags. Non-struct values and non-string fields are ignored.
func Validate(input any) Result {
	var res Result
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		rules := field.Tag.Get("validate")
		if rules == "" || field.Type.Kind() != reflect.String {
			continue
		}
		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := v.Field(i).String()
		for _, rule := range strings.Split(rules, ",") {
			if msg := applyRule(rule, label, value); msg != "" {
				res.errs = append(res.errs, msg)
				break // one message per field
			}
		}
	}
	return res
}

func applyRule(rule, label, value string) string {
	switch {
	case rule == "required":
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("%s is required.", label)
		}
	case rule == "email":
		if value != "" && !IsValidEmail(value) {
			return fmt.Sprintf("%s must be a valid email address.", label)
		}
	case strings.HasPrefix(rule, "min="):
		n, err := strconv.Atoi(rule[len("min="):])
		if err == nil && value != "" && utf8.RuneCountInString(value) < n {
			return fmt.Sprintf("%s must be at least %d characters.", label, n)
		}
	case strings.HasPrefix(rule, "max="):
		n, err := strconv.Atoi(rule[len("max="):])
		if err == nil && utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("%s must be at most %d characters.", label, n)
		}
	}
	return ""
}

// IsValidEmail reports whether s parses as a single RFC 5322 address
// without a display name.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	// require a dot in the domain so bare hostnames are rejected
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
