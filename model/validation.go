package model

import (
	"strings"
	"unicode/utf8"
)

// Rule is a named predicate over a field value.
type Rule struct {
	Attribute string
	Message   string
	Check     func(value string) bool
}

// FieldError is a single failed rule.
type FieldError struct {
	Attribute string `json:"attribute"`
	Message   string `json:"message"`
}

// ValidationErrors collects every rule that failed, in rule order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Attribute + ": " + e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

const (
	genreNameMinLen = 2
	genreNameMaxLen = 10
)

var genreNameRules = []Rule{
	{
		Attribute: "name",
		Message:   "Name is required",
		Check:     func(v string) bool { return v != "" },
	},
	{
		Attribute: "name",
		Message:   "Name must only contain letters",
		Check:     isAlpha,
	},
	{
		Attribute: "name",
		Message:   "Name must be between 2 and 10 characters",
		Check: func(v string) bool {
			n := utf8.RuneCountInString(v)
			return n >= genreNameMinLen && n <= genreNameMaxLen
		},
	},
}

// isAlpha reports whether v is non-empty and made of ASCII letters only.
func isAlpha(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func validate(value string, rules []Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check(value) {
			errs = append(errs, FieldError{Attribute: r.Attribute, Message: r.Message})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
