package validate

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Source names where a field is read from, and appears in every error
// string as "field(source): message".
type Source string

const (
	Body  Source = "body"
	Query Source = "query"
)

// Rule inspects a single present value and returns an error message, or
// "" when the value passes.
type Rule func(value any) string

type Field struct {
	Name     string
	Source   Source
	Required bool
	Rules    []Rule
}

// Schema is an ordered set of field declarations. Apply checks every
// field (errors accumulate across fields, a failing field stops at its
// first failing rule) and returns only the declared fields that passed.
type Schema []Field

func (s Schema) Apply(body map[string]any, query url.Values) (map[string]any, []string) {
	out := make(map[string]any, len(s))
	var errs []string

	for _, f := range s {
		value, present := f.lookup(body, query)
		if !present {
			if f.Required {
				errs = append(errs, f.fail(fmt.Sprintf("%s is required", f.Name)))
			}
			continue
		}

		failed := false
		for _, rule := range f.Rules {
			if msg := rule(value); msg != "" {
				errs = append(errs, f.fail(msg))
				failed = true
				break
			}
		}
		if !failed {
			out[f.Name] = value
		}
	}

	return out, errs
}

func (f Field) lookup(body map[string]any, query url.Values) (any, bool) {
	if f.Source == Query {
		if query == nil || !query.Has(f.Name) {
			return nil, false
		}
		v := query.Get(f.Name)
		return v, strings.TrimSpace(v) != ""
	}
	v, ok := body[f.Name]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func (f Field) fail(msg string) string {
	return fmt.Sprintf("%s(%s): %s", f.Name, f.Source, msg)
}

var mobilePhonePattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// NonEmptyString accepts any string with non-whitespace content.
func NonEmptyString() Rule {
	return func(value any) string {
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if strings.TrimSpace(s) == "" {
			return "must not be empty"
		}
		return ""
	}
}

// MobilePhone accepts E.164-shaped mobile numbers, e.g. +254712345678.
func MobilePhone() Rule {
	return func(value any) string {
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if !mobilePhonePattern.MatchString(strings.TrimSpace(s)) {
			return "must be a valid mobile phone number"
		}
		return ""
	}
}

// UUID accepts canonically formatted UUID strings.
func UUID() Rule {
	return func(value any) string {
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
			return "must be a valid UUID"
		}
		return ""
	}
}

// Integer accepts JSON numbers with no fractional part.
func Integer() Rule {
	return func(value any) string {
		n, ok := value.(float64)
		if !ok {
			return "must be an integer"
		}
		if n != math.Trunc(n) {
			return "must be an integer"
		}
		return ""
	}
}

// Min rejects numbers below the bound. Pair with Integer so the type
// failure carries its own message.
func Min(bound int64) Rule {
	return func(value any) string {
		n, ok := value.(float64)
		if !ok {
			return "must be an integer"
		}
		if n < float64(bound) {
			return fmt.Sprintf("must be at least %d", bound)
		}
		return ""
	}
}

// Max rejects numbers above the bound.
func Max(bound int64) Rule {
	return func(value any) string {
		n, ok := value.(float64)
		if !ok {
			return "must be an integer"
		}
		if n > float64(bound) {
			return fmt.Sprintf("must be at most %d", bound)
		}
		return ""
	}
}

// String returns the validated field as a trimmed string, or "" when the
// field did not survive validation.
func String(values map[string]any, name string) string {
	if v, ok := values[name].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Int64 returns the validated field as an int64.
func Int64(values map[string]any, name string) int64 {
	if v, ok := values[name].(float64); ok {
		return int64(v)
	}
	return 0
}
