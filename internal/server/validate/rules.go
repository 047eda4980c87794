package validate

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/dmitrijs2005/timekeeper/internal/optional"
	"github.com/shopspring/decimal"
)

var (
	emailPattern    = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

const (
	msgRequired = "field required"
	msgNotNull  = "may not be null"
)

type stringRule func(string) string

func length(min, max int) stringRule {
	return func(s string) string {
		n := utf8.RuneCountInString(s)
		switch {
		case n < min && min == 1:
			return "must not be empty"
		case n < min:
			return fmt.Sprintf("must be at least %d characters", min)
		case n > max:
			return fmt.Sprintf("must be at most %d characters", max)
		}
		return ""
	}
}

func nonEmpty() stringRule {
	return func(s string) string {
		if s == "" {
			return "must not be empty"
		}
		return ""
	}
}

func pattern(re *regexp.Regexp, what string) stringRule {
	return func(s string) string {
		if !re.MatchString(s) {
			return "must be a valid " + what
		}
		return ""
	}
}

func oneOf[T ~string](allowed []T) stringRule {
	return func(s string) string {
		if !slices.Contains(allowed, T(s)) {
			return fmt.Sprintf("must be one of %v", allowed)
		}
		return ""
	}
}

func (e *Errors) check(field, value string, rules []stringRule) {
	for _, r := range rules {
		if msg := r(value); msg != "" {
			e.add(field, msg)
			return
		}
	}
}

// required validates a mandatory create field.
func (e *Errors) required(field string, v *string, rules ...stringRule) {
	if v == nil {
		e.add(field, msgRequired)
		return
	}
	e.check(field, *v, rules)
}

// nullable validates an optional create field.
func (e *Errors) nullable(field string, v *string, rules ...stringRule) {
	if v != nil {
		e.check(field, *v, rules)
	}
}

// patchString validates a patch attribute; null is accepted only when
// clearable is set.
func (e *Errors) patchString(field string, v optional.Value[string], clearable bool, rules ...stringRule) {
	if !v.IsSet() {
		return
	}
	s, ok := v.Get()
	if !ok {
		if !clearable {
			e.add(field, msgNotNull)
		}
		return
	}
	e.check(field, s, rules)
}

func patchEnum[T ~string](e *Errors, field string, v optional.Value[T], allowed []T) {
	if !v.IsSet() {
		return
	}
	s, ok := v.Get()
	if !ok {
		e.add(field, msgNotNull)
		return
	}
	e.check(field, string(s), []stringRule{oneOf(allowed)})
}

func patchNotNull[T any](e *Errors, field string, v optional.Value[T]) (T, bool) {
	if v.IsNull() {
		e.add(field, msgNotNull)
	}
	return v.Get()
}

func (e *Errors) nonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		e.add(field, "must be greater than or equal to 0")
	}
}

func (e *Errors) atLeastOne(field string, n int) {
	if n < 1 {
		e.add(field, "must be greater than or equal to 1")
	}
}
