// Package form parses and validates the dashboard's record forms.
package form

import (
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// OK reports whether there are no errors.
func (f FieldErrors) OK() bool { return len(f) == 0 }

// Get returns the message for field, or "".
func (f FieldErrors) Get(field string) string { return f[field] }

// messages maps field -> validator tag -> message.
type messages map[string]map[string]string

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return strings.ToLower(f.Name)
			}
			return name
		})
	})
	return validate
}

// check validates v and translates failures through msgs. Only the first
// failure per field is kept.
func check(v any, msgs messages) FieldErrors {
	out := FieldErrors{}
	err := validatorInstance().Struct(v)
	if err == nil {
		return out
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = "The form could not be read"
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if m, ok := msgs[field][fe.Tag()]; ok {
			out[field] = m
			continue
		}
		out[field] = "Invalid value"
	}
	return out
}

// parseFloat reads a number, treating anything unparsable as 0.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt reads an integer, treating anything unparsable as 0.
func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func field(v url.Values, name string) string {
	return strings.TrimSpace(v.Get(name))
}
