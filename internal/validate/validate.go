// Package validate checks struct tags with go-playground/validator and
// reports the failing fields in a form callers can map onto their own errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = mustNew()

// rules are the custom tags every struct may use.
var rules = map[string]validator.Func{
	"notblank": notBlank,
	"clock":    clock,
}

func mustNew() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	if err := register(v, rules); err != nil {
		panic(err)
	}
	return v
}

func register(v *validator.Validate, fns map[string]validator.Func) error {
	for tag, fn := range fns {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q rule: %w", tag, err)
		}
	}
	return nil
}

// Issue is one failed rule.
type Issue struct {
	Field string // dotted path below the root struct
	Tag   string
	Param string
}

// Error lists every failed rule of a struct.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		msgs[i] = fmt.Sprintf("Field: %s, Tag: %s, Param: %s", is.Field, is.Tag, is.Param)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Struct validates s against its `validate` tags. It returns nil or *Error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &Error{Issues: make([]Issue, 0, len(ves))}
	for _, fe := range ves {
		out.Issues = append(out.Issues, Issue{
			Field: trimRoot(fe.Namespace()),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// Issues returns the failed rules of err, or nil when err is not an *Error.
func Issues(err error) []Issue {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Issues
	}
	return nil
}

// fieldName prefers the koanf key, then the json name, then the Go name
// with a lowercase first letter.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"koanf", "json"} {
		if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" && name != "-" {
			return name
		}
	}
	r := []rune(f.Name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(f.String()) != ""
}

// clock accepts a 24h HH:MM time of day.
func clock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h < 24 && m < 60
}

// Reason renders an issue as a short phrase to follow the field name.
func Reason(is Issue) string {
	switch is.Tag {
	case "required", "notblank":
		return "must not be empty"
	case "min", "gte":
		return "must be at least " + is.Param
	case "max", "lte":
		return "must be at most " + is.Param
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(is.Param, " ", ", ")
	case "datetime":
		return "must be a date like 2026-01-31"
	case "clock":
		return "must be a time like 07:45"
	default:
		return "is invalid (" + is.Tag + ")"
	}
}
