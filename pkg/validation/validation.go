// Package validation evaluates declarative rule sets against request payloads.
//
// A rule set is an ordered list of fields, each with an ordered list of
// constraints. Evaluation visits every field and reports at most one message
// per field: the first constraint of that field that fails. Conditional
// constraints look at the presence of a sibling field, where present means the
// key exists in the payload with a non-null value.
package validation

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Payload is a decoded JSON object.
type Payload map[string]any

// Has reports whether field is present with a non-null value.
func (p Payload) Has(field string) bool {
	v, ok := p[field]
	return ok && v != nil
}

// String returns the field as a string and false when it is absent or not a string.
func (p Payload) String(field string) (string, bool) {
	if !p.Has(field) {
		return "", false
	}
	s, ok := p[field].(string)
	return s, ok
}

// Texts reads string fields in order. It fails with an *Error naming every
// field that is absent or not a string.
func (p Payload) Texts(fields ...string) ([]string, error) {
	values := make([]string, len(fields))
	var messages []string
	for i, f := range fields {
		s, ok := p.String(f)
		if !ok {
			messages = append(messages, f+" must be a string.")
			continue
		}
		values[i] = s
	}
	if len(messages) > 0 {
		return nil, &Error{Messages: messages}
	}
	return values, nil
}

// Int64 accepts JSON numbers without a fractional part and numeric strings.
func (p Payload) Int64(field string) (int64, bool) {
	if !p.Has(field) {
		return 0, false
	}
	switch v := p[field].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Kind identifies what a Constraint checks.
type Kind int

const (
	KindRequired Kind = iota
	KindRequiredWith
	KindMinLength
	KindMaxBytes
	KindEmail
	KindEqualsField
	KindNumeric
)

// Constraint is a single rule. Field names the sibling a conditional or
// comparison rule refers to.
type Constraint struct {
	Kind    Kind
	Field   string
	Min     int
	Max     int
	Message string
}

// Constraint constructors. Every constraint except Required and RequiredWith
// is skipped when the field is absent. Text constraints fail on values that
// are not strings.

// Required demands a non-blank string.
func Required(msg string) Constraint {
	return Constraint{Kind: KindRequired, Message: msg}
}

// RequiredWith is Required, applied only when field is present.
func RequiredWith(field, msg string) Constraint {
	return Constraint{Kind: KindRequiredWith, Field: field, Message: msg}
}

// MinLength counts characters.
func MinLength(n int, msg string) Constraint {
	return Constraint{Kind: KindMinLength, Min: n, Message: msg}
}

// MaxBytes counts bytes of the UTF-8 encoding.
func MaxBytes(n int, msg string) Constraint {
	return Constraint{Kind: KindMaxBytes, Max: n, Message: msg}
}

// Email requires a well-formed address.
func Email(msg string) Constraint {
	return Constraint{Kind: KindEmail, Message: msg}
}

// EqualsField requires the value to equal field's value whenever field is present.
func EqualsField(field, msg string) Constraint {
	return Constraint{Kind: KindEqualsField, Field: field, Message: msg}
}

// Numeric accepts whole numbers, sent either as JSON numbers or digit strings.
func Numeric(msg string) Constraint {
	return Constraint{Kind: KindNumeric, Message: msg}
}

// FieldRules is the ordered constraint list of one payload field.
type FieldRules struct {
	Name        string
	Constraints []Constraint
}

// Field lists constraints in the order they are checked.
func Field(name string, constraints ...Constraint) FieldRules {
	return FieldRules{Name: name, Constraints: constraints}
}

// RuleSet is immutable once built; build a fresh one per request type.
type RuleSet []FieldRules

// Rules keeps fields in reporting order.
func Rules(fields ...FieldRules) RuleSet {
	return RuleSet(fields)
}

// Error carries every violated-rule message of a payload.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

var validate = validator.New()

// Validate returns nil or an *Error listing one message per failing field.
func Validate(rules RuleSet, payload Payload) error {
	var messages []string
	for _, f := range rules {
		if msg, ok := checkField(f, payload); !ok {
			messages = append(messages, msg)
		}
	}
	if len(messages) > 0 {
		return &Error{Messages: messages}
	}
	return nil
}

func checkField(f FieldRules, p Payload) (string, bool) {
	present := p.Has(f.Name)
	value := p[f.Name]

	for _, c := range f.Constraints {
		switch c.Kind {
		case KindRequired:
			if !present || !isText(value) {
				return c.Message, false
			}
		case KindRequiredWith:
			if p.Has(c.Field) && (!present || !isText(value)) {
				return c.Message, false
			}
		default:
			// Value constraints only apply to values that were sent.
			if !present {
				continue
			}
			if !checkValue(c, value, p) {
				return c.Message, false
			}
		}
	}
	return "", true
}

func checkValue(c Constraint, value any, p Payload) bool {
	switch c.Kind {
	case KindMinLength:
		s, ok := value.(string)
		return ok && utf8.RuneCountInString(s) >= c.Min
	case KindMaxBytes:
		s, ok := value.(string)
		return ok && len(s) <= c.Max
	case KindEmail:
		s, ok := value.(string)
		return ok && validate.Var(s, "required,email") == nil
	case KindEqualsField:
		if !p.Has(c.Field) {
			return true
		}
		a, ok := value.(string)
		b, okOther := p[c.Field].(string)
		return ok && okOther && a == b
	case KindNumeric:
		switch v := value.(type) {
		case float64:
			return v == math.Trunc(v)
		case int, int64:
			return true
		case string:
			_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			return validate.Var(v, "required,numeric") == nil && err == nil
		default:
			return false
		}
	}
	return true
}

// isText reports whether v is a string with at least one non-space character.
func isText(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}
