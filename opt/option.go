// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package opt

import "fmt"

// Option is a typed option holding a value of T. Scalar types bool, string,
// int64, uint64, float32, float64, and complex128 get a built-in parser via
// New; enum-like types get theirs via NewEnum.
type Option[T any] struct {
	key         string
	placeholder string
	required    bool
	set         bool
	value       T
	parseFn     func(string) (T, error)
}

// New declares a scalar option. placeholder, when empty, is filled in from
// a type-appropriate default (e.g. "INT" for int64).
func New[T any](key string, placeholder string, required bool, def T) *Option[T] {
	if placeholder == "" {
		placeholder = defaultPlaceholder[T]()
	}
	return &Option[T]{key: key, placeholder: placeholder, required: required, value: def, parseFn: scalarParser[T]()}
}

// EnumEntry is one name→value row of an enum's lookup table.
type EnumEntry[T any] struct {
	Name  string
	Value T
}

// NewEnum declares an option whose value is matched case-insensitively
// against table. placeholder, when empty, is built from the table's names
// joined with "|".
func NewEnum[T any](key string, placeholder string, required bool, def T, table []EnumEntry[T]) *Option[T] {
	if placeholder == "" {
		names := make([]string, len(table))
		for i, e := range table {
			names[i] = e.Name
		}
		placeholder = "(" + join(names, "|") + ")"
	}
	return &Option[T]{key: key, placeholder: placeholder, required: required, value: def, parseFn: enumParser(table)}
}

func join(ss []string, sep string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}

func enumParser[T any](table []EnumEntry[T]) func(string) (T, error) {
	return func(s string) (T, error) {
		lower := toLower(s)
		for _, e := range table {
			if toLower(e.Name) == lower {
				return e.Value, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("invalid value '%s'", s)
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// Key returns the option's declared key.
func (o *Option[T]) Key() string { return o.key }

// Placeholder returns the usage-output placeholder text.
func (o *Option[T]) Placeholder() string { return o.placeholder }

// Required reports whether this option must be set.
func (o *Option[T]) Required() bool { return o.required }

// IsSet reports whether Parse has assigned this option a value.
func (o *Option[T]) IsSet() bool { return o.set }

// Get returns the option's current value (its default if unset).
func (o *Option[T]) Get() T { return o.value }

func (o *Option[T]) parse(arg string) error {
	v, err := o.parseFn(arg)
	if err != nil {
		return err
	}
	o.value = v
	o.set = true
	return nil
}

// scalarParser returns the built-in parse function for T, dispatched on
// T's zero value's dynamic type since Go generics carry no runtime
// reflection of the type parameter itself.
func scalarParser[T any]() func(string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case bool:
		return func(s string) (T, error) {
			v, err := parseBool(s)
			return any(v).(T), err
		}
	case string:
		return func(s string) (T, error) {
			return any(s).(T), nil
		}
	case int64:
		return func(s string) (T, error) {
			v, err := parseSIInt(s, false)
			return any(v).(T), err
		}
	case uint64:
		return func(s string) (T, error) {
			v, err := parseSIInt(s, true)
			return any(uint64(v)).(T), err
		}
	case float32:
		return func(s string) (T, error) {
			v, err := parseSIFloat(s)
			return any(float32(v)).(T), err
		}
	case float64:
		return func(s string) (T, error) {
			v, err := parseSIFloat(s)
			return any(v).(T), err
		}
	case complex128:
		return func(s string) (T, error) {
			v, err := parseComplex(s)
			return any(v).(T), err
		}
	default:
		return func(string) (T, error) {
			var z T
			return z, fmt.Errorf("unsupported option type")
		}
	}
}

func defaultPlaceholder[T any]() string {
	var zero T
	switch any(zero).(type) {
	case bool:
		return "(true|1|false|0)"
	case string:
		return "STRING"
	case int64:
		return "INT"
	case uint64:
		return "UINT"
	case float32, float64:
		return "REAL"
	case complex128:
		return "[REAL][[(+|-)](j|J|i|I)IMAG]"
	default:
		return "VALUE"
	}
}
