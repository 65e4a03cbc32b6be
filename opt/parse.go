// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package opt

import "strings"

// Parse applies args to positional and keyword declarations. Tokens match
// in order: key=value (against both lists), then bare keys for boolean
// options (set true), then remaining tokens assigned in declaration order
// to unset positional options. Unrecognized tokens with no positional slot
// left are silently dropped. onError, if non-nil, is invoked as
// onError(key, message) for every value that fails to parse; Parse itself
// returns false if any error occurred.
func Parse(positional, keyword []Base, args []string, onError func(key, message string)) bool {
	_, ok := parse(positional, keyword, args, onError, false)
	return ok
}

// ParseCollecting behaves like Parse but additionally returns the tokens it
// chose not to consume, for stages that forward the remainder to a
// sub-tool.
func ParseCollecting(positional, keyword []Base, args []string, onError func(key, message string)) (ignored []string, ok bool) {
	return parse(positional, keyword, args, onError, true)
}

func parse(positional, keyword []Base, args []string, onError func(key, message string), collect bool) ([]string, bool) {
	byKey := make(map[string]Base, len(positional)+len(keyword))
	for _, o := range positional {
		byKey[o.Key()] = o
	}
	for _, o := range keyword {
		byKey[o.Key()] = o
	}

	var ignored []string
	ok := true
	posIdx := 0

	report := func(key, msg string) {
		ok = false
		if onError != nil {
			onError(key, msg)
		}
	}

	for _, arg := range args {
		if eq := strings.IndexByte(arg, '='); eq >= 0 {
			key, val := arg[:eq], strings.TrimSpace(arg[eq+1:])
			o, found := byKey[key]
			if !found {
				if collect {
					ignored = append(ignored, arg)
				}
				continue
			}
			if err := o.parse(val); err != nil {
				report(key, err.Error())
			}
			continue
		}

		if o, found := byKey[arg]; found {
			// A bare key sets a boolean option true. This must check the
			// concrete instantiation *Option[bool], not a method set common
			// to every Option[T]: a generic method exists identically on
			// every T, so only a concrete type assertion actually
			// discriminates by the option's value type.
			if b, isBool := o.(*Option[bool]); isBool {
				if err := b.parse("true"); err != nil {
					report(arg, err.Error())
				}
				continue
			}
		}

		assigned := false
		for posIdx < len(positional) {
			o := positional[posIdx]
			if o.IsSet() {
				posIdx++
				continue
			}
			if err := o.parse(strings.TrimSpace(arg)); err != nil {
				report(o.Key(), err.Error())
			}
			posIdx++
			assigned = true
			break
		}
		if !assigned && collect {
			ignored = append(ignored, arg)
		}
	}

	return ignored, ok
}

// Usage renders a single summary line of positional and keyword options
// using their placeholders, the only user-facing help text these stages
// provide.
func Usage(program string, positional, keyword []Base) string {
	var b strings.Builder
	b.WriteString("usage: ")
	b.WriteString(program)
	for _, o := range positional {
		b.WriteByte(' ')
		b.WriteString(o.Placeholder())
	}
	for _, o := range keyword {
		b.WriteByte(' ')
		b.WriteString(o.Key())
		b.WriteByte('=')
		b.WriteString(o.Placeholder())
	}
	return b.String()
}
