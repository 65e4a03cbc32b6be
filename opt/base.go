// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package opt provides declarative, typed command-line option objects:
// key=value tokens, positional fallback, bare-key booleans, SI-suffixed
// numerics, complex numbers, and fixed/variable-size vectors and sets of
// any of those, matched case-insensitively for enums.
//
// An Option is constructed once in main, parsed once by Parse, and read by
// value thereafter — the same declarative shape as this module's
// functional-options constructors elsewhere, just aimed at argv instead of
// at a transport.
package opt

// Base is the untyped surface Parse and Usage operate over. Every concrete
// *Option[T] and collection type in this package implements it.
type Base interface {
	Key() string
	Placeholder() string
	Required() bool
	IsSet() bool

	parse(arg string) error
}
