// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package opt

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var intLiteralRE = regexp.MustCompile(`^(0[xX][0-9a-fA-F]+|0[oO][0-7]+|0|[1-9][0-9]*)`)

// intUnits maps the SI suffix letters for signed/unsigned integers to the
// power-of-ten exponent they scale by (k and K are both 1000, i.e. 10^3).
var intUnits = map[string]int{
	"k": 3, "K": 3, "M": 6, "G": 9, "T": 12, "P": 15, "E": 18,
}

var pow10Table = [...]int64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
	10000000000, 100000000000, 1000000000000, 10000000000000, 100000000000000,
	1000000000000000, 10000000000000000, 100000000000000000, 1000000000000000000,
}

func pow10i(exp int) int64 {
	if exp < 0 || exp >= len(pow10Table) {
		return 0
	}
	return pow10Table[exp]
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, errors.New("boolean value expected")
	}
}

// parseSIInt parses a C-style integer literal optionally followed by a
// fixed-point fraction and a single SI suffix character.
func parseSIInt(s string, unsigned bool) (int64, error) {
	if unsigned && strings.HasPrefix(s, "-") {
		return 0, errors.New("unsigned integer value expected")
	}
	neg := false
	if !unsigned && strings.HasPrefix(s, "-") {
		neg, s = true, s[1:]
	}
	m := intLiteralRE.FindString(s)
	if m == "" {
		if unsigned {
			return 0, errors.New("unsigned integer value expected")
		}
		return 0, errors.New("integer value expected")
	}
	rest := s[len(m):]

	base, err := strconv.ParseInt(m, 0, 64)
	if err != nil {
		return 0, rangeOrTypeErr(err, unsigned)
	}
	if rest == "" {
		if neg {
			return -base, nil
		}
		return base, nil
	}

	nonDecimal := len(m) > 1 && m[0] == '0' && (m[1] == 'x' || m[1] == 'X' || m[1] == 'o' || m[1] == 'O')
	if nonDecimal {
		return 0, errors.New("invalid unit '" + rest + "'")
	}

	decimalDigits := 0
	var decimal int64
	if rest[0] == '.' {
		rest = rest[1:]
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == 0 {
			return 0, errors.New("digits expected after point")
		}
		digits := rest[:j]
		decimal, err = strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, rangeOrTypeErr(err, unsigned)
		}
		decimalDigits = len(digits)
		rest = rest[j:]
	}

	if rest == "" {
		return 0, errors.New("invalid unit ''")
	}
	exp, ok := intUnits[rest]
	if !ok {
		return 0, errors.New("invalid unit '" + rest + "'")
	}
	if decimalDigits > exp {
		return 0, errors.New("option value out of range")
	}

	result := base * pow10i(exp)
	if decimalDigits > 0 {
		result += decimal * pow10i(exp-decimalDigits)
	}
	if neg {
		result = -result
	}
	return result, nil
}

func rangeOrTypeErr(err error, unsigned bool) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return errors.New("option value out of range")
	}
	if unsigned {
		return errors.New("unsigned integer value expected")
	}
	return errors.New("integer value expected")
}

// floatUnits maps the SI suffix letters for float/double values to their
// power-of-ten multiplier.
var floatUnits = map[byte]float64{
	'z': 1e-21, 'a': 1e-18, 'f': 1e-15, 'p': 1e-12, 'n': 1e-9, 'u': 1e-6, 'm': 1e-3,
	'k': 1e3, 'M': 1e6, 'G': 1e9, 'T': 1e12, 'P': 1e15, 'E': 1e18,
}

func parseSIFloat(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	if len(s) < 2 {
		return 0, errors.New("floating-point value expected")
	}
	unit := s[len(s)-1]
	mult, ok := floatUnits[unit]
	if !ok {
		return 0, errors.New("invalid unit '" + string(unit) + "'")
	}
	base, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, errors.New("option value out of range")
		}
		return 0, errors.New("floating-point value expected")
	}
	return base * mult, nil
}

func isImagLetter(b byte) bool {
	return b == 'j' || b == 'J' || b == 'i' || b == 'I'
}

var complexSeparators = []string{"+j", "+J", "+i", "+I", "-j", "-J", "-i", "-I"}

// parseComplex parses "[REAL][±(j|J|i|I)IMAG]" with no whitespace allowed
// anywhere in the token; either part may be empty, and a bare separator
// with no trailing digits (e.g. "-j") defaults the imaginary magnitude to 1.
func parseComplex(s string) (complex128, error) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			return 0, errors.New("whitespace not allowed")
		}
	}

	sep, sepEnd := -1, -1
	for _, p := range complexSeparators {
		if idx := strings.Index(s, p); idx >= 0 {
			sep, sepEnd = idx, idx+len(p)
			break
		}
	}
	if sep < 0 && len(s) > 0 && isImagLetter(s[0]) {
		sep, sepEnd = 0, 1
	}

	if sep < 0 {
		if s == "" {
			return 0, errors.New("real or imaginary part expected")
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.New("floating-point value expected")
		}
		return complex(v, 0), nil
	}

	if sepEnd < len(s) && (s[sepEnd] == '+' || s[sepEnd] == '-') {
		return 0, errors.New("malformed complex value")
	}

	var realPart float64
	var err error
	if sep > 0 {
		realPart, err = strconv.ParseFloat(s[:sep], 64)
		if err != nil {
			return 0, errors.New("floating-point value expected")
		}
	}

	imagPart := 1.0
	if sepEnd < len(s) {
		imagPart, err = strconv.ParseFloat(s[sepEnd:], 64)
		if err != nil {
			return 0, errors.New("floating-point value expected")
		}
	}
	if s[sep] == '-' {
		imagPart = -imagPart
	}

	return complex(realPart, imagPart), nil
}
