package outline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/srwiley/rasterx"
)

// parseTransform interprets an SVG transform list, e.g.
// "translate(10 20) rotate(45)". Transforms are applied left to right.
func parseTransform(s string) (rasterx.Matrix2D, error) {
	m := rasterx.Identity
	s = strings.TrimSpace(s)
	for s != "" {
		open := strings.IndexByte(s, '(')
		end := strings.IndexByte(s, ')')
		if open < 0 || end < open {
			return m, fmt.Errorf("malformed transform %q", s)
		}
		name := strings.TrimSpace(s[:open])
		args, err := parseNumbers(s[open+1 : end])
		if err != nil {
			return m, err
		}
		if m, err = applyTransform(m, name, args); err != nil {
			return m, err
		}
		s = strings.TrimLeft(s[end+1:], ", \t\r\n")
	}
	return m, nil
}

func applyTransform(m rasterx.Matrix2D, name string, a []float64) (rasterx.Matrix2D, error) {
	argc := func(counts ...int) error {
		for _, c := range counts {
			if len(a) == c {
				return nil
			}
		}
		return fmt.Errorf("transform %s: unexpected number of arguments: %d", name, len(a))
	}
	switch name {
	case "matrix":
		if err := argc(6); err != nil {
			return m, err
		}
		return m.Mult(rasterx.Matrix2D{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]}), nil
	case "translate":
		if err := argc(1, 2); err != nil {
			return m, err
		}
		if len(a) == 1 {
			return m.Translate(a[0], 0), nil
		}
		return m.Translate(a[0], a[1]), nil
	case "scale":
		if err := argc(1, 2); err != nil {
			return m, err
		}
		if len(a) == 1 {
			return m.Scale(a[0], a[0]), nil
		}
		return m.Scale(a[0], a[1]), nil
	case "rotate":
		if err := argc(1, 3); err != nil {
			return m, err
		}
		theta := a[0] * math.Pi / 180
		if len(a) == 1 {
			return m.Rotate(theta), nil
		}
		return m.Translate(a[1], a[2]).Rotate(theta).Translate(-a[1], -a[2]), nil
	case "skewX":
		if err := argc(1); err != nil {
			return m, err
		}
		return m.SkewX(a[0] * math.Pi / 180), nil
	case "skewY":
		if err := argc(1); err != nil {
			return m, err
		}
		return m.SkewY(a[0] * math.Pi / 180), nil
	}
	return m, fmt.Errorf("unknown transform %q", name)
}

// parseNumbers splits a list of numbers separated by white space and/or
// commas.
func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	nums := make([]float64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", f)
		}
		nums[i] = n
	}
	return nums, nil
}

// parseLength reads a length attribute in user units. An empty attribute
// yields dflt.
func parseLength(s string, dflt float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return dflt, nil
	}
	s = strings.TrimSuffix(s, "px")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unsupported length %q", s)
	}
	return n, nil
}
