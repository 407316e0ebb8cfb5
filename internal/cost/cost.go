// Package cost encodes and decodes the five-color token cost carried by card
// definitions.
package cost

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Color is one of the five fixed resource colors.
type Color string

const (
	White Color = "WHITE"
	Blue  Color = "BLUE"
	Green Color = "GREEN"
	Red   Color = "RED"
	Black Color = "BLACK"
)

// Colors returns the five colors in canonical order.
func Colors() []Color {
	return []Color{White, Blue, Green, Red, Black}
}

// ParseColor accepts a color name in any case.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}

func (c Color) Valid() bool {
	switch c {
	case White, Blue, Green, Red, Black:
		return true
	}
	return false
}

// Vector is a per-color token cost. It always carries all five colors, so it
// serializes to an object with exactly five keys.
type Vector struct {
	White int `json:"WHITE"`
	Blue  int `json:"BLUE"`
	Green int `json:"GREEN"`
	Red   int `json:"RED"`
	Black int `json:"BLACK"`
}

// Get returns the amount for c, or 0 for an unknown color.
func (v Vector) Get(c Color) int {
	switch c {
	case White:
		return v.White
	case Blue:
		return v.Blue
	case Green:
		return v.Green
	case Red:
		return v.Red
	case Black:
		return v.Black
	}
	return 0
}

// With returns a copy of v with the amount for c replaced.
func (v Vector) With(c Color, amount int) Vector {
	switch c {
	case White:
		v.White = amount
	case Blue:
		v.Blue = amount
	case Green:
		v.Green = amount
	case Red:
		v.Red = amount
	case Black:
		v.Black = amount
	}
	return v
}

// Total is the sum over all colors.
func (v Vector) Total() int {
	return v.White + v.Blue + v.Green + v.Red + v.Black
}

// Map returns the vector as a color-keyed map with all five keys present.
func (v Vector) Map() map[Color]int {
	m := make(map[Color]int, 5)
	for _, c := range Colors() {
		m[c] = v.Get(c)
	}
	return m
}

// Validate rejects negative amounts.
func (v Vector) Validate() error {
	for _, c := range Colors() {
		if v.Get(c) < 0 {
			return fmt.Errorf("cost for %s must not be negative, got %d", c, v.Get(c))
		}
	}
	return nil
}

// Encode produces the canonical stored form: a JSON object with the five
// colors in canonical order.
func Encode(v Vector) string {
	b, err := json.Marshal(v)
	if err != nil {
		// A struct of five ints always marshals.
		panic(err)
	}
	return string(b)
}

// Decode turns a stored or in-memory cost into a Vector. It never fails:
// malformed input yields the zero vector, and an individual key that is
// missing, negative or not an integer decodes as 0.
//
// Accepted inputs are the serialized form (string, []byte, json.RawMessage),
// an already structured Vector or *Vector, and maps keyed by color.
func Decode(raw any) Vector {
	switch r := raw.(type) {
	case nil:
		return Vector{}
	case Vector:
		return sanitize(r)
	case *Vector:
		if r == nil {
			return Vector{}
		}
		return sanitize(*r)
	case string:
		return decodeJSON([]byte(r))
	case []byte:
		return decodeJSON(r)
	case json.RawMessage:
		return decodeJSON(r)
	case map[Color]int:
		var v Vector
		for _, c := range Colors() {
			v = v.With(c, r[c])
		}
		return sanitize(v)
	case map[string]int:
		var v Vector
		for _, c := range Colors() {
			v = v.With(c, r[string(c)])
		}
		return sanitize(v)
	case map[string]any:
		return fromLoose(r)
	}
	return Vector{}
}

// Numbers are decoded as json.Number so amounts survive exactly up to the
// range of int.
func decodeJSON(b []byte) Vector {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var loose map[string]any
	if err := dec.Decode(&loose); err != nil {
		return Vector{}
	}
	return fromLoose(loose)
}

func fromLoose(m map[string]any) Vector {
	var v Vector
	for _, c := range Colors() {
		v = v.With(c, amount(m[string(c)]))
	}
	return v
}

// Largest float64 below which every integer is exactly representable.
const maxExactFloat = 1 << 53

func amount(x any) int {
	switch n := x.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) || n > maxExactFloat {
			return 0
		}
		return int(n)
	case int:
		if n < 0 {
			return 0
		}
		return n
	case json.Number:
		i, err := n.Int64()
		if err != nil || i < 0 || i > math.MaxInt {
			return 0
		}
		return int(i)
	}
	return 0
}

func sanitize(v Vector) Vector {
	for _, c := range Colors() {
		if v.Get(c) < 0 {
			v = v.With(c, 0)
		}
	}
	return v
}
