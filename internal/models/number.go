package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric payload field that accepts JSON numbers and numeric
// strings. A value that cannot be read as a number is kept as NaN so that
// validation can reject it.
type Number struct {
	Value float64
	Set   bool
}

// NewNumber returns a set Number.
func NewNumber(v float64) Number {
	return Number{Value: v, Set: true}
}

// Finite reports whether the field holds a usable number.
func (n Number) Finite() bool {
	return n.Set && !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = Number{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			v = math.NaN()
		}
		*n = NewNumber(v)
		return nil
	}

	if data[0] == 't' || data[0] == 'f' {
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*n = NewNumber(0)
		if b {
			n.Value = 1
		}
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		v = math.NaN()
	}
	*n = NewNumber(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Finite() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}
