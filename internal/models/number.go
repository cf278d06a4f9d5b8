package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric cell kept as its stored text. Cells may hold anything a
// person typed into the sheet, so parsing happens on read and never fails the
// row.
type Number string

// NumberFromInt formats an int as a Number.
func NumberFromInt(v int) Number {
	return Number(strconv.Itoa(v))
}

// Float parses the cell as a float. ok is false for empty or non-numeric text.
func (n Number) Float() (v float64, ok bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int parses the cell as an integer, truncating any fractional part.
func (n Number) Int() (v int, ok bool) {
	s := strings.TrimSpace(string(n))
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, ok := n.Float()
	if !ok {
		return 0, false
	}
	return int(f), true
}

// IsBlank reports whether the cell holds no text.
func (n Number) IsBlank() bool {
	return strings.TrimSpace(string(n)) == ""
}

// MarshalJSON writes numeric cells as JSON numbers and anything else as a string.
func (n Number) MarshalJSON() ([]byte, error) {
	if f, ok := n.Float(); ok {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return json.Marshal(string(n))
}

// UnmarshalJSON accepts a JSON number, a string or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = Number(num.String())
	return nil
}
