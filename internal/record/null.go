package record

import (
	"bytes"
	"database/sql"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Empty strings and the literal "None" are read as null, the same as a JSON
// null or a missing key.
func isNullText(s string) bool {
	return s == "" || s == "None"
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// NullString is a nullable text column. Numbers are accepted and kept in
// their JSON spelling, so {"userId": 8} and {"userId": "8"} agree.
type NullString struct {
	sql.NullString
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	n.String, n.Valid = "", false
	if isJSONNull(data) {
		return nil
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if isNullText(s) {
			return nil
		}
		n.String, n.Valid = s, true
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	n.String, n.Valid = num.String(), true
	return nil
}

// NullFloat64 is a nullable floating point column.
type NullFloat64 struct {
	sql.NullFloat64
}

func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	n.Float64, n.Valid = 0, false
	if isJSONNull(data) {
		return nil
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if isNullText(s) {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parsing %q as a number: %w", s, err)
		}
		if math.IsNaN(f) {
			return nil
		}
		n.Float64, n.Valid = f, true
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	n.Float64, n.Valid = f, true
	return nil
}

// NullInt64 is a nullable integer column. Integral floats such as 2000.0
// are accepted.
type NullInt64 struct {
	sql.NullInt64
}

func (n *NullInt64) UnmarshalJSON(data []byte) error {
	n.Int64, n.Valid = 0, false
	if isJSONNull(data) {
		return nil
	}

	data = bytes.TrimSpace(data)
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		if isNullText(text) {
			return nil
		}
	}

	i, err := parseInt(text)
	if err != nil {
		return err
	}
	n.Int64, n.Valid = i, true
	return nil
}

func parseInt(s string) (int64, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as an integer: %w", s, err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parsing %q as an integer: not integral", s)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("parsing %q as an integer: out of range", s)
	}
	return int64(f), nil
}

// Str returns a valid NullString holding s.
func Str(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: true}}
}

// Float returns a valid NullFloat64 holding f.
func Float(f float64) NullFloat64 {
	return NullFloat64{sql.NullFloat64{Float64: f, Valid: true}}
}

// Int returns a valid NullInt64 holding i.
func Int(i int64) NullInt64 {
	return NullInt64{sql.NullInt64{Int64: i, Valid: true}}
}
