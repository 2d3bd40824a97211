package linalg

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Scalar is a float64 whose JSON form also covers IEEE-754 special values,
// written as the strings "NaN", "+Inf" and "-Inf".
type Scalar float64

// MarshalJSON implements json.Marshaler
func (s Scalar) MarshalJSON() ([]byte, error) {
	return appendJSONFloat(nil, float64(s)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	x, err := fromJSONValue(raw)
	if err != nil {
		return err
	}
	*s = Scalar(x)
	return nil
}

// MarshalJSON implements json.Marshaler; non-finite components are quoted
func (v Vector) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	b := []byte{'['}
	for i, x := range v {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendJSONFloat(b, x)
	}
	return append(b, ']'), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Vector) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = nil
		return nil
	}
	out := make(Vector, len(raw))
	for i, item := range raw {
		x, err := fromJSONValue(item)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = x
	}
	*v = out
	return nil
}

func appendJSONFloat(b []byte, x float64) []byte {
	switch {
	case math.IsNaN(x):
		return append(b, `"NaN"`...)
	case math.IsInf(x, 1):
		return append(b, `"+Inf"`...)
	case math.IsInf(x, -1):
		return append(b, `"-Inf"`...)
	}
	return strconv.AppendFloat(b, x, 'g', -1, 64)
}

func fromJSONValue(raw interface{}) (float64, error) {
	switch val := raw.(type) {
	case float64:
		return val, nil
	case string:
		switch val {
		case "NaN":
			return math.NaN(), nil
		case "+Inf", "Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("invalid float %q", val)
	default:
		return 0, fmt.Errorf("invalid float %v", raw)
	}
}
