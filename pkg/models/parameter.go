// Package models contains shared data models used across the tunehub codebase.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParameterType is the declared type of a tunable fine-tuning parameter.
type ParameterType string

const (
	ParameterFloat  ParameterType = "float"
	ParameterInt    ParameterType = "int"
	ParameterString ParameterType = "string"
	ParameterBool   ParameterType = "bool"
)

// Valid reports whether t is one of the four supported parameter types.
func (t ParameterType) Valid() bool {
	switch t {
	case ParameterFloat, ParameterInt, ParameterString, ParameterBool:
		return true
	}
	return false
}

// ParameterDescriptor declares one parameter a provider accepts.
// Descriptors are declared by providers and never mutated afterwards.
type ParameterDescriptor struct {
	Name        string        `json:"name"`
	Type        ParameterType `json:"type"`
	Description string        `json:"description"`
	Optional    bool          `json:"optional"`
}

// OptionalParam declares an optional parameter.
func OptionalParam(name string, typ ParameterType, description string) ParameterDescriptor {
	return ParameterDescriptor{Name: name, Type: typ, Description: description, Optional: true}
}

// RequiredParam declares a parameter that must be supplied.
func RequiredParam(name string, typ ParameterType, description string) ParameterDescriptor {
	return ParameterDescriptor{Name: name, Type: typ, Description: description, Optional: false}
}

// ParameterValue is an already-typed parameter value: exactly one of float, int, string or bool.
// The zero value is invalid and matches no declared type.
type ParameterValue struct {
	kind ParameterType
	f    float64
	i    int64
	s    string
	b    bool
}

func Float(v float64) ParameterValue { return ParameterValue{kind: ParameterFloat, f: v} }
func Int(v int64) ParameterValue     { return ParameterValue{kind: ParameterInt, i: v} }
func String(v string) ParameterValue { return ParameterValue{kind: ParameterString, s: v} }
func Bool(v bool) ParameterValue     { return ParameterValue{kind: ParameterBool, b: v} }

// Type returns the runtime type of the value, or "" for the zero value.
func (v ParameterValue) Type() ParameterType { return v.kind }

func (v ParameterValue) AsFloat() (float64, bool) { return v.f, v.kind == ParameterFloat }
func (v ParameterValue) AsInt() (int64, bool)     { return v.i, v.kind == ParameterInt }
func (v ParameterValue) AsString() (string, bool) { return v.s, v.kind == ParameterString }
func (v ParameterValue) AsBool() (bool, bool)     { return v.b, v.kind == ParameterBool }

// Interface returns the underlying Go value (float64, int64, string or bool).
func (v ParameterValue) Interface() any {
	switch v.kind {
	case ParameterFloat:
		return v.f
	case ParameterInt:
		return v.i
	case ParameterString:
		return v.s
	case ParameterBool:
		return v.b
	}
	return nil
}

func (v ParameterValue) String() string {
	switch v.kind {
	case ParameterFloat:
		return formatFloat(v.f)
	case ParameterInt:
		return strconv.FormatInt(v.i, 10)
	case ParameterString:
		return strconv.Quote(v.s)
	case ParameterBool:
		return strconv.FormatBool(v.b)
	}
	return "<invalid>"
}

// MarshalJSON keeps floats distinguishable from ints: an integral float is written as "10.0".
func (v ParameterValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ParameterFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("parameter value %v is not representable in JSON", v.f)
		}
		return []byte(formatFloat(v.f)), nil
	case ParameterInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case ParameterString:
		return json.Marshal(v.s)
	case ParameterBool:
		return json.Marshal(v.b)
	}
	return nil, fmt.Errorf("cannot marshal untyped parameter value")
}

// UnmarshalJSON types numeric literals by their spelling: a literal with a fraction or
// exponent is a float, anything else is an int.
func (v *ParameterValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty parameter value")
	}

	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case c == 't' || c == 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case c == '-' || (c >= '0' && c <= '9'):
		lit := string(data)
		if strings.ContainsAny(lit, ".eE") {
			f, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return fmt.Errorf("invalid float parameter %s: %w", lit, err)
			}
			*v = Float(f)
			return nil
		}
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer parameter %s: %w", lit, err)
		}
		*v = Int(i)
	default:
		return fmt.Errorf("parameter values must be a number, string or boolean, got %s", data)
	}
	return nil
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Parameters maps parameter names to typed values.
type Parameters map[string]ParameterValue
