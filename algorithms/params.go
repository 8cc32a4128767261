// Package algorithms — parameter schema and validation.
package algorithms

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for algorithm configuration.
var (
	// ErrUnknownAlgorithm indicates a lookup for an unregistered name.
	ErrUnknownAlgorithm = errors.New("algorithms: unknown algorithm")

	// ErrInvalidParameter indicates an unknown parameter, a wrong type
	// (after string coercion) or a value outside the allowed set.
	ErrInvalidParameter = errors.New("algorithms: invalid parameter")

	// ErrBadDescriptor indicates a registration missing a required member.
	ErrBadDescriptor = errors.New("algorithms: incomplete algorithm descriptor")
)

// Parameter type tags.
const (
	// TypeInt tags integer parameters.
	TypeInt = "int"

	// TypeFloat tags floating-point parameters.
	TypeFloat = "float"

	// TypeStr tags string parameters.
	TypeStr = "str"
)

// ParameterDef defines one algorithm parameter: its name, type tag, the
// allowed value set (nil = unrestricted) and the default used when the
// parameter is not supplied (may be nil for "unset").
type ParameterDef struct {
	Name    string
	Type    string
	Values  []any
	Default any
}

// CheckParamValue validates value against def, coercing strings to numeric
// types and integers to floats. It returns the (possibly converted) value
// or ErrInvalidParameter.
func CheckParamValue(value any, def ParameterDef) (any, error) {
	coerced, err := coerce(value, def.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParameter, def.Name, err)
	}
	if len(def.Values) > 0 {
		for _, allowed := range def.Values {
			if coerced == allowed {
				return coerced, nil
			}
		}

		return nil, fmt.Errorf("%w: %s: %v not in %v", ErrInvalidParameter, def.Name, value, def.Values)
	}

	return coerced, nil
}

// coerce converts value to the parameter type: strings parse to numbers,
// integers widen to floats; anything else of the wrong type is rejected.
func coerce(value any, typeTag string) (any, error) {
	switch typeTag {
	case TypeInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to int", v)
			}

			return n, nil
		}
	case TypeFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to float", v)
			}

			return f, nil
		}
	case TypeStr:
		if v, ok := value.(string); ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("value %v is not a %s", value, typeTag)
}

// PrepareParams validates the supplied parameters against the definitions
// and fills every missing parameter with its default. Unknown parameter
// names are rejected.
func PrepareParams(params map[string]any, defs []ParameterDef) (map[string]any, error) {
	byName := make(map[string]ParameterDef, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}

	selected := make(map[string]any, len(defs))
	for name, value := range params {
		def, known := byName[name]
		if !known {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
		}
		checked, err := CheckParamValue(value, def)
		if err != nil {
			return nil, err
		}
		selected[name] = checked
	}
	for _, def := range defs {
		if _, supplied := selected[def.Name]; !supplied {
			selected[def.Name] = def.Default
		}
	}

	return selected, nil
}
