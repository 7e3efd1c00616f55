package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned when a value cannot be converted into a finite number
var ErrNotNumeric = errors.New("not a number")

// floater is implemented by json.Number and its json-iterator counterpart
type floater interface {
	Float64() (float64, error)
}

// Float64E converts numbers and numeric strings into a float64
// booleans, nil, objects and lists are rejected, errors will be returned
func Float64E(raw interface{}) (float64, error) {
	var num float64
	switch val := raw.(type) {
	case float64:
		num = val
	case float32:
		num = float64(val)
	case int:
		num = float64(val)
	case int64:
		num = float64(val)
	case int32:
		num = float64(val)
	case uint64:
		num = float64(val)
	case floater:
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("cannot parse float64 value from %v (%T): %w", raw, raw, ErrNotNumeric)
		}
		num = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse float64 value from %q: %w", val, ErrNotNumeric)
		}
		num = f
	default:
		return 0, fmt.Errorf("cannot parse float64 value from %v (%T): %w", raw, raw, ErrNotNumeric)
	}

	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, fmt.Errorf("cannot use non-finite value %v: %w", raw, ErrNotNumeric)
	}

	return num, nil
}

// Num2String converts any number into a string
// errors will fall back to empty string
func Num2String(raw interface{}) string {
	s, _ := Num2StringE(raw)

	return s
}

// Num2StringE converts any number into its shortest string representation
// errors will be returned
func Num2StringE(raw interface{}) (string, error) {
	switch num := raw.(type) {
	case float64:
		if num == math.Trunc(num) && math.Abs(num) < 1e15 {
			return strconv.FormatInt(int64(num), 10), nil
		}

		return strconv.FormatFloat(num, 'f', -1, 64), nil
	case int64:
		return strconv.FormatInt(num, 10), nil
	default:
		fNum, err := Float64E(raw)
		if err != nil {
			return "", fmt.Errorf("cannot convert %v (%T) into string: %w", raw, raw, err)
		}

		return Num2StringE(fNum)
	}
}
