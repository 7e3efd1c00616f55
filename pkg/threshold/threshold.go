package threshold

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Threshold is a monitoring plugin range, see https://www.monitoring-plugins.org/doc/guidelines.html#THRESHOLDFORMAT
//
// A plain number is a ceiling: the value alerts once it is strictly greater.
// Negative values never alert on a plain number, percentages of
// node resources simply cannot underflow.
type Threshold struct {
	input   string
	lower   float64
	upper   float64
	outside bool
}

var (
	regexNumber       = `(-?\d+(?:\.\d+)?)`
	regexCeiling      = regexp.MustCompile(fmt.Sprintf(`^%s$`, regexNumber))
	regexFloor        = regexp.MustCompile(fmt.Sprintf(`^%s:$`, regexNumber))
	regexMinusInfToX  = regexp.MustCompile(fmt.Sprintf(`^~:%s$`, regexNumber))
	regexRangeLowHigh = regexp.MustCompile(fmt.Sprintf(`^(@?)%s:%s$`, regexNumber, regexNumber))

	// ErrFirstBiggerThenSecond is returned when the lower range boundary exceeds the upper one
	ErrFirstBiggerThenSecond = errors.New("first argument is bigger then second")

	// ErrEmptyThreshold is returned for empty threshold definitions
	ErrEmptyThreshold = errors.New("empty threshold given")
)

// String returns the threshold as it was given
func (t Threshold) String() string {
	return t.input
}

// NewThreshold parses a threshold definition
func NewThreshold(def string) (*Threshold, error) {
	def = strings.TrimSpace(def)
	if def == "" {
		return nil, ErrEmptyThreshold
	}

	if match := regexCeiling.FindStringSubmatch(def); len(match) == 2 {
		x, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return nil, fmt.Errorf("threshold parse error: %s", err.Error())
		}

		return &Threshold{input: def, lower: math.Inf(-1), upper: x, outside: true}, nil
	}

	if match := regexFloor.FindStringSubmatch(def); len(match) == 2 {
		x, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return nil, fmt.Errorf("threshold parse error: %s", err.Error())
		}

		return &Threshold{input: def, lower: x, upper: math.Inf(1), outside: true}, nil
	}

	if match := regexMinusInfToX.FindStringSubmatch(def); len(match) == 2 {
		x, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return nil, fmt.Errorf("threshold parse error: %s", err.Error())
		}

		return &Threshold{input: def, lower: math.Inf(-1), upper: x, outside: true}, nil
	}

	if match := regexRangeLowHigh.FindStringSubmatch(def); len(match) == 4 {
		low, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			return nil, fmt.Errorf("threshold parse error: %s", err.Error())
		}
		high, err := strconv.ParseFloat(match[3], 64)
		if err != nil {
			return nil, fmt.Errorf("threshold parse error: %s", err.Error())
		}
		if low > high {
			return nil, ErrFirstBiggerThenSecond
		}

		return &Threshold{input: def, lower: low, upper: high, outside: match[1] != "@"}, nil
	}

	return nil, fmt.Errorf("threshold syntax not supported: %s", def)
}

// MustThreshold is like NewThreshold but panics on invalid definitions
func MustThreshold(def string) *Threshold {
	t, err := NewThreshold(def)
	if err != nil {
		panic(err.Error())
	}

	return t
}

// CheckValue tests if the given value fulfills the threshold
// false: value is critical/warning
// true: value is ok
func (t *Threshold) CheckValue(value float64) bool {
	if t.outside {
		return value >= t.lower && value <= t.upper
	}

	return value < t.lower || value > t.upper
}
