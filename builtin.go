package xlformula

import (
	"math"
	"math/rand/v2"
	"time"
	"unicode/utf8"
)

// Excel serial date origin, December 30, 1899 00:00:00 UTC
const (
	excelEpochMs = -2209075200000
	msPerDay     = 86400000
)

// Clock interface provides time functionality for testing
type Clock interface {
	Now() time.Time
}

// WallClock is the default implementation using system time
type WallClock struct{}

func (w *WallClock) Now() time.Time {
	return time.Now()
}

// RandomGenerator interface provides random number generation for testing
type RandomGenerator interface {
	Float64() float64
}

// DefaultRandomGenerator uses the standard library's rand package
type DefaultRandomGenerator struct{}

func (d *DefaultRandomGenerator) Float64() float64 {
	return rand.Float64()
}

// commonly used argument parameter sets

var (
	numberArgs  = []string{"number"}
	numberRange = [2][]string{{"number1"}, {"number2", Unlimited}}
	logicArgs   = []string{"logical"}
	logicRange  = [2][]string{{"logical1"}, {"logical2", Unlimited}}
	textArgs    = []string{"text"}
	textRange   = [2][]string{{"text1"}, {"text2", Unlimited}}
	valueRange  = [2][]string{{"value1"}, {"value2", Unlimited}}
)

// Catalog is a registry of builtin descriptor instances keyed by name,
// emulating the functions found in Excel formulas. Descriptors without an
// evaluation closure still build and render; they only refuse to evaluate.
type Catalog struct {
	clock       Clock
	rng         RandomGenerator
	descriptors map[string]*Descriptor
}

// NewCatalog creates a catalog with default clock and random source
func NewCatalog() *Catalog {
	return NewCatalogWith(&WallClock{}, &DefaultRandomGenerator{})
}

// NewCatalogWith creates a catalog with injected clock and random source
func NewCatalogWith(clock Clock, rng RandomGenerator) *Catalog {
	c := &Catalog{
		clock:       clock,
		rng:         rng,
		descriptors: make(map[string]*Descriptor),
	}
	c.registerFunctions()
	c.registerRecipes()
	return c
}

// Lookup returns the descriptor registered under name
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	d, ok := c.descriptors[name]
	return d, ok
}

// Call invokes a registered descriptor by name with the given arguments
func (c *Catalog) Call(name string, args ...any) (*Call, error) {
	d, ok := c.descriptors[name]
	if !ok {
		return nil, NewBuildError(ErrCodeInvalidDescriptor, "unknown function: "+name)
	}
	return d.Call(args...)
}

// Names returns the names of all registered descriptors
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.descriptors))
	for name := range c.descriptors {
		names = append(names, name)
	}
	return names
}

// register adds a descriptor to the catalog, panicking on a definition
// error. The builtin tables are static; a bad entry is a programming error.
func (c *Catalog) register(d *Descriptor, err error) *Descriptor {
	if err != nil {
		panic(err)
	}
	c.descriptors[d.Name()] = d
	return d
}

func (c *Catalog) registerFunctions() {
	// logical functions

	c.register(NewFunction("AND", logicRange[0], logicRange[1], func(call *Call) (Primitive, error) {
		for value, err := range call.Values() {
			if err != nil {
				return nil, err
			}
			if !isTruthy(value) {
				return false, nil
			}
		}
		return true, nil
	}))
	c.register(NewFunction("IF",
		[]string{"logical_test", "value_if_true"}, []string{"value_if_false"},
		func(call *Call) (Primitive, error) {
			// only the selected branch is evaluated
			condition, err := call.ArgValue(0)
			if err != nil {
				return nil, err
			}
			if isTruthy(condition) {
				return call.ArgValue(1)
			}
			return call.ArgValue(2)
		}))
	c.register(NewFunction("NOT", logicArgs, nil, func(call *Call) (Primitive, error) {
		value, err := call.ArgValue(0)
		if err != nil {
			return nil, err
		}
		return !isTruthy(value), nil
	}))
	c.register(NewFunction("OR", logicRange[0], logicRange[1], func(call *Call) (Primitive, error) {
		for value, err := range call.Values() {
			if err != nil {
				return nil, err
			}
			if isTruthy(value) {
				return true, nil
			}
		}
		return false, nil
	}))
	c.register(NewFunction("TRUE", nil, nil, func(call *Call) (Primitive, error) {
		return true, nil
	}))

	// arithmetic functions

	c.register(NewFunction("ABS", numberArgs, nil, c.numericEval1(math.Abs)))
	c.register(NewFunction("CEILING", []string{"number", "significance"}, nil,
		func(call *Call) (Primitive, error) {
			number, significance, err := c.numericArgs2(call)
			if err != nil {
				return nil, err
			}
			if significance == 0 {
				return 0.0, nil
			}
			return math.Ceil(number/significance) * significance, nil
		}))
	c.register(NewFunction("MOD", []string{"number", "divisor"}, nil,
		func(call *Call) (Primitive, error) {
			number, divisor, err := c.numericArgs2(call)
			if err != nil {
				return nil, err
			}
			if divisor == 0 {
				return nil, NewBuildError(ErrCodeUnsupportedValueType, "division by zero")
			}
			return math.Mod(number, divisor), nil
		}))
	c.register(NewFunction("PRODUCT", numberRange[0], numberRange[1],
		func(call *Call) (Primitive, error) {
			product := 1.0
			for value, err := range call.Values() {
				if err != nil {
					return nil, err
				}
				if number, ok := toNumber(value); ok {
					product *= number
				}
			}
			return product, nil
		}))
	c.register(NewFunction("RAND", nil, nil, func(call *Call) (Primitive, error) {
		return c.rng.Float64(), nil
	}))
	c.register(NewFunction("SUM", numberRange[0], numberRange[1],
		func(call *Call) (Primitive, error) {
			sum := 0.0
			for value, err := range call.Values() {
				if err != nil {
					return nil, err
				}
				if number, ok := toNumber(value); ok {
					sum += number
				}
			}
			return sum, nil
		}))

	// statistical functions

	c.register(NewFunction("AVERAGE", numberRange[0], numberRange[1],
		func(call *Call) (Primitive, error) {
			sum := 0.0
			count := 0
			for value, err := range call.Values() {
				if err != nil {
					return nil, err
				}
				if number, ok := toNumber(value); ok {
					sum += number
					count++
				}
			}
			if count == 0 {
				return nil, NewBuildError(ErrCodeUnsupportedValueType, "division by zero")
			}
			return sum / float64(count), nil
		}))
	c.register(NewFunction("COUNT", valueRange[0], valueRange[1], nil))
	c.register(NewFunction("COUNTA", valueRange[0], valueRange[1], nil))
	c.register(NewFunction("COUNTBLANK", []string{"range"}, nil, nil))
	c.register(NewFunction("COUNTIF", []string{"range", "criteria"}, nil, nil))

	// string functions

	c.register(NewFunction("CHAR", numberArgs, nil, nil))
	c.register(NewFunction("CONCATENATE", textRange[0], textRange[1],
		func(call *Call) (Primitive, error) {
			joined := ""
			for value, err := range call.Values() {
				if err != nil {
					return nil, err
				}
				joined += toString(value)
			}
			return joined, nil
		}))
	c.register(NewFunction("LEN", textArgs, nil, func(call *Call) (Primitive, error) {
		value, err := call.ArgValue(0)
		if err != nil {
			return nil, err
		}
		// character count, not byte count
		return float64(utf8.RuneCountInString(toString(value))), nil
	}))
	c.register(NewFunction("SUBSTITUTE",
		[]string{"text", "old_text", "new_text"}, []string{"instance_num"}, nil))
	c.register(NewFunction("FIND",
		[]string{"find_text", "within_text"}, []string{"start_num"}, nil))

	// date and time functions

	c.register(NewFunction("DATE", []string{"year", "month", "day"}, nil, nil))
	c.register(NewFunction("DATEVALUE", []string{"date_text"}, nil, nil))
	c.register(NewFunction("DAY", []string{"serial_number"}, nil, nil))
	c.register(NewFunction("NOW", nil, nil, func(call *Call) (Primitive, error) {
		// current time as an Excel serial number (days since the epoch)
		now := c.clock.Now()
		diffMs := float64(now.UnixMilli() - excelEpochMs)
		return diffMs / msPerDay, nil
	}))
	c.register(NewFunction("TODAY", nil, nil, func(call *Call) (Primitive, error) {
		now := c.clock.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		diffMs := float64(midnight.UnixMilli() - excelEpochMs)
		return math.Floor(diffMs / msPerDay), nil
	}))
	c.register(NewFunction("TIME", []string{"hour", "minute", "second"}, nil, nil))
	c.register(NewFunction("TIMEVALUE", []string{"time_text"}, nil, nil))

	// information functions

	c.register(NewFunction("CELL", []string{"info_type"}, []string{"reference"}, nil))
	c.register(NewFunction("ISERROR", []string{"value"}, nil, nil))

	// reference functions

	c.register(NewFunction("ADDRESS",
		[]string{"row_num", "column_num"}, []string{"abs_num"}, nil))
	c.register(NewFunction("COLUMN", nil, []string{"reference"}, nil))
	c.register(NewFunction("COLUMNS", []string{"array"}, nil, nil))
	c.register(NewFunction("ROW", nil, []string{"reference"}, nil))
}

// numericEval1 builds an evaluation closure applying a one-argument
// numeric function
func (c *Catalog) numericEval1(apply func(float64) float64) EvalFunc {
	return func(call *Call) (Primitive, error) {
		value, err := call.ArgValue(0)
		if err != nil {
			return nil, err
		}
		number, ok := toNumber(value)
		if !ok {
			return nil, NewBuildError(ErrCodeUnsupportedValueType,
				"'"+call.Name()+"' requires a numeric value")
		}
		return apply(number), nil
	}
}

func (c *Catalog) numericArgs2(call *Call) (float64, float64, error) {
	first, err := call.ArgValue(0)
	if err != nil {
		return 0, 0, err
	}
	second, err := call.ArgValue(1)
	if err != nil {
		return 0, 0, err
	}
	a, aOk := toNumber(first)
	b, bOk := toNumber(second)
	if !aOk || !bOk {
		return 0, 0, NewBuildError(ErrCodeUnsupportedValueType,
			"'"+call.Name()+"' requires numeric values")
	}
	return a, b, nil
}
