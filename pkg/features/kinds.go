package features

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

// Kind converts raw values into the list type of one dtype.
type Kind interface {
	// DType returns the dtype this kind produces.
	DType() domain.DType
	// Append coerces value and appends it to col.
	Append(col *Column, value any) error
}

// --- Built-in Kind Implementations ---

// StringKind produces bytes-like string lists.
type StringKind struct{}

func (k *StringKind) DType() domain.DType { return domain.DTypeString }

func (k *StringKind) Append(col *Column, value any) error {
	s, err := cast.ToStringE(value)
	if err != nil {
		return err
	}
	col.Strings = append(col.Strings, s)
	return nil
}

// ErrOutOfRange is wrapped by conversions of values the dtype cannot represent.
var ErrOutOfRange = errors.New("value out of range")

// twoTo63 is the first float64 above math.MaxInt64.
const twoTo63 = float64(1 << 63)

// FloatKind produces float32 lists.
type FloatKind struct{}

func (k *FloatKind) DType() domain.DType { return domain.DTypeFloat }

func (k *FloatKind) Append(col *Column, value any) error {
	var f float32
	switch v := value.(type) {
	case bool:
		return fmt.Errorf("expected float, got bool")
	case float64:
		if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
			return fmt.Errorf("%w: %g exceeds float32", ErrOutOfRange, v)
		}
		f = float32(v)
	case string:
		parsed, err := parseFloat32(v)
		if err != nil {
			return err
		}
		f = parsed
	case json.Number:
		parsed, err := parseFloat32(string(v))
		if err != nil {
			return err
		}
		f = parsed
	default:
		converted, err := cast.ToFloat32E(value)
		if err != nil {
			return err
		}
		f = converted
	}
	col.Floats = append(col.Floats, f)
	return nil
}

func parseFloat32(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q exceeds float32", ErrOutOfRange, s)
	}
	if err != nil {
		return 0, fmt.Errorf("expected float, got %q", s)
	}
	return float32(f), nil
}

// Int64Kind produces int64 lists.
type Int64Kind struct{}

func (k *Int64Kind) DType() domain.DType { return domain.DTypeInt64 }

func (k *Int64Kind) Append(col *Column, value any) error {
	var i int64
	var err error
	switch v := value.(type) {
	case bool:
		return fmt.Errorf("expected int64, got bool")
	case float64:
		i, err = wholeInt64(v)
	case float32:
		i, err = wholeInt64(float64(v))
	case uint:
		i, err = uintInt64(uint64(v))
	case uint64:
		i, err = uintInt64(v)
	case string:
		i, err = parseInt64(v)
	case json.Number:
		i, err = parseInt64(string(v))
	default:
		i, err = cast.ToInt64E(value)
	}
	if err != nil {
		return err
	}
	col.Ints = append(col.Ints, i)
	return nil
}

// wholeInt64 accepts floats that are whole numbers (from JSON unmarshaling).
func wholeInt64(f float64) (int64, error) {
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("expected int64, got float (not a whole number)")
	}
	if f < -twoTo63 || f >= twoTo63 {
		return 0, fmt.Errorf("%w: %g exceeds int64", ErrOutOfRange, f)
	}
	return int64(f), nil
}

func uintInt64(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d exceeds int64", ErrOutOfRange, u)
	}
	return int64(u), nil
}

// parseInt64 reads decimal integers only, so "010" is ten.
// Whole numbers in float notation ("1e3", "3.0") are accepted.
func parseInt64(s string) (int64, error) {
	s = strings.TrimSpace(s)
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q exceeds int64", ErrOutOfRange, s)
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, fmt.Errorf("expected int64, got %q", s)
	}
	return wholeInt64(f)
}

// --- Factory Functions ---

// KindOf returns the converter for dtype.
func KindOf(dtype domain.DType) (Kind, error) {
	switch dtype {
	case domain.DTypeString, "":
		return &StringKind{}, nil
	case domain.DTypeFloat:
		return &FloatKind{}, nil
	case domain.DTypeInt64:
		return &Int64Kind{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedDType, dtype)
	}
}
