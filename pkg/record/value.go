package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged union over the kinds a record field may hold.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
}

// Null returns the null value
func Null() Value { return Value{} }

// Bool wraps a boolean
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a signed integer
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a double
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps an ordered list of scalar values
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Kind returns the dynamic type of the value
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload. The second return value is false
// when the value is not a bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer payload. The second return value is false
// when the value is not an int.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat returns the float payload. The second return value is false
// when the value is not a float.
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsString returns the string payload. The second return value is false
// when the value is not a string.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsList returns the list payload. The second return value is false when
// the value is not a list. The returned slice is shared, not copied;
// callers must not modify it.
func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// Float64 returns the numeric payload of an int or float value as a
// float64. It reports false for every other kind. This is the accessor
// arithmetic callables usually want, since JSON input does not
// distinguish integer columns from floating-point ones reliably.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// String renders the value for diagnostics. It is not a serialization
// format; use MarshalJSON for output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}

// Compare orders v against other, returning a negative number, zero or a
// positive number. Ordering is defined within a kind; int and float
// additionally compare numerically with each other. Every other pair of
// kinds returns ErrIncomparable.
func (v Value) Compare(other Value) (int, error) {
	// Numeric kinds compare with each other.
	if vf, ok := v.Float64(); ok {
		if of, ok := other.Float64(); ok {
			// Exact int/int comparison avoids float rounding on large values.
			if v.kind == KindInt && other.kind == KindInt {
				return compareInt64(v.i, other.i), nil
			}
			return compareFloat64(vf, of), nil
		}
	}

	if v.kind != other.kind {
		return 0, fmt.Errorf("%w: %s and %s", ErrIncomparable, v.kind, other.kind)
	}

	switch v.kind {
	case KindNull:
		return 0, nil
	case KindBool:
		// false < true
		if v.b == other.b {
			return 0, nil
		}
		if !v.b {
			return -1, nil
		}
		return 1, nil
	case KindString:
		return strings.Compare(v.s, other.s), nil
	case KindList:
		n := len(v.list)
		if len(other.list) < n {
			n = len(other.list)
		}
		for i := 0; i < n; i++ {
			c, err := v.list[i].Compare(other.list[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return compareInt64(int64(len(v.list)), int64(len(other.list))), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrIncomparable, v.kind)
	}
}

// Equal reports whether two values hold the same payload. Int and float
// values holding the same number are equal; all other cross-kind pairs
// are unequal.
func (v Value) Equal(other Value) bool {
	if vf, ok := v.Float64(); ok {
		if of, ok := other.Float64(); ok {
			return vf == of
		}
		return false
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		items := make([]json.RawMessage, len(v.list))
		for i, item := range v.list {
			data, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			items[i] = data
		}
		return json.Marshal(items)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler. Integer literals decode to
// int values, everything else with a fraction or exponent to float.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromAny converts a decoded JSON value (as produced by encoding/json
// with UseNumber) into a Value. Nested objects are not representable as
// record fields and return ErrUnsupportedValue.
func FromAny(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return fromNumber(x), nil
	case float64:
		// Plain json.Unmarshal without UseNumber lands here.
		return Float(x), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case []interface{}:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			items[i] = v
		}
		return List(items...), nil
	default:
		return Null(), fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
}

func fromNumber(n json.Number) Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i)
		}
	}
	f, err := n.Float64()
	if err != nil {
		// json.Number always holds a valid numeric literal; fall back to
		// null rather than guessing.
		return Null()
	}
	return Float(f)
}
