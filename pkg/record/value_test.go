package record

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValueCompare_SameKind(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{name: "strings ascending", a: String("a"), b: String("b"), want: -1},
		{name: "strings equal", a: String("x"), b: String("x"), want: 0},
		{name: "ints", a: Int(2), b: Int(10), want: -1},
		{name: "floats", a: Float(2.5), b: Float(1.5), want: 1},
		{name: "bools false before true", a: Bool(false), b: Bool(true), want: -1},
		{name: "nulls equal", a: Null(), b: Null(), want: 0},
		{name: "lists element-wise", a: List(Int(1), Int(2)), b: List(Int(1), Int(3)), want: -1},
		{name: "shorter list first", a: List(Int(1)), b: List(Int(1), Int(0)), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Compare(tt.b)
			if err != nil {
				t.Fatalf("Compare returned error: %v", err)
			}
			if sign(got) != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValueCompare_NumericCrossKind(t *testing.T) {
	got, err := Int(1).Compare(Float(1.5))
	if err != nil {
		t.Fatalf("int/float comparison should be defined: %v", err)
	}
	if got >= 0 {
		t.Errorf("Compare(1, 1.5) = %d, want negative", got)
	}
}

func TestValueCompare_Incomparable(t *testing.T) {
	if _, err := String("a").Compare(Int(1)); !errors.Is(err, ErrIncomparable) {
		t.Errorf("expected ErrIncomparable, got %v", err)
	}
	if _, err := Bool(true).Compare(Null()); !errors.Is(err, ErrIncomparable) {
		t.Errorf("expected ErrIncomparable, got %v", err)
	}
}

func TestValueEqual(t *testing.T) {
	if !Int(3).Equal(Float(3)) {
		t.Error("3 and 3.0 should be equal")
	}
	if Int(3).Equal(String("3")) {
		t.Error("int and string must not be equal")
	}
	if !List(String("a"), Int(1)).Equal(List(String("a"), Int(1))) {
		t.Error("equal lists reported unequal")
	}
	if List(Int(1)).Equal(List(Int(1), Int(2))) {
		t.Error("lists of different length reported equal")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
	}{
		{name: "integer stays int", input: `42`, kind: KindInt},
		{name: "decimal is float", input: `1.5`, kind: KindFloat},
		{name: "exponent is float", input: `1e3`, kind: KindFloat},
		{name: "string", input: `"word"`, kind: KindString},
		{name: "bool", input: `true`, kind: KindBool},
		{name: "null", input: `null`, kind: KindNull},
		{name: "list", input: `[1,"a",2.5]`, kind: KindList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if v.Kind() != tt.kind {
				t.Fatalf("kind = %s, want %s", v.Kind(), tt.kind)
			}
			data, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back Value
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal round trip: %v", err)
			}
			if !v.Equal(back) {
				t.Errorf("round trip changed value: %v -> %v", v, back)
			}
		})
	}
}

func TestValueMarshal_IntNotFloat(t *testing.T) {
	data, err := json.Marshal(Int(7))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "7" {
		t.Errorf("int marshaled as %s, want 7", data)
	}
}

func TestFromAny_NestedObjectRejected(t *testing.T) {
	_, err := FromAny(map[string]interface{}{"nested": 1})
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("expected ErrUnsupportedValue, got %v", err)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
