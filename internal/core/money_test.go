package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0", 0, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"5000", 500000, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.cents {
				t.Fatalf("%q expected %d cents, got %d (err=%v)", tc.in, tc.cents, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{500000, "5000"},
		{1234, "12.34"},
		{150, "1.50"},
		{-1234, "-12.34"},
		{0, "0"},
		{5, "0.05"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1234, 500000, -350} {
		m := Money{Cents: cents}
		data, err := m.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %d: %v", cents, err)
		}
		var back Money
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back.Cents != cents {
			t.Errorf("round trip %d -> %s -> %d", cents, data, back.Cents)
		}
	}
}

func TestMoneyUnmarshalRejectsGarbage(t *testing.T) {
	var m Money
	for _, in := range []string{`"abc"`, `null`, `""`} {
		if err := m.UnmarshalJSON([]byte(in)); err == nil {
			t.Errorf("%s expected error", in)
		}
	}
}
