package core

import (
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{"1.005", "1.01", true}, // half-up rounding
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"0", "", false},
		{"0.001", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1e3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		m        Money
		currency string
		want     string
	}{
		{M(100), "USD", "$100.00"},
		{M(1234.5), "usd", "$1,234.50"},
		{M(0.005), "USD", "$0.01"},
		{M(5), "???", "$5.00"},
	}
	for _, tc := range cases {
		if got := tc.m.Format(tc.currency); got != tc.want {
			t.Errorf("Format(%s, %s) = %q, want %q", tc.m, tc.currency, got, tc.want)
		}
	}
}

func TestMoneyUnmarshalRejectsGarbage(t *testing.T) {
	var m Money
	if err := m.UnmarshalJSON([]byte(`"twelve"`)); err == nil {
		t.Fatalf("expected error")
	}
	if err := m.UnmarshalJSON([]byte(`null`)); err != nil || !m.IsZero() {
		t.Fatalf("null should decode to zero, got %s err=%v", m, err)
	}
}

func TestParseBudgetAmountAcceptsZero(t *testing.T) {
	m, err := ParseBudgetAmount("0")
	if err != nil || !m.IsZero() {
		t.Fatalf("ParseBudgetAmount(0) = %s, %v", m, err)
	}
	if _, err := ParseBudgetAmount("-3"); err == nil {
		t.Fatal("negative budgets must be rejected")
	}
	if m, _ := ParseBudgetAmount("99,999"); !m.Equal(M(100)) {
		t.Fatalf("expected rounding to 100, got %s", m)
	}
}
