package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr error
	}{
		{"12.34", 12.34, nil},
		{"12,34", 12.34, nil},
		{" 100 ", 100, nil},
		{"0.5", 0.5, nil},
		// A typed sign is accepted; the transaction type owns the final sign.
		{"-5", -5, nil},
		{"+5", 5, nil},
		{"-12,50", -12.5, nil},
		{"", 0, ErrMissingAmount},
		{"   ", 0, ErrMissingAmount},
		{"abc", 0, ErrInvalidAmount},
		{"NaN", 0, ErrInvalidAmount},
		{"Inf", 0, ErrInvalidAmount},
		{"-Inf", 0, ErrInvalidAmount},
		{"1.2.3", 0, ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("%q: got err %v, want %v", tc.in, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeAmount(t *testing.T) {
	if got := NormalizeAmount(Expense, 25); got != -25 {
		t.Fatalf("expense: got %v", got)
	}
	if got := NormalizeAmount(Expense, -25); got != -25 {
		t.Fatalf("expense with negative magnitude: got %v", got)
	}
	if got := NormalizeAmount(Income, 25); got != 25 {
		t.Fatalf("income: got %v", got)
	}
	if got := NormalizeAmount(Income, -25); got != 25 {
		t.Fatalf("income with negative magnitude: got %v", got)
	}
}
