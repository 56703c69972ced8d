package tools

import (
	"errors"
	"testing"
)

func TestEvalExpression(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"2 + 2", 4},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"100 - 30 / 3", 90},
		{"-5 + 10", 5},
		{"2 * -3", -6},
		{"1.5 * 2", 3},
		{"((1))", 1},
	}

	for _, tc := range cases {
		got, err := evalExpression(tc.expr)
		if err != nil {
			t.Errorf("evalExpression(%q) error: %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("evalExpression(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvalExpressionErrors(t *testing.T) {
	if _, err := evalExpression("1/0"); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("1/0: expected ErrDivisionByZero, got %v", err)
	}
	for _, expr := range []string{"", "(1", "1 +", "1 2", "*3"} {
		if _, err := evalExpression(expr); err == nil {
			t.Errorf("evalExpression(%q) expected error, got none", expr)
		}
	}
}
