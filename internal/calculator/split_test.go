package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		n       int
		want    string
		wantErr error
	}{
		{name: "two people", amount: "100", n: 2, want: "50"},
		{name: "three people", amount: "90", n: 3, want: "30"},
		{name: "four people with half cents", amount: "13.34", n: 4, want: "3.335"},
		{name: "zero amount", amount: "0", n: 5, want: "0"},
		{name: "no participants", amount: "10", n: 0, wantErr: ErrNoParticipants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitEqually(decimal.RequireFromString(tt.amount), tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SplitEqually() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("SplitEqually(%s, %d) = %s, want %s", tt.amount, tt.n, got, tt.want)
			}
		})
	}
}

func TestSplitEqually_RepeatingShare(t *testing.T) {
	share, err := SplitEqually(decimal.NewFromInt(100), 3)
	if err != nil {
		t.Fatalf("SplitEqually() error = %v", err)
	}
	// 33.3333... is kept at full division precision
	if share.Round(2).String() != "33.33" {
		t.Errorf("share rounded = %s, want 33.33", share.Round(2))
	}
	if share.Equal(share.Round(2)) {
		t.Errorf("share %s should not be pre-rounded", share)
	}
}
