package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedResult(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	testCases := []struct {
		name     string
		result   *string
		wantHome int
		wantAway int
		wantOK   bool
	}{
		{name: "simple", result: strPtr("2-1"), wantHome: 2, wantAway: 1, wantOK: true},
		{name: "draw", result: strPtr("0-0"), wantHome: 0, wantAway: 0, wantOK: true},
		{name: "double digits", result: strPtr("10-12"), wantHome: 10, wantAway: 12, wantOK: true},
		{name: "padded", result: strPtr("  3 - 1  "), wantHome: 3, wantAway: 1, wantOK: true},
		{name: "nil", result: nil},
		{name: "empty", result: strPtr("")},
		{name: "no separator", result: strPtr("21")},
		{name: "wrong separator", result: strPtr("2:1")},
		{name: "missing away", result: strPtr("2-")},
		{name: "text", result: strPtr("walkover")},
		{name: "partial number", result: strPtr("2-x")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := MatchRecord{Result: tc.result}
			home, away, ok := m.ParsedResult()
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantHome, home)
				assert.Equal(t, tc.wantAway, away)
			}
		})
	}
}
