package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/mhartig/hexhub/pkg/assembly"
)

func TestParseTypes(t *testing.T) {
	tests := []struct {
		in   string
		want []assembly.Type
	}{
		{"both", assembly.Types()},
		{"Both", assembly.Types()},
		{"A", []assembly.Type{assembly.TypeA}},
		{"b", []assembly.Type{assembly.TypeB}},
	}
	for _, tc := range tests {
		got, err := parseTypes(tc.in)
		if err != nil {
			t.Errorf("parseTypes(%q) failed: %v", tc.in, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("parseTypes(%q) = %v, expected %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("parseTypes(%q) = %v, expected %v", tc.in, got, tc.want)
			}
		}
	}

	if _, err := parseTypes("Q"); !errors.Is(err, assembly.ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestLoggerFromContextFallback(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("expected the default logger when none is attached")
	}
}
