package util

import (
	"reflect"
	"testing"
)

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault(" 42 ", 1); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
	if got := ParseIntDefault("x", 7); got != 7 {
		t.Fatalf("expected default 7 on invalid, got %d", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("a:9092, b:9092,,")
	if !reflect.DeepEqual(got, []string{"a:9092", "b:9092"}) {
		t.Fatalf("unexpected list %v", got)
	}
	if SplitList("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
