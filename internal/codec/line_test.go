package codec

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"PredVal/internal/domain/models"
)

func TestDecodeObservation(t *testing.T) {
	got, err := DecodeObservation("1|EDMMCA|25.80\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Time != 1 || got.Stock != "EDMMCA" {
		t.Fatalf("unexpected observation %+v", got)
	}
	if !got.Price.Equal(decimal.RequireFromString("25.8")) {
		t.Fatalf("unexpected price %s", got.Price)
	}
}

func TestDecodeObservationErrors(t *testing.T) {
	cases := map[string]string{
		"too few":   "1|A",
		"too many":  "1|A|2.00|x",
		"bad time":  "x|A|2.00",
		"bad price": "1|A|abc",
	}
	for name, line := range cases {
		if _, err := DecodeObservation(line); err == nil {
			t.Fatalf("%s: expected error for %q", name, line)
		}
	}
	_, err := DecodeObservation("1|A")
	if !errors.Is(err, ErrColumnCount) {
		t.Fatalf("expected ErrColumnCount, got %v", err)
	}
}

func TestDecodeObservationsSkipsBlankLines(t *testing.T) {
	lines := []string{"1|A|10.00\n", "\n", "", "2|B|5.5\r\n"}
	got, err := DecodeObservations(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(got))
	}
	if got[1].Stock != "B" || got[1].Time != 2 {
		t.Fatalf("unexpected second observation %+v", got[1])
	}
}

func TestDecodeObservationsReportsLine(t *testing.T) {
	_, err := DecodeObservations([]string{"1|A|10.00", "2|B"})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Line != 2 || de.Text != "2|B" {
		t.Fatalf("unexpected decode error %+v", de)
	}
}

func TestObservationRoundTrip(t *testing.T) {
	in := models.Observation{Time: 42, Stock: "AMDDPW", Price: decimal.RequireFromString("23.46")}
	line := EncodeObservation(in)
	if line != "42|AMDDPW|23.46" {
		t.Fatalf("unexpected encoding %q", line)
	}
	out, err := DecodeObservation(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Time != in.Time || out.Stock != in.Stock || !out.Price.Equal(in.Price) {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestParseWindowSize(t *testing.T) {
	n, err := ParseWindowSize([]string{" 3\n", "ignored"})
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %d (%v)", n, err)
	}
	if _, err := ParseWindowSize(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := ParseWindowSize([]string{"three"}); err == nil {
		t.Fatalf("expected error for non-numeric window")
	}
}

func TestEncodeWindow(t *testing.T) {
	avg := decimal.RequireFromString("0.5")
	w := models.WindowGroup{StartTime: 1, EndTime: 3, AverageError: &avg}
	if got := EncodeWindow(w); got != "1|3|0.50" {
		t.Fatalf("unexpected line %q", got)
	}
	w.AverageError = nil
	if got := EncodeWindow(w); got != "1|3|null" {
		t.Fatalf("unexpected null line %q", got)
	}
}

func TestBody(t *testing.T) {
	if got := string(Body([]string{"1|2|0.50", "2|3|0.25"})); got != "1|2|0.50\n2|3|0.25\n" {
		t.Fatalf("unexpected body %q", got)
	}
	if got := string(Body(nil)); got != "\n" {
		t.Fatalf("unexpected empty body %q", got)
	}
}
