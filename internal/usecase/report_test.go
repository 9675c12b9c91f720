package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"PredVal/internal/codec"
	"PredVal/internal/domain/models"
	"PredVal/pkg/logger"
	"PredVal/pkg/metrics"
)

type memSource map[string]string

func (m memSource) ReadLines(_ context.Context, name string) ([]string, error) {
	body, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("open %s: not found", name)
	}
	return strings.SplitAfter(body, "\n"), nil
}

type memWriter struct {
	files map[string][]string
}

func (w *memWriter) Write(_ context.Context, name string, lines []string) error {
	if w.files == nil {
		w.files = map[string][]string{}
	}
	w.files[name] = lines
	return nil
}

type memCache struct {
	data map[string]*models.ReportSummary
	sets int
}

func (c *memCache) Get(_ context.Context, digest string) (*models.ReportSummary, bool, error) {
	r, ok := c.data[digest]
	return r, ok, nil
}

func (c *memCache) Set(_ context.Context, digest string, report *models.ReportSummary, _ time.Duration) error {
	if c.data == nil {
		c.data = map[string]*models.ReportSummary{}
	}
	c.data[digest] = report
	c.sets++
	return nil
}

type failingStore struct{}

func (failingStore) Init(context.Context) error { return nil }
func (failingStore) StoreReport(context.Context, string, *models.ReportSummary) error {
	return errors.New("clickhouse down")
}
func (failingStore) Close() error { return nil }

type memPublisher struct {
	runs []string
}

func (p *memPublisher) PublishReport(_ context.Context, runID string, report *models.ReportSummary) error {
	p.runs = append(p.runs, fmt.Sprintf("%s:%d", runID, len(report.Windows)))
	return nil
}
func (p *memPublisher) Close() error { return nil }

func newReportUseCase(src memSource, w *memWriter) *ReportUseCase {
	m := metrics.New()
	return NewReportUseCase(src, w, NewValidationPipeline(logger.Nop(), m), m, logger.Nop())
}

var sample = memSource{
	"window.txt":    "2\n",
	"actual.txt":    "1|A|10.10\n1|B|3.00\n2|A|11.30\n3|A|12.50\n",
	"predicted.txt": "1|A|10.00\n2|A|11.00\n3|A|12.00\n",
}

var sampleParams = RunParams{
	WindowFile:    "window.txt",
	ActualFile:    "actual.txt",
	PredictedFile: "predicted.txt",
	OutputFile:    "comparison.txt",
	Policy:        PolicyFail,
}

func TestReportUseCaseRun(t *testing.T) {
	w := &memWriter{}
	res, err := newReportUseCase(sample, w).Run(context.Background(), sampleParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"1|2|0.20", "2|3|0.40"}
	got := w.files["comparison.txt"]
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if res.CacheHit || res.Report == nil || res.Summary == nil || len(res.RunID) != 16 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestReportUseCaseCache(t *testing.T) {
	cache := &memCache{}
	w := &memWriter{}
	uc := newReportUseCase(sample, w).WithCache(cache, time.Minute)

	first, err := uc.Run(context.Background(), sampleParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Run(context.Background(), sampleParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.CacheHit || !second.CacheHit || cache.sets != 1 {
		t.Fatalf("expected miss then hit, got %v %v (sets=%d)", first.CacheHit, second.CacheHit, cache.sets)
	}
	if strings.Join(first.Lines, ",") != strings.Join(second.Lines, ",") {
		t.Fatalf("cached lines differ: %v vs %v", first.Lines, second.Lines)
	}
	if second.Summary == nil || len(second.Summary.Windows) != 2 || second.Summary.Stats != first.Summary.Stats {
		t.Fatalf("cache hit lost windows or stats: %+v", second.Summary)
	}
}

func TestReportUseCaseCacheHitStillPublishes(t *testing.T) {
	pub := &memPublisher{}
	uc := newReportUseCase(sample, &memWriter{}).WithCache(&memCache{}, time.Minute).WithPublisher(pub)

	for i := 0; i < 2; i++ {
		if _, err := uc.Run(context.Background(), sampleParams); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}
	if len(pub.runs) != 2 || pub.runs[0] != pub.runs[1] {
		t.Fatalf("expected the same run published twice, got %v", pub.runs)
	}
}

func TestReportUseCaseNoOutputOnError(t *testing.T) {
	cases := map[string]memSource{
		"bad window":   {"window.txt": "0\n", "actual.txt": "", "predicted.txt": ""},
		"bad actual":   {"window.txt": "1\n", "actual.txt": "1|A\n", "predicted.txt": ""},
		"empty window": {"window.txt": "1\n", "actual.txt": "1|A|1.00\n", "predicted.txt": "2|A|1.00\n"},
		"missing file": {"window.txt": "1\n"},
	}
	for name, src := range cases {
		w := &memWriter{}
		if _, err := newReportUseCase(src, w).Run(context.Background(), sampleParams); err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if len(w.files) != 0 {
			t.Fatalf("%s: expected no output, got %v", name, w.files)
		}
	}
}

func TestReportUseCaseStoreFailureAborts(t *testing.T) {
	w := &memWriter{}
	uc := newReportUseCase(sample, w).WithStore(failingStore{})
	if _, err := uc.Run(context.Background(), sampleParams); err == nil {
		t.Fatalf("expected store error")
	}
	if len(w.files) != 0 {
		t.Fatalf("expected no output after store failure")
	}
}

func TestDigestStable(t *testing.T) {
	a := Digest(2, PolicyFail, []string{"1|A|1\n"}, []string{"1|A|2\n"})
	b := Digest(2, PolicyFail, []string{"1|A|1"}, []string{"1|A|2"})
	c := Digest(3, PolicyFail, []string{"1|A|1"}, []string{"1|A|2"})
	if a != b {
		t.Fatalf("line terminators should not change digest")
	}
	if a == c {
		t.Fatalf("window size should change digest")
	}
}

func TestDigestEmbeddedNewline(t *testing.T) {
	joined := Digest(1, PolicyFail, []string{"1|A|1.00\n1|B|2.00"}, []string{"1|A|1.00"})
	split := Digest(1, PolicyFail, []string{"1|A|1.00", "1|B|2.00"}, []string{"1|A|1.00"})
	if joined == split {
		t.Fatalf("a line with an embedded newline must not share a digest with its parts")
	}
	moved := Digest(1, PolicyFail, []string{"1|A|1.00"}, []string{"1|A|1.00", "1|B|2.00"})
	if moved == split {
		t.Fatalf("moving a line between inputs must change the digest")
	}
}

func TestReportUseCaseEmbeddedNewlineNotServedFromCache(t *testing.T) {
	uc := newReportUseCase(nil, &memWriter{}).WithCache(&memCache{}, time.Minute)
	predicted := []string{"1|A|1.00", "1|B|2.00"}

	if _, err := uc.Evaluate(context.Background(), 1, PolicyFail, []string{"1|A|1.00", "1|B|2.00"}, predicted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := uc.Evaluate(context.Background(), 1, PolicyFail, []string{"1|A|1.00\n1|B|2.00"}, predicted)
	var de *codec.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestReportUseCaseEvaluate(t *testing.T) {
	w := &memWriter{}
	uc := newReportUseCase(nil, w)

	res, err := uc.Evaluate(context.Background(), 1, PolicyNull,
		[]string{"1|A|10.00", "2|B|4.00"}, []string{"1|A|9.75"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(res.Lines, ",") != "1|1|0.25,2|2|null" {
		t.Fatalf("unexpected lines %v", res.Lines)
	}
	if len(w.files) != 0 {
		t.Fatalf("evaluate must not write output")
	}

	if _, err := uc.Evaluate(context.Background(), 0, PolicyFail, nil, nil); !errors.Is(err, ErrInvalidWindowSize) {
		t.Fatalf("expected ErrInvalidWindowSize, got %v", err)
	}
}
