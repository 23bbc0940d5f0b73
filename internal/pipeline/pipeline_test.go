package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/sigmacoders/guardian/internal/classifier"
	"github.com/sigmacoders/guardian/internal/credentials"
	"github.com/sigmacoders/guardian/internal/pipeline"
	"github.com/sigmacoders/guardian/internal/videolog"
	"github.com/sigmacoders/guardian/pkg/pagination"
)

type fakeClassifier struct {
	mu     sync.Mutex
	resp   *classifier.Response
	err    error
	keyErr error
	texts  []string
	called chan struct{}
}

func (f *fakeClassifier) ResolveKey(ctx context.Context) (string, error) {
	if f.keyErr != nil {
		return "", f.keyErr
	}
	return "test-key", nil
}

func (f *fakeClassifier) Classify(ctx context.Context, key, text string) (*classifier.Response, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()

	if f.called != nil {
		f.called <- struct{}{}
	}
	return f.resp, f.err
}

func (f *fakeClassifier) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts)
}

func (f *fakeClassifier) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type fakeEnricher struct {
	mu       sync.Mutex
	comments []string
	err      error
	count    int
}

func (f *fakeEnricher) Enrich(ctx context.Context, title, videoID string) ([]string, error) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
	return f.comments, f.err
}

func (f *fakeEnricher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type fakeLog struct {
	mu      sync.Mutex
	entries []videolog.AppendCommand
	err     error
}

func (f *fakeLog) Handler() *videolog.Handler { return nil }

func (f *fakeLog) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters videolog.Filters,
) (*pagination.PageResult[videolog.Entry], error) {
	return nil, nil
}

func (f *fakeLog) Append(ctx context.Context, cmd videolog.AppendCommand) (*videolog.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.entries = append(f.entries, cmd)
	return &videolog.Entry{Title: cmd.Title}, nil
}

func (f *fakeLog) appended() []videolog.AppendCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]videolog.AppendCommand(nil), f.entries...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func safeResponse() *classifier.Response {
	return &classifier.Response{Category: "entertainment", Confidence: 0.6}
}

func newPipeline(cls pipeline.Classifier, enr pipeline.Enricher, log videolog.System) *pipeline.Pipeline {
	return pipeline.New(context.Background(), cls, enr, log, testLogger())
}

func TestClassifyEnrichedText(t *testing.T) {
	cls := &fakeClassifier{resp: safeResponse()}
	enr := &fakeEnricher{comments: []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"}}
	p := newPipeline(cls, enr, &fakeLog{})

	det := pipeline.Detection{Title: "Top 10 Craziest Fails"}
	if _, err := p.Classify(context.Background(), "p1", "c1", det); err != nil {
		t.Fatalf("Classify() error: %v", err)
	}

	want := "Top 10 Craziest Fails. Channel: Unknown. User comments: c1 c2 c3 c4 c5"
	if got := cls.lastText(); got != want {
		t.Errorf("classifier input = %q, want %q", got, want)
	}
}

func TestClassifyEnrichmentFailureDegradesToTitle(t *testing.T) {
	cls := &fakeClassifier{resp: safeResponse()}
	enr := &fakeEnricher{err: errors.New("quota exceeded")}
	p := newPipeline(cls, enr, &fakeLog{})

	det := pipeline.Detection{Title: "Top 10 Craziest Fails", Channel: "FailArmy"}
	result, err := p.Classify(context.Background(), "p1", "c1", det)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}

	if got := cls.lastText(); got != "Top 10 Craziest Fails. Channel: FailArmy" {
		t.Errorf("classifier input = %q", got)
	}
	if result.Safety != classifier.Safe {
		t.Errorf("Safety = %q, want safe", result.Safety)
	}
}

func TestClassifyRecordsEntry(t *testing.T) {
	cls := &fakeClassifier{resp: &classifier.Response{Category: "violent", Confidence: 0.8}}
	log := &fakeLog{}
	p := newPipeline(cls, &fakeEnricher{}, log)

	det := pipeline.Detection{Title: "Extreme Street Fight Compilation"}
	result, err := p.Classify(context.Background(), "p1", "c1", det)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}

	if result.Safety != classifier.Unsafe {
		t.Errorf("Safety = %q, want unsafe", result.Safety)
	}

	entries := log.appended()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.ParentID != "p1" || e.ChildID != "c1" {
		t.Errorf("entry target = %s/%s", e.ParentID, e.ChildID)
	}
	if e.Channel != videolog.UnknownChannel {
		t.Errorf("Channel = %q, want %q", e.Channel, videolog.UnknownChannel)
	}
	if e.Category != "violent" || e.Safety != "unsafe" {
		t.Errorf("entry = %+v", e)
	}
}

func TestClassifyAppendFailureDoesNotBlockResult(t *testing.T) {
	cls := &fakeClassifier{resp: safeResponse()}
	log := &fakeLog{err: errors.New("connection refused")}
	p := newPipeline(cls, &fakeEnricher{}, log)

	result, err := p.Classify(context.Background(), "p1", "c1", pipeline.Detection{Title: "Some Video Title"})
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if result.Category != "entertainment" {
		t.Errorf("Category = %q", result.Category)
	}
}

func TestClassifyClassifierFailureRecordsNothing(t *testing.T) {
	cls := &fakeClassifier{err: classifier.ErrUnavailable}
	log := &fakeLog{}
	p := newPipeline(cls, &fakeEnricher{}, log)

	_, err := p.Classify(context.Background(), "p1", "c1", pipeline.Detection{Title: "Some Video Title"})
	if !errors.Is(err, classifier.ErrUnavailable) {
		t.Errorf("Classify() error = %v, want ErrUnavailable", err)
	}
	if len(log.appended()) != 0 {
		t.Error("entry recorded despite classification failure")
	}
}

func TestClassifyKeyUnavailableSkipsEnrichment(t *testing.T) {
	cls := &fakeClassifier{keyErr: credentials.ErrKeyUnavailable}
	enr := &fakeEnricher{comments: []string{"c1"}}
	log := &fakeLog{}
	p := newPipeline(cls, enr, log)

	_, err := p.Classify(context.Background(), "p1", "c1", pipeline.Detection{Title: "Some Video Title"})
	if !errors.Is(err, credentials.ErrKeyUnavailable) {
		t.Fatalf("Classify() error = %v, want ErrKeyUnavailable", err)
	}

	if got := enr.calls(); got != 0 {
		t.Errorf("enricher calls = %d, want 0", got)
	}
	if got := cls.calls(); got != 0 {
		t.Errorf("classifier calls = %d, want 0", got)
	}
	if len(log.appended()) != 0 {
		t.Error("entry recorded despite missing key")
	}
}

func TestSubmitDedup(t *testing.T) {
	cls := &fakeClassifier{resp: safeResponse(), called: make(chan struct{}, 2)}
	p := newPipeline(cls, &fakeEnricher{}, &fakeLog{})

	det := pipeline.Detection{Title: "Top 10 Craziest Fails"}

	accepted, err := p.Submit("p1", "c1", det)
	if err != nil || !accepted {
		t.Fatalf("first Submit() = %v, %v, want accepted", accepted, err)
	}

	accepted, err = p.Submit("p1", "c1", det)
	if err != nil {
		t.Fatalf("second Submit() error: %v", err)
	}
	if accepted {
		t.Error("second Submit() accepted a duplicate title")
	}

	select {
	case <-cls.called:
	case <-time.After(2 * time.Second):
		t.Fatal("classification pass never ran")
	}

	if got := cls.calls(); got != 1 {
		t.Errorf("classifier calls = %d, want 1", got)
	}
}

func TestSubmitDistinctTitlesProceed(t *testing.T) {
	cls := &fakeClassifier{resp: safeResponse(), called: make(chan struct{}, 2)}
	p := newPipeline(cls, &fakeEnricher{}, &fakeLog{})

	for _, title := range []string{"Top 10 Craziest Fails", "Minecraft Speedrun World Record"} {
		accepted, err := p.Submit("p1", "c1", pipeline.Detection{Title: title})
		if err != nil || !accepted {
			t.Fatalf("Submit(%q) = %v, %v, want accepted", title, accepted, err)
		}
	}

	for range 2 {
		select {
		case <-cls.called:
		case <-time.After(2 * time.Second):
			t.Fatal("classification pass never ran")
		}
	}
}

func TestSubmitSessionsAreIndependent(t *testing.T) {
	cls := &fakeClassifier{resp: safeResponse(), called: make(chan struct{}, 2)}
	p := newPipeline(cls, &fakeEnricher{}, &fakeLog{})

	det := pipeline.Detection{Title: "Top 10 Craziest Fails"}

	if accepted, _ := p.Submit("p1", "c1", det); !accepted {
		t.Fatal("first session rejected")
	}
	if accepted, _ := p.Submit("p1", "c2", det); !accepted {
		t.Error("same title for a different child should proceed")
	}
}

func TestSubmitRejectsInvalidTitles(t *testing.T) {
	cls := &fakeClassifier{resp: safeResponse()}
	p := newPipeline(cls, &fakeEnricher{}, &fakeLog{})

	titles := []string{"0:45", "live", "comments", "SingleWordButLong", "hi", ""}
	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			_, err := p.Submit("p1", "c1", pipeline.Detection{Title: title})
			if !errors.Is(err, pipeline.ErrInvalidTitle) {
				t.Errorf("Submit(%q) error = %v, want ErrInvalidTitle", title, err)
			}
		})
	}

	if got := cls.calls(); got != 0 {
		t.Errorf("classifier calls = %d, want 0", got)
	}
}

func TestValidTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Top 10 Craziest Fails", true},
		{"Minecraft Speedrun World Record", true},
		{"0:45", false},
		{"12:30 remaining", false},
		{"shorts", false},
		{"Subscriptions", false},
		{"OneWordOnly", false},
		{"tiny", false},
		{"  Top 10 Craziest Fails  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := pipeline.ValidTitle(tt.title); got != tt.want {
				t.Errorf("ValidTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
