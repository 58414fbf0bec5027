package counter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	owlerrors "github.com/tburdett/owl2json/pkg/errors"
	"github.com/tburdett/owl2json/pkg/hierarchy"
)

type fakeSource struct {
	counts map[string]int
	err    error
	calls  atomic.Int32
}

func (f *fakeSource) Backing() string   { return "fake" }
func (f *fakeSource) Qualifier() string { return "test" }

func (f *fakeSource) LookupCounts(context.Context) (map[string]int, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]int, len(f.counts))
	for k, v := range f.counts {
		out[k] = v
	}
	return out, nil
}

func bufferLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), &buf
}

func sized(uri string, size int, children ...*hierarchy.Node) *hierarchy.Node {
	return &hierarchy.Node{URI: uri, Name: uri, Size: size, Children: children}
}

func TestTreeSize(t *testing.T) {
	var c TreeSize

	if got := c.Count(sized("leaf", 0)); got != 1 {
		t.Errorf("leaf = %d, want 1", got)
	}
	parent := sized("p", 0, sized("a", 2), sized("b", 3))
	if got := c.Count(parent); got != 5 {
		t.Errorf("parent = %d, want 5", got)
	}
}

func TestLookupCount(t *testing.T) {
	src := &fakeSource{counts: map[string]int{"p": 4, "a": 2}}
	l, err := NewLookup(context.Background(), src, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		node *hierarchy.Node
		want int
	}{
		{"counted leaf", sized("a", 0), 2},
		{"uncounted leaf", sized("zzz", 0), 0},
		{"own plus children", sized("p", 0, sized("a", 2), sized("b", 5)), 11},
		{"uncounted parent", sized("q", 0, sized("a", 2)), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Count(tt.node); got != tt.want {
				t.Errorf("Count = %d, want %d", got, tt.want)
			}
		})
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
}

func TestLookupInitOnce(t *testing.T) {
	logger, buf := bufferLogger()
	src := &fakeSource{counts: map[string]int{"a": 1}}
	ctx := context.Background()

	l, err := NewLookup(ctx, src, logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Init(ctx); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if err := l.Init(ctx); err != nil {
		t.Fatalf("third Init: %v", err)
	}

	if n := src.calls.Load(); n != 1 {
		t.Errorf("source queried %d times, want 1", n)
	}
	if got := strings.Count(buf.String(), "not reloading"); got != 2 {
		t.Errorf("expected 2 reload warnings, got %d:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "acquired counts") {
		t.Errorf("missing load summary:\n%s", buf.String())
	}
}

func TestLookupInitConcurrent(t *testing.T) {
	src := &fakeSource{counts: map[string]int{"a": 1}}
	l := &Lookup{src: src, logger: log.New(&bytes.Buffer{})}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Init(context.Background())
		}()
	}
	wg.Wait()

	if n := src.calls.Load(); n != 1 {
		t.Errorf("source queried %d times, want 1", n)
	}
	if got := l.Count(sized("a", 0)); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestLookupSourceFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	_, err := NewLookup(context.Background(), src, log.New(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("expected error")
	}
	if !owlerrors.Is(err, owlerrors.ErrCodeCountsUnavailable) {
		t.Errorf("error code = %q, want COUNTS_UNAVAILABLE", owlerrors.GetCode(err))
	}
	if !errors.Is(err, src.err) {
		t.Error("cause should be preserved")
	}
}

func TestLookupInitAfterFailure(t *testing.T) {
	logger, buf := bufferLogger()
	src := &fakeSource{err: errors.New("connection refused")}
	l := &Lookup{src: src, logger: logger}
	ctx := context.Background()

	first := l.Init(ctx)
	if first == nil {
		t.Fatal("expected error")
	}
	if err := l.Init(ctx); err != first {
		t.Errorf("second Init = %v, want the first error %v", err, first)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source queried %d times, want 1", n)
	}
	if strings.Contains(buf.String(), "already loaded") {
		t.Errorf("failed load reported as loaded:\n%s", buf.String())
	}
}

func TestLookupWithBuild(t *testing.T) {
	src := &graph{
		children: map[string][]string{
			"animal": {"bird", "cat"},
			"bird":   {"owl", "wren"},
			"cat":    nil,
			"owl":    nil,
			"wren":   nil,
		},
	}
	counts := &fakeSource{counts: map[string]int{"owl": 10, "wren": 5, "cat": 3, "bird": 1}}
	l, err := NewLookup(context.Background(), counts, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}

	opts := hierarchy.DefaultOptions()
	opts.Logger = log.New(&bytes.Buffer{})
	root, err := hierarchy.Build(src, l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if root.Size != 19 {
		t.Errorf("root size = %d, want 19", root.Size)
	}
	bird, _ := root.Child("bird")
	if bird == nil || bird.Size != 16 {
		t.Errorf("bird = %+v, want size 16", bird)
	}
}

type graph struct {
	children map[string][]string
}

func (g *graph) OntologyIRI() string { return "http://example.org/animals" }

func (g *graph) ClassLabels() map[string]string {
	labels := make(map[string]string, len(g.children))
	for k := range g.children {
		labels[k] = k
	}
	return labels
}

func (g *graph) ClassChildren() map[string][]string { return g.children }
