package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type countingCache struct {
	Noop
	hits int
}

func (c *countingCache) OnCacheHit(context.Context, string) { c.hits++ }

// cacheOnly implements CacheHooks and nothing else.
type cacheOnly struct{ c *countingCache }

func (o cacheOnly) OnCacheHit(ctx context.Context, kind string) { o.c.OnCacheHit(ctx, kind) }
func (o cacheOnly) OnCacheMiss(context.Context, string)         {}
func (o cacheOnly) OnCacheSet(context.Context, string, int)     {}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(Noop); !ok {
		t.Errorf("Pipeline() = %T, want Noop", Pipeline())
	}
	if _, ok := Cache().(Noop); !ok {
		t.Errorf("Cache() = %T, want Noop", Cache())
	}
	if _, ok := HTTP().(Noop); !ok {
		t.Errorf("HTTP() = %T, want Noop", HTTP())
	}
}

func TestInstall(t *testing.T) {
	t.Cleanup(Reset)

	tests := []struct {
		name   string
		hooks  any
		groups int
	}{
		{"nil", nil, 0},
		{"unrelated value", "not hooks", 0},
		{"cache only", cacheOnly{&countingCache{}}, 1},
		{"every group", &countingCache{}, 3},
		{"log hooks", NewLogHooks(log.New(&bytes.Buffer{})), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			if got := Install(tt.hooks); got != tt.groups {
				t.Errorf("Install took over %d groups, want %d", got, tt.groups)
			}
		})
	}
}

func TestInstallRoutesEvents(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	c := &countingCache{}
	Install(cacheOnly{c})
	Cache().OnCacheHit(context.Background(), "counts")
	Cache().OnCacheHit(context.Background(), "ontology")

	if c.hits != 2 {
		t.Errorf("hits = %d, want 2", c.hits)
	}
	if _, ok := Pipeline().(Noop); !ok {
		t.Error("installing cache hooks should leave pipeline hooks alone")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnLoadComplete(ctx, "efo.obo", 12, time.Millisecond, nil)
	h.OnCountComplete(ctx, "csv", 0, time.Millisecond, errors.New("bad line"))
	h.OnCacheHit(ctx, "counts")
	h.OnResponse(ctx, "GET", "www.ebi.ac.uk", "/spot/zooma", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"ontology loaded", "classes=12", "counts initialized failed", "bad line", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnBuildComplete(context.Background(), 5, time.Millisecond, nil)
	h.OnCacheMiss(context.Background(), "http")
	if buf.Len() != 0 {
		t.Errorf("successful events should log at debug level, got %q", buf.String())
	}

	h.OnError(context.Background(), "GET", "example.org", "/", errors.New("refused"))
	if !strings.Contains(buf.String(), "refused") {
		t.Errorf("transport errors should log at warn level, got %q", buf.String())
	}
}
