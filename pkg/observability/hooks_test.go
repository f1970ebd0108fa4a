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

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopParseHooks{}.OnParseComplete(ctx, "requirements.txt", 3, 1, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "pypi:")
	c.OnCacheMiss(ctx, "pypi:")
	c.OnCacheSet(ctx, "pypi:", 1024)

	h := NoopHTTPHooks{}
	h.OnResponse(ctx, "GET", "pypi.org", "/pypi/requests/json", 200, time.Second)
	h.OnError(ctx, "GET", "pypi.org", "/pypi/requests/json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Parse().(NoopParseHooks); !ok {
		t.Error("Parse() should return NoopParseHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &countingHooks{}
	SetParseHooks(custom)
	SetCacheHooks(custom)
	SetHTTPHooks(nil)

	if Parse() != custom || Cache() != custom {
		t.Error("Set*Hooks should install custom hooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}

	Cache().OnCacheHit(context.Background(), "pypi:")
	Cache().OnCacheMiss(context.Background(), "pypi:")
	if custom.hits != 1 || custom.misses != 1 {
		t.Errorf("hits=%d misses=%d", custom.hits, custom.misses)
	}

	Reset()
	if _, ok := Parse().(NoopParseHooks); !ok {
		t.Error("Reset() should restore NoopParseHooks")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Register()

	ctx := context.Background()
	Parse().OnParseComplete(ctx, "requirements.txt", 4, 1, time.Millisecond)
	Cache().OnCacheMiss(ctx, "pypi:")
	HTTP().OnError(ctx, "GET", "pypi.org", "/pypi/x/json", errors.New("timeout"))

	out := buf.String()
	for _, want := range []string{"parsed", "source=requirements.txt", "requirements=4", "cache miss", "ns=pypi:", "http request failed", "err=timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type countingHooks struct {
	NoopParseHooks
	hits, misses int
}

func (c *countingHooks) OnCacheHit(context.Context, string)      { c.hits++ }
func (c *countingHooks) OnCacheMiss(context.Context, string)     { c.misses++ }
func (c *countingHooks) OnCacheSet(context.Context, string, int) {}
