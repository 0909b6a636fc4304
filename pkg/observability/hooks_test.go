package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, 128)
	p.OnParseComplete(ctx, 3, time.Millisecond, nil)
	p.OnBuildStart(ctx, 3)
	p.OnBuildComplete(ctx, 4, 12, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact:svg")
	c.OnCacheMiss(ctx, "artifact:qmk")
	c.OnCacheSet(ctx, "artifact:svg", 1024)

	NoopServerHooks{}.OnRequest(ctx, "POST", "/api/v1/format", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	p := &recordingHooks{}
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetServerHooks(p)
	if Pipeline() != p || Cache() != p || Server() != p {
		t.Fatal("Set*Hooks should register custom hooks")
	}

	SetPipelineHooks(nil)
	if Pipeline() != p {
		t.Error("SetPipelineHooks(nil) should keep current hooks")
	}

	ctx := context.Background()
	Pipeline().OnParseStart(ctx, 10)
	Cache().OnCacheHit(ctx, "artifact:svg")
	Server().OnRequest(ctx, "GET", "/healthz", 200, time.Millisecond)
	if p.parses != 1 || p.hits != 1 || p.requests != 1 {
		t.Errorf("recorded parses=%d hits=%d requests=%d, want 1 each", p.parses, p.hits, p.requests)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore NoopPipelineHooks")
	}
}

type recordingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	parses, hits, requests int
}

func (r *recordingHooks) OnParseStart(context.Context, int) {
	r.parses++
}

func (r *recordingHooks) OnCacheHit(context.Context, string) {
	r.hits++
}

func (r *recordingHooks) OnRequest(context.Context, string, string, int, time.Duration) {
	r.requests++
}
