package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/mkoval24/printflow/pkg/ctxmeta"
)

func TestWithRequestID_PutAndGet(t *testing.T) {
	parent := context.Background()

	ctx := ctxmeta.WithRequestID(parent, "req-123")
	got, ok := ctxmeta.RequestIDFromContext(ctx)
	if !ok || got != "req-123" {
		t.Fatalf("want ok=true, id=req-123; got ok=%v id=%q", ok, got)
	}

	// Родитель не должен содержать request_id
	if _, parentOk := ctxmeta.RequestIDFromContext(parent); parentOk {
		t.Fatalf("parent context must not contain request_id")
	}
}

func TestWithRequestID_EmptyID_NoChange(t *testing.T) {
	parent := context.Background()
	ctx := ctxmeta.WithRequestID(parent, "")
	if ctx != parent {
		t.Fatalf("WithRequestID with empty id must return the same ctx")
	}
}

func TestWithRunID_PutAndGet(t *testing.T) {
	ctx := ctxmeta.WithRunID(context.Background(), "run-42")
	got, ok := ctxmeta.RunIDFromContext(ctx)
	if !ok || got != "run-42" {
		t.Fatalf("want ok=true, id=run-42; got ok=%v id=%q", ok, got)
	}

	// run_id и request_id не пересекаются
	if _, reqOk := ctxmeta.RequestIDFromContext(ctx); reqOk {
		t.Fatalf("run_id must not leak into request_id")
	}
}

func TestFromContext_Missing(t *testing.T) {
	if _, ok := ctxmeta.RunIDFromContext(context.Background()); ok {
		t.Fatal("empty context must not contain run_id")
	}
	if _, ok := ctxmeta.RequestIDFromContext(nil); ok { //nolint:staticcheck // намеренно nil
		t.Fatal("nil context must not contain request_id")
	}
}
