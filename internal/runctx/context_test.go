package runctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRunIDRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRunID(context.Background(), id)

	got, ok := RunIDFromContext(ctx)
	if !ok {
		t.Fatalf("expected a run ID on the context")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
	if RunIDString(ctx) != id.String() {
		t.Fatalf("expected the rendered run ID, got %s", RunIDString(ctx))
	}
}

func TestRunIDMissing(t *testing.T) {
	if _, ok := RunIDFromContext(context.Background()); ok {
		t.Fatalf("expected no run ID on a bare context")
	}
	if RunIDString(context.Background()) != "-" {
		t.Fatalf("expected placeholder for a bare context")
	}
}

func TestRunIDNilUUID(t *testing.T) {
	ctx := WithRunID(context.Background(), uuid.Nil)
	if _, ok := RunIDFromContext(ctx); ok {
		t.Fatalf("expected the nil uuid to be treated as absent")
	}
}
