package docstore

import (
	"context"
	"errors"
	"testing"
)

// erroringSource simulates a primary tier whose blob store is down.
type erroringSource[T any] struct{}

func (erroringSource[T]) Get(context.Context, string) (T, error) {
	var zero T
	return zero, &StoreError{Op: "get", Key: "any", Err: errors.New("bucket unavailable")}
}

func (erroringSource[T]) List(context.Context) ([]string, error) {
	return nil, &StoreError{Op: "get", Key: "manifest", Err: errors.New("bucket unavailable")}
}

func TestFallbackPrecedence(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobs()
	primary := New(blobs, pageFamily())
	if err := primary.Put(ctx, page{Slug: "a", Title: "primary version"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	secondary := NewStaticSource(map[string]page{
		"a": {Slug: "a", Title: "fallback version"},
	})
	fb := NewFallback[page](primary, secondary)

	doc, origin, err := fb.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if origin != OriginPrimary {
		t.Errorf("origin = %v, want primary", origin)
	}
	if doc.Title != "primary version" {
		t.Errorf("title = %q, want the primary's version", doc.Title)
	}
}

func TestFallbackServesOnPrimaryMiss(t *testing.T) {
	ctx := context.Background()
	primary := New(newFakeBlobs(), pageFamily())
	secondary := NewStaticSource(map[string]page{
		"static-only": {Slug: "static-only", Title: "from fallback"},
	})
	fb := NewFallback[page](primary, secondary)

	doc, origin, err := fb.Get(ctx, "static-only")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if origin != OriginFallback {
		t.Errorf("origin = %v, want fallback", origin)
	}
	if doc.Title != "from fallback" {
		t.Errorf("title = %q", doc.Title)
	}
}

func TestFallbackServesOnPrimaryError(t *testing.T) {
	ctx := context.Background()
	secondary := NewStaticSource(map[string]page{
		"a": {Slug: "a", Title: "stale but available"},
	})
	fb := NewFallback[page](erroringSource[page]{}, secondary)

	doc, origin, err := fb.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get with broken primary: %v", err)
	}
	if origin != OriginFallback {
		t.Errorf("origin = %v, want fallback", origin)
	}
	if doc.Title != "stale but available" {
		t.Errorf("title = %q", doc.Title)
	}
}

func TestFallbackBothMissIsNotFound(t *testing.T) {
	ctx := context.Background()
	fb := NewFallback[page](New(newFakeBlobs(), pageFamily()), NewStaticSource[page](nil))

	_, _, err := fb.Get(ctx, "nowhere")
	if !IsNotFound(err) {
		t.Errorf("get = %v, want ErrNotFound", err)
	}
}

func TestFallbackPrimaryErrorSecondaryMissPropagates(t *testing.T) {
	ctx := context.Background()
	fb := NewFallback[page](erroringSource[page]{}, NewStaticSource[page](nil))

	_, _, err := fb.Get(ctx, "nowhere")
	var se *StoreError
	if !errors.As(err, &se) {
		t.Errorf("get = %v, want the primary's StoreError", err)
	}
}

func TestFallbackList(t *testing.T) {
	ctx := context.Background()
	secondary := NewStaticSource(map[string]page{
		"b": {Slug: "b"},
		"a": {Slug: "a"},
	})
	fb := NewFallback[page](erroringSource[page]{}, secondary)

	slugs, origin, err := fb.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if origin != OriginFallback {
		t.Errorf("origin = %v, want fallback", origin)
	}
	if len(slugs) != 2 || slugs[0] != "a" || slugs[1] != "b" {
		t.Errorf("slugs = %v, want sorted [a b]", slugs)
	}
}

func TestStaticSourceDocumentsOrdered(t *testing.T) {
	source := NewStaticSource(map[string]page{
		"c": {Slug: "c"},
		"a": {Slug: "a"},
		"b": {Slug: "b"},
	})

	docs := source.Documents()
	if len(docs) != 3 {
		t.Fatalf("documents = %d, want 3", len(docs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if docs[i].Slug != want {
			t.Errorf("docs[%d].Slug = %q, want %q", i, docs[i].Slug, want)
		}
	}
}
