package docstore

import (
	"context"
	"sort"

	"github.com/gofiber/fiber/v2/log"
)

// Origin identifies which tier served a read. Handlers use it to pick cache
// headers: primary results are long-lived, fallback results short-lived.
type Origin int

const (
	OriginPrimary Origin = iota
	OriginFallback
)

// Source is a read-only view of a document family. Store satisfies it; so
// does StaticSource.
type Source[T any] interface {
	Get(ctx context.Context, slug string) (T, error)
	List(ctx context.Context) ([]string, error)
}

// StaticSource serves a fixed in-memory set of documents. It backs the
// fallback tier with bundled seed records so public pages stay up when the
// bucket is cold or unreachable.
type StaticSource[T any] struct {
	docs map[string]T
}

// NewStaticSource wraps the given records. The map is not copied; callers
// must not mutate it afterward.
func NewStaticSource[T any](docs map[string]T) *StaticSource[T] {
	if docs == nil {
		docs = map[string]T{}
	}
	return &StaticSource[T]{docs: docs}
}

func (s *StaticSource[T]) Get(_ context.Context, slug string) (T, error) {
	doc, ok := s.docs[slug]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return doc, nil
}

// Documents returns every static record, ordered by slug.
func (s *StaticSource[T]) Documents() []T {
	slugs := make([]string, 0, len(s.docs))
	for slug := range s.docs {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	docs := make([]T, 0, len(slugs))
	for _, slug := range slugs {
		docs = append(docs, s.docs[slug])
	}
	return docs
}

func (s *StaticSource[T]) List(_ context.Context) ([]string, error) {
	slugs := make([]string, 0, len(s.docs))
	for slug := range s.docs {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Fallback composes a primary source with a secondary static tier. The
// primary wins unconditionally when it has the document; the secondary is
// consulted on primary miss or primary error.
type Fallback[T any] struct {
	primary   Source[T]
	secondary Source[T]
}

// NewFallback builds the fallback decorator.
func NewFallback[T any](primary, secondary Source[T]) *Fallback[T] {
	return &Fallback[T]{primary: primary, secondary: secondary}
}

// Get resolves slug through the tiers and reports which one answered.
// When the primary errors and the secondary has no record either, the
// primary's error propagates; a miss in both tiers is ErrNotFound.
func (f *Fallback[T]) Get(ctx context.Context, slug string) (T, Origin, error) {
	doc, err := f.primary.Get(ctx, slug)
	if err == nil {
		return doc, OriginPrimary, nil
	}

	primaryErr := err
	if !IsNotFound(primaryErr) {
		log.Warnf("primary read failed for %q, trying fallback: %v", slug, primaryErr)
	}

	doc, err = f.secondary.Get(ctx, slug)
	if err == nil {
		return doc, OriginFallback, nil
	}

	var zero T
	if IsNotFound(primaryErr) {
		return zero, OriginPrimary, ErrNotFound
	}
	return zero, OriginPrimary, primaryErr
}

// List returns the primary listing, falling back to the static tier only
// when the primary listing fails outright.
func (f *Fallback[T]) List(ctx context.Context) ([]string, Origin, error) {
	slugs, err := f.primary.List(ctx)
	if err == nil {
		return slugs, OriginPrimary, nil
	}
	log.Warnf("primary list failed, trying fallback: %v", err)

	slugs, ferr := f.secondary.List(ctx)
	if ferr != nil {
		return nil, OriginPrimary, err
	}
	return slugs, OriginFallback, nil
}
