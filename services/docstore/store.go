// Package docstore maps typed JSON documents to keys in a blob namespace.
// One generic Store serves every document family (colleges, SEO records,
// study-in-country pages); a Family descriptor supplies the key prefix, slug
// accessor, and validation for each.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/studybridge/consultancy-api/services/spaces"
)

const contentTypeJSON = "application/json"

// Blobs is the subset of the Spaces client the store needs. Get must return
// spaces.ErrObjectNotFound for missing keys.
type Blobs interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Family describes one document family: where its blobs live, how to read a
// document's slug, and how to validate it before writing.
type Family[T any] struct {
	// Prefix is the key namespace, e.g. "colleges". Must not contain "/".
	Prefix string

	// SlugOf extracts the document identifier used in the blob key.
	SlugOf func(T) string

	// Validate checks required fields before a write. Nil disables checks.
	Validate func(T) error
}

// Key derives the blob key for a slug. The mapping is deterministic and
// injective: distinct slugs never collide and the same slug always maps to
// the same key, which is what makes Put an idempotent overwrite.
func (f Family[T]) Key(slug string) string {
	return f.Prefix + "/" + slug + ".json"
}

// ManifestKey is the manifest blob for this family. Manifests live outside
// the document prefix so a prefix scan over documents never picks them up.
func (f Family[T]) ManifestKey() string {
	return "manifests/" + f.Prefix + ".json"
}

// Store is a blob-backed document store for one family.
type Store[T any] struct {
	blobs  Blobs
	family Family[T]
}

// New creates a Store for the given family.
func New[T any](blobs Blobs, family Family[T]) *Store[T] {
	return &Store[T]{blobs: blobs, family: family}
}

// Family returns the family descriptor the store was built with.
func (s *Store[T]) Family() Family[T] { return s.family }

// Get reads and decodes the document for slug. Returns ErrNotFound when the
// blob is absent.
func (s *Store[T]) Get(ctx context.Context, slug string) (T, error) {
	var zero T
	if err := validateSlug(slug); err != nil {
		return zero, err
	}

	key := s.family.Key(slug)
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, spaces.ErrObjectNotFound) {
			return zero, ErrNotFound
		}
		return zero, &StoreError{Op: "get", Key: key, Err: err}
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return zero, &DecodeError{Key: key, Err: err}
	}
	return doc, nil
}

// Exists checks for the document without fetching its body.
func (s *Store[T]) Exists(ctx context.Context, slug string) (bool, error) {
	if err := validateSlug(slug); err != nil {
		return false, err
	}
	key := s.family.Key(slug)
	ok, err := s.blobs.Exists(ctx, key)
	if err != nil {
		return false, &StoreError{Op: "head", Key: key, Err: err}
	}
	return ok, nil
}

// List returns every slug recorded in the family manifest, sorted. A missing
// manifest means an empty store, not an error.
func (s *Store[T]) List(ctx context.Context) ([]string, error) {
	return s.readManifest(ctx)
}

// ListDocuments decodes every document named by the manifest. Manifest
// entries whose backing blob is gone are skipped as stale; a later write
// repairs the index.
func (s *Store[T]) ListDocuments(ctx context.Context) ([]T, error) {
	slugs, err := s.readManifest(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]T, 0, len(slugs))
	for _, slug := range slugs {
		doc, err := s.Get(ctx, slug)
		if err != nil {
			if IsNotFound(err) {
				continue // stale manifest entry
			}
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Put validates, encodes, and writes the document, then adds its slug to the
// manifest. Full replace, no merge: calling Put twice with the same slug is
// equivalent to calling it once. The document blob is written before the
// manifest; a crash between the two leaves the document invisible to List
// until the next write or a manifest rebuild.
func (s *Store[T]) Put(ctx context.Context, doc T) error {
	slug := s.family.SlugOf(doc)
	if err := validateSlug(slug); err != nil {
		return err
	}
	if s.family.Validate != nil {
		if err := s.family.Validate(doc); err != nil {
			return &ValidationError{Err: err}
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return &ValidationError{Err: err}
	}

	key := s.family.Key(slug)
	if err := s.blobs.Put(ctx, key, data, contentTypeJSON); err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}

	return s.updateManifest(ctx, func(slugs []string) []string {
		for _, existing := range slugs {
			if existing == slug {
				return slugs
			}
		}
		return append(slugs, slug)
	})
}

// Delete removes the document blob and drops its slug from the manifest.
// Deleting an absent slug is not an error.
func (s *Store[T]) Delete(ctx context.Context, slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	key := s.family.Key(slug)
	if err := s.blobs.Delete(ctx, key); err != nil {
		if !errors.Is(err, spaces.ErrObjectNotFound) {
			return &StoreError{Op: "delete", Key: key, Err: err}
		}
	}

	return s.updateManifest(ctx, func(slugs []string) []string {
		kept := slugs[:0]
		for _, existing := range slugs {
			if existing != slug {
				kept = append(kept, existing)
			}
		}
		return kept
	})
}

// RebuildManifest scans the family prefix and rewrites the manifest from
// what is actually stored. This is the repair path for documents written
// while a manifest update failed.
func (s *Store[T]) RebuildManifest(ctx context.Context) ([]string, error) {
	prefix := s.family.Prefix + "/"
	keys, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, &StoreError{Op: "list", Key: prefix, Err: err}
	}

	slugs := make([]string, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		slug := strings.TrimSuffix(strings.TrimPrefix(key, prefix), ".json")
		if slug == "" {
			continue
		}
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	if err := s.writeManifest(ctx, slugs); err != nil {
		return nil, err
	}
	return slugs, nil
}

func (s *Store[T]) readManifest(ctx context.Context) ([]string, error) {
	key := s.family.ManifestKey()
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, spaces.ErrObjectNotFound) {
			return []string{}, nil
		}
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}

	var slugs []string
	if err := json.Unmarshal(data, &slugs); err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	sort.Strings(slugs)
	return slugs, nil
}

func (s *Store[T]) writeManifest(ctx context.Context, slugs []string) error {
	key := s.family.ManifestKey()
	data, err := json.Marshal(slugs)
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	if err := s.blobs.Put(ctx, key, data, contentTypeJSON); err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	return nil
}

func (s *Store[T]) updateManifest(ctx context.Context, mutate func([]string) []string) error {
	slugs, err := s.readManifest(ctx)
	if err != nil {
		return err
	}
	updated := mutate(slugs)
	sort.Strings(updated)
	return s.writeManifest(ctx, updated)
}

func validateSlug(slug string) error {
	switch {
	case slug == "":
		return &ValidationError{Err: fmt.Errorf("slug is required")}
	case strings.HasPrefix(slug, "/") || strings.HasSuffix(slug, "/"):
		return &ValidationError{Err: fmt.Errorf("slug must not start or end with '/'")}
	case strings.Contains(slug, ".."):
		return &ValidationError{Err: fmt.Errorf("slug must not contain '..'")}
	case strings.ContainsAny(slug, " \t\n"):
		return &ValidationError{Err: fmt.Errorf("slug must not contain whitespace")}
	}
	return nil
}
