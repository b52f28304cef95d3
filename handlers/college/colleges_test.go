package college

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/studybridge/consultancy-api/model"
	"github.com/studybridge/consultancy-api/services/docstore"
	"github.com/studybridge/consultancy-api/services/spaces"
	"github.com/studybridge/consultancy-api/utils/middleware"
	"github.com/studybridge/consultancy-api/utils/validation"
)

const testToken = "test-admin-token"

type fakeBlobs struct {
	objects map[string][]byte
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}}
}

func (f *fakeBlobs) Put(_ context.Context, key string, data []byte, _ string) error {
	f.objects[key] = data
	return nil
}

func (f *fakeBlobs) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, spaces.ErrObjectNotFound
	}
	return data, nil
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobs) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeBlobs) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func newTestApp(static map[string]model.College) (*fiber.App, *fakeBlobs) {
	blobs := newFakeBlobs()
	v := validation.NewValidator()

	store := docstore.NewCached(
		docstore.New[model.College](blobs, docstore.Family[model.College]{
			Prefix:   "colleges",
			SlugOf:   func(doc model.College) string { return doc.Slug },
			Validate: func(doc model.College) error { return v.ValidateStruct(doc) },
		}), nil, 0)

	handler := NewCollegeHandler(store, docstore.NewStaticSource(static))
	guard := middleware.NewAccessGuard(testToken)

	app := fiber.New()
	group := app.Group("/api/v1/colleges")
	group.Get("/", handler.Get)
	group.Post("/", guard.Required(), handler.Upsert)
	group.Delete("/", guard.Required(), handler.Delete)
	return app, blobs
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body []byte) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, env
}

func TestCollegePublishScenario(t *testing.T) {
	app, _ := newTestApp(nil)

	body := []byte(`{"slug":"mit-2025","name":"MIT","country":"USA","city":"Cambridge"}`)
	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/colleges/", testToken, body)
	if status != fiber.StatusOK {
		t.Fatalf("publish status = %d, want 200", status)
	}

	status, env := doJSON(t, app, fiber.MethodGet, "/api/v1/colleges/?slug=mit-2025", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("get status = %d, want 200", status)
	}
	var doc model.College
	if err := json.Unmarshal(env.Data, &doc); err != nil {
		t.Fatalf("unmarshal college: %v", err)
	}
	if doc.Name != "MIT" || doc.Country != "USA" {
		t.Errorf("doc = %+v", doc)
	}

	status, env = doJSON(t, app, fiber.MethodGet, "/api/v1/colleges/", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("list status = %d, want 200", status)
	}
	var docs []model.College
	if err := json.Unmarshal(env.Data, &docs); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(docs) != 1 || docs[0].Slug != "mit-2025" {
		t.Errorf("list = %+v, want the published college", docs)
	}
}

func TestCollegeAuthGate(t *testing.T) {
	app, blobs := newTestApp(nil)
	body := []byte(`{"slug":"mit-2025","name":"MIT","country":"USA"}`)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"wrong token", "not-the-secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, app, fiber.MethodPost, "/api/v1/colleges/", tt.token, body)
			if status != fiber.StatusUnauthorized {
				t.Errorf("status = %d, want 401", status)
			}
			if env.Error == nil || env.Error.Code != "UNAUTHORIZED" {
				t.Errorf("error = %+v, want UNAUTHORIZED", env.Error)
			}
		})
	}

	if len(blobs.objects) != 0 {
		t.Errorf("denied request wrote %d object(s)", len(blobs.objects))
	}

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/colleges/", testToken, body)
	if status != fiber.StatusOK {
		t.Errorf("same request with the correct token = %d, want 200", status)
	}
}

func TestCollegeValidationRejected(t *testing.T) {
	app, blobs := newTestApp(nil)

	// Missing required name and country.
	status, env := doJSON(t, app, fiber.MethodPost, "/api/v1/colleges/", testToken,
		[]byte(`{"slug":"incomplete"}`))
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
	if len(blobs.objects) != 0 {
		t.Errorf("rejected write stored %d object(s)", len(blobs.objects))
	}
}

func TestCollegeDelete(t *testing.T) {
	app, _ := newTestApp(nil)

	status, _ := doJSON(t, app, fiber.MethodDelete, "/api/v1/colleges/", testToken, nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("delete without slug = %d, want 400", status)
	}

	doJSON(t, app, fiber.MethodPost, "/api/v1/colleges/", testToken,
		[]byte(`{"slug":"gone","name":"Gone U","country":"UK"}`))

	// Idempotent: both the first and repeat delete succeed.
	for i := 0; i < 2; i++ {
		status, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/colleges/?slug=gone", testToken, nil)
		if status != fiber.StatusOK {
			t.Errorf("delete #%d = %d, want 200", i+1, status)
		}
	}

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/colleges/?slug=gone", "", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", status)
	}
}

func TestCollegeFallbackServing(t *testing.T) {
	app, _ := newTestApp(map[string]model.College{
		"seeded": {Slug: "seeded", Name: "Seeded College", Country: "Canada"},
	})

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/colleges/?slug=seeded", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 from fallback", resp.StatusCode)
	}
	cc := resp.Header.Get(fiber.HeaderCacheControl)
	if !strings.Contains(cc, "must-revalidate") {
		t.Errorf("Cache-Control = %q, want short-lived fallback policy", cc)
	}
}

func TestCollegePrimaryWinsOverFallback(t *testing.T) {
	app, _ := newTestApp(map[string]model.College{
		"dup": {Slug: "dup", Name: "Stale Fallback", Country: "UK"},
	})

	doJSON(t, app, fiber.MethodPost, "/api/v1/colleges/", testToken,
		[]byte(`{"slug":"dup","name":"Fresh Primary","country":"UK"}`))

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/colleges/?slug=dup", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var doc model.College
	if err := json.Unmarshal(env.Data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Name != "Fresh Primary" {
		t.Errorf("name = %q, want the primary's version", doc.Name)
	}

	cc := resp.Header.Get(fiber.HeaderCacheControl)
	if !strings.Contains(cc, "s-maxage") {
		t.Errorf("Cache-Control = %q, want long-lived primary policy", cc)
	}
}
