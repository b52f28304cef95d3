package studyin

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

func newTestApp() *fiber.App {
	blobs := newFakeBlobs()
	v := validation.NewValidator()

	store := docstore.NewCached(
		docstore.New[model.StudyInCountryData](blobs, docstore.Family[model.StudyInCountryData]{
			Prefix:   "study-in-country",
			SlugOf:   func(doc model.StudyInCountryData) string { return doc.Slug },
			Validate: func(doc model.StudyInCountryData) error { return v.ValidateStruct(doc) },
		}), nil, 0)

	handler := NewStudyInHandler(store, docstore.NewStaticSource[model.StudyInCountryData](nil))
	guard := middleware.NewAccessGuard(testToken)

	app := fiber.New()
	group := app.Group("/api/v1/study-in")
	group.Get("/", handler.Get)
	group.Post("/", guard.Required(), handler.Upsert)
	group.Delete("/", guard.Required(), handler.Delete)
	app.Get("/api/v1/admin/study-in", guard.Required(), handler.AdminList)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func request(t *testing.T, app *fiber.App, method, target, token string, body []byte) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
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

func publish(t *testing.T, app *fiber.App, slug, country string, active bool) {
	t.Helper()
	doc := model.StudyInCountryData{Slug: slug, Country: country, IsActive: active}
	body, _ := json.Marshal(doc)
	status, _ := request(t, app, fiber.MethodPost, "/api/v1/study-in/", testToken, body)
	if status != fiber.StatusOK {
		t.Fatalf("publish %s: status %d", slug, status)
	}
}

func TestInactivePageHiddenFromPublic(t *testing.T) {
	app := newTestApp()
	publish(t, app, "study-in-australia", "Australia", true)
	publish(t, app, "study-in-germany", "Germany", false)

	// Public single read: inactive behaves exactly like absent.
	status, _ := request(t, app, fiber.MethodGet, "/api/v1/study-in/?slug=study-in-germany", "", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("public get of inactive page = %d, want 404", status)
	}
	status, _ = request(t, app, fiber.MethodGet, "/api/v1/study-in/?slug=study-in-australia", "", nil)
	if status != fiber.StatusOK {
		t.Errorf("public get of active page = %d, want 200", status)
	}

	// Public listing excludes the draft.
	status, env := request(t, app, fiber.MethodGet, "/api/v1/study-in/", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("public list = %d", status)
	}
	var publicDocs []model.StudyInCountryData
	if err := json.Unmarshal(env.Data, &publicDocs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(publicDocs) != 1 || publicDocs[0].Slug != "study-in-australia" {
		t.Errorf("public list = %+v, want only the active page", publicDocs)
	}

	// Admin listing still shows the draft.
	status, env = request(t, app, fiber.MethodGet, "/api/v1/admin/study-in", testToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("admin list = %d", status)
	}
	var adminDocs []model.StudyInCountryData
	if err := json.Unmarshal(env.Data, &adminDocs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(adminDocs) != 2 {
		t.Errorf("admin list has %d pages, want 2 (drafts included)", len(adminDocs))
	}
}

func TestStudyInValidationAndDelete(t *testing.T) {
	app := newTestApp()

	// Missing country.
	status, _ := request(t, app, fiber.MethodPost, "/api/v1/study-in/", testToken,
		[]byte(`{"slug":"no-country"}`))
	if status != fiber.StatusBadRequest {
		t.Errorf("invalid publish = %d, want 400", status)
	}

	publish(t, app, "study-in-france", "France", true)
	status, _ = request(t, app, fiber.MethodDelete, "/api/v1/study-in/?slug=study-in-france", testToken, nil)
	if status != fiber.StatusOK {
		t.Errorf("delete = %d, want 200", status)
	}
	status, _ = request(t, app, fiber.MethodGet, "/api/v1/study-in/?slug=study-in-france", "", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", status)
	}
}
