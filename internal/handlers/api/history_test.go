package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"wordbubble/internal/db"
	"wordbubble/internal/keywords"
	"wordbubble/internal/models"
)

type fakeHistory struct {
	analyses  []models.Analysis
	err       error
	gotFilter models.AnalysisFilter
}

func (f *fakeHistory) ListAnalyses(_ context.Context, filter models.AnalysisFilter) ([]models.Analysis, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.analyses, nil
}

func (f *fakeHistory) GetAnalysis(_ context.Context, id uuid.UUID) (*models.Analysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.analyses {
		if f.analyses[i].ID == id {
			return &f.analyses[i], nil
		}
	}
	return nil, db.ErrAnalysisNotFound
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func newHistoryApp(store HistoryStore) *fiber.App {
	h := NewHistoryHandler(store)
	app := fiber.New()
	app.Get("/api/analyses", h.List)
	app.Get("/api/analyses/:id", h.Get)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (int, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("app.Test(%s): %v", target, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s: %v", target, err)
	}
	return resp.StatusCode, env
}

func sampleAnalysis() models.Analysis {
	return models.Analysis{
		ID:           uuid.New(),
		Topic:        "Go",
		Source:       models.SourceRetrieved,
		Keywords:     []keywords.Keyword{{Text: "goroutine", Size: 640}},
		KeywordCount: 1,
		TokenCount:   3,
		CreatedAt:    time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHistoryList(t *testing.T) {
	store := &fakeHistory{analyses: []models.Analysis{sampleAnalysis()}}
	app := newHistoryApp(store)

	status, env := doGet(t, app, "/api/analyses?topic=%20go%20&source=retrieved&limit=5")
	if status != http.StatusOK || env.Status != "ok" {
		t.Fatalf("status = %d/%q, want 200/ok", status, env.Status)
	}

	want := models.AnalysisFilter{Topic: "go", Source: "retrieved", Limit: 5}
	if store.gotFilter != want {
		t.Errorf("filter = %+v, want %+v", store.gotFilter, want)
	}

	var data models.AnalysisListResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Count != 1 || data.Analyses[0].Keywords[0].Text != "goroutine" {
		t.Errorf("data = %+v", data)
	}
}

func TestHistoryListBadRequests(t *testing.T) {
	app := newHistoryApp(&fakeHistory{})

	tests := []struct {
		name   string
		target string
	}{
		{"unknown source", "/api/analyses?source=cache"},
		{"non-numeric limit", "/api/analyses?limit=ten"},
		{"zero limit", "/api/analyses?limit=0"},
		{"negative limit", "/api/analyses?limit=-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doGet(t, app, tt.target)
			if status != http.StatusBadRequest || env.Status != "error" {
				t.Errorf("GET %s = %d/%q, want 400/error", tt.target, status, env.Status)
			}
		})
	}
}

func TestHistoryListStoreError(t *testing.T) {
	app := newHistoryApp(&fakeHistory{err: errors.New("boom")})

	status, env := doGet(t, app, "/api/analyses")
	if status != http.StatusInternalServerError || env.Error != "failed to fetch analyses" {
		t.Errorf("got %d/%q", status, env.Error)
	}
}

func TestHistoryGet(t *testing.T) {
	a := sampleAnalysis()
	app := newHistoryApp(&fakeHistory{analyses: []models.Analysis{a}})

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"found", "/api/analyses/" + a.ID.String(), http.StatusOK},
		{"unknown id", "/api/analyses/" + uuid.NewString(), http.StatusNotFound},
		{"malformed id", "/api/analyses/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doGet(t, app, tt.target)
			if status != tt.wantStatus {
				t.Errorf("GET %s = %d, want %d (error %q)", tt.target, status, tt.wantStatus, env.Error)
			}
			if status == http.StatusOK {
				var got models.Analysis
				if err := json.Unmarshal(env.Data, &got); err != nil {
					t.Fatalf("decode data: %v", err)
				}
				if got.ID != a.ID || got.Topic != "Go" {
					t.Errorf("analysis = %+v", got)
				}
			}
		})
	}
}

func TestHistoryDisabled(t *testing.T) {
	app := newHistoryApp(nil)

	for _, target := range []string{"/api/analyses", "/api/analyses/" + uuid.NewString()} {
		status, env := doGet(t, app, target)
		if status != http.StatusServiceUnavailable || env.Status != "error" {
			t.Errorf("GET %s = %d/%q, want 503/error", target, status, env.Status)
		}
	}
}
