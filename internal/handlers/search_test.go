package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"taxonomy-browser/internal/breadcrumb"
	"taxonomy-browser/internal/ingest"
	"taxonomy-browser/internal/service"
	"taxonomy-browser/internal/service/mocks"
	"taxonomy-browser/internal/storage"
	storagemocks "taxonomy-browser/internal/storage/mocks"
	"taxonomy-browser/internal/taxonomy"
)

func TestSearchHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	browser := mocks.NewMockBrowser(ctrl)
	browser.EXPECT().
		Search(gomock.Any(), service.SearchRequest{Query: "fern", Limit: 3}).
		Return(service.SearchResponse{
			Elements:  []taxonomy.Node{leaf("c2", "P")},
			Ancestors: []taxonomy.Node{leaf("P", "R")},
		}, nil)

	handler := NewSearchHandler(browser)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?query=fern&limit=3", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, http.StatusOK)
	}
	var resp struct {
		Elements  []map[string]any `json:"elements"`
		Ancestors []map[string]any `json:"ancestors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Elements) != 1 || resp.Elements[0]["id"] != "c2" {
		t.Errorf("elements = %v", resp.Elements)
	}
	if len(resp.Ancestors) != 1 || resp.Ancestors[0]["id"] != "P" {
		t.Errorf("ancestors = %v", resp.Ancestors)
	}
}

func TestSearchHandler_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		target     string
		mockSetup  func(*mocks.MockBrowser)
		wantStatus int
	}{
		{
			name:       "invalid limit",
			target:     "/api/search?query=a&limit=x",
			mockSetup:  func(m *mocks.MockBrowser) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "store unavailable",
			target: "/api/search?query=a",
			mockSetup: func(m *mocks.MockBrowser) {
				m.EXPECT().Search(gomock.Any(), gomock.Any()).
					Return(service.SearchResponse{}, service.WrapError(service.ErrStoreUnavailable, "search"))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser := mocks.NewMockBrowser(ctrl)
			tt.mockSetup(browser)

			w := httptest.NewRecorder()
			NewSearchHandler(browser).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestBreadcrumbHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantPath   breadcrumb.Path
		wantKind   string
	}{
		{
			name:       "descend",
			method:     http.MethodPost,
			body:       `{"breadcrumbs":[{"id":"A","label":"A"}],"event":{"ancestor":"A","id":"C","label":"C"}}`,
			wantStatus: http.StatusOK,
			wantPath:   breadcrumb.Path{{ID: "A", Label: "A"}, {AncestorID: "A", ID: "C", Label: "C"}},
			wantKind:   "navigate",
		},
		{
			name:       "search jump from empty path",
			method:     http.MethodPost,
			body:       `{"breadcrumbs":[],"event":{"ancestor":"Z","id":"Q","label":"Q","isSearchResult":true,"rootId":"R"}}`,
			wantStatus: http.StatusOK,
			wantPath:   breadcrumb.Path{breadcrumb.GapEntry(), {AncestorID: "Z", ID: "Q", Label: "Q"}},
			wantKind:   "search_jump",
		},
		{
			name:       "missing path is uninitialized",
			method:     http.MethodPost,
			body:       `{"event":{"ancestor":"A","id":"C"}}`,
			wantStatus: http.StatusOK,
			wantPath:   breadcrumb.Path{},
			wantKind:   "navigate",
		},
		{
			name:       "invalid body",
			method:     http.MethodPost,
			body:       `{"breadcrumbs":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/breadcrumbs", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			NewBreadcrumbHandler().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp BreadcrumbResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp.Kind, tt.wantKind)
			}
			if resp.Breadcrumbs == nil {
				t.Fatal("breadcrumbs should encode as an array")
			}
			if len(resp.Breadcrumbs) != len(tt.wantPath) {
				t.Fatalf("breadcrumbs = %+v, want %+v", resp.Breadcrumbs, tt.wantPath)
			}
			for i := range tt.wantPath {
				if resp.Breadcrumbs[i] != tt.wantPath[i] {
					t.Errorf("breadcrumbs[%d] = %+v, want %+v", i, resp.Breadcrumbs[i], tt.wantPath[i])
				}
			}
		})
	}
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		mockSetup  func(*storagemocks.MockNodeStore)
		tracker    *ingest.Tracker
		wantStatus int
		wantStore  string
	}{
		{
			name: "healthy",
			mockSetup: func(m *storagemocks.MockNodeStore) {
				m.EXPECT().Count(gomock.Any()).Return(42, nil)
			},
			wantStatus: http.StatusOK,
			wantStore:  "ok",
		},
		{
			name: "empty store",
			mockSetup: func(m *storagemocks.MockNodeStore) {
				m.EXPECT().Count(gomock.Any()).Return(0, nil)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantStore:  "empty",
		},
		{
			name: "store error",
			mockSetup: func(m *storagemocks.MockNodeStore) {
				m.EXPECT().Count(gomock.Any()).Return(0, errors.New("database is closed"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantStore:  "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storagemocks.NewMockNodeStore(ctrl)
			tt.mockSetup(store)

			w := httptest.NewRecorder()
			NewHealthHandler(store, tt.tracker).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Checks["store"] != tt.wantStore {
				t.Errorf("checks[store] = %q, want %q", resp.Checks["store"], tt.wantStore)
			}
		})
	}
}

func TestHealthHandler_ReportsLastIngestion(t *testing.T) {
	store := storage.NewMemoryStore()
	tracker := &ingest.Tracker{}
	pipeline := ingest.NewPipeline(stubSource(`<ImageNetStructure><synset wnid="r" words="root"/></ImageNetStructure>`), store, ingest.FormatXML).
		WithTracker(tracker)
	if _, err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	w := httptest.NewRecorder()
	NewHealthHandler(store, tracker).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"last_ingestion"`) || !strings.Contains(body, `"nodes":1`) {
		t.Errorf("body = %s, want last ingestion summary", body)
	}
}
