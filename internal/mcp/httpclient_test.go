package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/KoBe1628/ai-fitness-tracker/internal/ledger"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestProgress verifies the HTTP client hits the progress endpoint and
// correctly parses the snapshot response.
func TestProgress(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/progress": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, ledger.Snapshot{
				XP:        250,
				Level:     3,
				Streak:    4,
				TotalReps: 25,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	snap, err := client.Progress(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.XP != 250 {
		t.Errorf("xp=%d, want 250", snap.XP)
	}
	if snap.Level != 3 {
		t.Errorf("level=%d, want 3", snap.Level)
	}
	if snap.Streak != 4 {
		t.Errorf("streak=%d, want 4", snap.Streak)
	}
}

// TestHistory verifies the exercise query parameter is sent and the record
// array is parsed.
func TestHistory(t *testing.T) {
	completed := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/history": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("exercise"); got != "squat" {
				t.Errorf("exercise=%q, want squat", got)
			}
			writeTestJSON(t, w, []ledger.SetRecord{
				{ID: uuid.New(), Exercise: "squat", Reps: 12, CompletedAt: completed, Mode: ledger.ModeStandard},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	records, err := client.History(context.Background(), "squat")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Reps != 12 {
		t.Errorf("reps=%d, want 12", records[0].Reps)
	}
	if records[0].Mode != ledger.ModeStandard {
		t.Errorf("mode=%q, want standard", records[0].Mode)
	}
}

// TestExercises verifies the registry listing round-trips.
func TestExercises(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []map[string]any{
				{"id": "squat", "name": "Squat"},
				{"id": "left_curl", "name": "Left Bicep Curl"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	profiles, err := client.Exercises(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if profiles[0].ID != "squat" {
		t.Errorf("id=%q, want squat", profiles[0].ID)
	}
}

// TestErrorStatus verifies that non-200 responses surface as errors with the body.
func TestErrorStatus(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/progress": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	_, err := client.Progress(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestBaseURLTrailingSlash verifies the base URL is normalized.
func TestBaseURLTrailingSlash(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/progress": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, ledger.Snapshot{XP: 10})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/")
	snap, err := client.Progress(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.XP != 10 {
		t.Errorf("xp=%d, want 10", snap.XP)
	}
}
