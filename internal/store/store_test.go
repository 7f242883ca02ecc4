package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hayate-io/kintai/internal/model"
)

// writeJSON mimics the store web app: JSON body with the right content
// type (resty only unmarshals responses it recognizes as JSON).
func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestListRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != "getData" {
			t.Fatalf("unexpected action: %s", r.URL.Query().Get("action"))
		}
		if r.URL.Query().Get("userName") != "all" {
			t.Fatalf("expected default user 'all', got %s", r.URL.Query().Get("userName"))
		}
		writeJSON(t, w, map[string]any{
			"data": []map[string]any{
				{"id": "1", "timestamp": "2024-03-05T09:00:00.000Z", "userName": "田中", "type": "遅刻", "minutes": "30"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	records := c.ListRecords(context.Background(), "")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].UserName != "田中" || records[0].Minutes != "30" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestListRecordsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if records := c.ListRecords(context.Background(), "all"); records != nil {
		t.Fatalf("expected nil on server error, got %v", records)
	}
}

func TestListRecordsUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", WithTimeout(200*time.Millisecond))
	if records := c.ListRecords(context.Background(), "all"); records != nil {
		t.Fatalf("expected nil on unreachable store, got %v", records)
	}
}

func TestFetchReferenceDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"data": []map[string]any{
				{"date": "2024-03-05", "userName": "田中", "type": "遅刻", "detail": "1h", "amount": 60},
			},
			"timestamp": "2024-03-31T12:00:00.000Z",
			"fileCount": 2,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	ds := c.FetchReferenceDataset(context.Background())
	if ds == nil {
		t.Fatal("expected dataset")
	}
	if ds.FileCount != 2 || len(ds.Events) != 1 {
		t.Fatalf("unexpected dataset: %+v", ds)
	}
	want := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	if !ds.Timestamp.Equal(want) {
		t.Fatalf("timestamp: got %v, want %v", ds.Timestamp, want)
	}
	if ds.Events[0].TypeLabel != "遅刻" || ds.Events[0].Magnitude != 60 {
		t.Fatalf("unexpected event: %+v", ds.Events[0])
	}
}

func TestFetchReferenceDatasetEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Store with no snapshot responds with a null timestamp.
		writeJSON(t, w, map[string]any{"data": []any{}, "timestamp": nil})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if ds := c.FetchReferenceDataset(context.Background()); ds != nil {
		t.Fatalf("expected nil for empty store, got %+v", ds)
	}
}

func TestPushReferenceDataset(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		writeJSON(t, w, map[string]any{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	events := []model.Event{{Date: "2024-03-05", Person: "田中", TypeLabel: "遅刻", Magnitude: 60}}
	if !c.PushReferenceDataset(context.Background(), events, 1) {
		t.Fatal("expected push to succeed")
	}
	if got["action"] != "saveCBOData" {
		t.Fatalf("unexpected action in body: %v", got["action"])
	}
	if got["fileCount"] != float64(1) {
		t.Fatalf("unexpected fileCount: %v", got["fileCount"])
	}
}

func TestPushReportsStoreSideError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"error": "Invalid action"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if c.PushReferenceDataset(context.Background(), nil, 0) {
		t.Fatal("expected failure on store-side error")
	}
}

func TestGetLeaveBalances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"balances": map[string]float64{"田中 01": 12.5, "佐藤": 3},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	balances := c.GetLeaveBalances(context.Background())
	if len(balances) != 2 || balances["田中 01"] != 12.5 {
		t.Fatalf("unexpected balances: %v", balances)
	}
}

func TestListLateArrivals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("month") != "2024-03" {
			t.Fatalf("expected month param, got %s", r.URL.Query().Get("month"))
		}
		writeJSON(t, w, map[string]any{
			"checks": []map[string]string{
				{"date": "2024-03-05", "userName": "田中"},
				{"date": "2024-03-07", "userName": "田中"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	checks := c.ListLateArrivals(context.Background(), "2024-03")
	if len(checks) != 2 || checks[0].Person != "田中" {
		t.Fatalf("unexpected checks: %+v", checks)
	}
}

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"users": []string{"田中太郎", "佐藤花子"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	users := c.ListUsers(context.Background())
	if len(users) != 2 || users[0] != "田中太郎" {
		t.Fatalf("unexpected users: %v", users)
	}
}

func TestAppendRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["action"] != "saveData" {
			t.Fatalf("unexpected action: %v", body["action"])
		}
		writeJSON(t, w, map[string]any{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	ok := c.AppendRecord(context.Background(), model.Record{
		ID: "1", UserName: "田中", Category: "勤怠", Type: "遅刻", Minutes: "15",
	})
	if !ok {
		t.Fatal("expected append to succeed")
	}
}
