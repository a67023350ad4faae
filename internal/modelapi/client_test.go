package modelapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFetchSuccess(t *testing.T) {
	const payload = `{"result": [{"year": 2025, "npv": -100.5}]}`

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 15*time.Second, zap.NewNop())
	params, err := Build(nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	doc := client.Fetch(context.Background(), params)
	if string(doc) != payload {
		t.Errorf("expected raw payload back, got %s", doc)
	}
	if gotQuery == "" {
		t.Error("expected query parameters to be sent")
	}
}

func TestFetchDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		close   bool
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "invalid JSON body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>gateway timeout</html>"))
			},
		},
		{
			name:    "connection refused",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			close:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			if tt.close {
				server.Close()
			} else {
				defer server.Close()
			}

			client := NewClient(server.URL, time.Second, zap.NewNop())
			params, err := Build(nil, nil)
			if err != nil {
				t.Fatalf("Build returned error: %v", err)
			}

			doc := client.Fetch(context.Background(), params)
			if string(doc) != "{}" {
				t.Errorf("expected empty document, got %s", doc)
			}
		})
	}
}

func TestFetchNoEndpoint(t *testing.T) {
	client := NewClient("", time.Second, nil)
	doc := client.Fetch(context.Background(), Parameters{})
	if string(doc) != "{}" {
		t.Errorf("expected empty document without endpoint, got %s", doc)
	}
}

func TestFetchScenarios(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		fuel := r.URL.Query().Get(KeyFutureMainFuelType)
		if fuel == "HVO" {
			// One scenario failing must not affect the others.
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"result": [{"year": 2025, "npv": 1}], "fuel": "` + fuel + `"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 15*time.Second, zap.NewNop())
	params, err := Build(nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	fuels := []string{"BIO-DIESEL", "MDO", "HVO"}
	docs := client.FetchScenarios(context.Background(), params, fuels)

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if atomic.LoadInt64(&calls) != 3 {
		t.Errorf("expected 3 upstream calls, got %d", calls)
	}
	if string(docs["HVO"]) != "{}" {
		t.Errorf("expected failed scenario to degrade to empty, got %s", docs["HVO"])
	}
	for _, fuel := range []string{"BIO-DIESEL", "MDO"} {
		if string(docs[fuel]) == "{}" {
			t.Errorf("expected scenario %s to succeed", fuel)
		}
	}
	// The shared parameter set must not be mutated by per-scenario variations.
	if params[KeyFutureMainFuelType] != "Diesel-Bio-diesel" {
		t.Errorf("base parameters mutated: %v", params[KeyFutureMainFuelType])
	}
}
