package reason

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aidrank/aidrank/pkg/priority"
)

func TestGatewayClientScore(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]float64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]float64{"score": 0.73})
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "sekrit", 5*time.Second)
	score, err := c.Score(context.Background(), priority.Inputs{
		PovertyIndex:       0.8,
		ProjectImpact:      0.6,
		EnvironmentalScore: 0.5,
		CorruptionRisk:     0.2,
	})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if score != 0.73 {
		t.Errorf("score = %v, want 0.73", score)
	}
	if gotPath != "/api/v1/score" {
		t.Errorf("path = %q, want /api/v1/score", gotPath)
	}
	if gotAuth != "Bearer sekrit" {
		t.Errorf("auth header = %q, want bearer token", gotAuth)
	}
	if gotBody["poverty_index"] != 0.8 {
		t.Errorf("request body poverty_index = %v, want 0.8", gotBody["poverty_index"])
	}
	if gotBody["corruption_risk"] != 0.2 {
		t.Errorf("request body corruption_risk = %v, want 0.2", gotBody["corruption_risk"])
	}
}

func TestGatewayClientNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		json.NewEncoder(w).Encode(map[string]float64{"score": 0.1})
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "", 0)
	if _, err := c.Score(context.Background(), priority.Inputs{}); err != nil {
		t.Fatalf("Score: %v", err)
	}
}

func TestGatewayClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "reasoning agents offline", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "", time.Second)
	_, err := c.Score(context.Background(), priority.Inputs{})
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("expected status code in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "reasoning agents offline") {
		t.Errorf("expected response body in error, got %v", err)
	}
}

func TestGatewayClientBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "", time.Second)
	_, err := c.Score(context.Background(), priority.Inputs{})
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestGatewayClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/score" {
			t.Errorf("path = %q, want /api/v1/score", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]float64{"score": 0.2})
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL+"/", "", time.Second)
	if _, err := c.Score(context.Background(), priority.Inputs{}); err != nil {
		t.Fatalf("Score: %v", err)
	}
}
