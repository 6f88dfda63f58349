package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("Expected X-Api-Key 'test-key', got %q", r.Header.Get("X-Api-Key"))
		}
		if r.Header.Get("Anthropic-Version") != APIVersion {
			t.Errorf("Expected Anthropic-Version %q, got %q", APIVersion, r.Header.Get("Anthropic-Version"))
		}
		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.MaxTokens != 2000 {
			t.Errorf("Expected max_tokens 2000, got %d", req.MaxTokens)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		resp := apiResponse{
			ID:   "msg_test",
			Type: "message",
			Role: "assistant",
			Content: []contentBlock{
				{Type: "text", Text: "world"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithEndpoint(server.URL))
	got, err := client.Complete(context.Background(), "hello", 2000)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "world" {
		t.Errorf("Expected 'world', got %q", got)
	}
}

func TestClientSkipsNonTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := apiResponse{
			Content: []contentBlock{
				{Type: "thinking", Text: "ignore me"},
				{Type: "text", Text: "keep me"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("k", WithEndpoint(server.URL))
	got, err := client.Complete(context.Background(), "p", 100)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "keep me" {
		t.Errorf("Expected first text block, got %q", got)
	}
}

func TestClientNoTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{Content: []contentBlock{{Type: "thinking", Text: "x"}}})
	}))
	defer server.Close()

	client := NewClient("k", WithEndpoint(server.URL))
	_, err := client.Complete(context.Background(), "p", 100)
	if !IsKind(err, KindParse) {
		t.Errorf("Expected KindParse for missing text content, got %v", err)
	}
}

func TestClientHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"overloaded_error"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("k", WithEndpoint(server.URL))
	_, err := client.Complete(context.Background(), "p", 100)
	if !IsKind(err, KindHTTPStatus) {
		t.Fatalf("Expected KindHTTPStatus, got %v", err)
	}
	var ge *Error
	if !errors.As(err, &ge) || ge.Status != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 on error, got %+v", ge)
	}
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient("k", WithEndpoint(server.URL), WithTimeout(20*time.Millisecond))
	_, err := client.Complete(context.Background(), "p", 100)
	if !IsKind(err, KindTimeout) {
		t.Errorf("Expected KindTimeout, got %v", err)
	}
}

func TestClientTransportError(t *testing.T) {
	// Endpoint nobody is listening on.
	client := NewClient("k", WithEndpoint("http://127.0.0.1:1"))
	_, err := client.Complete(context.Background(), "p", 100)
	if !IsKind(err, KindTransport) {
		t.Errorf("Expected KindTransport, got %v", err)
	}
}

func TestClientInvalidEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient("k", WithEndpoint(server.URL))
	_, err := client.Complete(context.Background(), "p", 100)
	if !IsKind(err, KindParse) {
		t.Errorf("Expected KindParse for bad envelope, got %v", err)
	}
}
