package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaClientChat(t *testing.T) {
	var gotReq ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: Message{Role: RoleAssistant, Content: "你好！"},
		})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "qwen2.5:14b")
	got, err := c.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "你是金融助手"},
		UserMessage("你好"),
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "你好！" {
		t.Errorf("Chat() = %q", got)
	}

	if gotReq.Model != "qwen2.5:14b" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("request must disable streaming")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "你好" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
}

func TestOllamaClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 1 || req.Messages[0].Role != RoleUser {
			t.Errorf("Generate must send a single user turn, got %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: Message{Role: RoleAssistant, Content: "1"},
		})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "qwen2.5:14b")
	got, err := c.Generate(context.Background(), "请只回答数字1、2或3。")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "1" {
		t.Errorf("Generate() = %q", got)
	}
}

func TestOllamaClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "qwen2.5:14b")
	if _, err := c.Generate(context.Background(), "你好"); err == nil {
		t.Error("Generate() must fail on non-200 status")
	}
}

func TestOllamaClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewOllamaClient(srv.URL, "qwen2.5:14b")
	if _, err := c.Generate(ctx, "你好"); err == nil {
		t.Error("Generate() must respect context cancellation")
	}
}
