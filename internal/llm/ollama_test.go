package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type ollamaRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

// stubOllama serves /v1/chat/completions with reply and records each request.
func stubOllama(t *testing.T, reply string, status int) (*httptest.Server, *[]ollamaRequest, *[]string) {
	t.Helper()
	var requests []ollamaRequest
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		requests = append(requests, req)
		agents = append(agents, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"model \"missing\" not found","type":"api_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests, &agents
}

func TestNewOllamaClient_DefaultBaseURL(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	client, err := NewOllamaClient("llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if client.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, defaultOllamaBaseURL)
	}
	if client.name != ProviderOllama || !client.jsonMode {
		t.Errorf("name = %q, jsonMode = %v", client.name, client.jsonMode)
	}
}

func TestNewOllamaClient_BaseURL(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		baseURL string
		want    string
	}{
		{name: "explicit", baseURL: "http://gpu-box:11434/", want: "http://gpu-box:11434"},
		{name: "explicit with v1", baseURL: "http://gpu-box:11434/v1", want: "http://gpu-box:11434/v1"},
		{name: "OLLAMA_HOST without scheme", host: "127.0.0.1:11500", want: "http://127.0.0.1:11500"},
		{name: "flag wins over env", host: "127.0.0.1:11500", baseURL: "http://other:1", want: "http://other:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OLLAMA_HOST", tt.host)
			client, err := NewOllamaClient("llama3", tt.baseURL)
			if err != nil {
				t.Fatalf("NewOllamaClient: %v", err)
			}
			if client.baseURL != tt.want {
				t.Errorf("baseURL = %q, want %q", client.baseURL, tt.want)
			}
		})
	}
}

func TestNewOllamaClient_EmptyModel(t *testing.T) {
	for _, model := range []string{"", "  "} {
		if _, err := NewOllamaClient(model, ""); err == nil {
			t.Fatalf("expected error for model %q", model)
		}
	}
}

func TestOllamaClient_ChatJSON(t *testing.T) {
	reply := "Here you go:\n```json\n" +
		`{"tasks":[{"time":"09:00","title":"Write report","duration":60,"category":"work","priority":"high"}],"warnings":["lunch is tight"]}` +
		"\n```"
	srv, requests, agents := stubOllama(t, reply, http.StatusOK)

	for _, baseURL := range []string{srv.URL, srv.URL + "/v1"} {
		t.Run(baseURL, func(t *testing.T) {
			*requests, *agents = nil, nil
			client, err := NewOllamaClient("llama3.2", baseURL)
			if err != nil {
				t.Fatalf("NewOllamaClient: %v", err)
			}

			var got Suggestion
			err = client.ChatJSON(context.Background(), []Message{
				{Role: "system", Content: "You plan days."},
				{Role: "user", Content: "report at nine"},
			}, &got)
			if err != nil {
				t.Fatalf("ChatJSON: %v", err)
			}

			if len(got.Tasks) != 1 || got.Tasks[0].Title != "Write report" || got.Tasks[0].Duration != 60 {
				t.Errorf("tasks = %+v", got.Tasks)
			}
			if len(got.Warnings) != 1 || got.Warnings[0] != "lunch is tight" {
				t.Errorf("warnings = %v", got.Warnings)
			}

			if len(*requests) != 1 {
				t.Fatalf("requests = %d, want 1", len(*requests))
			}
			req := (*requests)[0]
			if req.Model != "llama3.2" {
				t.Errorf("model = %q, want llama3.2", req.Model)
			}
			if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
				t.Errorf("response_format = %+v, want json_object", req.ResponseFormat)
			}
			if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "report at nine" {
				t.Errorf("messages = %+v", req.Messages)
			}
			if (*agents)[0] != userAgent {
				t.Errorf("User-Agent = %q, want %q", (*agents)[0], userAgent)
			}
		})
	}
}

func TestOllamaClient_ChatSkipsJSONMode(t *testing.T) {
	srv, requests, _ := stubOllama(t, "plain answer", http.StatusOK)
	client, err := NewOllamaClient("llama3.2", srv.URL)
	if err != nil {
		t.Fatalf("NewOllamaClient: %v", err)
	}

	got, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "plain answer" {
		t.Errorf("Chat() = %q", got)
	}
	if (*requests)[0].ResponseFormat != nil {
		t.Errorf("response_format = %+v, want none", (*requests)[0].ResponseFormat)
	}
}

func TestOllamaClient_ChatJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		status  int
		wantErr string
	}{
		{name: "unknown model", status: http.StatusNotFound, wantErr: "ollama chat completion"},
		{name: "not json", reply: "I cannot plan that", status: http.StatusOK, wantErr: "parsing JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := stubOllama(t, tt.reply, tt.status)
			client, err := NewOllamaClient("missing", srv.URL)
			if err != nil {
				t.Fatalf("NewOllamaClient: %v", err)
			}
			var got Suggestion
			err = client.ChatJSON(context.Background(), []Message{{Role: "user", Content: "plan"}}, &got)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ChatJSON() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
