package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type stubCompleter struct {
	req  openai.ChatCompletionRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.req = req
	return s.resp, s.err
}

func completion(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestGenerateBuildsRequestFromPersona(t *testing.T) {
	stub := &stubCompleter{resp: completion("\n  What a week.  \n")}
	gen := NewGeneratorWithClient(stub, nil)

	got, err := gen.Generate(context.Background(), ModeRecap, "Team A 100 vs Team B 80")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "What a week." {
		t.Fatalf("got %q want trimmed text", got)
	}

	persona := DefaultPersonas()[ModeRecap]
	if stub.req.Model != persona.Model || stub.req.MaxTokens != 1300 || stub.req.Temperature != 0.7 {
		t.Fatalf("unexpected request parameters: model=%s max=%d temp=%v", stub.req.Model, stub.req.MaxTokens, stub.req.Temperature)
	}
	if len(stub.req.Messages) != 2 {
		t.Fatalf("got %d messages want 2", len(stub.req.Messages))
	}
	if stub.req.Messages[0].Role != openai.ChatMessageRoleSystem || stub.req.Messages[0].Content != persona.System {
		t.Fatalf("system message does not carry persona: %+v", stub.req.Messages[0])
	}
	user := stub.req.Messages[1]
	if user.Role != openai.ChatMessageRoleUser || !strings.HasPrefix(user.Content, persona.Prompt) || !strings.HasSuffix(user.Content, "Team A 100 vs Team B 80") {
		t.Fatalf("user message does not embed digest: %q", user.Content)
	}
}

func TestGenerateAnalysisPersona(t *testing.T) {
	stub := &stubCompleter{resp: completion("Trade for Puka.")}
	gen := NewGeneratorWithClient(stub, nil)

	if _, err := gen.Generate(context.Background(), ModeAnalysis, "digest"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if stub.req.Temperature != 0.5 {
		t.Fatalf("analysis temperature=%v want 0.5", stub.req.Temperature)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		stub    *stubCompleter
		mode    Mode
		wantErr error
	}{
		{
			name:    "ClientFailure",
			stub:    &stubCompleter{err: errors.New("quota exceeded")},
			mode:    ModeRecap,
			wantErr: ErrGeneration,
		},
		{
			name:    "NoChoices",
			stub:    &stubCompleter{},
			mode:    ModeRecap,
			wantErr: ErrGeneration,
		},
		{
			name:    "BlankChoice",
			stub:    &stubCompleter{resp: completion("   ")},
			mode:    ModeRecap,
			wantErr: ErrGeneration,
		},
		{
			name:    "UnknownMode",
			stub:    &stubCompleter{resp: completion("x")},
			mode:    Mode("haiku"),
			wantErr: ErrUnknownMode,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := NewGeneratorWithClient(tc.stub, nil)
			_, err := gen.Generate(context.Background(), tc.mode, "digest")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v want %v", err, tc.wantErr)
			}
		})
	}
}

func TestGenerateAgainstHTTPServer(t *testing.T) {
	var gotAuth string
	var gotBody openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"  Recap time.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	gen := NewGenerator(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	got, err := gen.Generate(context.Background(), ModeRecap, "digest")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Recap time." {
		t.Fatalf("got %q", got)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("Authorization=%q", gotAuth)
	}
	if gotBody.MaxTokens != 1300 {
		t.Fatalf("max_tokens=%d want 1300", gotBody.MaxTokens)
	}
}

func TestGenerateHTTPFailureIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota","type":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	gen := NewGenerator(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	_, err := gen.Generate(context.Background(), ModeRecap, "digest")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("got %v want ErrGeneration", err)
	}
}

func TestLoadPersonas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	content := "recap:\n  model: gpt-4.1-mini\n  temperature: 0.9\nanalysis:\n  system: Be polite.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	personas, err := LoadPersonas(path)
	if err != nil {
		t.Fatalf("LoadPersonas: %v", err)
	}

	defaults := DefaultPersonas()
	recap := personas[ModeRecap]
	if recap.Model != "gpt-4.1-mini" || recap.Temperature != 0.9 {
		t.Fatalf("recap overrides not applied: %+v", recap)
	}
	if recap.System != defaults[ModeRecap].System || recap.MaxTokens != 1300 {
		t.Fatalf("recap defaults lost: %+v", recap)
	}
	if personas[ModeAnalysis].System != "Be polite." || personas[ModeAnalysis].Model != defaults[ModeAnalysis].Model {
		t.Fatalf("analysis merge wrong: %+v", personas[ModeAnalysis])
	}
}

func TestLoadPersonasRejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	if err := os.WriteFile(path, []byte("limerick:\n  model: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPersonas(path); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("got %v want ErrUnknownMode", err)
	}
}

func TestLoadPersonasZeroTemperatureKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	if err := os.WriteFile(path, []byte("analysis:\n  temperature: 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	personas, err := LoadPersonas(path)
	if err != nil {
		t.Fatalf("LoadPersonas: %v", err)
	}
	if got := personas[ModeAnalysis].Temperature; got != 0.5 {
		t.Fatalf("temperature=%v want default 0.5", got)
	}
}
