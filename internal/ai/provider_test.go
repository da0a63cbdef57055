package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"onepercent-backend/internal/web"
)

func chatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func completionResponse(content string) string {
	return `{"choices": [{"message": {"content": ` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func appErr(t *testing.T, err error) *web.AppError {
	t.Helper()
	var ae *web.AppError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return ae
}

func TestProvider_Rewrite(t *testing.T) {
	var got chatRequest
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(completionResponse("Push past your limits.")))
	})

	p := NewProvider(srv.URL, "sk-test", "gpt-4o-mini")
	out, err := p.Rewrite(context.Background(), "Work hard.", "Make it punchier", "hero tagline")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if out != "Push past your limits." {
		t.Errorf("unexpected output %q", out)
	}

	if got.Model != "gpt-4o-mini" || got.Temperature != 0.7 || got.MaxTokens != 500 {
		t.Errorf("unexpected request parameters: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Fatalf("expected system+user messages, got %+v", got.Messages)
	}
	user := got.Messages[1].Content
	if !strings.Contains(user, "hero tagline") || !strings.Contains(user, "Make it punchier") || !strings.Contains(user, "Work hard.") {
		t.Errorf("user prompt missing inputs:\n%s", user)
	}
}

func TestProvider_Rewrite_StripsSurroundingQuotes(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse(`"Push past your limits."`)))
	})

	p := NewProvider(srv.URL, "sk-test", "gpt-4o-mini")
	out, err := p.Rewrite(context.Background(), "Work hard.", "punchier", "tagline")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if out != "Push past your limits." {
		t.Errorf("quotes not stripped: %q", out)
	}
}

func TestStripSurroundingQuotes(t *testing.T) {
	cases := map[string]string{
		`"quoted"`:     "quoted",
		`'quoted'`:     "quoted",
		`""nested""`:   `"nested"`, // one layer only
		`plain`:        "plain",
		`"mismatched'`: `"mismatched'`,
		`"`:            `"`,
		``:             ``,
		`say "hi" now`: `say "hi" now`,
	}
	for in, want := range cases {
		if got := stripSurroundingQuotes(in); got != want {
			t.Errorf("stripSurroundingQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProvider_Rewrite_InvalidPayload(t *testing.T) {
	p := NewProvider("http://127.0.0.1:1", "sk-test", "gpt-4o-mini")

	_, err := p.Rewrite(context.Background(), "", "instruction", "")
	if ae := appErr(t, err); ae.Code != "INVALID_PAYLOAD" || ae.Status != 400 {
		t.Errorf("expected INVALID_PAYLOAD 400, got %s %d", ae.Code, ae.Status)
	}

	_, err = p.Rewrite(context.Background(), "content", "", "")
	if ae := appErr(t, err); ae.Code != "INVALID_PAYLOAD" {
		t.Errorf("expected INVALID_PAYLOAD, got %s", ae.Code)
	}
}

func TestProvider_Rewrite_NotConfigured(t *testing.T) {
	p := NewProvider("http://127.0.0.1:1", "", "gpt-4o-mini")

	_, err := p.Rewrite(context.Background(), "content", "instruction", "")
	if ae := appErr(t, err); ae.Code != "AI_NOT_CONFIGURED" || ae.Status != 500 {
		t.Errorf("expected AI_NOT_CONFIGURED 500, got %s %d", ae.Code, ae.Status)
	}
}

func TestProvider_Rewrite_ProviderError(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
	})

	p := NewProvider(srv.URL, "sk-test", "gpt-4o-mini")
	_, err := p.Rewrite(context.Background(), "content", "instruction", "")
	ae := appErr(t, err)
	if ae.Code != "AI_PROVIDER_ERROR" || ae.Status != 429 {
		t.Errorf("expected AI_PROVIDER_ERROR 429, got %s %d", ae.Code, ae.Status)
	}
	if !strings.Contains(ae.Message, "rate limit exceeded") {
		t.Errorf("expected upstream detail in message, got %q", ae.Message)
	}
}

func TestProvider_Rewrite_EmptyResult(t *testing.T) {
	for name, body := range map[string]string{
		"no choices":    `{"choices": []}`,
		"blank content": completionResponse("   "),
	} {
		t.Run(name, func(t *testing.T) {
			srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			p := NewProvider(srv.URL, "sk-test", "gpt-4o-mini")
			_, err := p.Rewrite(context.Background(), "content", "instruction", "")
			if ae := appErr(t, err); ae.Code != "AI_EMPTY_RESULT" || ae.Status != 502 {
				t.Errorf("expected AI_EMPTY_RESULT 502, got %s %d", ae.Code, ae.Status)
			}
		})
	}
}
