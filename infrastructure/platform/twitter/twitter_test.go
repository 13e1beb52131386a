package twitter

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

	domainCredential "github.com/Kofidell4545/pluseposter/domains/credential"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
)

func testAdapter(apiURL, uploadURL string) *Adapter {
	adapter := NewAdapter(domainCredential.PlatformCredential{AccessToken: "test-token"})
	adapter.APIBaseURL = apiURL
	adapter.UploadURL = uploadURL
	return adapter
}

func TestAdapter_PostText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tweets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("unexpected authorization header %q", auth)
		}

		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode tweet payload: %v", err)
		}
		if payload.Text != "Hello world!" {
			t.Errorf("tweet text = %q, want %q", payload.Text, "Hello world!")
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1450","text":"Hello world!"}}`))
	}))
	defer server.Close()

	adapter := testAdapter(server.URL, server.URL+"/upload")

	result, err := adapter.Post(context.Background(), domainPost.PostRequest{
		Platform:    domainPost.PlatformTwitter,
		ContentType: domainPost.ContentTypeText,
		Message:     "Hello world!",
	})
	if err != nil {
		t.Fatalf("Post() unexpected error: %v", err)
	}
	if result.PostID != "1450" {
		t.Fatalf("Post() PostID = %q, want %q", result.PostID, "1450")
	}
	if result.Platform != domainPost.PlatformTwitter {
		t.Fatalf("Post() Platform = %q, want twitter", result.Platform)
	}
}

func TestAdapter_PostTruncatesLongText(t *testing.T) {
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		gotText = payload.Text
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1"}}`))
	}))
	defer server.Close()

	adapter := testAdapter(server.URL, server.URL+"/upload")

	_, err := adapter.Post(context.Background(), domainPost.PostRequest{
		Platform:    domainPost.PlatformTwitter,
		ContentType: domainPost.ContentTypeText,
		Message:     strings.Repeat("x", 300),
	})
	if err != nil {
		t.Fatalf("Post() unexpected error: %v", err)
	}
	if len([]rune(gotText)) != 280 {
		t.Fatalf("tweet text length = %d, want 280", len([]rune(gotText)))
	}
}

func TestAdapter_PostImageUploadsMedia(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(imagePath, []byte("not-really-a-jpeg"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	var commands []string
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		command := r.FormValue("command")
		commands = append(commands, command)
		switch command {
		case "INIT":
			_, _ = w.Write([]byte(`{"media_id_string":"m-77"}`))
		case "APPEND":
			w.WriteHeader(http.StatusNoContent)
		case "FINALIZE":
			_, _ = w.Write([]byte(`{"media_id_string":"m-77"}`))
		default:
			t.Errorf("unexpected upload command %q", command)
		}
	})
	mux.HandleFunc("/tweets", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Media *struct {
				MediaIDs []string `json:"media_ids"`
			} `json:"media"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload.Media == nil || len(payload.Media.MediaIDs) != 1 || payload.Media.MediaIDs[0] != "m-77" {
			t.Errorf("tweet missing uploaded media id, got %+v", payload.Media)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1451"}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	adapter := testAdapter(server.URL, server.URL+"/upload")

	result, err := adapter.Post(context.Background(), domainPost.PostRequest{
		Platform:    domainPost.PlatformTwitter,
		ContentType: domainPost.ContentTypeImage,
		FilePath:    imagePath,
		Caption:     "Launch day",
	})
	if err != nil {
		t.Fatalf("Post() unexpected error: %v", err)
	}
	if result.PostID != "1451" {
		t.Fatalf("Post() PostID = %q, want %q", result.PostID, "1451")
	}

	want := []string{"INIT", "APPEND", "FINALIZE"}
	if len(commands) != len(want) {
		t.Fatalf("upload commands = %v, want %v", commands, want)
	}
	for i := range want {
		if commands[i] != want[i] {
			t.Fatalf("upload commands = %v, want %v", commands, want)
		}
	}
}

func TestAdapter_PostRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := testAdapter(server.URL, server.URL+"/upload")

	_, err := adapter.Post(context.Background(), domainPost.PostRequest{
		Platform:    domainPost.PlatformTwitter,
		ContentType: domainPost.ContentTypeText,
		Message:     "hi",
	})

	var rateErr pkgError.RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("Post() expected RateLimitError, got %v", err)
	}
}

func TestAdapter_ValidateCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := testAdapter(server.URL, server.URL+"/upload")

	err := adapter.ValidateCredentials(context.Background())
	var authErr pkgError.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("ValidateCredentials() expected AuthError, got %v", err)
	}
}
