package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/ecoscout/pkg/cache"
	"github.com/matzehuels/ecoscout/pkg/integrations"
)

func TestFetchRepoLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/repos/a/x":
			w.Write([]byte(`{"full_name":"a/x","language":"Solidity"}`))
		case "/repos/a/empty":
			w.Write([]byte(`{"full_name":"a/empty","language":null}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	ctx := context.Background()

	lang, err := c.FetchRepoLanguage(ctx, "a", "x")
	if err != nil {
		t.Fatalf("FetchRepoLanguage() error: %v", err)
	}
	if lang != "Solidity" {
		t.Errorf("language = %q, want Solidity", lang)
	}

	lang, err = c.FetchRepoLanguage(ctx, "a", "empty")
	if err != nil || lang != "" {
		t.Errorf("FetchRepoLanguage(empty) = %q, %v; want \"\", nil", lang, err)
	}

	_, err = c.FetchRepoLanguage(ctx, "a", "missing")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFetchContributors(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/a/x/contributors" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]contributorResponse{
			{Login: "u1", Contributions: 50, Type: "User"},
			{Login: "", Contributions: 20},
			{Login: "u2", Contributions: 10, Type: "User"},
			{Login: "u3", Contributions: 5, Type: "User"},
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")

	got, err := c.FetchContributors(context.Background(), "a", "x", 2)
	if err != nil {
		t.Fatalf("FetchContributors() error: %v", err)
	}
	if gotQuery != "order=desc&per_page=2&sort=contributions" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(got) != 2 || got[0].Login != "u1" || got[1].Login != "u2" {
		t.Errorf("contributors = %+v, want [u1 u2]", got)
	}
	if got[0].Contributions != 50 {
		t.Errorf("u1 contributions = %d, want 50", got[0].Contributions)
	}
}

func TestFetchContributorsEmptyRepo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")

	got, err := c.FetchContributors(context.Background(), "a", "empty", 3)
	if err != nil {
		t.Fatalf("FetchContributors() error = %v, want nil for empty repository", err)
	}
	if len(got) != 0 {
		t.Errorf("contributors = %+v, want none", got)
	}
}

func TestFetchContributorsInvalidRef(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	if _, err := c.FetchContributors(context.Background(), "..", "x", 1); err == nil {
		t.Error("expected validation error for path traversal")
	}
}

func TestFetchUserRepoLanguages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/dev/repos" || r.URL.Query().Get("per_page") != "100" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[
			{"name":"a","language":"Solidity"},
			{"name":"b","language":"Rust"},
			{"name":"c","language":null},
			{"name":"d","language":"solidity"},
			{"name":"e","language":"Go"}
		]`))
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")

	langs, err := c.FetchUserRepoLanguages(context.Background(), "dev")
	if err != nil {
		t.Fatalf("FetchUserRepoLanguages() error: %v", err)
	}
	want := []string{"solidity", "rust", "go"}
	if len(langs) != len(want) {
		t.Fatalf("langs = %v, want %v", langs, want)
	}
	for i := range want {
		if langs[i] != want[i] {
			t.Errorf("langs[%d] = %q, want %q", i, langs[i], want[i])
		}
	}
}

func TestFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/withmail":
			w.Write([]byte(`{"login":"withmail","email":"dev@example.com","name":"Dev","followers":3}`))
		case "/users/nomail":
			w.Write([]byte(`{"login":"nomail","email":null}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	ctx := context.Background()

	p, err := c.FetchProfile(ctx, "withmail")
	if err != nil {
		t.Fatalf("FetchProfile() error: %v", err)
	}
	if p.Email == nil || *p.Email != "dev@example.com" {
		t.Errorf("email = %v, want dev@example.com", p.Email)
	}
	if p.Followers != 3 {
		t.Errorf("followers = %d, want 3", p.Followers)
	}

	p, err = c.FetchProfile(ctx, "nomail")
	if err != nil {
		t.Fatalf("FetchProfile() error: %v", err)
	}
	if p.Email != nil {
		t.Errorf("email = %v, want nil", *p.Email)
	}
}

func TestFetchEvents(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"type":"PushEvent","created_at":"2026-09-01T10:00:00Z"},
			{"type":"WatchEvent","created_at":"2026-08-01T10:00:00Z"}
		]`))
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")

	events, err := c.FetchEvents(context.Background(), "dev")
	if err != nil {
		t.Fatalf("FetchEvents() error: %v", err)
	}
	if gotQuery != "per_page=100&page=1" {
		t.Errorf("query = %q, want per_page=100&page=1", gotQuery)
	}
	if len(events) != 2 || events[0].Type != EventPush {
		t.Fatalf("events = %+v", events)
	}
	want := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if !events[0].CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", events[0].CreatedAt, want)
	}
}

func TestListContentsAndFetchRaw(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/ec/taxonomy/contents/data/ecosystems":
			json.NewEncoder(w).Encode([]ContentEntry{
				{Name: "a", Type: "dir", URL: server.URL + "/repos/ec/taxonomy/contents/data/ecosystems/a"},
			})
		case "/repos/ec/taxonomy/contents/data/ecosystems/a":
			json.NewEncoder(w).Encode([]ContentEntry{
				{Name: "eth.toml", Type: "file", DownloadURL: server.URL + "/raw/a/eth.toml"},
			})
		case "/raw/a/eth.toml":
			w.Write([]byte("title = \"Ethereum\"\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, "")
	ctx := context.Background()

	cats, err := c.ListContents(ctx, "ec", "taxonomy", "/data/ecosystems/")
	if err != nil {
		t.Fatalf("ListContents() error: %v", err)
	}
	if len(cats) != 1 || !cats[0].IsDir() {
		t.Fatalf("categories = %+v", cats)
	}

	files, err := c.ListContentsURL(ctx, cats[0].URL)
	if err != nil {
		t.Fatalf("ListContentsURL() error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "eth.toml" {
		t.Fatalf("files = %+v", files)
	}

	text, err := c.FetchRaw(ctx, files[0].DownloadURL)
	if err != nil {
		t.Fatalf("FetchRaw() error: %v", err)
	}
	if text != "title = \"Ethereum\"\n" {
		t.Errorf("raw = %q", text)
	}
}

func TestRebase(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://mirror.local/"})
	got := c.rebase(DefaultBaseURL + "/repos/a/b/contents/x")
	if got != "http://mirror.local/repos/a/b/contents/x" {
		t.Errorf("rebase() = %q", got)
	}
	if got := c.rebase("http://other/x"); got != "http://other/x" {
		t.Errorf("rebase() should keep foreign URLs, got %q", got)
	}
}

func TestHeadersAndCaching(t *testing.T) {
	var calls atomic.Int32
	var auth, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		auth = r.Header.Get("Authorization")
		accept = r.Header.Get("Accept")
		w.Write([]byte(`{"language":"Go"}`))
	}))
	defer server.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(Config{Token: "secret", BaseURL: server.URL, Cache: fc, CacheTTL: time.Hour})

	for range 2 {
		if _, err := c.FetchRepoLanguage(context.Background(), "a", "x"); err != nil {
			t.Fatalf("FetchRepoLanguage() error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1 (second call cached)", calls.Load())
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", auth)
	}
	if accept != "application/vnd.github.v3+json" {
		t.Errorf("Accept = %q", accept)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})
	if c.Client == nil {
		t.Error("expected client to be initialized")
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
}

func testClient(t *testing.T, serverURL, token string) *Client {
	t.Helper()
	return NewClient(Config{Token: token, BaseURL: serverURL})
}
