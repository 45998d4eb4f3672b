package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestGithubToken_Precedence(t *testing.T) {
	t.Setenv("GH_TOKEN", "gh-token")
	t.Setenv("GITHUB_TOKEN", "github-token")

	if got := GithubToken("explicit"); got != "explicit" {
		t.Errorf("GithubToken = %q, want explicit value", got)
	}
	if got := GithubToken(""); got != "gh-token" {
		t.Errorf("GithubToken = %q, want GH_TOKEN", got)
	}

	t.Setenv("GH_TOKEN", "")
	if got := GithubToken("  "); got != "github-token" {
		t.Errorf("GithubToken = %q, want GITHUB_TOKEN", got)
	}

	t.Setenv("GITHUB_TOKEN", " ")
	if got := GithubToken(""); got != "" {
		t.Errorf("GithubToken = %q, want empty", got)
	}
}

func TestLatestTemplateAsset_SelectsMatch(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/kit/releases/latest" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{
			"tag_name": "v0.9.1",
			"assets": [
				{"name": "checksums.txt", "size": 10, "browser_download_url": "u1"},
				{"name": "spec-kit-template-claude-sh-v0.9.1.zip", "size": 1234, "browser_download_url": "u2"},
				{"name": "spec-kit-template-claude-ps-v0.9.1.zip", "size": 999, "browser_download_url": "u3"}
			]
		}`))
	}))
	defer server.Close()

	client := NewReleaseClient(ClientConfig{Token: "tok", APIBaseURL: server.URL})
	asset, err := client.LatestTemplateAsset(context.Background(), "acme", "kit", "claude", "sh")
	if err != nil {
		t.Fatalf("LatestTemplateAsset() error: %v", err)
	}

	if asset.Name != "spec-kit-template-claude-sh-v0.9.1.zip" {
		t.Errorf("Name = %q", asset.Name)
	}
	if asset.Size != 1234 || asset.Release != "v0.9.1" || asset.DownloadURL != "u2" {
		t.Errorf("asset = %+v", asset)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestLatestTemplateAsset_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"tag_name": "v1", "assets": [{"name": "spec-kit-template-claude-sh.zip", "size": 1, "browser_download_url": "u"}]}`))
	}))
	defer server.Close()

	client := NewReleaseClient(ClientConfig{APIBaseURL: server.URL})
	if _, err := client.LatestTemplateAsset(context.Background(), "a", "b", "claude", "sh"); err != nil {
		t.Fatalf("LatestTemplateAsset() error: %v", err)
	}
}

func TestLatestTemplateAsset_StatusKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   FetchErrorKind
	}{
		{401, FetchErrAuth},
		{403, FetchErrAuth},
		{404, FetchErrNotFound},
		{500, FetchErrStatus},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		client := NewReleaseClient(ClientConfig{APIBaseURL: server.URL})
		_, err := client.LatestTemplateAsset(context.Background(), "a", "b", "claude", "sh")
		server.Close()

		fe, ok := IsFetchError(err)
		if !ok {
			t.Fatalf("status %d: error %v is not a FetchError", tt.status, err)
		}
		if fe.Kind != tt.kind {
			t.Errorf("status %d: Kind = %v, want %v", tt.status, fe.Kind, tt.kind)
		}
		if fe.StatusCode != tt.status {
			t.Errorf("status %d: StatusCode = %d", tt.status, fe.StatusCode)
		}
	}
}

func TestLatestTemplateAsset_AssetMissingListsNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v1", "assets": [{"name": "other.tar.gz", "size": 1, "browser_download_url": "u"}]}`))
	}))
	defer server.Close()

	client := NewReleaseClient(ClientConfig{APIBaseURL: server.URL})
	_, err := client.LatestTemplateAsset(context.Background(), "a", "b", "claude", "sh")

	fe, ok := IsFetchError(err)
	if !ok {
		t.Fatalf("error %v is not a FetchError", err)
	}
	if fe.Kind != FetchErrAssetMissing {
		t.Errorf("Kind = %v, want asset missing", fe.Kind)
	}
	if len(fe.Assets) != 1 || fe.Assets[0] != "other.tar.gz" {
		t.Errorf("Assets = %v, want the available names", fe.Assets)
	}
	if len(fe.Hints) == 0 {
		t.Errorf("expected hints for a missing asset")
	}
}

func TestLatestTemplateAsset_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewReleaseClient(ClientConfig{APIBaseURL: server.URL})
	_, err := client.LatestTemplateAsset(context.Background(), "a", "b", "claude", "sh")

	fe, ok := IsFetchError(err)
	if !ok || fe.Kind != FetchErrBadJSON {
		t.Errorf("error = %v, want bad JSON fetch error", err)
	}
}

func TestDownloadAsset_StreamsWithProgress(t *testing.T) {
	payload := make([]byte, 20000)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	client := NewReleaseClient(ClientConfig{})
	asset := &ReleaseAsset{
		Name:        "template.zip",
		Size:        int64(len(payload)),
		DownloadURL: server.URL + "/asset",
	}

	var lastDownloaded, lastTotal int64
	calls := 0
	path, err := client.DownloadAsset(context.Background(), asset, dir, func(downloaded, total int64) {
		lastDownloaded, lastTotal = downloaded, total
		calls++
	})
	if err != nil {
		t.Fatalf("DownloadAsset() error: %v", err)
	}

	if path != filepath.Join(dir, "template.zip") {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if len(data) != len(payload) {
		t.Errorf("downloaded %d bytes, want %d", len(data), len(payload))
	}
	if calls < 2 {
		t.Errorf("progress calls = %d, want chunked reporting", calls)
	}
	if lastDownloaded != int64(len(payload)) || lastTotal != int64(len(payload)) {
		t.Errorf("final progress = %d/%d", lastDownloaded, lastTotal)
	}
}

func TestDownloadAsset_RemovesPartialFileOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	client := NewReleaseClient(ClientConfig{})
	asset := &ReleaseAsset{Name: "template.zip", DownloadURL: server.URL + "/asset"}

	if _, err := client.DownloadAsset(context.Background(), asset, dir, nil); err == nil {
		t.Fatalf("DownloadAsset() should fail on 404")
	}
	if _, err := os.Stat(filepath.Join(dir, "template.zip")); !os.IsNotExist(err) {
		t.Errorf("partial file left behind")
	}
}
