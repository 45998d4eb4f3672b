package core

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultAPIBaseURL = "https://api.github.com"

	// Independent ceilings for the two network exchanges: metadata lookup
	// and the streamed asset download.
	releaseFetchTimeout  = 30 * time.Second
	assetDownloadTimeout = 60 * time.Second
	downloadChunkSize    = 8192
)

// GithubToken returns the sanitized token to use for API requests:
// the explicit value wins, then GH_TOKEN, then GITHUB_TOKEN.
// Returns "" when no token is configured.
func GithubToken(explicit string) string {
	for _, candidate := range []string{explicit, os.Getenv("GH_TOKEN"), os.Getenv("GITHUB_TOKEN")} {
		if tok := strings.TrimSpace(candidate); tok != "" {
			return tok
		}
	}
	return ""
}

// ClientConfig is the explicit per-run configuration for the release client.
// It replaces any process-wide client or TLS state.
type ClientConfig struct {
	Token         string // bearer token; "" disables the Authorization header
	SkipTLSVerify bool
	APIBaseURL    string // override for tests; defaults to api.github.com
}

// ReleaseClient fetches release metadata and downloads template assets.
type ReleaseClient struct {
	http    *http.Client
	token   string
	baseURL string
}

// NewReleaseClient creates a release client from the given configuration.
func NewReleaseClient(cfg ClientConfig) *ReleaseClient {
	transport := http.DefaultTransport
	if cfg.SkipTLSVerify {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &ReleaseClient{
		http:    &http.Client{Transport: transport},
		token:   cfg.Token,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// releaseResponse is the subset of the GitHub release payload we consume.
type releaseResponse struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		Size               int64  `json:"size"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// LatestTemplateAsset fetches the latest release of owner/repo and selects
// the template asset for the given agent and script type. Matching is by
// substring "spec-kit-template-<agent>-<script>" plus a .zip suffix; the
// first asset in listing order wins. A miss returns a FetchError carrying
// the available asset names for diagnostics.
func (c *ReleaseClient) LatestTemplateAsset(ctx context.Context, owner, repo, agent, script string) (*ReleaseAsset, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)

	ctx, cancel := context.WithTimeout(ctx, releaseFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building release request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newNetworkFetchError(url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		fe := newStatusFetchError(url, resp.StatusCode, string(body))
		return nil, fe
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, &FetchError{
			Kind:   FetchErrBadJSON,
			URL:    url,
			Detail: firstErrLine(err),
			cause:  err,
		}
	}

	pattern := fmt.Sprintf("spec-kit-template-%s-%s", agent, script)
	for _, a := range release.Assets {
		if strings.Contains(a.Name, pattern) && strings.HasSuffix(a.Name, ".zip") {
			return &ReleaseAsset{
				Name:        a.Name,
				Size:        a.Size,
				DownloadURL: a.BrowserDownloadURL,
				Release:     release.TagName,
			}, nil
		}
	}

	names := make([]string, len(release.Assets))
	for i, a := range release.Assets {
		names[i] = a.Name
	}
	return nil, &FetchError{
		Kind:   FetchErrAssetMissing,
		URL:    url,
		Detail: fmt.Sprintf("no release asset matches pattern %q", pattern),
		Assets: names,
		Hints:  hintsForFetchError(FetchErrAssetMissing),
	}
}

// DownloadAsset streams the asset into destDir and returns the written file
// path. progress, if non-nil, receives cumulative byte counts; total is the
// asset's advertised size, or the Content-Length when that is zero.
func (c *ReleaseClient) DownloadAsset(ctx context.Context, asset *ReleaseAsset, destDir string, progress func(downloaded, total int64)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, assetDownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", newNetworkFetchError(asset.DownloadURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", newStatusFetchError(asset.DownloadURL, resp.StatusCode, "")
	}

	total := asset.Size
	if total == 0 {
		total = resp.ContentLength
	}

	destPath := filepath.Join(destDir, asset.Name)
	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", destPath, err)
	}

	var downloaded int64
	buf := make([]byte, downloadChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				_ = out.Close()
				_ = os.Remove(destPath)
				return "", fmt.Errorf("writing %s: %w", destPath, writeErr)
			}
			downloaded += int64(n)
			if progress != nil {
				progress(downloaded, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = out.Close()
			_ = os.Remove(destPath)
			return "", newNetworkFetchError(asset.DownloadURL, readErr)
		}
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(destPath)
		return "", fmt.Errorf("closing %s: %w", destPath, err)
	}
	return destPath, nil
}

// authorize attaches the bearer token header when a token is configured.
func (c *ReleaseClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
