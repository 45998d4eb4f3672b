package core

import (
	"errors"
	"fmt"
	"strings"
)

// FetchErrorKind classifies why a release fetch or download failed.
type FetchErrorKind int

const (
	// FetchErrUnknown is an unclassified fetch failure.
	FetchErrUnknown FetchErrorKind = iota
	// FetchErrNetwork means the host could not be reached (DNS, connectivity).
	FetchErrNetwork
	// FetchErrAuth means the API rejected the request (401/403).
	FetchErrAuth
	// FetchErrNotFound means the repository or release does not exist (404).
	FetchErrNotFound
	// FetchErrStatus is any other non-200 response.
	FetchErrStatus
	// FetchErrBadJSON means the release metadata could not be parsed.
	FetchErrBadJSON
	// FetchErrAssetMissing means no release asset matched the template pattern.
	FetchErrAssetMissing
)

// String returns a human-readable label for the error kind.
func (k FetchErrorKind) String() string {
	switch k {
	case FetchErrNetwork:
		return "Network Error"
	case FetchErrAuth:
		return "Authentication Required"
	case FetchErrNotFound:
		return "Release Not Found"
	case FetchErrStatus:
		return "Unexpected Response"
	case FetchErrBadJSON:
		return "Invalid Release Metadata"
	case FetchErrAssetMissing:
		return "Asset Not Found"
	default:
		return "Unknown Error"
	}
}

// FetchError is a structured error returned when fetching release metadata
// or downloading an asset fails. It wraps the raw cause with classification
// and actionable hints.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int      // zero when the request never completed
	Detail     string   // first line of the underlying problem
	Assets     []string // asset names available, for FetchErrAssetMissing
	Hints      []string // actionable suggestions for the user
	cause      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", strings.ToLower(e.Kind.String()), e.Detail)
	}
	return strings.ToLower(e.Kind.String())
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *FetchError) Unwrap() error { return e.cause }

// IsFetchError checks whether an error is a *FetchError and returns it.
func IsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// newStatusFetchError classifies a non-200 HTTP response.
func newStatusFetchError(url string, status int, body string) *FetchError {
	kind := FetchErrStatus
	switch status {
	case 401, 403:
		kind = FetchErrAuth
	case 404:
		kind = FetchErrNotFound
	}
	return &FetchError{
		Kind:       kind,
		URL:        url,
		StatusCode: status,
		Detail:     fmt.Sprintf("GitHub returned %d for %s", status, url),
		Hints:      hintsForFetchError(kind),
	}
}

// newNetworkFetchError wraps a transport-level failure.
func newNetworkFetchError(url string, err error) *FetchError {
	return &FetchError{
		Kind:   FetchErrNetwork,
		URL:    url,
		Detail: firstErrLine(err),
		Hints:  hintsForFetchError(FetchErrNetwork),
		cause:  err,
	}
}

// hintsForFetchError returns actionable suggestions based on the error kind.
func hintsForFetchError(kind FetchErrorKind) []string {
	switch kind {
	case FetchErrAuth:
		return []string{
			"Pass a token with --github-token or set GH_TOKEN / GITHUB_TOKEN",
			"Rate limits for unauthenticated requests are low; a token raises them",
		}
	case FetchErrNotFound:
		return []string{
			"Verify the template repository with --template-repo (owner/repo)",
			"The repository may be private; supply a token with access",
		}
	case FetchErrNetwork:
		return []string{
			"Check your internet connection",
			"If behind a proxy, ensure HTTPS_PROXY is set",
		}
	case FetchErrAssetMissing:
		return []string{
			"The release may not package templates for this agent/script combination",
			"Use --template-path to provision from a local template instead",
		}
	default:
		return nil
	}
}

// firstErrLine truncates an error to its first line for concise display.
func firstErrLine(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		msg = msg[:idx]
	}
	return strings.TrimSpace(msg)
}
