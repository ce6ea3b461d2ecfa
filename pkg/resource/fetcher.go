package resource

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrNetworkUnsupported is returned for http and https URIs. Network
// retrieval belongs to the embedding application, which can supply its
// own Fetcher.
var ErrNetworkUnsupported = errors.New("network fetching is not supported")

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher reads data: URIs and local files, resolving relative URIs
// against a base location.
type DefaultFetcher struct {
	baseURL string
}

// NewFetcher creates a DefaultFetcher with the given base, a file path or
// file: URL of the document. Relative URIs passed to Fetch are resolved
// against it.
func NewFetcher(baseURL string) *DefaultFetcher {
	return &DefaultFetcher{baseURL: baseURL}
}

// Fetch retrieves the resource at the given URI.
func (f *DefaultFetcher) Fetch(uri string) ([]byte, string, error) {
	if strings.HasPrefix(uri, "data:") {
		return decodeDataURI(uri)
	}
	resolved, err := ResolveURL(f.baseURL, uri)
	if err != nil {
		return nil, "", err
	}
	switch resolved.Scheme {
	case "", "file":
		return readFile(resolved.Path)
	case "http", "https":
		return nil, "", fmt.Errorf("fetching %s: %w", resolved, ErrNetworkUnsupported)
	default:
		return nil, "", fmt.Errorf("fetching %s: unsupported scheme %q", resolved, resolved.Scheme)
	}
}

// FetchCSS fetches uri with any Fetcher and checks that the result is text.
func FetchCSS(f Fetcher, uri string) (string, error) {
	body, contentType, err := f.Fetch(uri)
	if err != nil {
		return "", err
	}
	// Accept text/css, text/plain, or any text/* content type
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", fmt.Errorf("unexpected content type for CSS: %s", contentType)
	}
	return string(body), nil
}

// ResolveURL resolves a possibly-relative URI against a base location.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) (*url.URL, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", ref, err)
	}
	if base == "" || refURL.IsAbs() {
		return refURL, nil
	}
	baseURL, err := url.Parse(filepath.ToSlash(base))
	if err != nil {
		return nil, fmt.Errorf("parsing base %q: %w", base, err)
	}
	return baseURL.ResolveReference(refURL), nil
}

func readFile(path string) ([]byte, string, error) {
	body, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return body, mime.TypeByExtension(filepath.Ext(path)), nil
}

// decodeDataURI decodes data:[<mediatype>][;base64],<data>.
func decodeDataURI(uri string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI: missing comma")
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if mediaType == "" {
		mediaType = "text/plain;charset=US-ASCII"
	}
	if isBase64 {
		body, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decoding data URI: %w", err)
		}
		return body, mediaType, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding data URI: %w", err)
	}
	return []byte(text), mediaType, nil
}
