package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"catalogo-tienda/models"
)

// ImageFetcher returns the raw bytes behind a resolved image source
type ImageFetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// SourceFetcher dispatches on the source kind: data URIs are decoded in
// place, Drive references go through the Drive API and everything else is
// an HTTP GET. Root-relative paths are resolved against baseURL.
type SourceFetcher struct {
	client   *http.Client
	baseURL  string
	maxBytes int64
	drive    DriveOpener
}

// NewSourceFetcher creates a fetcher. drive may be nil, in which case Drive
// links are fetched over plain HTTP and drive:// references fail.
func NewSourceFetcher(client *http.Client, baseURL string, maxBytes int64, drive DriveOpener) *SourceFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &SourceFetcher{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		drive:    drive,
	}
}

// Fetch implements ImageFetcher. Every error wraps models.ErrImageAcquisition.
func (f *SourceFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	data, err := f.fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrImageAcquisition, err)
	}
	return data, nil
}

func (f *SourceFetcher) fetch(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURI(src)
	}
	if id, ok := DriveFileID(src); ok {
		if f.drive != nil {
			body, err := f.drive.OpenImage(ctx, id)
			if err != nil {
				return nil, err
			}
			defer body.Close()
			return f.readCapped(body)
		}
		if strings.HasPrefix(src, driveScheme) {
			return nil, fmt.Errorf("drive reference %s but no drive client configured", src)
		}
	}

	// If src is already a full URL, use it; otherwise prepend baseURL
	fullURL := src
	if strings.HasPrefix(src, "/") {
		fullURL = f.baseURL + src
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}
	return f.readCapped(resp.Body)
}

func (f *SourceFetcher) readCapped(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("image larger than %d bytes", f.maxBytes)
	}
	return data, nil
}

// decodeDataURI decodes data:[<mediatype>][;base64],<data>
func decodeDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("invalid base64 in data uri: %w", err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid data uri payload: %w", err)
	}
	return []byte(data), nil
}
