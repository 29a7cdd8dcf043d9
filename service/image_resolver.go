package service

import (
	"encoding/json"
	"net/url"
	"strings"

	"catalogo-tienda/models"
)

const driveScheme = "drive://"

// ResolveImage returns the canonical image source of a product: the first
// non-empty, well-formed entry of its image reference. Legacy rows store
// the list as a JSON-encoded string, which is unpacked here.
func ResolveImage(p models.Product) (string, bool) {
	return ResolveImageRef(p.Image)
}

// ResolveImageRef resolves a raw image reference
func ResolveImageRef(ref models.ImageRef) (string, bool) {
	for _, v := range ref.Values {
		if src, ok := resolveValue(v, 0); ok {
			return src, true
		}
	}
	return "", false
}

func resolveValue(v string, depth int) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if strings.HasPrefix(v, "[") && depth == 0 {
		var raw []any
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			return "", false
		}
		for _, item := range raw {
			if s, ok := item.(string); ok {
				if src, ok := resolveValue(s, depth+1); ok {
					return src, true
				}
			}
		}
		return "", false
	}
	if isWellFormedSource(v) {
		return v, true
	}
	return "", false
}

func isWellFormedSource(v string) bool {
	switch {
	case strings.HasPrefix(v, "data:"):
		return strings.HasPrefix(strings.ToLower(v), "data:image/") && strings.Contains(v, ",")
	case strings.HasPrefix(v, driveScheme):
		return len(v) > len(driveScheme)
	case strings.HasPrefix(v, "/"):
		return !strings.HasPrefix(v, "//")
	}
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// DriveFileID extracts a Google Drive file id from drive://<id> references
// and drive.google.com links (?id=<id> or /file/d/<id>/...).
func DriveFileID(src string) (string, bool) {
	if id, ok := strings.CutPrefix(src, driveScheme); ok {
		return id, id != ""
	}
	u, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "drive.google.com" && host != "docs.google.com" {
		return "", false
	}
	if id := u.Query().Get("id"); id != "" {
		return id, true
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "file" && parts[i+1] == "d" && parts[i+2] != "" {
			return parts[i+2], true
		}
	}
	return "", false
}
