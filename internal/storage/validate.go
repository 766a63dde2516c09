package storage

import (
	"path/filepath"
	"strings"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
)

// allowedTypes maps accepted image content types to their canonical file
// extensions. Only photographic evidence is accepted; anything else is a
// ValidationError before a single byte is written.
var allowedTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
}

// validateUpload checks the declared content type, the filename extension,
// their agreement (defense against spoofed extensions), and the size cap.
func validateUpload(meta UploadMeta, maxBytes int64) error {
	if meta.OriginalFilename == "" {
		return apperr.Validation("missing filename")
	}
	if meta.SizeBytes > maxBytes {
		return apperr.Validation("file too large: %d bytes (limit %d)", meta.SizeBytes, maxBytes)
	}

	contentType := normalizeContentType(meta.ContentType)
	exts, ok := allowedTypes[contentType]
	if !ok {
		return apperr.Validation("unsupported content type %q (only JPEG, PNG and GIF images are accepted)", meta.ContentType)
	}

	ext := strings.ToLower(filepath.Ext(meta.OriginalFilename))
	for _, allowed := range exts {
		if ext == allowed {
			return nil
		}
	}
	return apperr.Validation("file extension %q does not match declared content type %q", ext, meta.ContentType)
}

// normalizeContentType strips parameters ("image/jpeg; charset=binary") and
// lowercases the media type.
func normalizeContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// extensionFor returns the canonical extension for a validated content type.
func extensionFor(contentType string) string {
	exts, ok := allowedTypes[normalizeContentType(contentType)]
	if !ok || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}
