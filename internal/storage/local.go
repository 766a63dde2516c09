package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
)

// LocalAdapter stores photos under a per-survey directory tree:
//
//	{root}/survey-{surveyID}/[photo-checklist-{itemID}-]{timestamp}.{ext}
//
// The full path is the storage key. Historically some callers persisted only
// the bare filename; Delete keeps a fallback scan over all survey directories
// for those legacy records (see Delete).
type LocalAdapter struct {
	root     string
	maxBytes int64
	logger   *logging.Logger
	now      func() time.Time
}

// NewLocalAdapter creates a local filesystem adapter rooted at root.
func NewLocalAdapter(root string, maxBytes int64, logger *logging.Logger) *LocalAdapter {
	return &LocalAdapter{
		root:     root,
		maxBytes: maxBytes,
		logger:   logger,
		now:      time.Now,
	}
}

// Store writes the file under the survey's directory. Filename uniqueness
// within the directory is guaranteed by the millisecond timestamp plus a
// retry counter for same-millisecond collisions.
func (a *LocalAdapter) Store(ctx context.Context, r io.Reader, meta UploadMeta) (string, error) {
	if err := validateUpload(meta, a.maxBytes); err != nil {
		return "", err
	}

	dir := filepath.Join(a.root, fmt.Sprintf("survey-%d", meta.SurveyID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Storage("store", err)
	}

	marker := ""
	if meta.ChecklistItemID != nil {
		marker = fmt.Sprintf("photo-checklist-%d-", *meta.ChecklistItemID)
	}
	ext := strings.ToLower(filepath.Ext(meta.OriginalFilename))

	stamp := a.now().UnixMilli()
	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("%s%d%s", marker, stamp+int64(attempt), ext)
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			if attempt < 100 {
				continue
			}
			return "", apperr.Storage("store", fmt.Errorf("could not find a unique filename in %s", dir))
		}
		if err != nil {
			return "", apperr.Storage("store", err)
		}

		// LimitReader guards against a size lied about in the multipart
		// header; one extra byte flags the overflow.
		n, err := io.Copy(f, io.LimitReader(r, a.maxBytes+1))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			return "", apperr.Storage("store", err)
		}
		if n > a.maxBytes {
			os.Remove(path)
			return "", apperr.Validation("file too large (limit %d bytes)", a.maxBytes)
		}

		return path, nil
	}
}

// ResolveURL returns the file path for the static/stream handler to serve.
func (a *LocalAdapter) ResolveURL(ctx context.Context, key string) (ResolvedURL, error) {
	if _, err := os.Stat(key); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ResolvedURL{}, apperr.NotFound("photo file", key)
		}
		return ResolvedURL{}, apperr.Storage("resolve", err)
	}
	return ResolvedURL{Mode: ModeFile, Location: key}, nil
}

// Delete removes the file for keyOrPath.
//
// A path (anything containing a separator) is deleted directly after checking
// it lives under the uploads root. A bare filename triggers the legacy
// fallback: every survey-* subdirectory is scanned for a file of that name
// and the first match is removed. No match anywhere is logged and treated as
// success; deleting a file that is already gone is not an error.
func (a *LocalAdapter) Delete(ctx context.Context, keyOrPath string) error {
	if strings.ContainsRune(keyOrPath, filepath.Separator) {
		if !a.underRoot(keyOrPath) {
			return apperr.Validation("path %q is outside the uploads root", keyOrPath)
		}
		err := os.Remove(keyOrPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return apperr.Storage("delete", err)
		}
		return nil
	}

	// Legacy record: only the filename was persisted. Scan per-survey
	// directories for it. O(number of survey directories), synchronous.
	entries, err := os.ReadDir(a.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.logger.Warn(fmt.Sprintf("uploads root %s does not exist, nothing to delete", a.root))
			return nil
		}
		return apperr.Storage("delete", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "survey-") {
			continue
		}
		candidate := filepath.Join(a.root, entry.Name(), keyOrPath)
		err := os.Remove(candidate)
		if err == nil {
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return apperr.Storage("delete", err)
		}
	}

	a.logger.Warn(fmt.Sprintf("photo file %q not found in any survey directory, treating delete as success", keyOrPath))
	return nil
}

// underRoot reports whether path is inside the uploads root, rejecting
// traversal via "..".
func (a *LocalAdapter) underRoot(path string) bool {
	rel, err := filepath.Rel(a.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
