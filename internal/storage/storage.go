// Package storage abstracts photo file storage behind a single Adapter
// contract with two interchangeable strategies: a local filesystem tree and
// an S3 object store. Which one runs is a configuration switch; callers never
// branch on the backend.
package storage

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/config"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
)

// UploadMeta describes an incoming file. SurveyID and ChecklistItemID are
// embedded into the generated key so stored files can be correlated with
// domain entities by eye, without a database lookup.
type UploadMeta struct {
	SurveyID         int
	ChecklistItemID  *int
	OriginalFilename string
	ContentType      string
	SizeBytes        int64
}

// URLMode tells the HTTP layer how to serve a resolved location.
type URLMode string

const (
	// ModeFile means Location is a local path to stream directly.
	ModeFile URLMode = "file"
	// ModeRedirect means Location is a URL to redirect the client to.
	ModeRedirect URLMode = "redirect"
)

// ResolvedURL is the backend-independent answer to "how do I fetch this key".
// Object-store locations are short-lived presigned URLs; callers must not
// assume permanence beyond a session.
type ResolvedURL struct {
	Mode     URLMode
	Location string
}

// Adapter is the storage contract both strategies implement.
type Adapter interface {
	// Store validates and persists the file, returning the full storage
	// key. The key is persisted on the photo row; deletion by full key
	// never needs a search.
	Store(ctx context.Context, r io.Reader, meta UploadMeta) (key string, err error)

	// ResolveURL turns a stored key into something fetchable.
	ResolveURL(ctx context.Context, key string) (ResolvedURL, error)

	// Delete removes the underlying file. Deleting a file that no longer
	// exists is success (delete is idempotent); any other backend failure
	// propagates as a StorageError.
	Delete(ctx context.Context, keyOrPath string) error
}

// New builds the adapter selected by cfg.StorageStrategy.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (Adapter, error) {
	switch cfg.StorageStrategy {
	case config.StorageLocal:
		return NewLocalAdapter(cfg.UploadsRoot, cfg.MaxUploadBytes, logger), nil
	case config.StorageObjectStore:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return NewObjectStoreAdapter(client, s3.NewPresignClient(client), cfg.S3Bucket, cfg.S3Region, cfg.PresignTTL, cfg.MaxUploadBytes, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage strategy %q", cfg.StorageStrategy)
	}
}
