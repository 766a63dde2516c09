package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
)

// s3Client is the slice of the S3 API the adapter uses. Hidden behind an
// interface so tests run against a fake instead of the network.
type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3Presigner generates short-lived GET URLs.
type s3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ObjectStoreAdapter stores photos in an S3 bucket under keys of the shape
//
//	surveys/id-{surveyID}/[photo-checklist-{itemID}-]{timestamp}.jpg
//
// Images are normalized to JPEG on write, so every object key ends in .jpg.
// ResolveURL returns a presigned GET; buckets can stay private.
type ObjectStoreAdapter struct {
	client   s3Client
	presign  s3Presigner
	bucket   string
	region   string
	ttl      time.Duration
	maxBytes int64
	logger   *logging.Logger
	now      func() time.Time
}

// NewObjectStoreAdapter creates an S3-backed adapter.
func NewObjectStoreAdapter(client s3Client, presign s3Presigner, bucket, region string, ttl time.Duration, maxBytes int64, logger *logging.Logger) *ObjectStoreAdapter {
	return &ObjectStoreAdapter{
		client:   client,
		presign:  presign,
		bucket:   bucket,
		region:   region,
		ttl:      ttl,
		maxBytes: maxBytes,
		logger:   logger,
		now:      time.Now,
	}
}

// buildObjectKey computes the deterministic key for an upload. A survey id
// that could not be determined degrades to the "unknown" sentinel instead of
// failing; only traceability suffers.
func buildObjectKey(surveyID int, checklistItemID *int, stamp int64) string {
	survey := "unknown"
	if surveyID > 0 {
		survey = fmt.Sprintf("%d", surveyID)
	}
	marker := ""
	if checklistItemID != nil {
		marker = fmt.Sprintf("photo-checklist-%d-", *checklistItemID)
	}
	return fmt.Sprintf("surveys/id-%s/%s%d.jpg", survey, marker, stamp)
}

// Store validates, normalizes to JPEG and uploads the file.
func (a *ObjectStoreAdapter) Store(ctx context.Context, r io.Reader, meta UploadMeta) (string, error) {
	if err := validateUpload(meta, a.maxBytes); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(io.LimitReader(r, a.maxBytes+1))
	if err != nil {
		return "", apperr.Storage("store", err)
	}
	if int64(len(raw)) > a.maxBytes {
		return "", apperr.Validation("file too large (limit %d bytes)", a.maxBytes)
	}

	body, err := normalizeJPEG(raw, normalizeContentType(meta.ContentType))
	if err != nil {
		return "", apperr.Validation("could not decode image: %v", err)
	}

	key := buildObjectKey(meta.SurveyID, meta.ChecklistItemID, a.now().UnixMilli())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", apperr.Storage("store", err)
	}
	return key, nil
}

// ResolveURL returns a presigned GET URL valid for the configured TTL.
func (a *ObjectStoreAdapter) ResolveURL(ctx context.Context, key string) (ResolvedURL, error) {
	req, err := a.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = a.ttl
	})
	if err != nil {
		return ResolvedURL{}, apperr.Storage("resolve", err)
	}
	return ResolvedURL{Mode: ModeRedirect, Location: req.URL}, nil
}

// Delete removes the object for keyOrPath. Full bucket URLs (some legacy
// rows stored those) are reduced to their key first. S3 object deletion is
// idempotent; a missing key already reports success. Any other backend error
// propagates.
func (a *ObjectStoreAdapter) Delete(ctx context.Context, keyOrPath string) error {
	key, err := a.extractKey(keyOrPath)
	if err != nil {
		return err
	}
	_, err = a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperr.Storage("delete", err)
	}
	return nil
}

// extractKey reduces a full object URL to its key, and passes bare keys
// through untouched. Handles both virtual-hosted style
// (bucket.s3.region.amazonaws.com/key) and path style (host/bucket/key).
func (a *ObjectStoreAdapter) extractKey(keyOrURL string) (string, error) {
	if !strings.HasPrefix(keyOrURL, "http://") && !strings.HasPrefix(keyOrURL, "https://") {
		return keyOrURL, nil
	}
	u, err := url.Parse(keyOrURL)
	if err != nil {
		return "", apperr.Validation("malformed object URL %q", keyOrURL)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if strings.HasPrefix(key, a.bucket+"/") {
		// path-style URL: first path segment is the bucket
		key = strings.TrimPrefix(key, a.bucket+"/")
	}
	if key == "" {
		return "", apperr.Validation("object URL %q has no key", keyOrURL)
	}
	return key, nil
}

// normalizeJPEG re-encodes PNG and GIF input as JPEG and passes JPEG input
// through unchanged.
func normalizeJPEG(raw []byte, contentType string) ([]byte, error) {
	if contentType == "image/jpeg" {
		return raw, nil
	}

	var (
		img image.Image
		err error
	)
	switch contentType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(raw))
	case "image/gif":
		img, err = gif.Decode(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
