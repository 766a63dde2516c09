package storage

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
)

// fakeS3 records the last Put/Delete inputs instead of talking to a bucket.
type fakeS3 struct {
	putInput    *s3.PutObjectInput
	putBody     []byte
	deleteInput *s3.DeleteObjectInput
	putErr      error
	deleteErr   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = params
	if params.Body != nil {
		body, err := io.ReadAll(params.Body)
		if err != nil {
			return nil, err
		}
		f.putBody = body
	}
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleteInput = params
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

// fakePresigner returns a canned URL and captures the presign options.
type fakePresigner struct {
	url     string
	input   *s3.GetObjectInput
	expires time.Duration
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.input = params
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: f.url, Method: "GET"}, nil
}

func newTestObjectStore(client *fakeS3, presign *fakePresigner) *ObjectStoreAdapter {
	adapter := NewObjectStoreAdapter(client, presign, "survey-photos", "us-east-1", 15*time.Minute, 1<<20, discardLogger())
	adapter.now = func() time.Time { return time.UnixMilli(1754128800000) }
	return adapter
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func tinyJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))
	return buf.Bytes()
}

// TestBuildObjectKey verifies the deterministic key layout, the checklist
// marker and the unknown-survey sentinel.
func TestBuildObjectKey(t *testing.T) {
	tests := []struct {
		name            string
		surveyID        int
		checklistItemID *int
		expected        string
	}{
		{
			name:     "plain survey photo",
			surveyID: 5,
			expected: "surveys/id-5/1754128800000.jpg",
		},
		{
			name:            "checklist-bound photo",
			surveyID:        5,
			checklistItemID: itemIDPtr(42),
			expected:        "surveys/id-5/photo-checklist-42-1754128800000.jpg",
		},
		{
			name:     "survey id not determinable",
			surveyID: 0,
			expected: "surveys/id-unknown/1754128800000.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildObjectKey(tt.surveyID, tt.checklistItemID, 1754128800000))
		})
	}
}

// TestObjectStoreAdapter_Store_JPEGPassthrough verifies that JPEG input is
// uploaded byte-for-byte, with the content type pinned to image/jpeg.
func TestObjectStoreAdapter_Store_JPEGPassthrough(t *testing.T) {
	client := &fakeS3{}
	adapter := newTestObjectStore(client, &fakePresigner{})
	raw := tinyJPEG(t)

	key, err := adapter.Store(context.Background(), bytes.NewReader(raw), UploadMeta{
		SurveyID:         5,
		OriginalFilename: "hull.jpg",
		ContentType:      "image/jpeg",
		SizeBytes:        int64(len(raw)),
	})

	require.NoError(t, err)
	assert.Equal(t, "surveys/id-5/1754128800000.jpg", key)
	require.NotNil(t, client.putInput)
	assert.Equal(t, "survey-photos", aws.ToString(client.putInput.Bucket))
	assert.Equal(t, key, aws.ToString(client.putInput.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(client.putInput.ContentType))
	assert.Equal(t, raw, client.putBody, "JPEG input must not be re-encoded")
}

// TestObjectStoreAdapter_Store_NormalizesPNG verifies PNG input is re-encoded
// as JPEG before upload, so every stored object really is a .jpg.
func TestObjectStoreAdapter_Store_NormalizesPNG(t *testing.T) {
	client := &fakeS3{}
	adapter := newTestObjectStore(client, &fakePresigner{})
	raw := tinyPNG(t)

	key, err := adapter.Store(context.Background(), bytes.NewReader(raw), UploadMeta{
		SurveyID:         5,
		ChecklistItemID:  itemIDPtr(42),
		OriginalFilename: "deck.png",
		ContentType:      "image/png",
		SizeBytes:        int64(len(raw)),
	})

	require.NoError(t, err)
	assert.Equal(t, "surveys/id-5/photo-checklist-42-1754128800000.jpg", key)
	assert.Equal(t, "image/jpeg", aws.ToString(client.putInput.ContentType))

	_, err = jpeg.Decode(bytes.NewReader(client.putBody))
	assert.NoError(t, err, "uploaded body must decode as JPEG")
}

// TestObjectStoreAdapter_Store_UndecodableImage verifies that a file claiming
// to be PNG but not decodable is rejected before any upload.
func TestObjectStoreAdapter_Store_UndecodableImage(t *testing.T) {
	client := &fakeS3{}
	adapter := newTestObjectStore(client, &fakePresigner{})

	_, err := adapter.Store(context.Background(), bytes.NewReader([]byte("not a png")), UploadMeta{
		SurveyID:         5,
		OriginalFilename: "deck.png",
		ContentType:      "image/png",
		SizeBytes:        9,
	})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Nil(t, client.putInput, "nothing may be uploaded for an undecodable image")
}

// TestObjectStoreAdapter_ResolveURL verifies the presigned-GET resolution:
// redirect mode, configured TTL, correct bucket and key.
func TestObjectStoreAdapter_ResolveURL(t *testing.T) {
	presign := &fakePresigner{url: "https://survey-photos.s3.us-east-1.amazonaws.com/surveys/id-5/a.jpg?X-Amz-Expires=900"}
	adapter := newTestObjectStore(&fakeS3{}, presign)

	resolved, err := adapter.ResolveURL(context.Background(), "surveys/id-5/a.jpg")

	require.NoError(t, err)
	assert.Equal(t, ModeRedirect, resolved.Mode)
	assert.Equal(t, presign.url, resolved.Location)
	assert.Equal(t, "surveys/id-5/a.jpg", aws.ToString(presign.input.Key))
	assert.Equal(t, 15*time.Minute, presign.expires)
}

// TestObjectStoreAdapter_Delete verifies key extraction for the storage-key
// shapes found in the wild: bare keys, virtual-hosted URLs and path-style
// URLs with a leading bucket segment.
func TestObjectStoreAdapter_Delete(t *testing.T) {
	tests := []struct {
		name        string
		keyOrPath   string
		expectedKey string
		expectedErr bool
	}{
		{
			name:        "bare key",
			keyOrPath:   "surveys/id-5/a.jpg",
			expectedKey: "surveys/id-5/a.jpg",
		},
		{
			name:        "virtual-hosted URL",
			keyOrPath:   "https://survey-photos.s3.us-east-1.amazonaws.com/surveys/id-5/a.jpg",
			expectedKey: "surveys/id-5/a.jpg",
		},
		{
			name:        "path-style URL",
			keyOrPath:   "https://s3.us-east-1.amazonaws.com/survey-photos/surveys/id-5/a.jpg",
			expectedKey: "surveys/id-5/a.jpg",
		},
		{
			name:        "URL without a key",
			keyOrPath:   "https://survey-photos.s3.us-east-1.amazonaws.com/",
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeS3{}
			adapter := newTestObjectStore(client, &fakePresigner{})

			err := adapter.Delete(context.Background(), tt.keyOrPath)

			if tt.expectedErr {
				var ve *apperr.ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Nil(t, client.deleteInput)
			} else {
				require.NoError(t, err)
				require.NotNil(t, client.deleteInput)
				assert.Equal(t, tt.expectedKey, aws.ToString(client.deleteInput.Key))
				assert.Equal(t, "survey-photos", aws.ToString(client.deleteInput.Bucket))
			}
		})
	}
}
