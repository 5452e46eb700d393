package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"artisanmart/internal/forms"
	"artisanmart/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Upload types accepted by POST /upload.
const (
	UploadProfile      = "profile"
	UploadProductPhoto = "product photo"
	UploadProductVideo = "product video"
)

var uploadFolders = map[string]string{
	UploadProfile:      "profile",
	UploadProductPhoto: "photos",
	UploadProductVideo: "videos",
}

// Upload is one file of an upload batch.
type Upload struct {
	Name string
	Data []byte
}

// UploadService validates uploaded files and stores them.
type UploadService struct {
	store     storage.ObjectStorage
	publicURL string
}

// NewUploadService creates an UploadService whose URLs are rooted at publicURL.
func NewUploadService(store storage.ObjectStorage, publicURL string) *UploadService {
	return &UploadService{
		store:     store,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Store checks every file of the batch before storing any and returns the
// public URLs in input order.
func (s *UploadService) Store(ctx context.Context, uploadType string, files []Upload) ([]string, error) {
	uploadType = strings.ToLower(strings.TrimSpace(uploadType))
	folder, ok := uploadFolders[uploadType]
	if !ok {
		return nil, ErrInvalidUploadType
	}

	kinds := make([]*mimetype.MIME, len(files))
	for i, f := range files {
		if int64(len(f.Data)) > forms.MaxFileSize {
			return nil, ErrFileTooLarge
		}
		mtype := mimetype.Detect(f.Data)
		if err := checkType(uploadType, mtype); err != nil {
			return nil, err
		}
		kinds[i] = mtype
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), kinds[i].Extension())
		contentType := kinds[i].String()
		if err := s.store.Put(ctx, key, bytes.NewReader(f.Data), int64(len(f.Data)), contentType); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", f.Name, err)
		}
		urls = append(urls, s.publicURL+"/files/"+key)
	}
	return urls, nil
}

// Open returns a stored file.
func (s *UploadService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.store.Get(ctx, key)
}

func checkType(uploadType string, mtype *mimetype.MIME) error {
	base, _, _ := strings.Cut(mtype.String(), ";")
	if uploadType == UploadProductVideo {
		for _, t := range forms.AcceptedVideoTypes {
			if base == t {
				return nil
			}
		}
		return &UnsupportedFileError{ContentType: base, Allowed: "MP4, WebM and QuickTime videos"}
	}
	for _, t := range forms.AcceptedImageTypes {
		if base == t {
			return nil
		}
	}
	return &UnsupportedFileError{ContentType: base, Allowed: "JPEG, PNG and WebP images"}
}

func marshalEvent(event string, payload map[string]interface{}) ([]byte, error) {
	body := map[string]interface{}{
		"event": event,
		"at":    time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range payload {
		body[k] = v
	}
	return json.Marshal(body)
}
