package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"artisanmart/internal/models"
)

// Upload types understood by POST /upload.
const (
	UploadProductPhoto = "product photo"
	UploadProductVideo = "product video"
	UploadProfile      = "profile"
)

// File is a local file that can be sent in an upload batch.
type File interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

// Upload sends files as one multipart batch and returns the stored URLs in
// the order the files were given.
func (c *Client) Upload(ctx context.Context, uploadType string, files []File) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("upload_type", uploadType); err != nil {
		return nil, fmt.Errorf("failed to write upload_type: %w", err)
	}
	for _, f := range files {
		if err := writeFilePart(mw, f); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.UploadResponse
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	if resp.URLs == nil {
		resp.URLs = []string{}
	}
	return resp.URLs, nil
}

func writeFilePart(mw *multipart.Writer, f File) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name()))
	header.Set("Content-Type", f.ContentType())
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to add %s to upload: %w", f.Name(), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name(), err)
	}
	defer rc.Close()
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name(), err)
	}
	return nil
}
