package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultFieldName = "file"

type UploadRequest struct {
	URL       string
	FilePath  string
	FieldName string
	Headers   map[string]string
}

// Сырой ответ загрузки: статус и тело, тело разбирает вызывающий код
type UploadResponse struct {
	StatusCode int
	Body       []byte
}

// Upload отправляет файл как multipart/form-data. Статус не проверяем,
// это делает вызывающий код.
func (c *Client) Upload(ctx context.Context, ur UploadRequest) (*UploadResponse, error) {
	field := ur.FieldName
	if field == "" {
		field = DefaultFieldName
	}

	f, err := os.Open(ur.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: open file: %v", ErrRequest, err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: detect type: %v", ErrRequest, err)
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: rewind file: %v", ErrRequest, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filepath.Base(ur.FilePath)))
	h.Set("Content-Type", mt.String())
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("%w: create part: %v", ErrRequest, err)
	}
	if _, err = io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("%w: copy file: %v", ErrRequest, err)
	}
	if err = mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: close multipart: %v", ErrRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ResolveURL(ur.URL), &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrRequest, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req.Header)
	for k, v := range ur.Headers {
		req.Header.Set(k, v)
	}

	body, status, err := c.send(req)
	if err != nil {
		return nil, err
	}

	return &UploadResponse{StatusCode: status, Body: body}, nil
}
