package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sumerqa/chatkit/schema"
)

// maxDocumentSize matches the service-side upload cap.
const maxDocumentSize = 15 << 20

// UploadDocument attaches a PDF to a chat and returns the stored file id.
// Only .pdf files up to 15 MiB are accepted; both limits are enforced before
// anything goes over the wire.
func (c *Client) UploadDocument(ctx context.Context, chatID, filename string, document io.Reader) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "", errors.Errorf("only PDF files allowed, got %q", filename)
	}
	data, err := io.ReadAll(io.LimitReader(document, maxDocumentSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxDocumentSize {
		return "", errors.Errorf("document exceeds %v bytes", maxDocumentSize)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err = part.Write(data); err != nil {
		return "", err
	}
	if err = writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chats/"+url.PathEscape(chatID)+"/upload", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	result := &schema.UploadResult{}
	if err = c.do(req, result); err != nil {
		return "", err
	}
	c.logger.Debug().Str("chat_id", chatID).Str("file_id", result.FileID).Msg("document uploaded")
	return result.FileID, nil
}
