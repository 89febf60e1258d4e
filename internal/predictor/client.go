package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/BerylCAtieno/file-query-client/internal/models"
	"github.com/BerylCAtieno/file-query-client/internal/utils"

	"golang.org/x/time/rate"
)

var (
	ErrUnknownFileType = errors.New("no endpoint for file type")
)

type Predictor interface {
	Predict(ctx context.Context, fileType models.FileType, file models.File, query string) (string, error)
}

var _ Predictor = &Client{}

type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	logger  *utils.Logger
}

func New(baseURL string, logger *utils.Logger, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("invalid service url")
	}

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid service url: %w", err)
	}

	if logger == nil {
		logger = utils.NopLogger()
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		logger:  logger,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// Endpoint maps a file type to the path segment of the service that handles it.
func Endpoint(fileType models.FileType) string {
	switch fileType {
	case models.FileTypePDF:
		return "predict_pdf"
	case models.FileTypeTXT:
		return "predict_txt"
	case models.FileTypeCSV:
		return "analyze_csv"
	}
	return ""
}

func (c *Client) URL(fileType models.FileType) string {
	return c.baseURL + "/" + Endpoint(fileType)
}

func (c *Client) Predict(ctx context.Context, fileType models.FileType, file models.File, query string) (string, error) {
	if Endpoint(fileType) == "" {
		return "", fmt.Errorf("%w %q", ErrUnknownFileType, fileType)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, contentType, err := encodeForm(fileType, file, query)
	if err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}

	target := c.URL(fileType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Sending prediction request", "url", target, "filename", file.Name, "size", len(file.Content))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", convertError(resp.StatusCode, data)
	}

	var result models.PredictResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if result.Result == nil {
		return "", nil
	}

	return *result.Result, nil
}

func encodeForm(fileType models.FileType, file models.File, query string) (io.Reader, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = fileType.ContentType()
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}

	if _, err := part.Write(file.Content); err != nil {
		return nil, "", err
	}

	if err := w.WriteField("query", query); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &b, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Detail)
}

func convertError(status int, data []byte) error {
	detail := strings.TrimSpace(string(data))

	var payload struct {
		Detail any `json:"detail"`
	}

	if json.Unmarshal(data, &payload) == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			detail = s
		}
	}

	if detail == "" {
		detail = http.StatusText(status)
	}

	return &StatusError{StatusCode: status, Detail: detail}
}
