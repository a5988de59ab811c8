// Package ocr extracts text from bill images through the OCR.space API.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hqtran/billscan/internal/domain/common"
)

const (
	// DefaultEndpoint is the hosted OCR.space parse endpoint.
	DefaultEndpoint = "https://api.ocr.space/parse/image"

	// maxImageBytes is the provider's payload limit on the free tier.
	maxImageBytes = 1 << 20

	// minTextRunes below which a response counts as no text at all.
	minTextRunes = 5
)

var (
	ErrImageTooLarge   = errors.New("image exceeds provider size limit")
	ErrUnreadableImage = errors.New("provider could not read the image")
)

var tracer = otel.Tracer("billscan/ocr")

// Client calls the OCR.space parse endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
	logger     *slog.Logger
}

func NewClient(apiKey, endpoint string, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		endpoint:   endpoint,
		logger:     logger,
	}
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	OCRExitCode           int             `json:"OCRExitCode"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// ExtractText uploads the image and returns the recognized text with
// whitespace normalized. Distinct failure modes surface as sentinel errors
// so callers can map them to precise responses.
func (c *Client) ExtractText(ctx context.Context, image []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "ocr.ExtractText")
	defer span.End()
	span.SetAttributes(attribute.Int("ocr.image_bytes", len(image)))

	if len(image) == 0 {
		return "", fmt.Errorf("extract text: %w", common.ErrBadRequest)
	}
	if len(image) > maxImageBytes {
		return "", ErrImageTooLarge
	}

	body, contentType, err := c.buildForm(image)
	if err != nil {
		return "", fmt.Errorf("build ocr form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ocr provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr provider returned status %d", resp.StatusCode)
	}

	var parsed parseResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}

	if parsed.IsErroredOnProcessing || parsed.OCRExitCode != 1 {
		c.logger.WarnContext(ctx, "ocr provider rejected image",
			slog.Int("exit_code", parsed.OCRExitCode),
			slog.String("error", string(parsed.ErrorMessage)))
		return "", ErrUnreadableImage
	}

	var b strings.Builder
	for _, r := range parsed.ParsedResults {
		b.WriteString(r.ParsedText)
		b.WriteString("\n")
	}
	text := collapseWhitespace(b.String())
	if utf8.RuneCountInString(text) < minTextRunes {
		return "", common.ErrNoText
	}

	c.logger.DebugContext(ctx, "ocr text extracted", slog.Int("chars", len(text)))
	return text, nil
}

func (c *Client) buildForm(image []byte) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	dataURI := "data:" + http.DetectContentType(image) + ";base64," +
		base64.StdEncoding.EncodeToString(image)

	fields := map[string]string{
		"apikey":            c.apiKey,
		"base64Image":       dataURI,
		"language":          "auto",
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		"OCREngine":         "2",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
