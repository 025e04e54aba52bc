package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Sentinel errors for OpenAI API failures.
var (
	ErrUnreachable     = errors.New("openai unreachable")
	ErrRequestFailed   = errors.New("openai request failed")
	ErrTimeout         = errors.New("openai request timeout")
	ErrInvalidResponse = errors.New("openai returned invalid response")
)

// Client is the subset of the OpenAI API used for fine-tuning.
type Client interface {
	UploadFile(ctx context.Context, filename string, content []byte) (string, error)
	CreateJob(ctx context.Context, req CreateJobRequest) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
}

// CreateJobRequest is the body of POST /v1/fine_tuning/jobs.
type CreateJobRequest struct {
	Model           string           `json:"model"`
	TrainingFile    string           `json:"training_file"`
	ValidationFile  string           `json:"validation_file,omitempty"`
	Suffix          string           `json:"suffix,omitempty"`
	Seed            *int64           `json:"seed,omitempty"`
	Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
}

type Hyperparameters struct {
	NEpochs                *int64   `json:"n_epochs,omitempty"`
	LearningRateMultiplier *float64 `json:"learning_rate_multiplier,omitempty"`
	BatchSize              *int64   `json:"batch_size,omitempty"`
}

// Job is the fine-tuning job object returned by the API.
type Job struct {
	ID             string    `json:"id"`
	Model          string    `json:"model"`
	Status         string    `json:"status"`
	FineTunedModel string    `json:"fine_tuned_model"`
	Error          *JobError `json:"error"`
}

type JobError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPClient implements Client using the OpenAI REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a new OpenAI HTTP client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) UploadFile(ctx context.Context, filename string, content []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("purpose", "fine-tune"); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &body)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	var file struct {
		ID string `json:"id"`
	}
	if err := c.do(httpReq, &file); err != nil {
		return "", err
	}
	if file.ID == "" {
		return "", fmt.Errorf("%w: file upload returned no id", ErrInvalidResponse)
	}
	return file.ID, nil
}

func (c *HTTPClient) CreateJob(ctx context.Context, req CreateJobRequest) (*Job, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding job request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/fine_tuning/jobs", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var job Job
	if err := c.do(httpReq, &job); err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, fmt.Errorf("%w: job creation returned no id", ErrInvalidResponse)
	}
	return &job, nil
}

func (c *HTTPClient) GetJob(ctx context.Context, id string) (*Job, error) {
	u := fmt.Sprintf("%s/v1/fine_tuning/jobs/%s", c.baseURL, url.PathEscape(id))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	var job Job
	if err := c.do(httpReq, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// do sends req and decodes a 200 response into out.
func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, apiErrorMessage(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// apiErrorMessage extracts error.message from an OpenAI error body.
func apiErrorMessage(body io.Reader) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&e); err != nil || e.Error.Message == "" {
		return "no error message"
	}
	return e.Error.Message
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
