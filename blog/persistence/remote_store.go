package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/edublog/edublog/blog/domain"
)

var _ domain.BlobStore = (*RemoteBlobStore)(nil)

const defaultRemoteTimeout = 5 * time.Second

// RemoteBlobStore mirrors the post collection to a JSON bin service over
// HTTP. The bin holds one JSON array; reads come back wrapped as
// {"record": [...]}, writes replace the whole array. Any non-2xx status or
// malformed body maps to domain.ErrRemoteUnavailable.
type RemoteBlobStore struct {
	baseURL string
	binID   string
	apiKey  string
	client  *http.Client
}

// RemoteConfig configures the blob store client. The API key is a static
// header credential; which bin service sits behind BaseURL is a deployment
// detail.
type RemoteConfig struct {
	BaseURL string
	BinID   string
	APIKey  string
	Timeout time.Duration
}

// NewRemoteBlobStore creates the HTTP client for the remote mirror.
func NewRemoteBlobStore(cfg RemoteConfig) *RemoteBlobStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}

	return &RemoteBlobStore{
		baseURL: cfg.BaseURL,
		binID:   cfg.BinID,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type recordEnvelope struct {
	Record []domain.Post `json:"record"`
}

// Load fetches the full post array from the bin.
func (r *RemoteBlobStore) Load(ctx context.Context) ([]domain.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.binURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build remote read request: %w", err)
	}
	req.Header.Set("X-Master-Key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: remote read returned status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}

	var envelope recordEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed remote body: %v", domain.ErrRemoteUnavailable, err)
	}

	return envelope.Record, nil
}

// Save replaces the bin's array with posts. There are no partial updates.
func (r *RemoteBlobStore) Save(ctx context.Context, posts []domain.Post) error {
	if posts == nil {
		posts = []domain.Post{}
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode posts for remote write: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.binURL(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build remote write request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: remote write returned status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	return nil
}

func (r *RemoteBlobStore) binURL() string {
	return r.baseURL + "/" + r.binID
}
