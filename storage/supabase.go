package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// SupabaseStore talks to the Supabase Storage REST API for one bucket.
// Supabase ships no official Go SDK, so this wraps the two endpoints we use:
// POST /object/list/{bucket} and DELETE /object/{bucket}.
type SupabaseStore struct {
	BaseURL    string
	ServiceKey string
	Bucket     string
	Client     *http.Client
}

func NewSupabaseStore() *SupabaseStore {
	return &SupabaseStore{
		BaseURL:    strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		ServiceKey: strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_KEY")),
		Bucket:     envOrDefault("SUPABASE_BUCKET", "property-images"),
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// List returns the entries directly under prefix (non-recursive). Supabase
// pages listings, so we walk offsets until a short page comes back.
func (s *SupabaseStore) List(ctx context.Context, prefix string) ([]ObjectEntry, error) {
	const pageSize = 100

	var all []ObjectEntry
	for offset := 0; ; offset += pageSize {
		body, err := json.Marshal(listRequest{Prefix: prefix, Limit: pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}

		endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", s.BaseURL, s.Bucket)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		s.setHeaders(req)

		var page []ObjectEntry
		if err := s.do(req, &page); err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}

		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

type removeRequest struct {
	Prefixes []string `json:"prefixes"`
}

// Remove deletes the given object keys in one call. Supabase reports only an
// aggregate status for the batch, not per-object results.
func (s *SupabaseStore) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	body, err := json.Marshal(removeRequest{Prefixes: keys})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s", s.BaseURL, s.Bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.setHeaders(req)

	if err := s.do(req, nil); err != nil {
		return fmt.Errorf("remove %d objects: %w", len(keys), err)
	}
	return nil
}

func (s *SupabaseStore) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)
	req.Header.Set("apikey", s.ServiceKey)
}

func (s *SupabaseStore) do(req *http.Request, out interface{}) error {
	res, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("storage api status %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode storage response: %w", err)
		}
	}
	return nil
}
