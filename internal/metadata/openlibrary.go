package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://openlibrary.org"
	DefaultUserAgent = "BookAlchemy/1.0 (academic project)"
	DefaultTimeout   = 8 * time.Second
)

// ClientConfig holds everything the OpenLibrary client needs to talk to the
// API. HTTPClient may be replaced to substitute the transport in tests.
type ClientConfig struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// DefaultClientConfig returns the production OpenLibrary settings.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
	}
}

// OpenLibraryClient resolves book summaries from the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

// NewOpenLibraryClient creates a client from cfg, filling unset fields with
// defaults.
func NewOpenLibraryClient(cfg ClientConfig) *OpenLibraryClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &OpenLibraryClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		timeout:    cfg.Timeout,
	}
}

// FetchSummary looks up the edition for isbn and returns its description,
// falling back to the linked work. Any failure yields an empty string.
func (c *OpenLibraryClient) FetchSummary(ctx context.Context, isbn string) string {
	isbn = NormalizeISBN(isbn)
	if isbn == "" {
		return ""
	}

	var edition openLibraryEdition
	if err := c.getJSON(ctx, fmt.Sprintf("%s/isbn/%s.json", c.baseURL, isbn), &edition); err != nil {
		log.Printf("[metadata] edition lookup for %s failed: %v", isbn, err)
		return ""
	}

	if summary := edition.Description.Text(); summary != "" {
		return summary
	}

	workKey := edition.workKey()
	if workKey == "" {
		return ""
	}

	var work openLibraryWork
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s.json", c.baseURL, workKey), &work); err != nil {
		log.Printf("[metadata] work lookup %s for %s failed: %v", workKey, isbn, err)
		return ""
	}

	return work.Description.Text()
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, url string, target any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// NormalizeISBN strips surrounding whitespace and removes hyphens and spaces.
func NormalizeISBN(isbn string) string {
	isbn = strings.TrimSpace(isbn)
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	return isbn
}

// OpenLibrary API response types (internal)

type openLibraryEdition struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Description Description     `json:"description"`
	Works       json.RawMessage `json:"works"`
}

type openLibraryWork struct {
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	Description Description `json:"description"`
}

// workKey returns the key of the first work reference, or "" when works is
// missing, empty, or not a list of objects carrying a string key.
func (e *openLibraryEdition) workKey() string {
	if len(e.Works) == 0 {
		return ""
	}
	var works []json.RawMessage
	if err := json.Unmarshal(e.Works, &works); err != nil || len(works) == 0 {
		return ""
	}
	var first struct {
		Key *string `json:"key"`
	}
	if err := json.Unmarshal(works[0], &first); err != nil || first.Key == nil {
		return ""
	}
	return strings.TrimSpace(*first.Key)
}
