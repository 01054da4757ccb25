package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var jsonCodec = jsoniter.ConfigFastest

// Catalog lists and mutates book and member records. It is implemented by
// *Client and can be replaced with a fake in tests.
type Catalog interface {
	ListBooks(ctx context.Context) ([]Book, error)
	CreateBook(ctx context.Context, draft BookDraft) (Book, error)
	UpdateBook(ctx context.Context, id int64, draft BookDraft) (Book, error)
	DeleteBook(ctx context.Context, id int64) error
	ListMembers(ctx context.Context) ([]Member, error)
	CreateMember(ctx context.Context, draft MemberDraft) (Member, error)
	UpdateMember(ctx context.Context, id int64, draft MemberDraft) (Member, error)
	DeleteMember(ctx context.Context, id int64) error
}

// Circulator requests borrow and return transitions.
type Circulator interface {
	ActiveBorrowings(ctx context.Context, memberID int64) ([]Borrowing, error)
	Borrow(ctx context.Context, memberID, bookID int64) (Borrowing, error)
	Return(ctx context.Context, borrowingID int64) (Borrowing, error)
}

// Ensure Client implements both interfaces at compile time.
var (
	_ Catalog    = (*Client)(nil)
	_ Circulator = (*Client)(nil)
)

// Client talks to the library backend's REST API. A single failed attempt
// surfaces immediately to the caller; retry policy belongs to the operator.
type Client struct {
	baseURL      *url.URL
	borrowPrefix string
	http         *http.Client
	userAgent    string
	log          zerolog.Logger
}

const (
	defaultBaseURL      = "http://localhost:8080"
	defaultBorrowPrefix = "/loans"
	defaultUserAgent    = "circdesk/0.1"
	requestTimeout      = 10 * time.Second
)

// Option adjusts client construction.
type Option func(*Client)

// WithBorrowPrefix overrides the path prefix for borrowing endpoints.
// Older backend revisions serve them under /loans, newer ones under /borrow.
func WithBorrowPrefix(prefix string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			c.borrowPrefix = trimmed
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a Client for the given backend base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:      base,
		borrowPrefix: defaultBorrowPrefix,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.borrowPrefix = "/" + strings.Trim(c.borrowPrefix, "/")
	return c, nil
}

// ListBooks retrieves the full book collection.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook adds a new title to the catalog.
func (c *Client) CreateBook(ctx context.Context, draft BookDraft) (Book, error) {
	var created Book
	if err := c.do(ctx, http.MethodPost, "/books", draft, &created); err != nil {
		return Book{}, err
	}
	return created, nil
}

// UpdateBook applies a partial update to an existing book.
func (c *Client) UpdateBook(ctx context.Context, id int64, draft BookDraft) (Book, error) {
	var updated Book
	if err := c.do(ctx, http.MethodPut, "/books/"+strconv.FormatInt(id, 10), draft, &updated); err != nil {
		return Book{}, err
	}
	return updated, nil
}

// DeleteBook removes a book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/books/"+strconv.FormatInt(id, 10), nil, nil)
}

// ListMembers retrieves the full member collection.
func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var members []Member
	if err := c.do(ctx, http.MethodGet, "/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// CreateMember registers a new member. The registration date is supplied by
// the client as today's date in yyyy-MM-dd form; the backend treats it as
// immutable afterwards.
func (c *Client) CreateMember(ctx context.Context, draft MemberDraft) (Member, error) {
	if strings.TrimSpace(draft.RegistrationDate) == "" {
		draft.RegistrationDate = FormatDate(time.Now())
	}
	var created Member
	if err := c.do(ctx, http.MethodPost, "/members", draft, &created); err != nil {
		return Member{}, err
	}
	return created, nil
}

// UpdateMember applies a partial update to an existing member. The
// registration date is never sent on updates.
func (c *Client) UpdateMember(ctx context.Context, id int64, draft MemberDraft) (Member, error) {
	draft.RegistrationDate = ""
	var updated Member
	if err := c.do(ctx, http.MethodPut, "/members/"+strconv.FormatInt(id, 10), draft, &updated); err != nil {
		return Member{}, err
	}
	return updated, nil
}

// DeleteMember removes a member record.
func (c *Client) DeleteMember(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/members/"+strconv.FormatInt(id, 10), nil, nil)
}

// ActiveBorrowings retrieves a member's open borrowings.
func (c *Client) ActiveBorrowings(ctx context.Context, memberID int64) ([]Borrowing, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("memberId", strconv.FormatInt(memberID, 10))
	rel := &url.URL{Path: c.borrowPrefix + "/active", RawQuery: values.Encode()}
	var borrowings []Borrowing
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &borrowings); err != nil {
		return nil, err
	}
	return borrowings, nil
}

// Borrow opens a new borrowing for the member and book. The backend enforces
// the loan cap and decrements the book's availability.
func (c *Client) Borrow(ctx context.Context, memberID, bookID int64) (Borrowing, error) {
	body := borrowRequest{MemberID: memberID, BookID: bookID}
	var created Borrowing
	if err := c.do(ctx, http.MethodPost, c.borrowPrefix+"/borrow", body, &created); err != nil {
		return Borrowing{}, err
	}
	return created, nil
}

// Return closes a borrowing. The backend sets returnedAt, computes the fine
// and restores the book's availability.
func (c *Client) Return(ctx context.Context, borrowingID int64) (Borrowing, error) {
	path := fmt.Sprintf("%s/%d/return", c.borrowPrefix, borrowingID)
	var updated Borrowing
	if err := c.do(ctx, http.MethodPost, path, nil, &updated); err != nil {
		return Borrowing{}, err
	}
	return updated, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		payload, err := jsonCodec.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		// Correlates client log entries with backend request logs.
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<10))
		apiErr := newError(resp.StatusCode, data)
		c.log.Warn().
			Str("method", method).
			Str("path", rel.Path).
			Int("status", resp.StatusCode).
			Msg("request rejected")
		return apiErr
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := jsonCodec.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
