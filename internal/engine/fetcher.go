package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/tartampluch/go-calendar-round/internal/config"
)

var (
	// ErrContentType is returned for responses that are not plain text,
	// typically an HTML login or error page.
	ErrContentType = errors.New(config.ErrContentType)

	// ErrTooLarge is returned when a pattern list is bigger than the fetcher
	// accepts. Lists are rejected rather than cut, since a cut would leave a
	// partial last pattern.
	ErrTooLarge = errors.New(config.ErrTooLarge)

	// ErrFetchStatus is returned for any response other than 200 OK.
	ErrFetchStatus = errors.New(config.ErrFetchStatus)
)

// PatternFetcher retrieves a remote pattern list.
type PatternFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads pattern lists served as text/plain over http or https.
type HTTPFetcher struct {
	Client *http.Client

	// MaxSize caps the list size in bytes; zero means config.MaxHTTPResponseSize.
	MaxSize int64
}

// NewHTTPFetcher returns an HTTPFetcher whose client uses config.HTTPTimeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch requests the list at rawURL. The returned body fails with
// ErrTooLarge once it grows past the size cap.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL, user, pass string) (io.ReadCloser, error) {
	u, err := patternURL(rawURL)
	if err != nil {
		return nil, err
	}
	log := ctxlog.Logger(ctx).With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Redacted()),
	)
	log.Debug(config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeTextPlain)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}

	limit := f.maxSize()
	if err := checkPatternResponse(resp, limit); err != nil {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
			slog.Any(config.LogKeyError, err),
		)
		return nil, err
	}

	log.Info(config.MsgFetching, slog.Int64(config.LogKeySizeBytes, resp.ContentLength))
	return &cappedBody{ReadCloser: resp.Body, remaining: limit}, nil
}

func (f *HTTPFetcher) maxSize() int64 {
	if f.MaxSize > 0 {
		return f.MaxSize
	}
	return config.MaxHTTPResponseSize
}

// patternURL accepts absolute http and https URLs with a host. Credentials
// embedded in the URL are kept for the request and redacted in logs.
func patternURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %q", config.ErrProtocol, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%s: missing host", config.ErrInvalidURL)
	}
	return u, nil
}

// checkPatternResponse accepts 200 responses typed text/plain or untyped
// octet streams whose declared length fits in limit.
func checkPatternResponse(resp *http.Response, limit int64) error {
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrFetchStatus, resp.Status)
	}
	if ct := resp.Header.Get(config.HeaderContentType); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || (mt != config.MimeTextPlain && mt != config.MimeOctetStream) {
			return fmt.Errorf("%w: %q", ErrContentType, ct)
		}
	}
	if resp.ContentLength > limit {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}
	return nil
}

// cappedBody passes through at most remaining bytes and reports ErrTooLarge
// if the server has more to send.
type cappedBody struct {
	io.ReadCloser
	remaining int64
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		var extra [1]byte
		n, err := b.ReadCloser.Read(extra[:])
		if n > 0 {
			return 0, ErrTooLarge
		}
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}
	n, err := b.ReadCloser.Read(p)
	b.remaining -= int64(n)
	return n, err
}
