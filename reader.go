package sseclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/solen-io/go-sseclient/internal/decoder"
	"github.com/solen-io/go-sseclient/internal/parser"
)

// The ResponseValidator type defines the type of the function that
// checks whether server responses are valid, before starting to read
// events from them. Validation failures are fatal for the connection
// attempt that produced them; they are never retried.
type ResponseValidator func(*http.Response) error

// DefaultValidator is the default response validation function. It
// accepts any successful (2xx) status code.
var DefaultValidator ResponseValidator = func(r *http.Response) error {
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return fmt.Errorf("expected a successful status code, received %d %s", r.StatusCode, http.StatusText(r.StatusCode))
	}
	return nil
}

// NoopValidator is a response validator function that treats all
// responses as valid.
var NoopValidator ResponseValidator = func(_ *http.Response) error {
	return nil
}

// Default configuration values.
const (
	DefaultRetryInterval = 3 * time.Second
	DefaultChunkSize     = 1024

	// Read size for responses with chunked transfer encoding, where the
	// transport decides how much data each read yields.
	transportChunkSize = 4096
)

// Config is used to configure a StreamReader. The zero value is usable;
// unset fields are replaced with defaults.
type Config struct {
	// The HTTP client to be used. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Extra headers to send with every request, e.g. authorization.
	// The protocol headers (Cache-Control, Accept, Last-Event-ID) are
	// set on top of these.
	Headers http.Header
	// The ID to resume the stream from. Sent as the Last-Event-ID
	// header on the initial request when non-empty.
	LastEventID string
	// The initial reconnection delay. Overwritten whenever a message
	// carries a retry field. Defaults to 3 seconds.
	RetryInterval time.Duration
	// The read size, in bytes, for responses that are not chunked.
	// Defaults to 1024.
	ChunkSize int
	// The maximum number of reconnection attempts after the stream has
	// been established. Zero means unlimited; a negative value disables
	// reconnection entirely, making every transport failure fatal.
	//
	// The counter is reset by every successful reconnection.
	MaxRetries int
	// A function to check if the response from the server is valid.
	// Defaults to DefaultValidator.
	ResponseValidator ResponseValidator
	// A callback that's executed whenever a reconnection attempt
	// starts, before the backoff sleep.
	OnRetry backoff.Notify
	// Logger for non-fatal diagnostics: transport failures and
	// malformed lines. Defaults to slog.Default().
	Logger *slog.Logger
}

func mergeDefaults(c *Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ResponseValidator == nil {
		c.ResponseValidator = DefaultValidator
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// ErrReaderClosed is returned by Next after Close has been called.
var ErrReaderClosed = errors.New("stream reader closed")

// A StreamReader decodes messages from a long-lived event stream. It
// owns the connection to the server: it pulls raw byte chunks from the
// response body, decodes them to text, reassembles complete messages
// and transparently reconnects when the transport fails mid-stream,
// honoring server-directed retry timing and resuming from the last
// seen event ID.
//
// A StreamReader is a single forward-only sequence and holds mutable
// state with no internal synchronization; it must not be used from
// multiple goroutines concurrently. Cancel the context passed to
// NewStreamReader to abort blocked reads and backoff sleeps.
type StreamReader struct {
	url string
	cfg Config
	ctx context.Context

	req  *http.Request
	res  *http.Response
	read func() ([]byte, error)
	dec  *decoder.Decoder
	buf  string

	lastEventID string
	base        *backoff.ConstantBackOff
	backoff     backoff.BackOff
	closed      bool
}

// NewStreamReader connects to the given URL and returns a reader for
// its event stream. The initial connection must fully succeed: request
// errors and rejected responses are returned as a *ConnectionError and
// are not retried. Only failures that occur after the stream has been
// established once are handled by the reconnection loop.
func NewStreamReader(ctx context.Context, url string, cfg Config) (*StreamReader, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	mergeDefaults(&cfg)

	r := &StreamReader{
		url:         url,
		cfg:         cfg,
		ctx:         ctx,
		lastEventID: cfg.LastEventID,
	}

	base := backoff.NewConstantBackOff(cfg.RetryInterval)
	var b backoff.BackOff = base
	switch {
	case cfg.MaxRetries > 0:
		b = backoff.WithMaxRetries(base, uint64(cfg.MaxRetries))
	case cfg.MaxRetries < 0:
		b = backoff.WithMaxRetries(base, 0)
	}
	r.base = base
	r.backoff = backoff.WithContext(b, ctx)

	if err := r.connect(); err != nil {
		return nil, err
	}

	return r, nil
}

// connect issues the streaming request and binds the reader to its
// response: the chunk source and a fresh decoder for the response's
// declared encoding. It is called once at construction and again on
// every reconnection.
func (r *StreamReader) connect() error {
	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, r.url, http.NoBody)
	if err != nil {
		return &ConnectionError{Req: req, Reason: "unable to create request", Err: err}
	}
	for name, values := range r.cfg.Headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	// Required by the protocol, set on top of any caller headers.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "text/event-stream")
	if r.lastEventID != "" {
		req.Header.Set("Last-Event-ID", r.lastEventID)
	}
	r.req = req

	res, err := r.cfg.HTTPClient.Do(req)
	if err != nil {
		return &ConnectionError{Req: req, Reason: "unable to execute request", Err: err}
	}
	if err := r.cfg.ResponseValidator(res); err != nil {
		res.Body.Close()
		return &ConnectionError{Req: req, Reason: "response validation failed", Err: err}
	}

	size := r.cfg.ChunkSize
	if isChunked(res) {
		size = transportChunkSize
	}
	buf, body := make([]byte, size), res.Body
	r.res = res
	r.read = func() ([]byte, error) {
		n, err := body.Read(buf)
		if n > 0 {
			return buf[:n], nil
		}
		return nil, err
	}
	r.dec = decoder.New(decoder.ResolveEncoding(res.Header.Get("Content-Type")))

	return nil
}

func isChunked(res *http.Response) bool {
	for _, te := range res.TransferEncoding {
		if strings.EqualFold(te, "chunked") {
			return true
		}
	}
	return false
}

// Next returns the next message of the stream. It blocks until a
// complete message is available, reconnecting behind the scenes if the
// transport fails; transient failures only surface as added latency
// and a logged diagnostic. Next fails when a reconnection attempt is
// rejected, when reconnection attempts are exhausted or the context is
// canceled, and when a message carries an invalid retry value.
func (r *StreamReader) Next() (Event, error) {
	if r.closed {
		return Event{}, ErrReaderClosed
	}

	for {
		if i, l := parser.BoundaryIndex(r.buf); i != -1 {
			raw := r.buf[:i]
			r.buf = r.buf[i+l:]

			ev, err := parseEvent(raw, r.onMalformedLine)
			if err != nil {
				return Event{}, err
			}
			if ev.Retry.IsSet() {
				r.setRetryInterval(ev.Retry.Duration())
			}
			// The last event ID is sticky: it is left untouched by
			// messages that omit their ID, and only non-empty IDs
			// overwrite it.
			if ev.ID.IsSet() && ev.ID.String() != "" {
				r.lastEventID = ev.ID.String()
			}
			return ev, nil
		}

		chunk, err := r.read()
		if err == nil && len(chunk) == 0 {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			if rerr := r.reconnect(err); rerr != nil {
				return Event{}, rerr
			}
			continue
		}

		r.buf += r.dec.Decode(chunk)
	}
}

// reconnect handles a mid-stream transport failure: backoff sleep,
// partial-line discard and a new connection attempt. A non-nil return
// means the failure could not be recovered and Next must surface it.
func (r *StreamReader) reconnect(cause error) error {
	if r.closed {
		// The failed read was caused by Close releasing the body.
		return &ConnectionError{Req: r.req, Reason: "reader closed", Err: ErrReaderClosed}
	}

	delay := r.backoff.NextBackOff()
	if delay == backoff.Stop {
		if err := r.ctx.Err(); err != nil {
			return &ConnectionError{Req: r.req, Reason: "context canceled", Err: err}
		}
		return &ConnectionError{Req: r.req, Reason: "reconnection attempts exhausted", Err: cause}
	}

	r.cfg.Logger.Warn("event stream interrupted, reconnecting",
		"error", cause, "backoff", delay, "last_event_id", r.lastEventID)
	if r.cfg.OnRetry != nil {
		r.cfg.OnRetry(cause, delay)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-r.ctx.Done():
		return &ConnectionError{Req: r.req, Reason: "context canceled", Err: r.ctx.Err()}
	}

	// Resumption is only valid at message boundaries, so the trailing
	// partial line cannot be replayed and has to go.
	r.buf = parser.TrimPartialLine(r.buf)

	r.res.Body.Close()
	if err := r.connect(); err != nil {
		return err
	}

	// A successful reconnection resets the attempt counter.
	r.backoff.Reset()

	return nil
}

func (r *StreamReader) onMalformedLine(line string) {
	r.cfg.Logger.Warn("dropping malformed event stream line", "line", line)
}

func (r *StreamReader) setRetryInterval(d time.Duration) {
	r.base.Interval = d
	r.backoff.Reset()
}

// LastEventID returns the ID of the last message that carried one. It
// is the value resumption requests use for their Last-Event-ID header.
func (r *StreamReader) LastEventID() string {
	return r.lastEventID
}

// RetryInterval returns the current reconnection delay, either the
// configured initial value or the last retry value sent by the server.
func (r *StreamReader) RetryInterval() time.Duration {
	return r.base.Interval
}

// Events returns an iterator over the stream's messages, usable in a
// range-over-func loop. Iteration stops after yielding the first error;
// the sequence is single-pass and shares the reader's state with Next.
func (r *StreamReader) Events() func(yield func(Event, error) bool) {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := r.Next()
			if err != nil {
				yield(Event{}, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// Close releases the underlying response body. Pending reads fail and
// subsequent calls to Next return ErrReaderClosed.
func (r *StreamReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.res.Body.Close()
}
