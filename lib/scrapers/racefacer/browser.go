package racefacer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel/codes"
)

const sessionContentMarker = ".table_content.session_content"
const cookieOverlayClose = ".button-close-cookies"

// RenderedSource drives a headless browser so that script-rendered
// session pages can be scraped. It owns one browser for its whole
// lifetime; create one per request and Close it on every exit path.
type RenderedSource struct {
	baseUrl     string
	navTimeout  time.Duration
	cookieWait  time.Duration
	fetchDelay  time.Duration
	cancelAlloc context.CancelFunc
	browserCtx  context.Context
	cancelBr    context.CancelFunc

	closeOnce    sync.Once
	cookiesDone  bool
	fetchedFirst bool
}

type RenderedSourceOptions struct {
	BaseUrl string
	// bounded wait for navigation and for the per-page marker element
	NavigationTimeout time.Duration
	// pause between successive session fetches, gives the origin
	// server breathing room
	SessionDelay time.Duration
}

func NewRenderedSource(opts RenderedSourceOptions) (*RenderedSource, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	navTimeout := opts.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = time.Second * 30
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("start-maximized", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBr := chromedp.NewContext(allocCtx)

	return &RenderedSource{
		baseUrl:     baseUrl,
		navTimeout:  navTimeout,
		cookieWait:  time.Second * 10,
		fetchDelay:  opts.SessionDelay,
		cancelAlloc: cancelAlloc,
		browserCtx:  browserCtx,
		cancelBr:    cancelBr,
	}, nil
}

func (s *RenderedSource) ProfilePage(ctx context.Context, username string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "rendered:ProfilePage")
	defer span.End()

	link := fmt.Sprintf("%s/%s/sessions/", s.baseUrl, username)

	tctx, cancel := context.WithTimeout(s.browserCtx, s.navTimeout)
	defer cancel()

	err := chromedp.Run(tctx, chromedp.Navigate(link))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "navigation failed")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	s.dismissCookieOverlay(ctx)

	var raw string
	err = chromedp.Run(tctx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &raw, chromedp.ByQuery),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to capture page")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return doc, nil
}

// The cookie consent overlay shows up at most once per browser. Its
// absence within the bounded wait is not an error.
func (s *RenderedSource) dismissCookieOverlay(ctx context.Context) {
	if s.cookiesDone {
		return
	}
	s.cookiesDone = true

	cctx, cancel := context.WithTimeout(s.browserCtx, s.cookieWait)
	defer cancel()

	err := chromedp.Run(cctx, chromedp.Click(cookieOverlayClose, chromedp.ByQuery))
	if err != nil {
		slog.DebugContext(ctx, "no cookie popup found", "err", err)
		return
	}
	slog.DebugContext(ctx, "cookie popup dismissed")
}

func (s *RenderedSource) SessionDetail(ctx context.Context, profile *goquery.Document, username, sessionId string) (*goquery.Selection, error) {
	ctx, span := tracer.Start(ctx, "rendered:SessionDetail")
	defer span.End()

	if s.fetchedFirst && s.fetchDelay > 0 {
		select {
		case <-time.After(s.fetchDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrFetch, ctx.Err())
		}
	}
	s.fetchedFirst = true

	link := fmt.Sprintf("%s/%s/sessions/%s/#laps", s.baseUrl, username, sessionId)

	tctx, cancel := context.WithTimeout(s.browserCtx, s.navTimeout)
	defer cancel()

	err := chromedp.Run(tctx, chromedp.Navigate(link))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "navigation failed")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	err = chromedp.Run(tctx, chromedp.WaitReady(sessionContentMarker, chromedp.ByQuery))
	if err != nil {
		// no lap table rendered within the wait; the session still gets
		// a record, just with nothing to fill it from
		if errors.Is(err, context.DeadlineExceeded) {
			slog.WarnContext(ctx, "session content never rendered", "session", sessionId)
			span.SetStatus(codes.Ok, "marker timeout")
			return new(goquery.Selection), nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed waiting for session content")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	var raw string
	err = chromedp.Run(tctx, chromedp.OuterHTML("html", &raw, chromedp.ByQuery))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to capture page")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return doc.Selection, nil
}

func (s *RenderedSource) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.cancelBr()
		s.cancelAlloc()
		slog.DebugContext(ctx, "browser closed")
	})
	return nil
}
