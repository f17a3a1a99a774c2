package racefacer

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"racelog-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// Source fetches the pages of a driver profile. The two implementations
// (static HTTP and rendered browser) are interchangeable; extractors only
// ever see goquery documents and selections.
type Source interface {
	// ProfilePage fetches the driver's sessions listing page.
	ProfilePage(ctx context.Context, username string) (*goquery.Document, error)
	// SessionDetail resolves the page scope holding one session's lap
	// table and track/kart block. An empty selection means the session
	// detail is not reachable, which is not an error.
	SessionDetail(ctx context.Context, profile *goquery.Document, username, sessionId string) (*goquery.Selection, error)
	// Close releases any resources held by the source. Safe to call
	// more than once.
	Close(ctx context.Context) error
}

type StaticSource struct {
	BaseUrl string
	Http    *resty.Client
}

type StaticSourceOptions struct {
	BaseUrl string
}

func NewStaticSource(opts StaticSourceOptions) (*StaticSource, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/racefacer/http")

	return &StaticSource{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

func (s *StaticSource) ProfilePage(ctx context.Context, username string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "static:ProfilePage")
	defer span.End()

	link := fmt.Sprintf("%s/%s/sessions", s.BaseUrl, url.PathEscape(username))
	res, err := s.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, link, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return doc, nil
}

// The static profile page already embeds every session's detail, so
// resolving a session is a lookup in the profile document, not a fetch.
func (s *StaticSource) SessionDetail(ctx context.Context, profile *goquery.Document, username, sessionId string) (*goquery.Selection, error) {
	sel := profile.Find(fmt.Sprintf(`.session-result-container[data-session-uuid=%q]`, sessionId))
	return sel, nil
}

func (s *StaticSource) Close(ctx context.Context) error {
	return nil
}
