package racefacer

import (
	"context"
	"log/slog"

	"racelog-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const sessionContainer = ".session-result-container"

type sessionDate struct {
	date  string
	clock string
}

// sessionSummaries is everything the profile page says about the
// driver's sessions. The id list is the authoritative race
// enumeration; the maps may be missing entries for sessions whose
// optional fields could not be extracted.
type sessionSummaries struct {
	ids       []string
	positions map[string]string
	dates     map[string]sessionDate
}

func extractSessionSummaries(ctx context.Context, doc *goquery.Document) sessionSummaries {
	ctx, span := tracer.Start(ctx, "extractSessionSummaries")
	defer span.End()

	out := sessionSummaries{
		positions: map[string]string{},
		dates:     map[string]sessionDate{},
	}

	doc.Find(sessionContainer).Each(func(_ int, container *goquery.Selection) {
		id := container.AttrOr("data-session-uuid", "")
		if id == "" {
			// without a uuid the session can never be correlated later
			slog.WarnContext(ctx, "session container missing uuid, skipping")
			return
		}
		out.ids = append(out.ids, id)

		position := container.Find(".position.inline").First()
		if position.Length() > 0 {
			out.positions[id] = htmlutil.CleanText(position.Text())
		} else {
			slog.WarnContext(ctx, "session missing position", "session", id)
		}

		date, ok := extractSessionDate(container)
		if ok {
			out.dates[id] = date
		} else {
			slog.WarnContext(ctx, "session missing date", "session", id)
		}
	})

	return out
}

// The date block comes in two renditions of the same markup: one with
// dedicated .date/.clock children and one with two bare spans. Both
// reduce to the same (date, time-of-day) pair.
func extractSessionDate(container *goquery.Selection) (sessionDate, bool) {
	block := container.Find(".date").First()
	if block.Length() == 0 {
		return sessionDate{}, false
	}

	date := block.Find(".date").First()
	clock := block.Find(".clock").First()
	if date.Length() > 0 && clock.Length() > 0 {
		return sessionDate{
			date:  htmlutil.CleanText(date.Text()),
			clock: htmlutil.CleanText(clock.Text()),
		}, true
	}

	spans := block.Find("span")
	if spans.Length() >= 2 {
		return sessionDate{
			date:  htmlutil.CleanText(spans.Eq(0).Text()),
			clock: htmlutil.CleanText(spans.Eq(1).Text()),
		}, true
	}

	return sessionDate{}, false
}
