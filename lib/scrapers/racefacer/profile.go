package racefacer

import (
	"context"
	"fmt"
	"strings"

	"racelog-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// The profile header is assumed structurally fixed: the driver name
// marks profile existence and everything else is a hard requirement.
func extractProfileInfo(ctx context.Context, doc *goquery.Document) (ProfileInfo, error) {
	ctx, span := tracer.Start(ctx, "extractProfileInfo")
	defer span.End()

	name := doc.Find(".username").First()
	if name.Length() == 0 {
		return ProfileInfo{}, ErrProfileNotFound
	}

	location := doc.Find(".profile-more-info span").First()
	if location.Length() == 0 {
		return ProfileInfo{}, fmt.Errorf("%w: missing location", ErrExtraction)
	}

	info := ProfileInfo{
		DriverName: htmlutil.CleanText(name.Text()),
		// the location's compound text node leaves a trailing ", "
		Location: strings.Trim(location.Text(), ", \t\n"),
	}

	stats := []struct {
		selector string
		label    string
		out      *string
	}{
		{".total_distance .value", "Total Distance", &info.Statistics.TotalDistance},
		{".total_time .value", "Total Drive Hours", &info.Statistics.TotalDriveHours},
		{".favorite_track .value", "Preferred Track", &info.Statistics.PreferredTrack},
	}
	for _, stat := range stats {
		value := doc.Find(stat.selector).First()
		if value.Length() == 0 {
			return ProfileInfo{}, fmt.Errorf("%w: missing statistic %q", ErrExtraction, stat.label)
		}
		*stat.out = htmlutil.CleanText(value.Text())
	}

	return info, nil
}
