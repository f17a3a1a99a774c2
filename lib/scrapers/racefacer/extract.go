package racefacer

import (
	"context"
	"log/slog"

	"racelog-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// ExtractRaceData runs the whole pipeline for one driver: profile page,
// session summaries, then one session detail at a time in discovery
// order. The caller owns the source and is responsible for closing it.
//
// A fetch failure on any session fails the whole request; missing
// per-session fields and unreachable lap tables degrade to sentinel
// values instead.
func ExtractRaceData(ctx context.Context, source Source, username string) (ExtractionResult, error) {
	ctx, span := tracer.Start(ctx, "ExtractRaceData")
	defer span.End()

	slog.InfoContext(ctx, "extracting race data", "username", username)

	profile, err := source.ProfilePage(ctx, username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch profile page")
		return ExtractionResult{}, err
	}

	info, err := extractProfileInfo(ctx, profile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract profile info")
		return ExtractionResult{}, err
	}

	summaries := extractSessionSummaries(ctx, profile)
	slog.InfoContext(ctx, "found races", "username", username, "count", len(summaries.ids))

	races := []RaceRecord{}
	for _, id := range summaries.ids {
		record, err := assembleRaceRecord(ctx, source, profile, username, id, summaries)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to process session")
			return ExtractionResult{}, err
		}
		races = append(races, record)
	}

	info.TotalRaces = len(races)
	return ExtractionResult{
		ProfileInfo: info,
		RacesData:   races,
	}, nil
}

func assembleRaceRecord(
	ctx context.Context,
	source Source,
	profile *goquery.Document,
	username, sessionId string,
	summaries sessionSummaries,
) (RaceRecord, error) {
	ctx, span := tracer.Start(ctx, "assembleRaceRecord")
	defer span.End()

	detail, err := source.SessionDetail(ctx, profile, username, sessionId)
	if err != nil {
		span.RecordError(err)
		return RaceRecord{}, err
	}

	record := RaceRecord{
		RaceId:   sessionId,
		Position: NotFound,
		Date:     NotFound,
		Time:     NotFound,
		Track:    NotFound,
		Kart:     NotFound,
		LapTimes: []LapEntry{},
	}
	if position, ok := summaries.positions[sessionId]; ok {
		record.Position = position
	}
	if date, ok := summaries.dates[sessionId]; ok {
		record.Date = date.date
		record.Time = date.clock
	}

	trackKart := detail.Find(".track-kart").First()
	if trackKart.Length() > 0 {
		if track := trackKart.Find(".track-name").First(); track.Length() > 0 {
			record.Track = htmlutil.CleanText(track.Text())
		}
		// the kart label carries no class of its own; it is always the
		// last div inside the track/kart block
		divs := trackKart.Find("div")
		if divs.Length() > 0 {
			record.Kart = htmlutil.CleanText(divs.Eq(divs.Length() - 1).Text())
		}
	} else {
		slog.WarnContext(ctx, "session missing track/kart block", "session", sessionId)
	}

	record.LapTimes = extractLapTimes(ctx, detail)
	record.BestTime = bestLapTime(record.LapTimes)
	if record.BestTime == NotFound {
		slog.WarnContext(ctx, "no lap times found", "session", sessionId)
	}

	return record, nil
}
