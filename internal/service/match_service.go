package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/tba-match-widget/internal/frc"
	"golang.org/x/sync/errgroup"
)

// MatchSource is the upstream the service reads from.
type MatchSource interface {
	FetchTeamMatches(ctx context.Context, eventKey, teamKey string) ([]frc.Match, error)
	FetchEventDetails(ctx context.Context, eventKey string) (frc.Event, error)
}

type MatchService struct {
	source MatchSource
	loc    *time.Location
	// use the event's own timezone when the provider reports one
	eventTimezone bool
}

type Option func(*MatchService)

func WithLocation(loc *time.Location) Option {
	return func(s *MatchService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithEventTimezone(enabled bool) Option {
	return func(s *MatchService) {
		s.eventTimezone = enabled
	}
}

func NewMatchService(source MatchSource, opts ...Option) *MatchService {
	s := &MatchService{source: source, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type MatchData struct {
	Event frc.Event
	// Matches are filtered by the requested date and sorted.
	Matches []frc.Match
	// Dates come from the unfiltered team matches.
	Dates    []string
	Location *time.Location
}

func (s *MatchService) GetMatchViewData(ctx context.Context, rc RenderContext) (*MatchData, error) {
	var (
		matches []frc.Match
		event   frc.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.source.FetchTeamMatches(gctx, rc.EventKey, rc.TeamKey)
		if err != nil {
			return fmt.Errorf("failed to get team matches: %w", err)
		}
		matches = m
		return nil
	})
	g.Go(func() error {
		e, err := s.source.FetchEventDetails(gctx, rc.EventKey)
		if err != nil {
			return fmt.Errorf("failed to get event details: %w", err)
		}
		event = e
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if event.Key == "" {
		event.Key = rc.EventKey
	}

	loc := s.location(event)
	dates := MatchDates(matches, loc)

	shown := FilterByDate(matches, rc.Date, loc)
	SortMatches(shown, rc.Sort)

	return &MatchData{
		Event:    event,
		Matches:  shown,
		Dates:    dates,
		Location: loc,
	}, nil
}

func (s *MatchService) location(event frc.Event) *time.Location {
	if !s.eventTimezone || event.Timezone == "" {
		return s.loc
	}
	loc, err := time.LoadLocation(event.Timezone)
	if err != nil {
		slog.Warn("unknown event timezone, using default", "event_key", event.Key, "timezone", event.Timezone, "error", err)
		return s.loc
	}
	return loc
}
