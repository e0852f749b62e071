package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AdamBeresnev/tba-match-widget/internal/frc"
	"github.com/AdamBeresnev/tba-match-widget/internal/utils"
)

type SortMode string

const (
	SortMatch SortMode = "match"
	SortTime  SortMode = "date"
)

const (
	DefaultHeight = 600
	DateLayout    = "2006-01-02"
)

// ValidationError reports a missing required query parameter.
type ValidationError struct {
	Param string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing %s parameter", e.Param)
}

// RenderContext holds the query-derived parameters for one matches view.
type RenderContext struct {
	EventKey string
	// TeamKey is canonical ("frc1334").
	TeamKey      string
	Sort         SortMode
	ShowControls bool
	Height       int
	// Date is "YYYY-MM-DD" or empty when no valid date filter was given.
	Date string

	// Query is the request's original query, used to build control links.
	Query url.Values
}

// ParseRenderContext validates the required parameters and coerces the
// optional ones, falling back to defaults instead of failing.
func ParseRenderContext(q url.Values) (RenderContext, error) {
	eventKey := utils.StringOrNil(q.Get("eventKey"))
	if eventKey == nil {
		return RenderContext{}, &ValidationError{Param: "eventKey"}
	}
	teamKey := utils.StringOrNil(q.Get("teamKey"))
	if teamKey == nil {
		return RenderContext{}, &ValidationError{Param: "teamKey"}
	}

	return RenderContext{
		EventKey:     *eventKey,
		TeamKey:      frc.CanonicalTeamKey(*teamKey),
		Sort:         parseSort(q.Get("sort")),
		ShowControls: parseBool(q.Get("showControls"), true),
		Height:       parseHeight(q.Get("height")),
		Date:         parseDate(q.Get("date")),
		Query:        q,
	}, nil
}

func parseSort(s string) SortMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "time":
		return SortTime
	default:
		return SortMatch
	}
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

func parseHeight(s string) int {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || h <= 0 {
		return DefaultHeight
	}
	return h
}

func parseDate(s string) string {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return d.Format(DateLayout)
}

// With returns the original query string with key set to value, or removed
// when value is empty. The result always starts with "?".
func (rc RenderContext) With(key, value string) string {
	q := url.Values{}
	for k, v := range rc.Query {
		q[k] = append([]string(nil), v...)
	}
	if value == "" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	return "?" + q.Encode()
}
