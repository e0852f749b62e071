package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/tba-match-widget/internal/frc"
	"github.com/AdamBeresnev/tba-match-widget/internal/service"
	"github.com/AdamBeresnev/tba-match-widget/internal/utils"
)

const (
	timeLayout      = "3:04 PM"
	dateLabelLayout = "Jan 2"
	// RefreshInterval is how often the widget reloads itself.
	RefreshInterval = 60 * time.Second
	scrollKeyPrefix = "tba-matches-scroll"
	noTime          = "TBD"
)

type ScoreBlock struct {
	Red     int
	Blue    int
	RedWon  bool
	BlueWon bool
	Tie     bool
}

type MatchCard struct {
	Title string
	Time  string
	// Date is only set when the view is filtered to one day.
	Date          string
	Alliance      frc.Color
	AllianceLabel string
	Opponent      frc.Color
	OpponentLabel string
	Partners      string
	Opponents     string
	Score         *ScoreBlock
}

type SortLink struct {
	Label  string
	Href   string
	Active bool
}

type DateOption struct {
	Label    string
	Href     string
	Selected bool
}

type PageData struct {
	Title        string
	ShowControls bool
	SortLinks    []SortLink
	DateOptions  []DateOption
	Height       int
	Cards        []MatchCard

	RefreshMillis int64
	ScrollKey     string
}

// widgetConfig is handed to the page script as JSON.
type widgetConfig struct {
	ScrollKey     string `json:"scrollKey"`
	RefreshMillis int64  `json:"refreshMillis"`
}

func (p PageData) ContentStyle() string {
	return fmt.Sprintf("max-height: %dpx", p.Height)
}

func (p PageData) Script() widgetConfig {
	return widgetConfig{ScrollKey: p.ScrollKey, RefreshMillis: p.RefreshMillis}
}

func PrepareMatchesPage(data *service.MatchData, rc service.RenderContext) PageData {
	loc := data.Location
	if loc == nil {
		loc = time.Local
	}

	cards := make([]MatchCard, 0, len(data.Matches))
	for _, m := range data.Matches {
		cards = append(cards, prepareCard(m, rc, loc))
	}

	page := PageData{
		Title:         fmt.Sprintf("Team %s Matches at %s", frc.TeamNumber(rc.TeamKey), data.Event.DisplayName()),
		ShowControls:  rc.ShowControls,
		Height:        rc.Height,
		Cards:         cards,
		RefreshMillis: RefreshInterval.Milliseconds(),
		ScrollKey:     strings.Join([]string{scrollKeyPrefix, rc.EventKey, rc.TeamKey}, ":"),
	}
	if rc.ShowControls {
		page.SortLinks = []SortLink{
			{Label: "Match Order", Href: rc.With("sort", string(service.SortMatch)), Active: rc.Sort == service.SortMatch},
			{Label: "Time", Href: rc.With("sort", string(service.SortTime)), Active: rc.Sort == service.SortTime},
		}
		page.DateOptions = prepareDateOptions(data.Dates, rc)
	}
	return page
}

func prepareDateOptions(dates []string, rc service.RenderContext) []DateOption {
	options := make([]DateOption, 0, len(dates)+1)
	options = append(options, DateOption{Label: "All dates", Href: rc.With("date", ""), Selected: rc.Date == ""})
	for _, d := range dates {
		label := d
		if parsed, err := time.Parse(service.DateLayout, d); err == nil {
			label = parsed.Format(dateLabelLayout)
		}
		options = append(options, DateOption{Label: label, Href: rc.With("date", d), Selected: rc.Date == d})
	}
	return options
}

func prepareCard(m frc.Match, rc service.RenderContext, loc *time.Location) MatchCard {
	color := m.AllianceOf(rc.TeamKey)
	// not on red means blue
	if color == frc.None {
		color = frc.Blue
	}
	opponent := color.Opposite()

	card := MatchCard{
		Title:         fmt.Sprintf("%s %d", m.CompLevel.Label(), m.MatchNumber),
		Time:          noTime,
		Alliance:      color,
		AllianceLabel: colorLabel(color),
		Opponent:      opponent,
		OpponentLabel: colorLabel(opponent),
		Partners:      strings.Join(frc.TeamNumbers(partners(m.Alliance(color).TeamKeys, rc.TeamKey)), ", "),
		Opponents:     strings.Join(frc.TeamNumbers(m.Alliance(opponent).TeamKeys), ", "),
	}

	if at, ok := m.StartsAt(loc); ok {
		card.Time = at.Format(timeLayout)
		if rc.Date != "" {
			card.Date = at.Format(dateLabelLayout)
		}
	}

	if m.Scored() {
		card.Score = &ScoreBlock{
			Red:     utils.OrZero(m.Alliances.Red.Score),
			Blue:    utils.OrZero(m.Alliances.Blue.Score),
			RedWon:  m.IsWinner(frc.Red),
			BlueWon: m.IsWinner(frc.Blue),
			Tie:     m.IsTie(),
		}
	}
	return card
}

func partners(teamKeys []string, teamKey string) []string {
	out := make([]string, 0, len(teamKeys))
	for _, key := range teamKeys {
		if key != teamKey {
			out = append(out, key)
		}
	}
	return out
}

func colorLabel(c frc.Color) string {
	switch c {
	case frc.Red:
		return "Red"
	case frc.Blue:
		return "Blue"
	default:
		return ""
	}
}
