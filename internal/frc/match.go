package frc

import (
	"slices"
	"time"

	"github.com/AdamBeresnev/tba-match-widget/internal/utils"
)

type CompLevel string

const (
	Qualification CompLevel = "qm"
	EighthFinal   CompLevel = "ef"
	QuarterFinal  CompLevel = "qf"
	SemiFinal     CompLevel = "sf"
	Final         CompLevel = "f"
)

// unknownLevelRank places unrecognized levels after finals.
const unknownLevelRank = 99

// UnplayedScore is what the provider reports for a match without a result.
const UnplayedScore = -1

func (l CompLevel) Rank() int {
	switch l {
	case Qualification:
		return 1
	case EighthFinal:
		return 2
	case QuarterFinal:
		return 3
	case SemiFinal:
		return 4
	case Final:
		return 5
	default:
		return unknownLevelRank
	}
}

func (l CompLevel) Label() string {
	switch l {
	case Qualification:
		return "Qualification"
	case EighthFinal:
		return "Eighth Final"
	case QuarterFinal:
		return "Quarter Final"
	case SemiFinal:
		return "Semi Final"
	case Final:
		return "Final"
	default:
		return string(l)
	}
}

type Color string

const (
	Red  Color = "red"
	Blue Color = "blue"
	None Color = ""
)

func (c Color) Opposite() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return None
	}
}

type Alliance struct {
	TeamKeys          []string `json:"team_keys"`
	SurrogateTeamKeys []string `json:"surrogate_team_keys,omitempty"`
	DQTeamKeys        []string `json:"dq_team_keys,omitempty"`
	// nil when the provider sends null
	Score *int `json:"score"`
}

func (a Alliance) Has(teamKey string) bool {
	return slices.Contains(a.TeamKeys, teamKey)
}

type Alliances struct {
	Red  Alliance `json:"red"`
	Blue Alliance `json:"blue"`
}

// Match is a single record from the provider's event matches listing.
type Match struct {
	Key         string    `json:"key"`
	EventKey    string    `json:"event_key"`
	CompLevel   CompLevel `json:"comp_level"`
	SetNumber   int       `json:"set_number"`
	MatchNumber int       `json:"match_number"`
	Alliances   Alliances `json:"alliances"`

	WinningAlliance string `json:"winning_alliance"`

	// Unix seconds
	Time          *int64 `json:"time"`
	ActualTime    *int64 `json:"actual_time"`
	PredictedTime *int64 `json:"predicted_time"`
}

// EffectiveTime returns the predicted start, else the scheduled start, else 0.
func (m *Match) EffectiveTime() int64 {
	return utils.Coalesce(m.PredictedTime, m.Time)
}

// StartsAt reports the effective start in loc. ok is false for unscheduled matches.
func (m *Match) StartsAt(loc *time.Location) (time.Time, bool) {
	ts := m.EffectiveTime()
	if ts == 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0).In(loc), true
}

func (m *Match) AllianceOf(teamKey string) Color {
	switch {
	case m.Alliances.Red.Has(teamKey):
		return Red
	case m.Alliances.Blue.Has(teamKey):
		return Blue
	default:
		return None
	}
}

func (m *Match) Alliance(c Color) Alliance {
	if c == Red {
		return m.Alliances.Red
	}
	return m.Alliances.Blue
}

func (m *Match) Involves(teamKey string) bool {
	return m.AllianceOf(teamKey) != None
}

// Scored is true when both alliances carry a real final score.
func (m *Match) Scored() bool {
	red, blue := m.Alliances.Red.Score, m.Alliances.Blue.Score
	return red != nil && blue != nil && *red != UnplayedScore && *blue != UnplayedScore
}

func (m *Match) IsWinner(c Color) bool {
	if !m.Scored() {
		return false
	}
	red, blue := *m.Alliances.Red.Score, *m.Alliances.Blue.Score
	switch c {
	case Red:
		return red > blue
	case Blue:
		return blue > red
	default:
		return false
	}
}

func (m *Match) IsTie() bool {
	return m.Scored() && *m.Alliances.Red.Score == *m.Alliances.Blue.Score
}
