package frc

import "strings"

// TeamKeyPrefix is prepended to team numbers in provider keys ("frc1334").
const TeamKeyPrefix = "frc"

// CanonicalTeamKey adds the provider prefix when it is missing.
func CanonicalTeamKey(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, TeamKeyPrefix) {
		return s
	}
	return TeamKeyPrefix + s
}

// TeamNumber strips the provider prefix for display.
func TeamNumber(teamKey string) string {
	return strings.TrimPrefix(teamKey, TeamKeyPrefix)
}

func TeamNumbers(teamKeys []string) []string {
	numbers := make([]string, 0, len(teamKeys))
	for _, key := range teamKeys {
		numbers = append(numbers, TeamNumber(key))
	}
	return numbers
}
