package gamification

import (
	"strconv"
	"strings"
)

// RequirementKind enumerates the achievement requirement variants stored in
// the catalog as short codes (streak_3, study_time_60, complete_course_1).
type RequirementKind int

const (
	ReqUnknown RequirementKind = iota
	ReqStreakDays
	ReqCumulativeMinutes
	ReqCourseCompletion
)

type Requirement struct {
	Kind  RequirementKind
	Value int
}

// ParseRequirement maps a catalog requirement code to its variant. Codes that
// do not match any known prefix (including free-text descriptions left over
// from seeding) parse as ReqUnknown and are skipped by the evaluation sweep.
func ParseRequirement(code string) Requirement {
	code = strings.TrimSpace(code)

	for prefix, kind := range map[string]RequirementKind{
		"streak_":          ReqStreakDays,
		"study_time_":      ReqCumulativeMinutes,
		"complete_course_": ReqCourseCompletion,
	} {
		if strings.HasPrefix(code, prefix) {
			n, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
			if err != nil {
				return Requirement{Kind: ReqUnknown}
			}
			return Requirement{Kind: kind, Value: n}
		}
	}

	return Requirement{Kind: ReqUnknown}
}
