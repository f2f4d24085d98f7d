package wiselms

import "strings"

// Package-tier prefixes stripped from classroom names before deriving the
// companion course name. Checked in order; only the first match is removed.
var packagePrefixes = []string{
	"Premium Package ",
	"Standard Package ",
}

// FindActivitiesCourse maps a classroom name to its "Activities" companion
// course and returns the matching published entry from courses, or nil when
// no valid target exists.
//
// The two catalogs are authored independently in WiseLMS with no
// cross-reference field, so the naming convention is the only linkage
// available. The exact string rules below are load-bearing: the
// "activities" guard is case-insensitive while the final name comparison is
// case-sensitive, and renaming either course silently breaks the link.
// That fragility is a known limitation, not something to fix here.
func FindActivitiesCourse(sourceName string, courses []Course) *Course {
	// An Activities course must never target another Activities course,
	// otherwise membership webhooks would cascade forever.
	if strings.Contains(strings.ToLower(sourceName), "activities") {
		return nil
	}

	// VCE classrooms are excluded from Activities synchronization.
	if strings.Contains(strings.ToUpper(sourceName), "VCE") {
		return nil
	}

	baseName := sourceName
	for _, prefix := range packagePrefixes {
		if strings.HasPrefix(sourceName, prefix) {
			baseName = strings.TrimPrefix(sourceName, prefix)
			break
		}
	}

	targetName := "Activities " + baseName
	for i := range courses {
		if courses[i].Name == targetName && courses[i].Published {
			return &courses[i]
		}
	}
	return nil
}
