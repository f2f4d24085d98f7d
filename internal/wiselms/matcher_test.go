package wiselms

import "testing"

func courseList() []Course {
	return []Course{
		{ID: "c1", Name: "Activities Year 3", Published: true},
		{ID: "c2", Name: "Activities Year 5", Published: true},
		{ID: "c3", Name: "Activities Year 7", Published: true},
		{ID: "c4", Name: "Activities Year 9", Published: false},
		{ID: "c5", Name: "Year 3", Published: true},
	}
}

func TestFindActivitiesCourse_PlainName(t *testing.T) {
	got := FindActivitiesCourse("Year 3", courseList())
	if got == nil {
		t.Fatal("expected a match for Year 3")
	}
	if got.ID != "c1" {
		t.Errorf("matched course ID = %s, want c1", got.ID)
	}
}

func TestFindActivitiesCourse_PrefixStripping(t *testing.T) {
	tests := []struct {
		name   string
		source string
		wantID string
	}{
		{"premium prefix", "Premium Package Year 7", "c3"},
		{"standard prefix", "Standard Package Year 7", "c3"},
		{"no prefix", "Year 7", "c3"},
		{"premium prefix year 5", "Premium Package Year 5 - Advance B", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindActivitiesCourse(tt.source, courseList())
			if tt.wantID == "" {
				if got != nil {
					t.Errorf("FindActivitiesCourse(%q) = %v, want nil", tt.source, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindActivitiesCourse(%q) = nil, want %s", tt.source, tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("FindActivitiesCourse(%q).ID = %s, want %s", tt.source, got.ID, tt.wantID)
			}
		})
	}
}

func TestFindActivitiesCourse_OnlyFirstPrefixStripped(t *testing.T) {
	// Both tiers in the name: only the leading prefix is removed, so the
	// derived target still contains the second tier and must not match.
	courses := []Course{
		{ID: "x", Name: "Activities Year 7", Published: true},
		{ID: "y", Name: "Activities Standard Package Year 7", Published: true},
	}
	got := FindActivitiesCourse("Premium Package Standard Package Year 7", courses)
	if got == nil {
		t.Fatal("expected a match")
	}
	if got.ID != "y" {
		t.Errorf("matched course ID = %s, want y", got.ID)
	}
}

func TestFindActivitiesCourse_ActivitiesSourceExcluded(t *testing.T) {
	sources := []string{
		"Activities Year 5",
		"activities year 5",
		"Premium Package ACTIVITIES Year 5",
		"Holiday aCtIvItIeS club",
	}
	for _, source := range sources {
		if got := FindActivitiesCourse(source, courseList()); got != nil {
			t.Errorf("FindActivitiesCourse(%q) = %v, want nil", source, got)
		}
	}
}

func TestFindActivitiesCourse_VCEExcluded(t *testing.T) {
	sources := []string{
		"VCE Chemistry Unit 3 & 4",
		"vce Biology",
		"Year 11 VCE Preparation",
	}
	for _, source := range sources {
		if got := FindActivitiesCourse(source, courseList()); got != nil {
			t.Errorf("FindActivitiesCourse(%q) = %v, want nil", source, got)
		}
	}
}

func TestFindActivitiesCourse_UnpublishedNeverReturned(t *testing.T) {
	if got := FindActivitiesCourse("Year 9", courseList()); got != nil {
		t.Errorf("unpublished Activities Year 9 should not match, got %v", got)
	}
}

func TestFindActivitiesCourse_NameMatchIsCaseSensitive(t *testing.T) {
	courses := []Course{
		{ID: "c1", Name: "Activities year 3", Published: true},
	}
	if got := FindActivitiesCourse("Year 3", courses); got != nil {
		t.Errorf("case-mismatched name should not match, got %v", got)
	}
}

func TestFindActivitiesCourse_EmptyCourseList(t *testing.T) {
	if got := FindActivitiesCourse("Year 3", nil); got != nil {
		t.Errorf("FindActivitiesCourse with no courses = %v, want nil", got)
	}
}

func TestFindActivitiesCourse_FirstMatchWins(t *testing.T) {
	courses := []Course{
		{ID: "a", Name: "Activities Year 3", Published: true},
		{ID: "b", Name: "Activities Year 3", Published: true},
	}
	got := FindActivitiesCourse("Year 3", courses)
	if got == nil || got.ID != "a" {
		t.Errorf("expected first matching course a, got %v", got)
	}
}
