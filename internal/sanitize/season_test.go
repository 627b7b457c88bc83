package sanitize

import "testing"

func TestSeasonNumber(t *testing.T) {
	cases := []struct {
		segment string
		want    int
	}{
		{"Season 2", 2},
		{"season 12", 12},
		{"S03", 3},
		{"s1", 1},
		{"第4季", 4},
		{"random", 1},
		{"", 1},
		{"Specials", 1},
	}
	for _, tc := range cases {
		if got := SeasonNumber(tc.segment); got != tc.want {
			t.Fatalf("SeasonNumber(%q): got %d, want %d", tc.segment, got, tc.want)
		}
	}
}

func TestSeasonFolderName(t *testing.T) {
	cases := []struct {
		template string
		season   int
		want     string
	}{
		{"Season {season}", 2, "Season 2"},
		{"Season {season:02}", 2, "Season 02"},
		{"S{season:03}", 12, "S012"},
		{"{season}", 7, "7"},
		{"Season: {season}", 1, "Season_ 1"},
	}
	for _, tc := range cases {
		if got := SeasonFolderName(tc.template, tc.season); got != tc.want {
			t.Fatalf("SeasonFolderName(%q, %d): got %q, want %q", tc.template, tc.season, got, tc.want)
		}
	}
}
