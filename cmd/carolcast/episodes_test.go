package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/playlist"
	"github.com/franz/carolcast/internal/util"
)

func intPtr(n int) *int { return &n }

func testEpisodes() []*feed.Episode {
	return []*feed.Episode{
		{ID: "u/silent", Title: "Silent Night", AudioURL: "u/silent", SongPage: "96"},
		{ID: "u/jingle", Title: "Jingle Bells", AudioURL: "u/jingle", SongPage: "72"},
		{ID: "u/rock", Title: "Jingle Bell Rock", AudioURL: "u/rock", SongPage: "67"},
		{ID: "u/warmup", Title: "Warm-up", AudioURL: "u/warmup"},
	}
}

func TestResolveEpisode(t *testing.T) {
	episodes := testEpisodes()

	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{"1", "Jingle Bell Rock", nil},
		{"3", "Silent Night", nil},
		{"4", "Warm-up", nil},
		{"u/jingle", "Jingle Bells", nil},
		{"silent night", "Silent Night", nil},
		{"jingle bells", "Jingle Bells", nil}, // exact beats substring
		{"warm", "Warm-up", nil},
		{"0", "", util.ErrNotFound},
		{"5", "", util.ErrNotFound},
		{"rudolph", "", util.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			ep, err := resolveEpisode(episodes, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, expected %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveEpisode(%q) failed: %v", tt.ref, err)
			}
			if ep.Title != tt.want {
				t.Errorf("resolveEpisode(%q) = %q, expected %q", tt.ref, ep.Title, tt.want)
			}
		})
	}
}

func TestResolveEpisodeAmbiguous(t *testing.T) {
	_, err := resolveEpisode(testEpisodes(), "jingle")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
	if errors.Is(err, util.ErrNotFound) {
		t.Error("ambiguity is not a not-found error")
	}
}

func TestNumbering(t *testing.T) {
	ordered, index := numbering(testEpisodes())

	if ordered[0].Title != "Jingle Bell Rock" || ordered[3].Title != "Warm-up" {
		t.Errorf("unexpected order: %s ... %s", ordered[0].Title, ordered[3].Title)
	}
	if index["u/silent"] != 3 {
		t.Errorf("Silent Night = #%d, expected #3", index["u/silent"])
	}
}

func TestChoreoFlags(t *testing.T) {
	item := &feed.ChoreoItem{}

	tests := []struct {
		bundle feed.ChoreoBundle
		want   string
	}{
		{feed.ChoreoBundle{}, "- - -"},
		{feed.ChoreoBundle{Front: item}, "F - -"},
		{feed.ChoreoBundle{Back: item, Notes: item}, "- B N"},
		{feed.ChoreoBundle{Front: item, Back: item, Notes: item}, "F B N"},
	}

	for _, tt := range tests {
		if got := choreoFlags(tt.bundle); got != tt.want {
			t.Errorf("choreoFlags() = %q, expected %q", got, tt.want)
		}
	}
}

func TestLengthOf(t *testing.T) {
	prefs := playlist.NewPrefs()
	prefs.Durations["u/cached"] = 95.6

	tests := []struct {
		name string
		ep   *feed.Episode
		want string
	}{
		{"feed duration", &feed.Episode{AudioURL: "u/cached", Duration: "2:30", DurationSeconds: intPtr(150)}, "2:30"},
		{"cached", &feed.Episode{AudioURL: "u/cached", Duration: "..."}, "1:35"},
		{"unknown", &feed.Episode{AudioURL: "u/none", Duration: "..."}, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lengthOf(tt.ep, prefs); got != tt.want {
				t.Errorf("lengthOf() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"83", 83, false},
		{"83.25", 83.25, false},
		{"1:23", 83, false},
		{"1:02:03", 3723, false},
		{"-4", 0, true},
		{"NaN", 0, true},
		{"soon", 0, true},
		{"x:10", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePosition(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePosition(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePosition(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPickBookmark(t *testing.T) {
	marks := []float64{12, 83.4, 200}

	tests := []struct {
		typed  string
		pos    float64
		want   float64
		wantOK bool
	}{
		{"12", 12, 12, true},
		{"1:23", 83, 83.4, true},
		{"83", 83, 0, false},
		{"3:21", 201, 0, false},
	}

	for _, tt := range tests {
		got, ok := pickBookmark(marks, tt.pos, tt.typed)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("pickBookmark(%q) = %v, %v; expected %v, %v", tt.typed, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"#", "Title"},
		[][]string{{"1", "Silent Night"}, {"2"}},
		[]columnAlignment{alignRight, alignLeft},
	)

	if !strings.Contains(out, "Silent Night") || !strings.Contains(out, "TITLE") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Error("expected empty output without headers")
	}
}
