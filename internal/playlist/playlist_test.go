package playlist

import (
	"errors"
	"reflect"
	"testing"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/util"
)

func intPtr(n int) *int { return &n }

func titles(episodes []*feed.Episode) []string {
	out := make([]string, len(episodes))
	for i, ep := range episodes {
		out[i] = ep.Title
	}
	return out
}

func sampleEpisodes() []*feed.Episode {
	item := &feed.ChoreoItem{}
	return []*feed.Episode{
		{ID: "a", AudioURL: "a", Title: "Silent Night", SongPage: "96", DurationSeconds: intPtr(150),
			Choreo: feed.ChoreoBundle{Front: item, Back: item}},
		{ID: "b", AudioURL: "b", Title: "An Old-Fashioned Christmas", SongPage: "1", Description: "Opening number",
			Choreo: feed.ChoreoBundle{Notes: item}},
		{ID: "c", AudioURL: "c", Title: "Warm-up", DurationSeconds: intPtr(60)},
		{ID: "d", AudioURL: "d", Title: "Deck the Hall", SongPage: "25", DurationSeconds: intPtr(200),
			Choreo: feed.ChoreoBundle{Front: item}},
		{ID: "e", AudioURL: "e", Title: "éclair Carol", SongPage: "25"},
	}
}

func TestFilter(t *testing.T) {
	prefs := NewPrefs()
	prefs.Favorites["d"] = true
	prefs.Favorites["c"] = true

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"no filter", Filter{}, []string{"a", "b", "c", "d", "e"}},
		{"search title", Filter{Search: "NIGHT"}, []string{"a"}},
		{"search description", Filter{Search: "opening"}, []string{"b"}},
		{"any choreo", Filter{Choreo: ChoreoFilters{Any: true}}, []string{"a", "b", "d"}},
		{"front", Filter{Choreo: ChoreoFilters{Front: true}}, []string{"a", "d"}},
		{"front and back", Filter{Choreo: ChoreoFilters{Front: true, Back: true}}, []string{"a"}},
		{"notes", Filter{Choreo: ChoreoFilters{Notes: true}}, []string{"b"}},
		{"favorites", Filter{FavoritesOnly: true}, []string{"c", "d"}},
		{"favorites with front", Filter{FavoritesOnly: true, Choreo: ChoreoFilters{Front: true}}, []string{"d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(sampleEpisodes(), prefs)
			ids := make([]string, len(got))
			for i, ep := range got {
				ids[i] = ep.ID
			}
			if !reflect.DeepEqual(ids, tt.expected) {
				t.Errorf("Apply() = %v, expected %v", ids, tt.expected)
			}
		})
	}
}

func TestParseChoreoFilters(t *testing.T) {
	c, ok := ParseChoreoFilters("front, Notes")
	if !ok || !c.Front || !c.Notes || c.Back || c.Any {
		t.Errorf("ParseChoreoFilters = %+v, %v", c, ok)
	}
	if c, ok := ParseChoreoFilters(""); !ok || c.Active() {
		t.Errorf("empty filter should be inactive")
	}
	if _, ok := ParseChoreoFilters("sideways"); ok {
		t.Error("unknown filter should fail")
	}
}

func TestSort(t *testing.T) {
	prefs := NewPrefs()
	prefs.PlayCounts["a"] = 5
	prefs.PlayCounts["d"] = 9
	prefs.Confidence["b"] = 85
	prefs.Confidence["a"] = 40
	prefs.Durations["b"] = 100

	tests := []struct {
		mode     SortMode
		expected []string
	}{
		{SortBookOrder, []string{"An Old-Fashioned Christmas", "Deck the Hall", "éclair Carol", "Silent Night", "Warm-up"}},
		{SortAlpha, []string{"An Old-Fashioned Christmas", "Deck the Hall", "éclair Carol", "Silent Night", "Warm-up"}},
		{SortMostPlayed, []string{"Deck the Hall", "Silent Night", "An Old-Fashioned Christmas", "Warm-up", "éclair Carol"}},
		{SortLeastPlayed, []string{"An Old-Fashioned Christmas", "Warm-up", "éclair Carol", "Silent Night", "Deck the Hall"}},
		{SortShortest, []string{"Warm-up", "An Old-Fashioned Christmas", "Silent Night", "Deck the Hall", "éclair Carol"}},
		{SortLongest, []string{"éclair Carol", "Deck the Hall", "Silent Night", "An Old-Fashioned Christmas", "Warm-up"}},
		{SortConfidenceHigh, []string{"An Old-Fashioned Christmas", "Silent Night", "Warm-up", "Deck the Hall", "éclair Carol"}},
		{SortConfidenceLow, []string{"Warm-up", "Deck the Hall", "éclair Carol", "Silent Night", "An Old-Fashioned Christmas"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			episodes := sampleEpisodes()
			got := titles(Sort(episodes, tt.mode, prefs))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Sort(%s) = %v, expected %v", tt.mode, got, tt.expected)
			}
			if episodes[0].ID != "a" {
				t.Error("Sort must not reorder its input")
			}
		})
	}
}

func TestSort_NilPrefs(t *testing.T) {
	got := Sort(sampleEpisodes(), SortMostPlayed, nil)
	if len(got) != 5 || got[0].ID != "a" {
		t.Errorf("nil prefs should keep feed order for equal counts, got %v", titles(got))
	}
}

func TestBookPage(t *testing.T) {
	tests := []struct {
		page     string
		expected int
	}{
		{"96", 96},
		{"", 999},
		{"—", 999},
		{"12a", 12},
	}
	for _, tt := range tests {
		if got := bookPage(tt.page); got != tt.expected {
			t.Errorf("bookPage(%q) = %d, expected %d", tt.page, got, tt.expected)
		}
	}
}

func TestParseSortMode(t *testing.T) {
	if m, err := ParseSortMode("mostplayed"); err != nil || m != SortMostPlayed {
		t.Errorf("ParseSortMode = %v, %v", m, err)
	}
	if m, err := ParseSortMode(""); err != nil || m != SortBookOrder {
		t.Errorf("empty mode should default to book order, got %v, %v", m, err)
	}
	if _, err := ParseSortMode("random"); !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNextPrevious(t *testing.T) {
	episodes := sampleEpisodes()[:3]

	tests := []struct {
		id       string
		next     string
		previous string
	}{
		{"a", "b", "c"},
		{"b", "c", "a"},
		{"c", "a", "b"},
		{"zzz", "a", "c"},
	}

	for _, tt := range tests {
		next, _ := Next(episodes, tt.id)
		prev, _ := Previous(episodes, tt.id)
		if next.ID != tt.next || prev.ID != tt.previous {
			t.Errorf("from %q: next=%q prev=%q, expected %q/%q", tt.id, next.ID, prev.ID, tt.next, tt.previous)
		}
	}

	if _, ok := Next(nil, "a"); ok {
		t.Error("Next on empty list should report false")
	}
	if _, ok := Previous(nil, "a"); ok {
		t.Error("Previous on empty list should report false")
	}
}

func TestView(t *testing.T) {
	got := View(sampleEpisodes(), Filter{Choreo: ChoreoFilters{Front: true}}, SortAlpha, nil)
	expected := []string{"Deck the Hall", "Silent Night"}
	if !reflect.DeepEqual(titles(got), expected) {
		t.Errorf("View() = %v, expected %v", titles(got), expected)
	}
}
