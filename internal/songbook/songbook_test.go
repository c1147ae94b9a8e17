package songbook

import (
	"errors"
	"testing"

	"github.com/franz/carolcast/internal/util"
)

func TestDefaultIndex(t *testing.T) {
	ix := DefaultIndex()
	if ix.Len() != len(Songs) {
		t.Errorf("Len() = %d, expected %d distinct keys", ix.Len(), len(Songs))
	}

	tests := []struct {
		key      string
		name     string
		songKey  string
		songPage string
	}{
		{"silent night", "Silent Night", "G", "96"},
		{"happy holiday", "Happy Holiday / White Christmas", "F", "42"},
		{"white christmas", "White Christmas", "G", "113"},
		{"it's beginning to look like christmas", "It’s Beginning to Look Like Christmas", "B", "63"},
		{"you're a mean one mr grinch", "You’re a Mean One, Mr. Grinch", "—", "—"},
	}

	for _, tt := range tests {
		song, ok := ix.Lookup(tt.key)
		if !ok {
			t.Errorf("Lookup(%q) not found", tt.key)
			continue
		}
		if song.Name != tt.name || song.Key != tt.songKey || song.Page != tt.songPage {
			t.Errorf("Lookup(%q) = %+v", tt.key, song)
		}
	}
}

func TestIndex_OrderAndOverwrite(t *testing.T) {
	ix := NewIndex([]SongInfo{
		{Name: "Silent Night", Key: "G", Page: "96"},
		{Name: "Jingle Bells", Key: "D", Page: "72"},
		{Name: "1 Silent Night", Key: "A", Page: "1"},
	})

	var keys []string
	ix.Each(func(key string, _ SongInfo) { keys = append(keys, key) })
	if len(keys) != 2 || keys[0] != "silent night" || keys[1] != "jingle bells" {
		t.Errorf("keys = %v, expected first-insertion order", keys)
	}

	song, _ := ix.Lookup("silent night")
	if song.Key != "A" {
		t.Errorf("later entry should win, got %+v", song)
	}
}

func TestDefaultSheetMusic(t *testing.T) {
	u, ok := DefaultSheetMusic().Lookup("an old fashioned christmas")
	if !ok {
		t.Fatal("expected sheet music for An Old-Fashioned Christmas")
	}
	if u != "https://32mw84.csb.app/scores/old-fashioned-christmas/old-fashioned-christmas.mxl" {
		t.Errorf("unexpected URL %q", u)
	}
	if _, ok := DefaultSheetMusic().Lookup("silent night"); ok {
		t.Error("no score expected for Silent Night")
	}
}

func TestFeedURL(t *testing.T) {
	tests := []struct {
		voice    string
		expected string
		wantErr  bool
	}{
		{"ALTO", "https://www.azdickenscarolers.com/dci/alto/feed.xml", false},
		{"soprano", "https://www.azdickenscarolers.com/dci/soprano/feed.xml", false},
		{" Tenor ", "https://www.azdickenscarolers.com/dci/tenor/feed.xml", false},
		{"bass", "https://www.azdickenscarolers.com/dci/bass/feed.xml", false},
		{"baritone", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		u, err := FeedURL(tt.voice)
		if tt.wantErr {
			if !errors.Is(err, util.ErrInvalidConfig) {
				t.Errorf("FeedURL(%q) error = %v, expected ErrInvalidConfig", tt.voice, err)
			}
			continue
		}
		if err != nil || u != tt.expected {
			t.Errorf("FeedURL(%q) = (%q, %v), expected %q", tt.voice, u, err, tt.expected)
		}
	}
}

func TestVoiceTitle(t *testing.T) {
	if Soprano.Title() != "Soprano" {
		t.Errorf("Title() = %q", Soprano.Title())
	}
}

func TestConfidenceLevelFor(t *testing.T) {
	tests := []struct {
		value    int
		expected int
	}{
		{-5, 0},
		{0, 0},
		{9, 0},
		{10, 10},
		{54, 40},
		{70, 70},
		{99, 85},
		{100, 100},
		{150, 100},
	}

	for _, tt := range tests {
		if got := ConfidenceLevelFor(tt.value).Threshold; got != tt.expected {
			t.Errorf("ConfidenceLevelFor(%d).Threshold = %d, expected %d", tt.value, got, tt.expected)
		}
	}

	if ConfidenceLevelFor(0).Title != "Frosty the Off-Key Snowman" {
		t.Errorf("unexpected lowest title %q", ConfidenceLevelFor(0).Title)
	}
}

func TestRandomPun(t *testing.T) {
	pun := RandomPun()
	for _, p := range LoadingPuns {
		if p == pun {
			return
		}
	}
	t.Errorf("RandomPun() = %q, not in LoadingPuns", pun)
}

func TestIndex_SongsKeepsListing(t *testing.T) {
	songs := []SongInfo{
		{Name: "Silent Night", Key: "G", Page: "96"},
		{Name: "1 Silent Night", Key: "A", Page: "1"},
	}
	ix := NewIndex(songs)
	if got := ix.Songs(); len(got) != 2 || got[1].Name != "1 Silent Night" {
		t.Errorf("Songs() = %v, expected full listing", got)
	}
	if ix.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", ix.Len())
	}
}
