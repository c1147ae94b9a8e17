package feed

import (
	"errors"
	"testing"

	"github.com/franz/carolcast/internal/util"
)

func TestParseChoreo(t *testing.T) {
	doc := `<rss><channel>
	  <item>
	    <title>Silent Night Front</title>
	    <link> https://example.com/silent-front </link>
	    <enclosure url="http://example.com/media/silent-night-front.mp4" type="Video/MP4"/>
	  </item>
	  <item>
	    <title>Silent Night Front (alternate take)</title>
	    <enclosure url="https://example.com/media/silent-night-front-alt.mp4" type="video/mp4"/>
	  </item>
	  <item>
	    <title>Silent Night Back</title>
	    <enclosure url="https://example.com/media/silent-night-back.mp4" type="video/mp4"/>
	  </item>
	  <item>
	    <title>Silent Night</title>
	    <description>Blocking and notes</description>
	    <enclosure url="https://example.com/media/silent-night.pdf" type="application/pdf"/>
	  </item>
	</channel></rss>`

	groups, err := ParseChoreo(doc)
	if err != nil {
		t.Fatalf("ParseChoreo failed: %v", err)
	}

	bundle, ok := groups.Get("silent night")
	if !ok {
		t.Fatalf("expected group %q, have %v", "silent night", groups.Keys())
	}

	if bundle.Front == nil || bundle.Front.MediaURL != "https://example.com/media/silent-night-front.mp4" {
		t.Errorf("Front = %+v, expected the first front item", bundle.Front)
	}
	if bundle.Front != nil && bundle.Front.MediaType != "video/mp4" {
		t.Errorf("MediaType = %q, expected lowercased", bundle.Front.MediaType)
	}
	if bundle.Front != nil && bundle.Front.Link != "https://example.com/silent-front" {
		t.Errorf("Link = %q, expected trimmed", bundle.Front.Link)
	}
	if bundle.Back == nil || bundle.Back.Title != "Silent Night Back" {
		t.Errorf("Back = %+v, expected back item", bundle.Back)
	}
	if bundle.Notes == nil || bundle.Notes.MediaType != "application/pdf" {
		t.Errorf("Notes = %+v, expected pdf item", bundle.Notes)
	}
}

func TestParseChoreo_FilenameKey(t *testing.T) {
	doc := `<rss><channel>
	  <item>
	    <title>Holly Jolly choreo</title>
	    <enclosure url="https://example.com/media/holly_jolly_christmas-back.mp4" type="video/mp4"/>
	  </item>
	</channel></rss>`

	groups, err := ParseChoreo(doc)
	if err != nil {
		t.Fatalf("ParseChoreo failed: %v", err)
	}

	keys := groups.Keys()
	if len(keys) != 2 || keys[0] != "holly jolly" || keys[1] != "holly jolly christmas" {
		t.Fatalf("Keys() = %v, expected title key then filename key", keys)
	}

	byTitle, _ := groups.Get("holly jolly")
	byFile, _ := groups.Get("holly jolly christmas")
	if byTitle.Back == nil || byFile.Back == nil || byTitle.Back != byFile.Back {
		t.Errorf("both keys should share the same back item")
	}
}

func TestParseChoreo_VideoFallback(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		wantFront bool
	}{
		{"unclassified video", "video/mp4", true},
		{"unclassified audio", "audio/mpeg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<rss><channel><item>
			  <title>Jingle Bells</title>
			  <enclosure url="https://example.com/media/jingle.bin" type="` + tt.mediaType + `"/>
			</item></channel></rss>`

			groups, err := ParseChoreo(doc)
			if err != nil {
				t.Fatalf("ParseChoreo failed: %v", err)
			}
			bundle, ok := groups.Get("jingle bells")
			if !ok {
				t.Fatalf("expected group for jingle bells, have %v", groups.Keys())
			}
			if (bundle.Front != nil) != tt.wantFront {
				t.Errorf("Front set = %v, expected %v", bundle.Front != nil, tt.wantFront)
			}
			if bundle.Back != nil || bundle.Notes != nil {
				t.Errorf("only the front slot may be filled: %+v", bundle)
			}
		})
	}
}

func TestParseChoreo_VideoFallbackSkipsClassifiedGroups(t *testing.T) {
	doc := `<rss><channel>
	  <item>
	    <title>Deck the Hall Back</title>
	    <enclosure url="https://example.com/media/deck.mp4" type="video/mp4"/>
	  </item>
	  <item>
	    <title>Deck the Hall</title>
	    <enclosure url="https://example.com/media/deck2.mp4" type="video/mp4"/>
	  </item>
	</channel></rss>`

	groups, err := ParseChoreo(doc)
	if err != nil {
		t.Fatalf("ParseChoreo failed: %v", err)
	}
	bundle, _ := groups.Get("deck the hall")
	if bundle == nil || bundle.Back == nil {
		t.Fatalf("expected back view, got %+v", bundle)
	}
	if bundle.Front != nil {
		t.Errorf("video fallback must not fill front when back exists")
	}
}

func TestParseChoreo_Malformed(t *testing.T) {
	_, err := ParseChoreo(`<rss><channel><item>`)
	if err == nil {
		t.Fatal("expected error for truncated document")
	}
	if !errors.Is(err, util.ErrFeedParse) {
		t.Errorf("error %v should match ErrFeedParse", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Feed != "choreography" {
		t.Errorf("error should be a ParseError for the choreography feed")
	}
}

func TestParseChoreo_MarkupInDescription(t *testing.T) {
	doc := `<rss><channel>
	  <item>
	    <title>Deck the Hall</title>
	    <description><b>Back</b> view</description>
	    <enclosure url="https://example.com/media/deck-the-hall.mov" type="video/quicktime"/>
	  </item>
	</channel></rss>`

	groups, err := ParseChoreo(doc)
	if err != nil {
		t.Fatalf("ParseChoreo failed: %v", err)
	}

	bundle, ok := groups.Get("deck the hall")
	if !ok {
		t.Fatalf("expected group %q, have %v", "deck the hall", groups.Keys())
	}
	if bundle.Back == nil {
		t.Fatal("expected the item in the back slot")
	}
	if bundle.Back.Description != "Back view" {
		t.Errorf("Description = %q, expected %q", bundle.Back.Description, "Back view")
	}
	if bundle.Front != nil {
		t.Errorf("Front = %+v, expected empty when a back view exists", bundle.Front)
	}
}
