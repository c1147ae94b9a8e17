package songbook

import (
	"fmt"
	"strings"

	"github.com/franz/carolcast/internal/util"
)

// Voice is a choir voice part, each with its own rehearsal feed
type Voice string

const (
	Soprano Voice = "SOPRANO"
	Alto    Voice = "ALTO"
	Tenor   Voice = "TENOR"
	Bass    Voice = "BASS"
)

// Voices lists the parts in score order
var Voices = []Voice{Soprano, Alto, Tenor, Bass}

// DefaultVoice is used until a part has been chosen
const DefaultVoice = Alto

// ChoreoFeedURL is the shared choreography feed
const ChoreoFeedURL = "https://www.azdickenscarolers.com/dci/choreography/feed.xml"

var voiceFeeds = map[Voice]string{
	Soprano: "https://www.azdickenscarolers.com/dci/soprano/feed.xml",
	Alto:    "https://www.azdickenscarolers.com/dci/alto/feed.xml",
	Tenor:   "https://www.azdickenscarolers.com/dci/tenor/feed.xml",
	Bass:    "https://www.azdickenscarolers.com/dci/bass/feed.xml",
}

// ParseVoice parses a voice part name case-insensitively
func ParseVoice(s string) (Voice, error) {
	v := Voice(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := voiceFeeds[v]; !ok {
		return "", fmt.Errorf("%w: unknown voice part %q (expected soprano, alto, tenor or bass)", util.ErrInvalidConfig, s)
	}
	return v, nil
}

// FeedURL returns the audio feed for a voice part name
func FeedURL(voice string) (string, error) {
	v, err := ParseVoice(voice)
	if err != nil {
		return "", err
	}
	return voiceFeeds[v], nil
}

// Title returns the part name as displayed, e.g. "Alto"
func (v Voice) Title() string {
	s := string(v)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}
