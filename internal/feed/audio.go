package feed

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPodcastTitle is used when the audio feed has no channel title
const DefaultPodcastTitle = "Dickens Carolers Podcast"

// trackPrefixPattern matches track numbering such as "12 " or "12a "
var trackPrefixPattern = regexp.MustCompile(`(?i)^\d+[ab]?\s*`)

// ParseAudio parses an episode feed. Items keep document order; items without
// an enclosure URL are dropped.
func ParseAudio(text string) (*AudioFeed, error) {
	doc, err := decodeDocument(text)
	if err != nil {
		return nil, &ParseError{Feed: "audio", Err: err}
	}

	podcastTitle := strings.TrimSpace(doc.ChannelTitle)
	if podcastTitle == "" {
		podcastTitle = DefaultPodcastTitle
	}
	channelImg := doc.channelImage()

	result := &AudioFeed{
		Episodes:     make([]*Episode, 0, len(doc.Items)),
		PodcastTitle: podcastTitle,
		PodcastImage: Httpsify(channelImg),
	}

	for i := range doc.Items {
		ep := episodeFromItem(&doc.Items[i], i, channelImg)
		if ep.AudioURL == "" {
			continue
		}
		result.Episodes = append(result.Episodes, ep)
	}

	return result, nil
}

func episodeFromItem(it *xmlItem, index int, channelImg string) *Episode {
	title := strings.TrimSpace(first(it.Titles))
	if title == "" {
		title = fmt.Sprintf("Episode %d", index+1)
	}
	title = trackPrefixPattern.ReplaceAllString(title, "")

	audioURL := Httpsify(it.enclosure().URL)

	var durationSeconds *int
	if secs, ok := ParseDuration(first(it.Durations)); ok {
		durationSeconds = &secs
	}

	id := audioURL
	if id == "" {
		id = fmt.Sprintf("%s-%d", title, index)
	}

	image := it.itunesImageHref()
	if image == "" {
		image = channelImg
	}

	return &Episode{
		ID:              id,
		Title:           title,
		PubDate:         first(it.PubDates),
		Duration:        durationLabel(durationSeconds),
		DurationSeconds: durationSeconds,
		AudioURL:        audioURL,
		Image:           Httpsify(image),
		Description:     firstText(it.Descriptions),
	}
}
