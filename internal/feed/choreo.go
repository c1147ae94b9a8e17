package feed

import (
	"regexp"
	"strings"

	"github.com/franz/carolcast/internal/meta"
)

var (
	frontPattern = regexp.MustCompile(`(?i)\bfront\b`)
	backPattern  = regexp.MustCompile(`(?i)\bback\b`)
	notesPattern = regexp.MustCompile(`(?i)\bnotes?\b`)
)

// parsedChoreoItem is a choreography item with its derived keys and view flags
type parsedChoreoItem struct {
	item    *ChoreoItem
	baseKey string
	fileKey string
	isFront bool
	isBack  bool
	isNotes bool
}

// ParseChoreo parses the choreography feed into per-song bundles. Each item
// is registered under its title key and its filename key.
func ParseChoreo(text string) (*ChoreoGroups, error) {
	doc, err := decodeDocument(text)
	if err != nil {
		return nil, &ParseError{Feed: "choreography", Err: err}
	}

	groups := NewChoreoGroups()
	for i := range doc.Items {
		addToGroups(groups, classifyChoreoItem(&doc.Items[i]))
	}
	return groups, nil
}

func classifyChoreoItem(it *xmlItem) *parsedChoreoItem {
	title := strings.TrimSpace(first(it.Titles))
	enc := it.enclosure()
	mediaURL := Httpsify(enc.URL)
	mediaType := strings.ToLower(enc.Type)
	description := firstText(it.Descriptions)

	fieldText := title + " " + description
	fileName := strings.ToLower(meta.LastPathSegment(mediaURL))

	return &parsedChoreoItem{
		item: &ChoreoItem{
			Title:       title,
			Link:        strings.TrimSpace(first(it.Links)),
			Description: description,
			MediaURL:    mediaURL,
			MediaType:   mediaType,
		},
		baseKey: meta.BaseKeyFromTitle(title),
		fileKey: meta.BaseKeyFromFilename(mediaURL),
		isFront: frontPattern.MatchString(fieldText) || frontPattern.MatchString(fileName),
		isBack:  backPattern.MatchString(fieldText) || backPattern.MatchString(fileName),
		isNotes: notesPattern.MatchString(fieldText) || notesPattern.MatchString(fileName) ||
			mediaType == "application/pdf",
	}
}

// addToGroups fills empty slots of every group the item belongs to. An
// unclassified video becomes the front view of a group that has neither view.
func addToGroups(groups *ChoreoGroups, p *parsedChoreoItem) {
	for _, key := range []string{p.baseKey, p.fileKey} {
		if key == "" {
			continue
		}
		g := groups.Ensure(key)
		if p.isFront && g.Front == nil {
			g.Front = p.item
		}
		if p.isBack && g.Back == nil {
			g.Back = p.item
		}
		if p.isNotes && g.Notes == nil {
			g.Notes = p.item
		}
		if g.Front == nil && g.Back == nil && strings.HasPrefix(p.item.MediaType, "video/") {
			g.Front = p.item
		}
	}
}
