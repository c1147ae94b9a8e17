package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// itunesNamespace is the namespace URI of the podcast extension elements
const itunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// isItunes reports whether an element belongs to the itunes extension. An
// undeclared prefix is left in Space as written.
func isItunes(name xml.Name) bool {
	return name.Space == itunesNamespace || name.Space == "itunes"
}

type xmlEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

// xmlImage covers both <image><url>..</url></image> and <itunes:image href=".."/>
type xmlImage struct {
	XMLName xml.Name
	Href    string   `xml:"href,attr"`
	URLs    []string `xml:"url"`
}

// xmlText is the concatenated character data of an element and everything
// nested inside it, so <description><b>Back</b> view</description> reads "Back view"
type xmlText string

func (t *xmlText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := tok.(type) {
		case xml.CharData:
			b.Write(tt)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	*t = xmlText(b.String())
	return nil
}

// xmlItem keeps every occurrence of a field so the first one can win.
// Untagged namespaces match, so <itunes:duration> lands in Durations.
type xmlItem struct {
	Titles       []string       `xml:"title"`
	Links        []string       `xml:"link"`
	Descriptions []xmlText      `xml:"description"`
	PubDates     []string       `xml:"pubDate"`
	Durations    []string       `xml:"duration"`
	Enclosures   []xmlEnclosure `xml:"enclosure"`
	Images       []xmlImage     `xml:"image"`
}

func (it *xmlItem) enclosure() xmlEnclosure {
	if len(it.Enclosures) == 0 {
		return xmlEnclosure{}
	}
	return it.Enclosures[0]
}

// itunesImageHref returns the href of the first <itunes:image>
func (it *xmlItem) itunesImageHref() string {
	for _, img := range it.Images {
		if isItunes(img.XMLName) {
			return img.Href
		}
	}
	return ""
}

// xmlDocument is the subset of an RSS document the parsers read
type xmlDocument struct {
	ChannelTitle     string
	HasChannelTitle  bool
	ChannelImageURL  string
	ChannelImageHref string
	Items            []xmlItem
}

// decodeDocument walks the document once. Items are collected wherever they
// appear; channel title and images only as direct children of <channel>.
func decodeDocument(text string) (*xmlDocument, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.CharsetReader = charsetReader

	doc := &xmlDocument{}
	var stack []string
	sawRoot := false
	sawChannelImage, sawChannelItunesImage := false, false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			switch {
			case t.Name.Local == "item":
				var it xmlItem
				if err := dec.DecodeElement(&it, &t); err != nil {
					return nil, err
				}
				doc.Items = append(doc.Items, it)

			case parent == "channel" && t.Name.Local == "title" && !doc.HasChannelTitle:
				var title string
				if err := dec.DecodeElement(&title, &t); err != nil {
					return nil, err
				}
				doc.ChannelTitle = title
				doc.HasChannelTitle = true

			case parent == "channel" && t.Name.Local == "image":
				var img xmlImage
				if err := dec.DecodeElement(&img, &t); err != nil {
					return nil, err
				}
				itunes := isItunes(img.XMLName)
				if !itunes && !sawChannelImage {
					sawChannelImage = true
					if len(img.URLs) > 0 {
						doc.ChannelImageURL = img.URLs[0]
					}
				} else if itunes && !sawChannelItunesImage {
					sawChannelItunesImage = true
					doc.ChannelImageHref = img.Href
				}

			default:
				stack = append(stack, t.Name.Local)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("document has no root element")
	}

	return doc, nil
}

// channelImage prefers <channel><image><url> over the itunes image href
func (d *xmlDocument) channelImage() string {
	if d.ChannelImageURL != "" {
		return d.ChannelImageURL
	}
	return d.ChannelImageHref
}

// charsetReader decodes feeds declaring a non-UTF-8 encoding
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

var insecureSchemePattern = regexp.MustCompile(`(?i)^http://`)

// Httpsify rewrites a leading http:// to https://
func Httpsify(u string) string {
	return insecureSchemePattern.ReplaceAllString(u, "https://")
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func firstText(values []xmlText) string {
	if len(values) == 0 {
		return ""
	}
	return string(values[0])
}
