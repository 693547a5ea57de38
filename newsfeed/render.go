package newsfeed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/pevans/nordfeed"
)

// Format is a syndication format the feed can be written in.
type Format string

// Supported output formats.
const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
	FormatJSON Format = "json"
)

// ParseFormat resolves a format name, defaulting to RSS for an empty string.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatRSS, nil
	case FormatRSS, FormatAtom, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown feed format %q (want rss, atom or json)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatAtom:
		return "application/atom+xml; charset=utf-8"
	case FormatJSON:
		return "application/feed+json; charset=utf-8"
	default:
		return "application/rss+xml; charset=utf-8"
	}
}

// Channel describes the feed as a whole.
type Channel struct {
	Title   string
	Link    string
	Updated time.Time
}

// RegionChannel returns the channel of a region's feed.
func RegionChannel(region nordfeed.Region, updated time.Time) Channel {
	return Channel{
		Title:   nordfeed.FeedTitle + " " + region.Name(),
		Link:    nordfeed.SiteURL + "/region/" + string(region),
		Updated: updated,
	}
}

// Render writes items as a feed in the given format.
func Render(w io.Writer, format Format, channel Channel, items []NewsItem) error {
	feed := &feeds.Feed{
		Title:       channel.Title,
		Link:        &feeds.Link{Href: channel.Link},
		Description: nordfeed.FeedDescription,
		Updated:     channel.Updated,
	}

	for _, item := range items {
		entry := &feeds.Item{
			Id:          item.URL,
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.URL},
			Description: item.Summary,
			Content:     item.Content,
			Created:     item.PublishedAt,
			Updated:     item.PublishedAt,
		}
		if len(item.Authors) > 0 {
			entry.Author = &feeds.Author{Name: strings.Join(item.Authors, ", ")}
		}
		feed.Items = append(feed.Items, entry)
	}

	switch format {
	case FormatAtom:
		// gorilla/feeds writes Atom categories without a term attribute,
		// which readers ignore, so Atom entries go without them.
		return feed.WriteAtom(w)
	case FormatJSON:
		jsonFeed := (&feeds.JSON{Feed: feed}).JSONFeed()
		for i, entry := range jsonFeed.Items {
			entry.Tags = items[i].Categories
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonFeed)
	default:
		rssFeed := (&feeds.Rss{Feed: feed}).RssFeed()
		for i, entry := range rssFeed.Items {
			entry.Category = strings.Join(items[i].Categories, ", ")
		}
		return feeds.WriteXML(rssFeed, w)
	}
}
