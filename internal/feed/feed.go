package feed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// Error taxonomy for a single source. Both are recoverable: the
// aggregator logs and skips the source without failing the batch.
var (
	// ErrUnavailable marks a network or parse failure for a source.
	ErrUnavailable = errors.New("feed unavailable")
	// ErrEmpty marks a source that parsed but yielded no usable items.
	ErrEmpty = errors.New("feed has no items")
)

// Source is one configured syndication endpoint.
type Source struct {
	URL  string
	Name string
}

// Item is a raw feed item as one source's schema variant delivered it.
// Every field is best-effort; absent fields stay empty. The normalizer
// decides which variant of each field wins.
type Item struct {
	Title   string
	Link    string
	GUID    string
	Snippet string // description with markup stripped
	Summary string // description/summary as delivered
	Encoded string // content:encoded extension
	Content string // raw content body

	Creator string // dc:creator
	Author  string

	Published       string // raw publish date string
	PublishedParsed *time.Time
	Date            string // dc:date, ISO-style

	EnclosureURL      string
	MediaContentURL   string
	MediaThumbnailURL string

	Source string
}

// Client retrieves and parses feeds.
type Client struct {
	timeout time.Duration
}

// NewClient creates a feed client with a per-fetch timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{timeout: timeout}
}

// Fetch retrieves and parses one source. Individual malformed items never
// fail the call; they come back with empty-string defaults. The whole
// call fails with ErrUnavailable on transport/parse errors and ErrEmpty
// when the feed carries no items.
func (c *Client) Fetch(ctx context.Context, src Source) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parsed, err := gofeed.NewParser().ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, src.URL, err)
	}

	if parsed == nil || len(parsed.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, src.URL)
	}

	name := src.Name
	if name == "" {
		name = parsed.Title
	}
	if name == "" {
		name = sourceNameFromURL(src.URL)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, raw := range parsed.Items {
		items = append(items, convertItem(raw, name))
	}
	return items, nil
}

func convertItem(item *gofeed.Item, source string) Item {
	out := Item{
		Title:           strings.TrimSpace(item.Title),
		Link:            item.Link,
		GUID:            item.GUID,
		Summary:         item.Description,
		Snippet:         StripHTML(item.Description),
		Content:         item.Content,
		Published:       item.Published,
		PublishedParsed: item.PublishedParsed,
		Source:          source,
	}

	if item.DublinCoreExt != nil {
		if len(item.DublinCoreExt.Creator) > 0 {
			out.Creator = item.DublinCoreExt.Creator[0]
		}
		if len(item.DublinCoreExt.Date) > 0 {
			out.Date = item.DublinCoreExt.Date[0]
		}
	}
	if item.Author != nil {
		out.Author = item.Author.Name
	}

	if enc := extensionValue(item.Extensions, "content", "encoded"); enc != "" {
		out.Encoded = enc
	}

	for _, e := range item.Enclosures {
		if e != nil && e.URL != "" {
			out.EnclosureURL = e.URL
			break
		}
	}
	out.MediaContentURL = extensionAttr(item.Extensions, "media", "content", "url")
	out.MediaThumbnailURL = extensionAttr(item.Extensions, "media", "thumbnail", "url")

	return out
}

// extensionValue returns the text value of the first extension element
// with the given namespace prefix and name, or "".
func extensionValue(exts ext.Extensions, prefix, name string) string {
	for _, e := range exts[prefix][name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}

// extensionAttr returns the named attribute of the first extension
// element with the given namespace prefix and name, or "".
func extensionAttr(exts ext.Extensions, prefix, name, attr string) string {
	for _, e := range exts[prefix][name] {
		if v := e.Attrs[attr]; v != "" {
			return v
		}
	}
	return ""
}

// StripHTML removes markup tags, decodes common entities, and collapses
// whitespace.
func StripHTML(text string) string {
	var result strings.Builder
	inTag := false
	for _, r := range text {
		if r == '<' {
			inTag = true
			result.WriteRune(' ')
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}

	s := result.String()
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")

	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func sourceNameFromURL(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil {
		return feedURL
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return feedURL
	}

	for _, prefix := range []string{"www.", "blog.", "blogs.", "rss.", "feeds."} {
		host = strings.TrimPrefix(host, prefix)
	}

	parts := strings.Split(host, ".")
	name := host
	if len(parts) >= 2 {
		name = parts[len(parts)-2]
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
