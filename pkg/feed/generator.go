package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/mailscope/pkg/config"
	"github.com/umputun/mailscope/pkg/state"
)

// Generator renders the poll state into an RSS 2.0 document. Rendering is a
// pure function of the state, identical state produces identical entries in
// identical order.
type Generator struct {
	cfg     config.FeedConfig
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(cfg config.FeedConfig, baseURL string) *Generator {
	return &Generator{cfg: cfg, baseURL: strings.TrimRight(baseURL, "/")}
}

// Generate creates the RSS 2.0 document for a state snapshot
func (g *Generator) Generate(st state.State) (string, error) {
	rssItems := make([]*RSSItem, 0, len(st.Items))
	for _, item := range st.Items {
		rssItems = append(rssItems, &RSSItem{
			Title:       item.Title,
			Link:        item.Link,
			GUID:        item.GUID,
			Description: item.Summary,
			Author:      item.From,
			PubDate:     item.Published.Format(time.RFC1123Z),
		})
	}

	doc := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         g.cfg.Title,
			Link:          g.cfg.Link,
			Description:   g.cfg.Description,
			Language:      g.cfg.Language,
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}
