package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/mailscope/pkg/config"
	"github.com/umputun/mailscope/pkg/state"
)

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		Title:       "Email RSS Feed",
		Link:        "http://localhost/rss",
		Description: "Auto feed from email parser",
		Language:    "he",
		MaxItems:    50,
	}
}

func TestGenerator_Generate(t *testing.T) {
	generator := NewGenerator(testFeedConfig(), "https://feeds.example.com/")

	pub := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	st := state.State{
		LastUID: "43",
		Items: []state.Item{
			{GUID: "43", Title: "Second email", Link: "http://localhost/rss", Summary: "second summary", Published: pub.Add(time.Hour), From: "a@b.c"},
			{GUID: "42", Title: "Halacha of the day", Link: "http://localhost/rss", Summary: "first summary", Published: pub, From: "a@b.c"},
		},
	}

	t.Run("document structure", func(t *testing.T) {
		out, err := generator.Generate(st)
		require.NoError(t, err)

		assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, out, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, out, `<title>Email RSS Feed</title>`)
		assert.Contains(t, out, `<link>http://localhost/rss</link>`)
		assert.Contains(t, out, `<description>Auto feed from email parser</description>`)
		assert.Contains(t, out, `<language>he</language>`)
		assert.Contains(t, out, `href="https://feeds.example.com/rss"`)
	})

	t.Run("parses as valid RSS with stored order", func(t *testing.T) {
		out, err := generator.Generate(st)
		require.NoError(t, err)

		parsed, err := gofeed.NewParser().ParseString(out)
		require.NoError(t, err)

		assert.Equal(t, "Email RSS Feed", parsed.Title)
		require.Len(t, parsed.Items, 2)

		assert.Equal(t, "43", parsed.Items[0].GUID)
		assert.Equal(t, "Second email", parsed.Items[0].Title)
		assert.Equal(t, "second summary", parsed.Items[0].Description)

		assert.Equal(t, "42", parsed.Items[1].GUID)
		assert.Equal(t, "Halacha of the day", parsed.Items[1].Title)
		assert.Equal(t, "first summary", parsed.Items[1].Description)
		require.NotNil(t, parsed.Items[1].PublishedParsed)
		assert.True(t, pub.Equal(parsed.Items[1].PublishedParsed.UTC()))
	})

	t.Run("pure function of state", func(t *testing.T) {
		first, err := generator.Generate(st)
		require.NoError(t, err)
		second, err := generator.Generate(st)
		require.NoError(t, err)

		p1, err := gofeed.NewParser().ParseString(first)
		require.NoError(t, err)
		p2, err := gofeed.NewParser().ParseString(second)
		require.NoError(t, err)

		require.Equal(t, len(p1.Items), len(p2.Items))
		for i := range p1.Items {
			assert.Equal(t, p1.Items[i].GUID, p2.Items[i].GUID)
			assert.Equal(t, p1.Items[i].Title, p2.Items[i].Title)
			assert.Equal(t, p1.Items[i].Description, p2.Items[i].Description)
		}
	})

	t.Run("empty state renders empty channel", func(t *testing.T) {
		out, err := generator.Generate(state.State{Items: []state.Item{}})
		require.NoError(t, err)

		assert.Contains(t, out, "<channel>")
		assert.NotContains(t, out, "<item>")
	})

	t.Run("single accepted item scenario", func(t *testing.T) {
		out, err := generator.Generate(state.State{
			LastUID: "42",
			Items: []state.Item{
				{GUID: "42", Title: "Halacha of the day", Link: "http://localhost/rss", Summary: "sum", Published: pub, From: "a@b.c"},
			},
		})
		require.NoError(t, err)

		parsed, err := gofeed.NewParser().ParseString(out)
		require.NoError(t, err)
		require.Len(t, parsed.Items, 1)
		assert.Equal(t, "42", parsed.Items[0].GUID)
	})

	t.Run("trailing slash trimmed from base URL", func(t *testing.T) {
		gen := NewGenerator(testFeedConfig(), "https://feeds.example.com/")
		out, err := gen.Generate(state.State{Items: []state.Item{}})
		require.NoError(t, err)
		assert.False(t, strings.Contains(out, "example.com//rss"))
	})
}
