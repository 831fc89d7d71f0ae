package seo

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"
)

// FeedEntry is one item of the syndication feed.
type FeedEntry struct {
	Title       string
	Link        string
	GUID        string
	Published   time.Time
	Description string
}

// FeedOptions describes the feed channel.
type FeedOptions struct {
	Title       string
	Link        string // site root URL
	Description string
	Author      string
	Limit       int
}

// FeedEntries selects essay pages with a title and a publish date, newest
// first, at most limit of them. Ties keep page order.
func FeedEntries(pages []Page, limit int) []FeedEntry {
	var entries []FeedEntry
	for _, p := range pages {
		published, ok := p.Published.Get()
		if !p.Essay || p.Title == "" || !ok {
			continue
		}
		entries = append(entries, FeedEntry{
			Title:       p.Title,
			Link:        p.URL,
			GUID:        EntryGUID(p.URL),
			Published:   published,
			Description: p.Description,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Published.After(entries[j].Published)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// EntryGUID is a stable name-based identifier for a page URL.
func EntryGUID(link string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}

// BuildFeed renders entries as an RSS 2.0 document. The channel dates are
// the newest entry's date so identical input yields identical output.
func BuildFeed(entries []FeedEntry, opts FeedOptions) (string, error) {
	feed := &feeds.Feed{
		Title:       opts.Title,
		Link:        &feeds.Link{Href: opts.Link},
		Description: opts.Description,
	}
	if len(entries) > 0 {
		feed.Created = entries[0].Published.UTC()
		feed.Updated = feed.Created
	}

	for _, e := range entries {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       e.Title,
			Link:        &feeds.Link{Href: e.Link},
			Id:          e.GUID,
			Author:      &feeds.Author{Name: opts.Author},
			Description: e.Description,
			Created:     e.Published.UTC(),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("render feed: %w", err)
	}
	return rss, nil
}
