package domain

import (
	"strings"
	"time"
)

const (
	maxDemoSearchResults = 6
	demoSearchFallback   = 3
)

type demoRecord struct {
	id        string
	title     string
	artist    string
	published string
}

func (r demoRecord) video(withHigh bool) Video {
	published, _ := time.Parse(time.RFC3339, r.published)
	v := Video{
		ID:          r.id,
		Title:       r.title,
		Artist:      r.artist,
		PublishedAt: published,
		Medium:      MediumThumbnail(r.id),
	}
	if withHigh {
		v.High = HighThumbnail(r.id)
	}
	return v
}

var demoSearchRecords = []demoRecord{
	{id: "JGwWNGJdvx8", title: "Shape of You - Ed Sheeran", artist: "Ed Sheeran", published: "2017-01-30T00:00:00Z"},
	{id: "5sMKX22BHeE", title: "Bad Guy - Billie Eilish", artist: "Billie Eilish", published: "2019-03-29T00:00:00Z"},
	{id: "Z9X4k9JdHic", title: "Blinding Lights - The Weeknd", artist: "The Weeknd", published: "2020-01-21T00:00:00Z"},
	{id: "tFEW5e1uT3Y", title: "Flowers - Miley Cyrus", artist: "Miley Cyrus", published: "2023-01-12T00:00:00Z"},
	{id: "k2qgadSvNyU", title: "As It Was - Harry Styles", artist: "Harry Styles", published: "2022-03-31T00:00:00Z"},
	{id: "2Vv-BfVoq4g", title: "Perfect - Ed Sheeran", artist: "Ed Sheeran", published: "2017-11-09T00:00:00Z"},
}

var demoTrendingRecords = []demoRecord{
	{id: "tFEW5e1uT3Y", title: "Flowers - Miley Cyrus", artist: "Miley Cyrus", published: "2023-01-12T00:00:00Z"},
	{id: "k2qgadSvNyU", title: "As It Was - Harry Styles", artist: "Harry Styles", published: "2022-03-31T00:00:00Z"},
	{id: "b1kbLwvqugk", title: "Anti-Hero - Taylor Swift", artist: "Taylor Swift", published: "2022-10-21T00:00:00Z"},
	{id: "JGwWNGJdvx8", title: "Shape of You - Ed Sheeran", artist: "Ed Sheeran", published: "2017-01-30T00:00:00Z"},
	{id: "5sMKX22BHeE", title: "Bad Guy - Billie Eilish", artist: "Billie Eilish", published: "2019-03-29T00:00:00Z"},
	{id: "Z9X4k9JdHic", title: "Blinding Lights - The Weeknd", artist: "The Weeknd", published: "2020-01-21T00:00:00Z"},
	{id: "2Vv-BfVoq4g", title: "Perfect - Ed Sheeran", artist: "Ed Sheeran", published: "2017-11-09T00:00:00Z"},
	{id: "2aaawrO8UMM", title: "Levitating - Dua Lipa", artist: "Dua Lipa", published: "2020-10-01T00:00:00Z"},
}

// DemoSearch filters the static search catalog the way a real search roughly would.
// Generic queries ("music", "song") match everything; a query that matches nothing
// still yields the first few records so the UI never renders an empty page.
func DemoSearch(query string) []Video {
	q := strings.ToLower(query)

	matches := make([]Video, 0, len(demoSearchRecords))
	for _, r := range demoSearchRecords {
		v := r.video(false)
		if v.matches(q) {
			matches = append(matches, v)
		}
	}

	if len(matches) == 0 {
		fallback := make([]Video, 0, demoSearchFallback)
		for _, r := range demoSearchRecords[:demoSearchFallback] {
			fallback = append(fallback, r.video(false))
		}
		return fallback
	}

	if len(matches) > maxDemoSearchResults {
		matches = matches[:maxDemoSearchResults]
	}
	return matches
}

func DemoTrending() []Video {
	videos := make([]Video, 0, len(demoTrendingRecords))
	for _, r := range demoTrendingRecords {
		videos = append(videos, r.video(true))
	}
	return videos
}

func (v Video) matches(lowerQuery string) bool {
	return lowerQuery == "" ||
		strings.Contains(strings.ToLower(v.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(v.Artist), lowerQuery) ||
		strings.Contains(lowerQuery, "music") ||
		strings.Contains(lowerQuery, "song")
}
