package domain

import "sort"

type TrackList struct {
	Title  string
	Videos []Video
	// Demo is set when the videos come from the static fallback catalog.
	Demo    bool
	Message string
}

func (t *TrackList) SortByName() {
	sort.SliceStable(t.Videos, func(i, j int) bool {
		return t.Videos[i].Title < t.Videos[j].Title
	})
}

func (t *TrackList) SortByArtist() {
	sort.SliceStable(t.Videos, func(i, j int) bool {
		return t.Videos[i].Artist < t.Videos[j].Artist
	})
}

func (t *TrackList) SortByDuration() {
	sort.SliceStable(t.Videos, func(i, j int) bool {
		return t.Videos[i].Duration < t.Videos[j].Duration
	})
}

func (t *TrackList) SortByPublish() {
	sort.SliceStable(t.Videos, func(i, j int) bool {
		return t.Videos[i].PublishedAt.Before(t.Videos[j].PublishedAt)
	})
}

// Reorder applies one of the named criteria. Unknown criteria leave the list untouched.
func (t *TrackList) Reorder(criteria string) {
	switch criteria {
	case "name":
		t.SortByName()
	case "artist":
		t.SortByArtist()
	case "duration":
		t.SortByDuration()
	case "publish":
		t.SortByPublish()
	}
}
