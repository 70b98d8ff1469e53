package domain

import (
	"fmt"
	"time"
)

const thumbnailBaseURL = "https://i.ytimg.com/vi"

type Thumbnail struct {
	URL    string
	Width  int64
	Height int64
}

type Video struct {
	ID          string
	Title       string
	Artist      string
	PublishedAt time.Time
	Duration    time.Duration
	Medium      Thumbnail
	High        Thumbnail
}

func (v Video) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

func MediumThumbnail(videoID string) Thumbnail {
	return Thumbnail{URL: fmt.Sprintf("%s/%s/mqdefault.jpg", thumbnailBaseURL, videoID), Width: 320, Height: 180}
}

func HighThumbnail(videoID string) Thumbnail {
	return Thumbnail{URL: fmt.Sprintf("%s/%s/hqdefault.jpg", thumbnailBaseURL, videoID), Width: 480, Height: 360}
}
