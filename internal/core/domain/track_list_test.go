package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackListReorder(t *testing.T) {
	base := func() TrackList {
		return TrackList{Videos: []Video{
			{ID: "b", Title: "Bravo", Artist: "Zed", Duration: 3 * time.Minute, PublishedAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "a", Title: "Alpha", Artist: "Yan", Duration: 5 * time.Minute, PublishedAt: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "c", Title: "Charlie", Artist: "Abe", Duration: 1 * time.Minute, PublishedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		}}
	}

	tests := []struct {
		criteria string
		want     []string
	}{
		{"name", []string{"a", "b", "c"}},
		{"artist", []string{"c", "a", "b"}},
		{"duration", []string{"c", "b", "a"}},
		{"publish", []string{"a", "c", "b"}},
		{"unknown", []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.criteria, func(t *testing.T) {
			list := base()
			list.Reorder(tt.criteria)
			assert.Equal(t, tt.want, ids(list.Videos))
		})
	}
}

func TestUpstreamErrorMessage(t *testing.T) {
	assert.Equal(t, "youtube api returned status 403: quota exceeded", (&UpstreamError{StatusCode: 403, Message: "quota exceeded"}).Error())
	assert.Equal(t, "youtube api returned status 500", (&UpstreamError{StatusCode: 500}).Error())
}
