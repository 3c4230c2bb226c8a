package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ExportPattern matches the audio history files in a Spotify extended streaming history export.
const ExportPattern = "Streaming_History_Audio*.json"

var ErrNoFiles = errors.New("no streaming history files found")

// Record is one row of a Spotify extended streaming history export.
type Record struct {
	Ts                time.Time `json:"ts"`
	Platform          *string   `json:"platform"`
	MsPlayed          *int64    `json:"ms_played"`
	ConnCountry       *string   `json:"conn_country"`
	TrackName         *string   `json:"master_metadata_track_name"`
	ArtistName        *string   `json:"master_metadata_album_artist_name"`
	AlbumName         *string   `json:"master_metadata_album_album_name"`
	SpotifyTrackURI   *string   `json:"spotify_track_uri"`
	EpisodeName       *string   `json:"episode_name"`
	EpisodeShowName   *string   `json:"episode_show_name"`
	SpotifyEpisodeURI *string   `json:"spotify_episode_uri"`
	ReasonStart       *string   `json:"reason_start"`
	ReasonEnd         *string   `json:"reason_end"`
	Shuffle           *bool     `json:"shuffle"`
	Skipped           *bool     `json:"skipped"`
	Offline           *bool     `json:"offline"`
	OfflineTimestamp  *int64    `json:"offline_timestamp"`
	IncognitoMode     *bool     `json:"incognito_mode"`
}

// IsSong reports whether the record is a music play rather than a podcast episode.
func (r Record) IsSong() bool {
	return r.EpisodeName == nil &&
		r.EpisodeShowName == nil &&
		r.SpotifyEpisodeURI == nil &&
		r.SpotifyTrackURI != nil
}

// Event converts the record, bucketing its timestamp into loc.
func (r Record) Event(loc *time.Location) Event {
	ev := Event{
		Time:     r.Ts.In(loc),
		Artist:   deref(r.ArtistName),
		Track:    deref(r.TrackName),
		Album:    deref(r.AlbumName),
		Platform: deref(r.Platform),
	}
	if r.MsPlayed != nil {
		ev.MsPlayed = *r.MsPlayed
	}
	if r.Skipped != nil {
		ev.Skipped = *r.Skipped
	}
	if r.Shuffle != nil {
		ev.Shuffle = *r.Shuffle
	}
	return ev
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ReadFile decodes one export file.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// LoadResult is the outcome of loading an export directory.
type LoadResult struct {
	Files   []string
	Records int
	Events  []Event
}

// LoadDir reads every export file in dir and returns the song plays it contains.
func LoadDir(dir string, loc *time.Location) (*LoadResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, ExportPattern))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoFiles)
	}
	sort.Strings(files)

	res := &LoadResult{Files: files}
	for _, f := range files {
		records, err := ReadFile(f)
		if err != nil {
			return nil, err
		}
		res.Records += len(records)
		for _, r := range records {
			if !r.IsSong() {
				continue
			}
			res.Events = append(res.Events, r.Event(loc))
		}
	}
	return res, nil
}
