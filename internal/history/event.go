package history

import (
	"fmt"
	"strings"
	"time"
)

// Event is a single song play. Empty Artist or Track means the export had no value.
type Event struct {
	Time     time.Time
	Artist   string
	Track    string
	Album    string
	MsPlayed int64
	Platform string
	Skipped  bool
	Shuffle  bool
}

// Day returns the calendar day of the play as a UTC midnight timestamp.
func (e Event) Day() time.Time {
	return DayOf(e.Time)
}

// DayOf truncates t to its calendar day, keeping the wall-clock date of t's location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Between returns the events with start <= Time < end. A zero bound is open.
func Between(events []Event, start, end time.Time) []Event {
	var out []Event
	for _, ev := range events {
		if !start.IsZero() && ev.Time.Before(start) {
			continue
		}
		if !end.IsZero() && !ev.Time.Before(end) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// SongKey identifies a song. Either half may be empty in a query, meaning "any".
type SongKey struct {
	Artist string `yaml:"artist"`
	Track  string `yaml:"track"`
}

func (k SongKey) String() string {
	switch {
	case k.Artist == "" && k.Track == "":
		return "(all)"
	case k.Artist == "":
		return k.Track
	case k.Track == "":
		return k.Artist
	}
	return k.Artist + " - " + k.Track
}

// EqualFold compares two keys case-insensitively.
func (k SongKey) EqualFold(o SongKey) bool {
	return strings.EqualFold(k.Artist, o.Artist) && strings.EqualFold(k.Track, o.Track)
}

// SongData is a song with its aggregate playtime in milliseconds.
type SongData struct {
	SongKey
	Playtime int64
}

// SelectorKind tags the variants of Selector.
type SelectorKind int

const (
	SelectAll SelectorKind = iota
	SelectArtist
	SelectTrack
	SelectArtistAndTrack
)

// Selector picks events by artist substring and/or exact track name, both case-insensitive.
type Selector struct {
	kind   SelectorKind
	artist string
	track  string
}

func All() Selector { return Selector{kind: SelectAll} }

func ByArtist(substring string) Selector {
	return Selector{kind: SelectArtist, artist: strings.ToLower(substring)}
}

func ByTrack(name string) Selector {
	return Selector{kind: SelectTrack, track: strings.ToLower(name)}
}

func ByArtistAndTrack(substring, name string) Selector {
	return Selector{kind: SelectArtistAndTrack, artist: strings.ToLower(substring), track: strings.ToLower(name)}
}

// SelectorFor builds the selector for a key, treating empty halves as absent.
func SelectorFor(k SongKey) Selector {
	switch {
	case k.Artist != "" && k.Track != "":
		return ByArtistAndTrack(k.Artist, k.Track)
	case k.Artist != "":
		return ByArtist(k.Artist)
	case k.Track != "":
		return ByTrack(k.Track)
	}
	return All()
}

func (s Selector) Kind() SelectorKind { return s.kind }

// Key returns the selection as a SongKey, lower-cased.
func (s Selector) Key() SongKey {
	return SongKey{Artist: s.artist, Track: s.track}
}

// Match reports whether ev is selected.
func (s Selector) Match(ev Event) bool {
	switch s.kind {
	case SelectArtist:
		return s.matchArtist(ev)
	case SelectTrack:
		return s.matchTrack(ev)
	case SelectArtistAndTrack:
		return s.matchArtist(ev) && s.matchTrack(ev)
	}
	return true
}

func (s Selector) matchArtist(ev Event) bool {
	return ev.Artist != "" && strings.Contains(strings.ToLower(ev.Artist), s.artist)
}

func (s Selector) matchTrack(ev Event) bool {
	return ev.Track != "" && strings.EqualFold(ev.Track, s.track)
}

func (s Selector) String() string {
	switch s.kind {
	case SelectArtist:
		return fmt.Sprintf("artist~%q", s.artist)
	case SelectTrack:
		return fmt.Sprintf("track=%q", s.track)
	case SelectArtistAndTrack:
		return fmt.Sprintf("artist~%q track=%q", s.artist, s.track)
	}
	return "all"
}
