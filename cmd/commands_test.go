/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

type exportRecord struct {
	Ts          string  `json:"ts"`
	MsPlayed    int64   `json:"ms_played"`
	Track       *string `json:"master_metadata_track_name"`
	Artist      *string `json:"master_metadata_album_artist_name"`
	TrackURI    *string `json:"spotify_track_uri"`
	EpisodeName *string `json:"episode_name"`
	EpisodeURI  *string `json:"spotify_episode_uri"`
}

func songRecord(artist, track string, ts time.Time, ms int64) exportRecord {
	uri := "spotify:track:" + strings.ReplaceAll(track, " ", "")
	return exportRecord{
		Ts:       ts.UTC().Format(time.RFC3339),
		MsPlayed: ms,
		Track:    &track,
		Artist:   &artist,
		TrackURI: &uri,
	}
}

func episodeRecord(name string, ts time.Time, ms int64) exportRecord {
	uri := "spotify:episode:1"
	return exportRecord{Ts: ts.UTC().Format(time.RFC3339), MsPlayed: ms, EpisodeName: &name, EpisodeURI: &uri}
}

func noon(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// reportRecords: 2024-01-01 and 2024-01-08 are Mondays, 2024-01-02 is a Tuesday.
func reportRecords() []exportRecord {
	return []exportRecord{
		songRecord("Roxette", "Joyride", noon(2024, 1, 1), 600000),
		songRecord("Roxette", "Joyride", noon(2024, 1, 8), 300000),
		songRecord("Roxette", "Listen to Your Heart", noon(2024, 1, 2), 120000),
		songRecord("a-ha", "Take On Me", noon(2024, 1, 2), 240000),
		episodeRecord("Episode 1", noon(2024, 1, 3), 3600000),
	}
}

// setupHistory writes an export file and points the configuration at it.
func setupHistory(t *testing.T, records []exportRecord) string {
	t.Helper()
	dir := t.TempDir()

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	path := filepath.Join(dir, "Streaming_History_Audio_2024_0.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	viper.Set("dir", dir)
	viper.Set("timezone", "UTC")
	viper.Set("environment", "test")
	viper.Set("log_level", "error")
	viper.Set("format", formatTable)
	return dir
}

func TestPrintTopSongs(t *testing.T) {
	setupHistory(t, reportRecords())

	out := new(bytes.Buffer)
	if err := printTopSongs(out, 2, "", nil); err != nil {
		t.Fatalf("printTopSongs: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Joyride", "Take On Me", "Listed 2 songs with 19 minutes"} {
		if !strings.Contains(got, want) {
			t.Errorf("Output should contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Listen to Your Heart") {
		t.Errorf("Output should be limited to 2 songs:\n%s", got)
	}
	if strings.Contains(got, "Episode") {
		t.Errorf("Episodes should be filtered:\n%s", got)
	}
}

func TestPrintTopSongsDateRange(t *testing.T) {
	setupHistory(t, reportRecords())

	out := new(bytes.Buffer)
	if err := printTopSongs(out, 10, "", []string{"2024-01-02"}); err != nil {
		t.Fatalf("printTopSongs: %v", err)
	}
	if strings.Contains(out.String(), "Joyride") {
		t.Errorf("Joyride was not played on 2024-01-02:\n%s", out)
	}
	if !strings.Contains(out.String(), "Listen to Your Heart") {
		t.Errorf("Expected Listen to Your Heart:\n%s", out)
	}
}

func TestPrintTopSongsInvalidDateString(t *testing.T) {
	setupHistory(t, reportRecords())

	err := printTopSongs(new(bytes.Buffer), 10, "", []string{"derp"})
	if err == nil {
		t.Fatalf("printTopSongs should have errored with an invalid date string")
	}
}

func TestPrintTopSongsNoExport(t *testing.T) {
	setupHistory(t, nil)
	viper.Set("dir", t.TempDir())

	err := printTopSongs(new(bytes.Buffer), 10, "", nil)
	if !errors.Is(err, history.ErrNoFiles) {
		t.Fatalf("Expected ErrNoFiles, got %v", err)
	}
}

func TestPrintTopArtistsYAML(t *testing.T) {
	setupHistory(t, reportRecords())
	viper.Set("format", formatYAML)

	out := new(bytes.Buffer)
	if err := printTopArtists(out, 10, 0, nil); err != nil {
		t.Fatalf("printTopArtists: %v", err)
	}

	for _, want := range []string{"name: Roxette", "minutes: 17", "peak_years: \"2024\"", "name: a-ha"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output should contain %q:\n%s", want, out)
		}
	}
}

func TestPrintTopArtistsUnknownFormat(t *testing.T) {
	setupHistory(t, reportRecords())
	viper.Set("format", "xml")

	if err := printTopArtists(new(bytes.Buffer), 10, 0, nil); err == nil {
		t.Fatalf("Expected error for unknown format")
	}
}

func TestPrintWeekdays(t *testing.T) {
	setupHistory(t, reportRecords())

	out := new(bytes.Buffer)
	if err := printWeekdays(out, nil); err != nil {
		t.Fatalf("printWeekdays: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Monday") || !strings.Contains(got, "Tuesday") {
		t.Errorf("Expected Monday and Tuesday:\n%s", got)
	}
	if strings.Contains(got, "Wednesday") {
		t.Errorf("Days without listening should not be listed:\n%s", got)
	}
}

func TestSummaryCommand(t *testing.T) {
	setupHistory(t, reportRecords())

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"summary", "--artist", "Roxette"})
	defer rootCmd.SetOut(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Song records",
		"The list of top 200 songs",
		"The list of top 50 artists",
		"The list of top 50 songs from Roxette",
		"The list of top 20 days",
		"The list of avg listening minutes in days of week",
		"The list of top 30 artists in last 2 years",
		separator,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary should contain %q:\n%s", want, got)
		}
	}
}

func TestPrintSummaryYAML(t *testing.T) {
	setupHistory(t, reportRecords())
	viper.Set("format", formatYAML)

	out := new(bytes.Buffer)
	if err := printSummary(out, "", nil); err != nil {
		t.Fatalf("printSummary: %v", err)
	}
	for _, want := range []string{"song_records: 4", "listening_minutes: 21", "unique_songs: 3", "recent_artists:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output should contain %q:\n%s", want, out)
		}
	}
}
