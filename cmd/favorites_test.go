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
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/trend"
)

// rotationRecords plays a song for ten minutes a day for length days from day start, counted from
// 2023-01-01. One-millisecond plays on days 0 and 400 give every song the same date range.
func rotationRecords(artist, track string, start, length int) []exportRecord {
	base := noon(2023, 1, 1)
	records := []exportRecord{
		songRecord(artist, track, base, 1),
		songRecord(artist, track, base.AddDate(0, 0, 400), 1),
	}
	for i := 0; i < length; i++ {
		records = append(records, songRecord(artist, track, base.AddDate(0, 0, start+i), 600000))
	}
	return records
}

func bindingRecords() []exportRecord {
	var records []exportRecord
	records = append(records, rotationRecords("Roxette", "Joyride", 100, 61)...)
	records = append(records, rotationRecords("a-ha", "Take On Me", 105, 61)...)
	records = append(records, rotationRecords("Kesha", "Tik Tok", 300, 51)...)
	return records
}

func TestPrintFavoritesYAML(t *testing.T) {
	setupHistory(t, reportRecords())
	viper.Set("format", formatYAML)

	out := new(bytes.Buffer)
	if err := printFavorites(out, history.SongKey{Artist: "roxette"}, []int{0}, nil); err != nil {
		t.Fatalf("printFavorites: %v", err)
	}

	var report favoritesReport
	if err := yaml.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	// Peak 600000; the cutoff is the mean of 600000 and 300000, so only the first day qualifies.
	if len(report.Intervals) != 1 {
		t.Fatalf("Expected 1 interval, got %+v", report.Intervals)
	}
	want := favoriteInterval{Start: "2024-01-01", End: "2024-01-01", Days: 1}
	if report.Intervals[0] != want {
		t.Errorf("Expected %+v, got %+v", want, report.Intervals[0])
	}
	if report.Selection != `artist~"roxette"` {
		t.Errorf("Unexpected selection %q", report.Selection)
	}
}

func TestPrintFavoritesTable(t *testing.T) {
	setupHistory(t, bindingRecords())

	out := new(bytes.Buffer)
	if err := printFavorites(out, history.SongKey{Track: "joyride"}, trend.FavoriteWidths, nil); err != nil {
		t.Fatalf("printFavorites: %v", err)
	}
	for _, want := range []string{"Favorite periods of joyride", "2023-04-14", "2023-06-07", "Found 1 periods"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output should contain %q:\n%s", want, out)
		}
	}
}

func TestPrintFavoritesNoData(t *testing.T) {
	setupHistory(t, reportRecords())

	err := printFavorites(new(bytes.Buffer), history.SongKey{Artist: "nobody"}, trend.FavoriteWidths, nil)
	if !errors.Is(err, trend.ErrNoData) {
		t.Fatalf("Expected ErrNoData, got %v", err)
	}
}

func testBindingsOptions(ref history.SongKey) bindingsOptions {
	opts := bindingsOptions{Reference: ref, Candidates: 200, Config: trend.DefaultMatchConfig()}
	opts.Config.Workers = 2
	return opts
}

func TestPrintBindings(t *testing.T) {
	setupHistory(t, bindingRecords())

	out := new(bytes.Buffer)
	opts := testBindingsOptions(history.SongKey{Artist: "Roxette", Track: "Joyride"})
	if err := printBindings(context.Background(), out, opts, nil); err != nil {
		t.Fatalf("printBindings: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Favorite periods of Roxette - Joyride",
		"Take On Me",
		"2023-04-14 - 2023-06-07",
		"Found 1 matches among 3 candidates, skipped 0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Output should contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Tik Tok") {
		t.Errorf("Tik Tok should not bind:\n%s", got)
	}
}

func TestPrintBindingsYAML(t *testing.T) {
	setupHistory(t, bindingRecords())
	viper.Set("format", formatYAML)

	out := new(bytes.Buffer)
	opts := testBindingsOptions(history.SongKey{Artist: "Roxette", Track: "Joyride"})
	if err := printBindings(context.Background(), out, opts, nil); err != nil {
		t.Fatalf("printBindings: %v", err)
	}

	var report bindingsReport
	if err := yaml.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(report.Matches) != 1 {
		t.Fatalf("Expected 1 match, got %+v", report.Matches)
	}
	want := bindingMatch{
		Candidate:   history.SongKey{Artist: "a-ha", Track: "Take On Me"},
		Period:      "2023-04-14 - 2023-06-07",
		OverlapDays: 50,
	}
	if report.Matches[0] != want {
		t.Errorf("Expected %+v, got %+v", want, report.Matches[0])
	}
	if report.Fraction != trend.DefaultFraction {
		t.Errorf("Expected fraction %v, got %v", trend.DefaultFraction, report.Fraction)
	}
}

func TestPrintBindingsRequiresReference(t *testing.T) {
	setupHistory(t, bindingRecords())

	err := printBindings(context.Background(), new(bytes.Buffer), testBindingsOptions(history.SongKey{}), nil)
	if err == nil {
		t.Fatalf("Expected error without a reference")
	}
}

func TestPrintBindingsInvalidFraction(t *testing.T) {
	setupHistory(t, bindingRecords())

	opts := testBindingsOptions(history.SongKey{Artist: "Roxette"})
	opts.Config.Fraction = 1.5
	err := printBindings(context.Background(), new(bytes.Buffer), opts, nil)
	if !errors.Is(err, trend.ErrInvalidFraction) {
		t.Fatalf("Expected ErrInvalidFraction, got %v", err)
	}
}
