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
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

var topArtistsNumber int
var topArtistsYears int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [from (optional)] [to (optional)]",
	Short: "Lists the most played artists",
	Long: `Artists are ranked by total playtime, shown in minutes. With --years, only plays in that many
years before the last day of listening count. ` + dateArgsHelp,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTopArtists(cmd.OutOrStdout(), topArtistsNumber, topArtistsYears, args)
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 50, "number of results to return")
	topArtistsCmd.Flags().IntVar(&topArtistsYears, "years", 0, "only count the last this many years of listening")
}

func printTopArtists(out io.Writer, numToReturn int, years int, args []string) error {
	if years < 0 {
		return fmt.Errorf("--years must not be negative, got %d", years)
	}
	return printAnalysers(out, args, func(h *listeningHistory) []Analyser {
		return []Analyser{TopArtistsAnalyzer{
			Config:   AnalyserConfig{numToReturn},
			Years:    years,
			Location: h.loc,
		}}
	})
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig

	// Years limits the ranking to the last years of listening when positive.
	Years    int
	Location *time.Location
}

func (t TopArtistsAnalyzer) GetName() string {
	if t.Years > 0 {
		return fmt.Sprintf("Top artists in last %d years", t.Years)
	}
	return "Top artists"
}

func (t TopArtistsAnalyzer) GetResults(s *store.Store) (a Analysis, err error) {
	if t.Years > 0 {
		var recent analysis.RecentArtists
		recent, err = analysis.RecentTopArtists(s, t.Config.NumToReturn, t.Years, t.Location)
		if err != nil {
			return
		}
		a.title = fmt.Sprintf("The list of top %d artists in last %d years", t.Config.NumToReturn, t.Years)
		a.results = [][]string{{"#", "Artist", "Minutes"}}
		for i, artist := range recent.Artists {
			a.results = append(a.results, []string{rank(i), artist.Name, comma(artist.Minutes)})
		}
		if recent.Since != "" {
			a.summary = fmt.Sprintf("Counting plays after %s", recent.Since)
		}
		a.data = recent
		return
	}

	artists, err := analysis.TopArtists(s, t.Config.NumToReturn)
	if err != nil {
		return
	}
	a.title = fmt.Sprintf("The list of top %d artists", t.Config.NumToReturn)
	a.results = [][]string{{"#", "Artist", "Minutes", "Peak years"}}
	var total int64
	for i, artist := range artists {
		a.results = append(a.results, []string{rank(i), artist.Name, comma(artist.Minutes), artist.PeakYears})
		total += artist.Minutes
	}
	a.summary = fmt.Sprintf("Listed %d artists with %s minutes", len(artists), comma(total))
	a.data = artists
	return
}
