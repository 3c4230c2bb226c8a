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
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

var summaryArtist string
var summaryCmd = &cobra.Command{
	Use:   "summary [from (optional)] [to (optional)]",
	Short: "Prints every report over the listening history",
	Long: `Prints the totals, top songs, top artists, top days, weekday averages and top artists of the
last two years. --artist adds the top songs of that artist. ` + dateArgsHelp,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSummary(cmd.OutOrStdout(), summaryArtist, args)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&summaryArtist, "artist", "", "also list the top songs of this artist")
}

func printSummary(out io.Writer, artist string, args []string) error {
	if viper.GetString("format") == formatYAML {
		return withStore(args, func(h *listeningHistory, s *store.Store) error {
			opts := analysis.DefaultOptions()
			opts.Location = h.loc
			summary, err := analysis.GenerateSummary(s, opts)
			if err != nil {
				return err
			}
			return writeYAML(out, summary)
		})
	}

	return printAnalysers(out, args, func(h *listeningHistory) []Analyser {
		opts := analysis.DefaultOptions()
		analysers := []Analyser{
			TotalsAnalyzer{},
			TopSongsAnalyzer{}.SetConfig(AnalyserConfig{opts.Songs}),
			TopArtistsAnalyzer{Config: AnalyserConfig{opts.Artists}},
		}
		if artist != "" {
			analysers = append(analysers, TopSongsAnalyzer{}.SetConfig(AnalyserConfig{50}).SetArtist(artist))
		}
		return append(analysers,
			TopDaysAnalyzer{AnalyserConfig{opts.Days}},
			WeekdaysAnalyzer{},
			TopArtistsAnalyzer{
				Config:   AnalyserConfig{opts.RecentArtists},
				Years:    opts.RecentYears,
				Location: h.loc,
			},
		)
	})
}

type TotalsAnalyzer struct{}

func (TotalsAnalyzer) GetName() string {
	return "Totals"
}

func (TotalsAnalyzer) GetResults(s *store.Store) (a Analysis, err error) {
	totals, err := analysis.GetTotals(s)
	if err != nil {
		return
	}
	a.results = [][]string{
		{"Total", "Value"},
		{"Song records", comma(totals.SongRecords)},
		{"Listening minutes", comma(totals.ListeningMinutes)},
		{"Unique songs", comma(totals.UniqueSongs)},
		{"First day", totals.FirstDay},
		{"Last day", totals.LastDay},
	}
	a.data = totals
	return
}
