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

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

var topSongsNumber int
var topSongsArtist string
var topSongsCmd = &cobra.Command{
	Use:   "top-songs [from (optional)] [to (optional)]",
	Short: "Lists the most played songs",
	Long:  "Songs are ranked by total playtime, shown in minutes. " + dateArgsHelp,
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTopSongs(cmd.OutOrStdout(), topSongsNumber, topSongsArtist, args)
	},
}

func init() {
	rootCmd.AddCommand(topSongsCmd)

	topSongsCmd.Flags().IntVarP(&topSongsNumber, "number", "n", 200, "number of results to return")
	topSongsCmd.Flags().StringVar(&topSongsArtist, "artist", "", "only list songs of this artist (case-insensitive)")
}

func printTopSongs(out io.Writer, numToReturn int, artist string, args []string) error {
	return printAnalysers(out, args, func(*listeningHistory) []Analyser {
		return []Analyser{TopSongsAnalyzer{}.SetConfig(AnalyserConfig{numToReturn}).SetArtist(artist)}
	})
}

type TopSongsAnalyzer struct {
	Config AnalyserConfig
	Artist string
}

func (t TopSongsAnalyzer) SetConfig(config AnalyserConfig) TopSongsAnalyzer {
	t.Config = config
	return t
}

func (t TopSongsAnalyzer) SetArtist(artist string) TopSongsAnalyzer {
	t.Artist = artist
	return t
}

func (t TopSongsAnalyzer) GetName() string {
	if t.Artist != "" {
		return fmt.Sprintf("Top songs from %s", t.Artist)
	}
	return "Top songs"
}

func (t TopSongsAnalyzer) GetResults(s *store.Store) (a Analysis, err error) {
	songs, err := analysis.TopSongs(s, t.Config.NumToReturn, t.Artist)
	if err != nil {
		return
	}

	a.title = fmt.Sprintf("The list of top %d songs", t.Config.NumToReturn)
	if t.Artist != "" {
		a.title = fmt.Sprintf("The list of top %d songs from %s", t.Config.NumToReturn, t.Artist)
	}
	a.results = [][]string{{"#", "Artist", "Track", "Minutes"}}
	var total int64
	for i, song := range songs {
		a.results = append(a.results, []string{rank(i), song.Artist, song.Track, comma(song.Minutes)})
		total += song.Minutes
	}
	a.summary = fmt.Sprintf("Listed %d songs with %s minutes", len(songs), comma(total))
	a.data = songs
	return
}
