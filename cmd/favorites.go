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
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/trend"
)

const intervalDateFormat = "2006-01-02"

var favoritesKey history.SongKey
var favoritesSmoothing []int
var favoritesCmd = &cobra.Command{
	Use:   "favorites [from (optional)] [to (optional)]",
	Short: "Finds the periods in which a song or artist was a favorite",
	Long: `Smooths the daily listening time of the selection with the --smoothing widths and prints the
periods in which it stayed at or above its favorite threshold. ` + dateArgsHelp,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFavorites(cmd.OutOrStdout(), favoritesKey, favoritesSmoothing, args)
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)

	favoritesCmd.Flags().StringVar(&favoritesKey.Artist, "artist", "", "artist to select (case-insensitive substring)")
	favoritesCmd.Flags().StringVar(&favoritesKey.Track, "track", "", "track to select (case-insensitive)")
	favoritesCmd.Flags().IntSliceVar(&favoritesSmoothing, "smoothing", append([]int(nil), trend.FavoriteWidths...),
		"comma-separated smoothing widths in days, applied in order")
}

type favoriteInterval struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Days  int    `yaml:"days"`
}

type favoritesReport struct {
	Selection string             `yaml:"selection"`
	Smoothing []int              `yaml:"smoothing"`
	Intervals []favoriteInterval `yaml:"intervals"`
}

func toFavoriteIntervals(intervals []trend.DateInterval) []favoriteInterval {
	out := make([]favoriteInterval, 0, len(intervals))
	for _, d := range intervals {
		out = append(out, favoriteInterval{
			Start: d.Start.Format(intervalDateFormat),
			End:   d.End.Format(intervalDateFormat),
			Days:  d.Days(),
		})
	}
	return out
}

func intervalRows(intervals []favoriteInterval) [][]string {
	rows := [][]string{{"#", "Start", "End", "Days"}}
	for i, d := range intervals {
		rows = append(rows, []string{rank(i), d.Start, d.End, strconv.Itoa(d.Days)})
	}
	return rows
}

func printFavorites(out io.Writer, key history.SongKey, widths []int, args []string) error {
	format := viper.GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	h, err := loadHistory(logger, args)
	if err != nil {
		return err
	}

	sel := history.SelectorFor(key)
	intervals, err := trend.Favorites(h.events, sel, widths...)
	if err != nil {
		return err
	}

	report := favoritesReport{
		Selection: sel.String(),
		Smoothing: widths,
		Intervals: toFavoriteIntervals(intervals),
	}
	a := Analysis{
		title:   fmt.Sprintf("Favorite periods of %s", key),
		results: intervalRows(report.Intervals),
		summary: fmt.Sprintf("Found %d periods with smoothing %v", len(intervals), widths),
		data:    report,
	}
	return writeAnalysis(out, a, format)
}
