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

var topDaysNumber int
var topDaysCmd = &cobra.Command{
	Use:   "top-days [from (optional)] [to (optional)]",
	Short: "Lists the days with the most listening",
	Long:  dateArgsHelp,
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printAnalysers(cmd.OutOrStdout(), args, func(*listeningHistory) []Analyser {
			return []Analyser{TopDaysAnalyzer{AnalyserConfig{topDaysNumber}}}
		})
	},
}

var weekdaysCmd = &cobra.Command{
	Use:   "weekdays [from (optional)] [to (optional)]",
	Short: "Shows the average listening time of each day of the week",
	Long:  "Only days with some listening count towards the average. " + dateArgsHelp,
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printWeekdays(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(topDaysCmd)
	rootCmd.AddCommand(weekdaysCmd)

	topDaysCmd.Flags().IntVarP(&topDaysNumber, "number", "n", 20, "number of results to return")
}

func printWeekdays(out io.Writer, args []string) error {
	return printAnalysers(out, args, func(*listeningHistory) []Analyser {
		return []Analyser{WeekdaysAnalyzer{}}
	})
}

type TopDaysAnalyzer struct {
	Config AnalyserConfig
}

func (t TopDaysAnalyzer) GetName() string {
	return "Top days"
}

func (t TopDaysAnalyzer) GetResults(s *store.Store) (a Analysis, err error) {
	days, err := analysis.TopDays(s, t.Config.NumToReturn)
	if err != nil {
		return
	}
	a.title = fmt.Sprintf("The list of top %d days", t.Config.NumToReturn)
	a.results = [][]string{{"#", "Date", "Minutes"}}
	for i, d := range days {
		a.results = append(a.results, []string{rank(i), d.Date, comma(d.Minutes)})
	}
	a.data = days
	return
}

type WeekdaysAnalyzer struct{}

func (WeekdaysAnalyzer) GetName() string {
	return "Weekdays"
}

func (WeekdaysAnalyzer) GetResults(s *store.Store) (a Analysis, err error) {
	weekdays, err := analysis.Weekdays(s)
	if err != nil {
		return
	}
	a.title = "The list of avg listening minutes in days of week"
	a.results = [][]string{{"#", "Day", "Avg minutes", "Days"}}
	for i, w := range weekdays {
		a.results = append(a.results, []string{rank(i), w.Weekday, comma(w.AvgMinutes), comma(w.Days)})
	}
	a.data = weekdays
	return
}
