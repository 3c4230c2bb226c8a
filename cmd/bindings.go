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
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/trend"
)

// bindingsOptions configures a bindings query.
type bindingsOptions struct {
	Reference  history.SongKey
	Candidates int
	Config     trend.MatchConfig
}

var bindingsOpts = bindingsOptions{Config: trend.DefaultMatchConfig()}
var bindingsCmd = &cobra.Command{
	Use:   "bindings [from (optional)] [to (optional)]",
	Short: "Finds songs that were favorites at the same time as a reference",
	Long: `Computes the favorite periods of the reference (--artist and/or --track), then checks each of the
--candidates most played songs: a song binds to a period when one of its own favorite periods covers at
least --fraction of it. ` + dateArgsHelp,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printBindings(cmd.Context(), cmd.OutOrStdout(), bindingsOpts, args)
	},
}

func init() {
	rootCmd.AddCommand(bindingsCmd)

	bindingsCmd.Flags().StringVar(&bindingsOpts.Reference.Artist, "artist", "", "reference artist (case-insensitive substring)")
	bindingsCmd.Flags().StringVar(&bindingsOpts.Reference.Track, "track", "", "reference track (case-insensitive)")
	bindingsCmd.Flags().IntVar(&bindingsOpts.Candidates, "candidates", 200, "number of most played songs to test")
	bindingsCmd.Flags().Float64Var(&bindingsOpts.Config.Fraction, "fraction", trend.DefaultFraction,
		"share of a reference period a candidate period must cover")
	bindingsCmd.Flags().IntVar(&bindingsOpts.Config.Workers, "workers", 0, "candidates evaluated in parallel (default GOMAXPROCS)")
	bindingsCmd.Flags().IntSliceVar(&bindingsOpts.Config.Widths, "smoothing", append([]int(nil), trend.FavoriteWidths...),
		"comma-separated smoothing widths in days, applied in order")
}

type bindingMatch struct {
	Candidate   history.SongKey `yaml:"candidate"`
	Period      string          `yaml:"period"`
	OverlapDays int             `yaml:"overlap_days"`
}

type bindingsReport struct {
	Reference history.SongKey    `yaml:"reference"`
	Fraction  float64            `yaml:"fraction"`
	Periods   []favoriteInterval `yaml:"periods"`
	Matches   []bindingMatch     `yaml:"matches"`
	Skipped   []history.SongKey  `yaml:"skipped,omitempty"`
}

func newBindingsReport(res *trend.MatchResult, fraction float64) bindingsReport {
	report := bindingsReport{
		Reference: res.Reference,
		Fraction:  fraction,
		Periods:   toFavoriteIntervals(res.Intervals),
		Matches:   make([]bindingMatch, 0, len(res.Matches)),
		Skipped:   res.Skipped,
	}
	for _, m := range res.Matches {
		report.Matches = append(report.Matches, bindingMatch{
			Candidate:   m.Candidate,
			Period:      m.Interval.String(),
			OverlapDays: m.OverlapDays,
		})
	}
	return report
}

func printBindings(ctx context.Context, out io.Writer, opts bindingsOptions, args []string) error {
	format := viper.GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}
	if opts.Reference.Artist == "" && opts.Reference.Track == "" {
		return fmt.Errorf("--artist or --track is required")
	}
	if opts.Candidates <= 0 {
		return fmt.Errorf("--candidates must be positive, got %d", opts.Candidates)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	matcher, err := trend.NewMatcher(opts.Config, logger)
	if err != nil {
		return err
	}

	h, err := loadHistory(logger, args)
	if err != nil {
		return err
	}

	pool, err := candidatePool(h, opts.Candidates)
	if err != nil {
		return err
	}

	started := time.Now()
	res, err := matcher.Match(ctx, h.events, opts.Reference, pool)
	if err != nil {
		return err
	}
	logger.Info("matched candidates",
		zap.Stringer("reference", opts.Reference),
		zap.Int("candidates", len(pool)),
		zap.Int("matches", len(res.Matches)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Duration("took", time.Since(started)))

	report := newBindingsReport(res, opts.Config.Fraction)
	if format == formatYAML {
		return writeYAML(out, report)
	}

	periods := Analysis{
		title:   fmt.Sprintf("Favorite periods of %s", opts.Reference),
		results: intervalRows(report.Periods),
	}
	if err := writeAnalysis(out, periods, format); err != nil {
		return err
	}

	matches := Analysis{
		title:   fmt.Sprintf("Songs bound to %s", opts.Reference),
		results: [][]string{{"#", "Artist", "Track", "Period", "Overlap days"}},
		summary: fmt.Sprintf("Found %d matches among %d candidates, skipped %d",
			len(report.Matches), len(pool), len(report.Skipped)),
	}
	for i, m := range report.Matches {
		matches.results = append(matches.results,
			[]string{rank(i), m.Candidate.Artist, m.Candidate.Track, m.Period, strconv.Itoa(m.OverlapDays)})
	}
	return writeAnalysis(out, matches, format)
}

// candidatePool returns the most played songs as match candidates.
func candidatePool(h *listeningHistory, limit int) ([]history.SongData, error) {
	s, err := h.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	pool, err := s.GetTopSongs(limit, "")
	if err != nil {
		return nil, fmt.Errorf("building candidate pool: %w", err)
	}
	return pool, nil
}
