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
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/chart"
	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/trend"
)

const defaultGraphSmoothing = 20

// graphSpec is one graph to write. The "graphs" config key holds a list of them.
type graphSpec struct {
	Name      string `mapstructure:"name"`
	Artist    string `mapstructure:"artist"`
	Track     string `mapstructure:"track"`
	Smoothing []int  `mapstructure:"smoothing"`
}

func (g graphSpec) selector() history.Selector {
	return history.SelectorFor(history.SongKey{Artist: g.Artist, Track: g.Track})
}

var graphFlags graphSpec
var graphConfigured bool
var graphOut string
var graphCmd = &cobra.Command{
	Use:   "graph [from (optional)] [to (optional)]",
	Short: "Writes smoothed daily listening time as JSON for plotting",
	Long: `Writes <out>/<name>.json holding one {"Date", "AvgPlaytime"} record per day for the selected plays,
smoothed with the --smoothing widths in order. With --configured, writes every graph listed under the
"graphs" config key instead. ` + dateArgsHelp,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		specs := []graphSpec{graphFlags}
		if graphConfigured {
			var err error
			if specs, err = configuredGraphs(); err != nil {
				return err
			}
		} else if graphFlags.Name == "" {
			return fmt.Errorf("--name is required unless --configured is set")
		}
		return printGraphs(cmd.OutOrStdout(), afero.NewOsFs(), graphOut, specs, args)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringVar(&graphFlags.Name, "name", "", "name of the output file, without .json")
	graphCmd.Flags().StringVar(&graphFlags.Artist, "artist", "", "artist to select (case-insensitive substring)")
	graphCmd.Flags().StringVar(&graphFlags.Track, "track", "", "track to select (case-insensitive)")
	graphCmd.Flags().IntSliceVar(&graphFlags.Smoothing, "smoothing", []int{defaultGraphSmoothing},
		"comma-separated smoothing widths in days, applied in order")
	graphCmd.Flags().BoolVar(&graphConfigured, "configured", false, `write every graph under the "graphs" config key`)
	graphCmd.Flags().StringVar(&graphOut, "out", chart.DefaultDir, "output directory")
}

func configuredGraphs() ([]graphSpec, error) {
	var specs []graphSpec
	if err := viper.UnmarshalKey("graphs", &specs); err != nil {
		return nil, fmt.Errorf("reading graphs config: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no graphs configured")
	}
	for i := range specs {
		if specs[i].Name == "" {
			return nil, fmt.Errorf("graph %d has no name", i+1)
		}
		if specs[i].Smoothing == nil {
			specs[i].Smoothing = []int{defaultGraphSmoothing}
		}
	}
	return specs, nil
}

func printGraphs(out io.Writer, fs afero.Fs, dir string, specs []graphSpec, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	h, err := loadHistory(logger, args)
	if err != nil {
		return err
	}

	w := chart.NewWriter(fs, dir)
	batch := len(specs) > 1
	for _, spec := range specs {
		series, err := buildGraph(h.events, spec)
		if batch && errors.Is(err, trend.ErrNoData) {
			logger.Warn("skipping graph", zap.String("name", spec.Name), zap.Error(err))
			continue
		}
		if err != nil {
			return fmt.Errorf("graph %s: %w", spec.Name, err)
		}

		path, err := w.Write(spec.Name, series)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s (%d days, %s)\n", path, len(series), spec.selector())
	}
	return nil
}

// buildGraph returns the smoothed daily series of a graph. The domain is first widened on the left by
// half the first width so the smoothed rise before the first play is visible.
func buildGraph(events []history.Event, spec graphSpec) (trend.Series, error) {
	series, err := trend.BuildDaily(events, spec.selector())
	if err != nil {
		return nil, err
	}
	if len(spec.Smoothing) > 0 {
		series = series.Widen(spec.Smoothing[0]/2, 0)
	}
	return trend.Cascade(series, spec.Smoothing...)
}
