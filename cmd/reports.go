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

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/store"
)

const separator = "========================="

// withStore loads the history named by args into a store and passes it to fn.
func withStore(args []string, fn func(h *listeningHistory, s *store.Store) error) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	h, err := loadHistory(logger, args)
	if err != nil {
		return err
	}

	s, err := h.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(h, s)
}

// printAnalysers runs the analysers built for the loaded history and writes their results in order.
func printAnalysers(out io.Writer, args []string, build func(h *listeningHistory) []Analyser) error {
	format := viper.GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	return withStore(args, func(h *listeningHistory, s *store.Store) error {
		for i, a := range build(h) {
			analysis, err := a.GetResults(s)
			if err != nil {
				return fmt.Errorf("%s: %w", a.GetName(), err)
			}
			if i > 0 {
				if format == formatTable {
					fmt.Fprintln(out, separator)
				} else {
					fmt.Fprintln(out, "---")
				}
			}
			if err := writeAnalysis(out, analysis, format); err != nil {
				return err
			}
		}
		return nil
	})
}

func rank(i int) string {
	return strconv.Itoa(i + 1)
}

func comma(n int64) string {
	return humanize.Comma(n)
}
