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
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/logging"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

// listeningHistory is the song plays of one run, already restricted to the requested date range.
type listeningHistory struct {
	loc    *time.Location
	events []history.Event
}

func newLogger() (*zap.Logger, error) {
	logger, err := logging.New(viper.GetString("environment"), viper.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

func loadLocation() (*time.Location, error) {
	name := viper.GetString("timezone")
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// loadHistory reads the export directory and applies the optional [from] [to] arguments.
func loadHistory(logger *zap.Logger, args []string) (*listeningHistory, error) {
	loc, err := loadLocation()
	if err != nil {
		return nil, err
	}

	from, to, err := parseDateRangeFromArgs(args, loc)
	if err != nil {
		return nil, err
	}

	dir := viper.GetString("dir")
	started := time.Now()
	res, err := history.LoadDir(dir, loc)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	for _, f := range res.Files {
		logger.Debug("loaded export file", zap.String("file", f))
	}
	logger.Info("loaded streaming history",
		zap.String("dir", dir),
		zap.Int("files", len(res.Files)),
		zap.Int("records", res.Records),
		zap.Int("songs", len(res.Events)),
		zap.Duration("took", time.Since(started)))

	events := res.Events
	if !from.IsZero() || !to.IsZero() {
		events = history.Between(events, from, to)
		logger.Info("restricted to date range",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Int("songs", len(events)))
	}

	return &listeningHistory{loc: loc, events: events}, nil
}

// openStore loads the plays into a fresh in-memory store. The caller closes it.
func (h *listeningHistory) openStore() (*store.Store, error) {
	s, err := store.New(store.Memory)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := s.AddPlays(h.events); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading plays: %w", err)
	}
	return s, nil
}
