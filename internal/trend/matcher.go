package trend

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

var ErrInvalidFraction = errors.New("overlap fraction must be in (0, 1]")

// DefaultFraction is the share of a reference interval a candidate must cover to match.
const DefaultFraction = 0.66

// Match records that a candidate was in rotation during one favorite interval of the reference.
// A candidate that covers several reference intervals produces one Match per interval.
type Match struct {
	Reference   history.SongKey `yaml:"reference"`
	Candidate   history.SongKey `yaml:"candidate"`
	Interval    DateInterval    `yaml:"interval"`
	OverlapDays int             `yaml:"overlap_days"`
}

// MatchResult is the outcome of one Matcher query.
type MatchResult struct {
	Reference history.SongKey   `yaml:"reference"`
	Intervals []DateInterval    `yaml:"intervals"`
	Matches   []Match           `yaml:"matches"`
	Skipped   []history.SongKey `yaml:"skipped,omitempty"`
}

type MatchConfig struct {
	// Fraction of the reference interval's duration the overlap must reach.
	Fraction float64

	// Smoothing cascade used for both the reference and every candidate.
	Widths []int

	// Number of candidates evaluated concurrently. Zero means GOMAXPROCS.
	Workers int
}

func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Fraction: DefaultFraction,
		Widths:   append([]int(nil), FavoriteWidths...),
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// Matcher finds songs whose favorite periods coincide with those of a reference song or artist.
type Matcher struct {
	cfg    MatchConfig
	logger *zap.Logger
}

func NewMatcher(cfg MatchConfig, logger *zap.Logger) (*Matcher, error) {
	if cfg.Fraction <= 0 || cfg.Fraction > 1 {
		return nil, fmt.Errorf("fraction %v: %w", cfg.Fraction, ErrInvalidFraction)
	}
	for _, w := range cfg.Widths {
		if w < 0 {
			return nil, fmt.Errorf("width %d: %w", w, ErrInvalidWidth)
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{cfg: cfg, logger: logger}, nil
}

// Binds reports whether cand covers at least fraction of ref's duration. The two must actually overlap,
// so a zero-duration reference only matches candidates that include its day.
func Binds(ref, cand DateInterval, fraction float64) (int, bool) {
	overlap := ref.OverlapDays(cand)
	if overlap == 0 {
		return 0, false
	}
	return overlap, float64(overlap) >= float64(ref.DurationDays())*fraction
}

// Match computes the reference's favorite intervals and tests every candidate in pool against each of
// them. Candidates without any listening events are skipped and logged; a reference without events is
// an error wrapping ErrNoData.
func (m *Matcher) Match(ctx context.Context, events []history.Event, ref history.SongKey, pool []history.SongData) (*MatchResult, error) {
	refIntervals, err := Favorites(events, history.SelectorFor(ref), m.cfg.Widths...)
	if err != nil {
		return nil, fmt.Errorf("reference %s: %w", ref, err)
	}
	res := &MatchResult{
		Reference: ref,
		Intervals: refIntervals,
		Matches:   []Match{},
	}
	if len(pool) == 0 || len(refIntervals) == 0 {
		return res, nil
	}

	candidates, err := m.candidateIntervals(ctx, events, ref, pool)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		if c.err != nil {
			m.logger.Warn("skipping candidate", zap.Stringer("candidate", c.key), zap.Error(c.err))
			res.Skipped = append(res.Skipped, c.key)
		}
	}

	for _, r := range refIntervals {
		for _, c := range candidates {
			if c.self || c.err != nil {
				continue
			}
			best := 0
			for _, ci := range c.intervals {
				if overlap, ok := Binds(r, ci, m.cfg.Fraction); ok && overlap > best {
					best = overlap
				}
			}
			if best > 0 {
				res.Matches = append(res.Matches, Match{
					Reference:   ref,
					Candidate:   c.key,
					Interval:    r,
					OverlapDays: best,
				})
			}
		}
	}
	return res, nil
}

type candidate struct {
	key       history.SongKey
	intervals []DateInterval
	self      bool
	err       error
}

var errEmptyKey = errors.New("candidate has neither artist nor track")

// candidateIntervals evaluates every candidate independently on a bounded pool of goroutines. Each task
// writes only its own slot of the result slice.
func (m *Matcher) candidateIntervals(ctx context.Context, events []history.Event, ref history.SongKey, pool []history.SongData) ([]candidate, error) {
	out := make([]candidate, len(pool))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.Workers)

	for i, song := range pool {
		out[i].key = song.SongKey
		if song.SongKey.EqualFold(ref) {
			out[i].self = true
			continue
		}
		if song.Artist == "" && song.Track == "" {
			out[i].err = errEmptyKey
			continue
		}
		if gctx.Err() != nil {
			break
		}
		i, song := i, song
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			intervals, err := Favorites(events, history.SelectorFor(song.SongKey), m.cfg.Widths...)
			if errors.Is(err, ErrNoData) {
				out[i].err = err
				return nil
			}
			if err != nil {
				return fmt.Errorf("candidate %s: %w", song.SongKey, err)
			}
			out[i].intervals = intervals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
