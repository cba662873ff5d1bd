// Package assembler fits a history of upstream records (for example a
// customer's recent behaviors) into a prompt section under a token budget.
package assembler

import (
	"sort"
)

// Entry is one record competing for space in a prompt section.
// Deduplication is by Key; recency is by Seq (higher is newer).
type Entry struct {
	Key    string
	Seq    int
	Text   string
	Pinned bool
}

// Log summarizes the assembly decision.
type Log struct {
	IncludedTokens int
	DroppedCount   int // excluded by budget or MaxEntries; duplicates are not counted
}

// TokenEstimator estimates token usage of text content.
type TokenEstimator func(text string) int

// Assembler keeps the newest entries that fit the budget.
type Assembler struct {
	estimate   TokenEstimator
	maxTokens  int
	maxEntries int
}

// Option configures the Assembler.
type Option func(*Assembler)

// WithTokenEstimator sets the token estimator. Defaults to RuneEstimator.
func WithTokenEstimator(est TokenEstimator) Option {
	return func(a *Assembler) {
		if est != nil {
			a.estimate = est
		}
	}
}

// WithMaxTokens sets the token budget. Zero or negative means unbounded.
func WithMaxTokens(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithMaxEntries caps how many entries survive regardless of budget.
func WithMaxEntries(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.maxEntries = n
		}
	}
}

// RuneEstimator approximates tokens as one per four runes, rounded up.
func RuneEstimator(s string) int { return (len([]rune(s)) + 3) / 4 }

// New creates a new Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		estimate:  RuneEstimator,
		maxTokens: 1_000_000_000,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble selects entries and returns them oldest first.
//   - Duplicates by Key keep the newest occurrence.
//   - Pinned entries are considered first, then the rest newest first.
//   - Entries that do not fit the remaining budget are dropped, so trimming
//     always removes the oldest unpinned history first.
func (a *Assembler) Assemble(entries []Entry) ([]Entry, Log) {
	latest := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if prev, ok := latest[e.Key]; ok && prev.Seq >= e.Seq {
			continue
		}
		latest[e.Key] = e
	}

	pinned := make([]Entry, 0, len(latest))
	rest := make([]Entry, 0, len(latest))
	for _, e := range latest {
		if e.Pinned {
			pinned = append(pinned, e)
		} else {
			rest = append(rest, e)
		}
	}
	newestFirst := func(s []Entry) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].Seq != s[j].Seq {
				return s[i].Seq > s[j].Seq
			}
			return s[i].Key < s[j].Key
		})
	}
	newestFirst(pinned)
	newestFirst(rest)

	budget := a.maxTokens
	out := make([]Entry, 0, len(latest))
	var log Log
	take := func(e Entry) {
		cost := a.estimate(e.Text)
		if (a.maxEntries > 0 && len(out) >= a.maxEntries) || cost > budget {
			log.DroppedCount++
			return
		}
		budget -= cost
		log.IncludedTokens += cost
		out = append(out, e)
	}
	for _, e := range pinned {
		take(e)
	}
	for _, e := range rest {
		take(e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Seq != out[j].Seq {
			return out[i].Seq < out[j].Seq
		}
		return out[i].Key < out[j].Key
	})
	return out, log
}
