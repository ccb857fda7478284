package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hbollon/go-edlib"
	"github.com/vmunix/stashgrab/internal/scrape"
	"github.com/vmunix/stashgrab/pkg/stash"
)

// aliasThreshold is the JaroWinkler similarity above which a candidate's
// name or alias counts as the same entity. JaroWinkler favors prefix
// matches, which suits performer and studio names.
const aliasThreshold = 0.92

// Finder is the read-only slice of the catalog API the matcher needs.
type Finder interface {
	FindPerformers(ctx context.Context, name string) ([]stash.Entity, error)
	FindTags(ctx context.Context, name string) ([]stash.Entity, error)
	FindStudios(ctx context.Context, name string) ([]stash.Entity, error)
}

// Result partitions scraped names into matched catalog entities and
// unmatched free-text names. Names whose lookup failed outright are
// reported in Errors for manual handling; they appear in neither
// partition.
type Result struct {
	MatchedPerformers   []stash.Entity
	UnmatchedPerformers []string
	MatchedTags         []stash.Entity
	UnmatchedTags       []string
	MatchedStudio       *stash.Entity
	UnmatchedStudio     string
	Errors              []string
}

// Matcher reconciles names against the catalog. It performs idempotent
// reads only; creation is deferred to the import orchestrator so the user
// can review matches first. Safe for concurrent use.
type Matcher struct {
	finder Finder
	log    *slog.Logger
}

// New creates a matcher.
func New(finder Finder, log *slog.Logger) *Matcher {
	if log == nil {
		log = slog.Default()
	}
	return &Matcher{finder: finder, log: log.With("component", "match")}
}

// MatchMetadata reconciles every performer, tag, and studio name in md.
// A lookup failure for one name never aborts the rest.
func (m *Matcher) MatchMetadata(ctx context.Context, md *scrape.Metadata) *Result {
	res := &Result{}

	for _, name := range md.Performers {
		entity, err := m.matchOne(ctx, name, m.finder.FindPerformers)
		switch {
		case err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("performer %q: %v", name, err))
			m.log.Warn("performer lookup failed", "name", name, "error", err)
		case entity != nil:
			res.MatchedPerformers = append(res.MatchedPerformers, *entity)
		default:
			res.UnmatchedPerformers = append(res.UnmatchedPerformers, name)
		}
	}

	for _, name := range md.Tags {
		entity, err := m.matchOne(ctx, name, m.finder.FindTags)
		switch {
		case err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("tag %q: %v", name, err))
			m.log.Warn("tag lookup failed", "name", name, "error", err)
		case entity != nil:
			res.MatchedTags = append(res.MatchedTags, *entity)
		default:
			res.UnmatchedTags = append(res.UnmatchedTags, name)
		}
	}

	if md.Studio != "" {
		entity, err := m.matchOne(ctx, md.Studio, m.finder.FindStudios)
		switch {
		case err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("studio %q: %v", md.Studio, err))
			m.log.Warn("studio lookup failed", "name", md.Studio, "error", err)
		case entity != nil:
			res.MatchedStudio = entity
		default:
			res.UnmatchedStudio = md.Studio
		}
	}

	m.log.Debug("matching complete",
		"matched_performers", len(res.MatchedPerformers),
		"unmatched_performers", len(res.UnmatchedPerformers),
		"matched_tags", len(res.MatchedTags),
		"unmatched_tags", len(res.UnmatchedTags),
		"errors", len(res.Errors))
	return res
}

// matchOne looks a name up and picks the best candidate, or nil when
// nothing is close enough.
func (m *Matcher) matchOne(ctx context.Context, name string,
	find func(context.Context, string) ([]stash.Entity, error)) (*stash.Entity, error) {

	candidates, err := find(ctx, name)
	if err != nil {
		return nil, err
	}
	return bestCandidate(name, candidates), nil
}

// bestCandidate returns the candidate whose name or alias best matches
// name: exact normalized equality first, then fuzzy similarity above the
// threshold.
func bestCandidate(name string, candidates []stash.Entity) *stash.Entity {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil
	}

	// Exact normalized equality wins outright.
	for i := range candidates {
		for _, candidateName := range namesOf(candidates[i]) {
			if NormalizeName(candidateName) == normalized {
				return &candidates[i]
			}
		}
	}

	var best *stash.Entity
	var bestScore float64
	for i := range candidates {
		for _, candidateName := range namesOf(candidates[i]) {
			score := float64(edlib.JaroWinklerSimilarity(normalized, NormalizeName(candidateName)))
			if score >= aliasThreshold && score > bestScore {
				best = &candidates[i]
				bestScore = score
			}
		}
	}
	return best
}

// namesOf lists an entity's primary name plus aliases.
func namesOf(e stash.Entity) []string {
	return append([]string{e.Name}, e.Aliases...)
}
