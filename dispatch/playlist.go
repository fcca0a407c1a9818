package dispatch

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"maestro/config"
	"maestro/player"

	"github.com/sahilm/fuzzy"
)

// DefaultPlaylistLength is used when a create_playlist call omits length.
const DefaultPlaylistLength = 20

// maxPlaylistQueries bounds the search fan-out per generation, whatever
// the criteria expands to.
const maxPlaylistQueries = 8

// Criteria describes a playlist in semantic terms. Constructed per
// create_playlist call, consumed once, never persisted.
type Criteria struct {
	Description string
	Length      int
	Shuffle     bool
}

// PlaylistGenerator expands a free-form criteria description into a
// bounded set of library searches and a de-duplicated track list.
//
// Mood, genre, activity, energy and theme words are treated as overlapping
// search-term sources, not mutually exclusive categories: every usable
// word in the description becomes a search term, and words recognized in
// the mood vocabulary additionally pull in their related genres.
type PlaylistGenerator struct {
	library player.Library
	rng     *rand.Rand
}

// NewPlaylistGenerator creates a generator with a time-seeded shuffle.
func NewPlaylistGenerator(library player.Library) *PlaylistGenerator {
	return &PlaylistGenerator{
		library: library,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SeedShuffle fixes the shuffle source, for deterministic tests.
func (g *PlaylistGenerator) SeedShuffle(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Generate produces at most criteria.Length unique tracks. Fewer matches
// than requested is a valid outcome, not an error; a short playlist is
// returned as-is. Individual search failures are skipped; generation
// fails only when every search failed and nothing was found.
func (g *PlaylistGenerator) Generate(criteria Criteria) ([]player.Track, error) {
	length := criteria.Length
	if length <= 0 {
		length = DefaultPlaylistLength
	}

	terms := deriveSearchTerms(criteria.Description)
	if len(terms) == 0 {
		return []player.Track{}, nil
	}

	var (
		picked   []player.Track
		seen     = map[string]bool{}
		queries  int
		lastErr  error
		searches = func(field, term string) {
			if queries >= maxPlaylistQueries {
				return
			}
			queries++
			found, err := g.library.Search(field, term)
			if err != nil {
				lastErr = err
				if config.Debug && config.DebugLog != nil {
					config.DebugLog.Printf("[playlist] search %s=%q failed: %v", field, term, err)
				}
				return
			}
			for _, t := range found {
				if seen[t.ID] {
					continue
				}
				seen[t.ID] = true
				picked = append(picked, t)
			}
		}
	)

	// Genre searches first for every term, then broad searches with
	// whatever query budget is left. Genre hits are the most on-point, so
	// the bound must never starve them.
	for _, field := range []string{"genre", "any"} {
		for _, term := range terms {
			searches(field, term)
		}
		if queries >= maxPlaylistQueries {
			break
		}
	}

	if len(picked) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all library searches failed: %w", lastErr)
	}

	if len(picked) > length {
		picked = picked[:length]
	}

	if criteria.Shuffle {
		g.rng.Shuffle(len(picked), func(i, j int) {
			picked[i], picked[j] = picked[j], picked[i]
		})
	}

	return picked, nil
}

// moodVocabulary maps mood/activity/energy words to related genre terms.
// Lookup is fuzzy, so slight misspellings ("relxing") still land.
var moodVocabulary = map[string][]string{
	"relaxing":  {"chill", "ambient", "acoustic", "jazz"},
	"calm":      {"ambient", "acoustic", "classical"},
	"energetic": {"rock", "dance", "electronic"},
	"upbeat":    {"pop", "dance", "funk"},
	"workout":   {"rock", "electronic", "dance"},
	"party":     {"dance", "pop", "funk", "disco"},
	"focus":     {"instrumental", "classical", "ambient"},
	"study":     {"instrumental", "classical", "piano"},
	"sleep":     {"ambient", "piano"},
	"happy":     {"pop", "funk", "soul"},
	"sad":       {"blues", "acoustic", "soul"},
	"romantic":  {"soul", "jazz"},
	"morning":   {"acoustic", "folk", "pop"},
	"driving":   {"rock", "indie", "pop"},
}

var moodWords = func() []string {
	words := make([]string, 0, len(moodVocabulary))
	for w := range moodVocabulary {
		words = append(words, w)
	}
	return words
}()

// Filler that carries no searchable meaning.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"for": true, "of": true, "to": true, "me": true, "my": true,
	"some": true, "with": true, "music": true, "songs": true,
	"song": true, "tracks": true, "playlist": true, "mix": true,
	"make": true, "create": true, "play": true,
}

// deriveSearchTerms splits a criteria description into search terms.
// Every non-stopword token is a term in its own right; tokens recognized
// in the mood vocabulary also contribute their related genres. Order is
// preserved and duplicates removed, so the caller's query bound cuts off
// the least significant terms.
func deriveSearchTerms(description string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	var terms []string
	added := map[string]bool{}
	add := func(term string) {
		if term == "" || added[term] {
			return
		}
		added[term] = true
		terms = append(terms, term)
	}

	for _, tok := range tokens {
		if stopwords[tok] || len(tok) < 3 {
			continue
		}

		add(tok)

		// Fuzzy-match the token against the mood vocabulary and expand
		// the best hit.
		matches := fuzzy.Find(tok, moodWords)
		if len(matches) > 0 {
			for _, related := range moodVocabulary[matches[0].Str] {
				add(related)
			}
		}
	}

	return terms
}
