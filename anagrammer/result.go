package anagrammer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// NoResults is what a Result with no matches renders as.
const NoResults = "No results"

// Match is a word that can be built from the rack, with its score.
type Match struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

func (m Match) String() string {
	return fmt.Sprintf("%s (%d)", m.Word, m.Score)
}

// Result is the ordered output of a solve. An empty Result is a normal
// outcome, not a failure.
type Result struct {
	Matches []Match
	Sort    SortKey
}

// Empty returns true if no word matched.
func (r *Result) Empty() bool {
	return r == nil || len(r.Matches) == 0
}

func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Matches)
}

// Words returns the matched words in result order.
func (r *Result) Words() []string {
	if r.Empty() {
		return []string{}
	}
	return lo.Map(r.Matches, func(m Match, _ int) string { return m.Word })
}

// Top returns a Result holding at most n matches. n <= 0 means all of them.
func (r *Result) Top(n int) *Result {
	if n <= 0 || r.Len() <= n {
		return r
	}
	return &Result{Matches: r.Matches[:n], Sort: r.Sort}
}

// String renders one `WORD (score)` per line, or NoResults.
func (r *Result) String() string {
	if r.Empty() {
		return NoResults
	}
	lines := lo.Map(r.Matches, func(m Match, _ int) string { return m.String() })
	return strings.Join(lines, "\n")
}

type resultJSON struct {
	Matches   []Match `json:"matches"`
	Sort      string  `json:"sort"`
	NoResults bool    `json:"no_results"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	matches := []Match{}
	sort := SortNone
	if r != nil {
		if r.Matches != nil {
			matches = r.Matches
		}
		sort = r.Sort
	}
	return json.Marshal(resultJSON{Matches: matches, Sort: sort.String(), NoResults: r.Empty()})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var rj resultJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	key, err := ParseSortKey(rj.Sort)
	if err != nil {
		return err
	}
	r.Matches = rj.Matches
	r.Sort = key
	return nil
}
