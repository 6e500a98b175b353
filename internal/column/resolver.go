package column

// Options tunes the fuzzy acceptance threshold. A candidate column is
// accepted when its edit distance to the wanted label does not exceed
// max(Floor, len(normalized label)/Divisor). The defaults admit loose
// matches for short labels; callers that need stricter behavior can raise
// Divisor or lower Floor.
type Options struct {
	Floor   int
	Divisor int
}

// DefaultOptions matches the behavior downstream consumers were built
// against: floor 2, one extra edit allowed per 5 characters.
func DefaultOptions() Options {
	return Options{Floor: 2, Divisor: 5}
}

func (o Options) threshold(labelLen int) int {
	divisor := o.Divisor
	if divisor <= 0 {
		divisor = 5
	}
	t := labelLen / divisor
	if t < o.Floor {
		t = o.Floor
	}
	return t
}

// Resolver maps semantic labels to actual column names of one source table.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	opts    Options
	byNorm  map[string]string
	normals []string
}

// NewResolver builds a resolver over the table's column names. When two
// columns normalize to the same form the first one wins.
func NewResolver(columns []string, opts Options) *Resolver {
	r := &Resolver{
		opts:   opts,
		byNorm: make(map[string]string, len(columns)),
	}
	for _, col := range columns {
		n := Normalize(col)
		if n == "" {
			continue
		}
		if _, seen := r.byNorm[n]; !seen {
			r.byNorm[n] = col
			r.normals = append(r.normals, n)
		}
	}
	return r
}

// Resolve returns the column whose normalized name matches the label
// exactly, or failing that the column at minimum edit distance provided the
// distance stays within the acceptance threshold. The boolean is false when
// no acceptable match exists; that is a normal outcome, not an error.
func (r *Resolver) Resolve(label string) (string, bool) {
	want := Normalize(label)
	if want == "" {
		return "", false
	}
	if col, ok := r.byNorm[want]; ok {
		return col, true
	}

	bestDist := -1
	bestNorm := ""
	for _, n := range r.normals {
		d := levenshtein(want, n)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestNorm = n
		}
	}
	if bestDist < 0 || bestDist > r.opts.threshold(len(want)) {
		return "", false
	}
	return r.byNorm[bestNorm], true
}

// ResolveFirst tries an ordered list of candidate labels and returns the
// column for the first one that resolves.
func (r *Resolver) ResolveFirst(labels []string) (string, bool) {
	for _, label := range labels {
		if col, ok := r.Resolve(label); ok {
			return col, true
		}
	}
	return "", false
}

// levenshtein computes unit-cost edit distance with a single-row DP table.
// The threshold contract depends on classic insert/delete/substitute costs,
// so this stays hand-rolled rather than delegating to a library.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
