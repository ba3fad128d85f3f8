package engine

import (
	"log/slog"
	"math"
)

// DefaultMissLimit is the number of consecutive non-improving candidates
// after which Search stops.
const DefaultMissLimit = 10

// SearchExit names the path a search terminated through.
type SearchExit int

const (
	ExitExhausted SearchExit = iota // every candidate offset was visited
	ExitMissLimit                   // the score stopped improving
)

func (e SearchExit) String() string {
	switch e {
	case ExitExhausted:
		return "exhausted"
	case ExitMissLimit:
		return "miss_limit"
	default:
		return "unknown"
	}
}

// SearchRequest describes one Scroll-To search over a collection.
type SearchRequest struct {
	Target            RelativeTarget
	Collection        Snapshot
	Ledger            *Ledger
	AssumedItemHeight float64
	ViewportHeight    float64
	// Current is where the outward search starts.
	Current float64
	// MissLimit defaults to DefaultMissLimit when zero.
	MissLimit int
	Logger    *slog.Logger
}

// SearchResult is the best candidate found, if any.
type SearchResult struct {
	Offset    float64
	Score     float64 // |achieved - desired| relative top
	Found     bool
	Visited   int // candidates generated, including window rejections
	Evaluated int // candidates whose window contained the target
	Exit      SearchExit
}

// Search looks for the whole-pixel scroll offset that puts Target.ItemIndex
// closest to Target.RelativeTop.
//
// Candidates are generated outward from Current, alternating above and
// below, inside [0, max scroll offset]. A candidate whose render window does
// not contain the target is rejected without scoring and does not count as a
// miss. The search stops after MissLimit consecutive scored candidates fail
// to beat the best score, or when the range is exhausted.
func Search(req SearchRequest) SearchResult {
	limit := req.MissLimit
	if limit <= 0 {
		limit = DefaultMissLimit
	}
	n := req.Collection.Len
	scrollable := float64(n) * req.AssumedItemHeight
	maxOff := math.Floor(MaxScrollOffset(scrollable, req.ViewportHeight))
	capacity := Capacity(req.ViewportHeight, req.AssumedItemHeight)
	desired := req.Target.RelativeTop

	var res SearchResult
	// No window ever contains an index outside [0, n].
	if n == 0 || req.Target.ItemIndex < 0 || req.Target.ItemIndex > n {
		return res
	}
	misses := 0

	try := func(o float64) bool {
		res.Visited++
		f := ScrollFraction(o, scrollable, req.ViewportHeight)
		loc := Locate(f, n, capacity)
		layout := NewLayout(loc, f, req.ViewportHeight, n, req.Ledger, req.Collection.KeyAt)
		layout.logger = req.Logger
		top, ok := layout.RelativeTopOf(req.Target.ItemIndex)
		if !ok {
			return false
		}
		res.Evaluated++
		score := math.Abs(top - desired)
		if !res.Found || score < res.Score {
			res.Found = true
			res.Offset = o
			res.Score = score
			misses = 0
			return false
		}
		misses++
		return misses >= limit
	}

	cur := clampf(math.Round(req.Current), 0, maxOff)
	for dist := 0.0; ; dist++ {
		up, down := cur+dist, cur-dist
		upOK, downOK := up <= maxOff, down >= 0 && dist > 0
		if up > maxOff && down < 0 {
			res.Exit = ExitExhausted
			break
		}
		if upOK && try(up) {
			res.Exit = ExitMissLimit
			break
		}
		if downOK && try(down) {
			res.Exit = ExitMissLimit
			break
		}
	}

	if req.Logger != nil {
		req.Logger.Debug("scroll-to search",
			"item", req.Target.ItemIndex, "desired", desired,
			"found", res.Found, "offset", res.Offset, "score", res.Score,
			"visited", res.Visited, "exit", res.Exit.String())
	}
	return res
}
