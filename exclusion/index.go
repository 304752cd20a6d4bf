package exclusion

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pgarrett-scripps/exclusionms/exclusion/exerr"
	"github.com/pgarrett-scripps/exclusionms/exclusion/tree"
	"github.com/pgarrett-scripps/exclusionms/internal/bounds"
)

// Stats summarizes the index's current contents. MeanMass/MinMass/MaxMass
// are zero when the index is empty.
type Stats struct {
	Len         int
	TreeLen     int
	LabelCount  int
	HandleCount int
	MinMass     float64
	MaxMass     float64
	MeanMass    float64
	Impl        string
}

// ExclusionIndex is the composite store described by the data model: a
// mass tree plus label and handle secondary indices, kept in lockstep
// under every mutation (I4/I5). ExclusionIndex itself performs no
// locking; callers needing concurrent access wrap it in a Guard.
type ExclusionIndex struct {
	massTree    *tree.Tree
	labelIndex  map[string]map[Handle]*Interval
	handleIndex map[Handle]*Interval
}

// NewIndex returns an empty ExclusionIndex.
func NewIndex() *ExclusionIndex {
	return &ExclusionIndex{
		massTree:    tree.New(),
		labelIndex:  make(map[string]map[Handle]*Interval),
		handleIndex: make(map[Handle]*Interval),
	}
}

// Add validates iv, assigns it a fresh handle, and inserts it into all
// three views. Rejects invalid bounds or a missing label (I1, I2).
func (idx *ExclusionIndex) Add(iv Interval) (Handle, error) {
	if err := iv.validate(); err != nil {
		return "", err
	}

	iv.Handle = NewHandle()
	stored := iv

	min := bounds.ResolveMin(stored.MinMass)
	max := bounds.ResolveMax(stored.MaxMass)
	idx.massTree.Insert(min, max, string(stored.Handle), &stored)

	idx.handleIndex[stored.Handle] = &stored
	idx.addToLabelIndex(&stored)

	return stored.Handle, nil
}

func (idx *ExclusionIndex) addToLabelIndex(iv *Interval) {
	bucket, ok := idx.labelIndex[iv.Label]
	if !ok {
		bucket = make(map[Handle]*Interval)
		idx.labelIndex[iv.Label] = bucket
	}
	bucket[iv.Handle] = iv
}

func (idx *ExclusionIndex) removeFromLabelIndex(iv *Interval) {
	bucket, ok := idx.labelIndex[iv.Label]
	if !ok {
		return
	}
	delete(bucket, iv.Handle)
	if len(bucket) == 0 {
		delete(idx.labelIndex, iv.Label)
	}
}

// RemoveByHandle deletes and returns the interval identified by h.
func (idx *ExclusionIndex) RemoveByHandle(h Handle) (Interval, error) {
	iv, ok := idx.handleIndex[h]
	if !ok {
		return Interval{}, exerr.ErrUnknownHandle
	}
	idx.removeEntry(iv)
	return *iv, nil
}

func (idx *ExclusionIndex) removeEntry(iv *Interval) {
	idx.massTree.Remove(string(iv.Handle))
	delete(idx.handleIndex, iv.Handle)
	idx.removeFromLabelIndex(iv)
}

// candidates returns the intervals matched by probe's mass range
// (enveloped-by-mass when label is empty, or label bucket when set),
// per the matching rule shared by Remove and QueryByInterval.
func (idx *ExclusionIndex) candidates(probe Interval) []*Interval {
	if probe.Label != "" {
		bucket, ok := idx.labelIndex[probe.Label]
		if !ok {
			return nil
		}
		out := make([]*Interval, 0, len(bucket))
		for _, iv := range bucket {
			out = append(out, iv)
		}
		return out
	}

	qmin := bounds.ResolveMin(probe.MinMass)
	qmax := bounds.ResolveMax(probe.MaxMass)
	entries := idx.massTree.Envelope(qmin, qmax)
	out := make([]*Interval, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Value.(*Interval))
	}
	return out
}

func matches(probe Interval, iv *Interval) bool {
	return iv.IsEnvelopedBy(probe)
}

// Remove deletes and returns every stored interval enveloped by probe,
// per the matching rule in §4.4.
func (idx *ExclusionIndex) Remove(probe Interval) []Interval {
	candidates := idx.candidates(probe)
	var removed []Interval
	for _, iv := range candidates {
		if matches(probe, iv) {
			removed = append(removed, *iv)
			idx.removeEntry(iv)
		}
	}
	return removed
}

// QueryByInterval returns every stored interval enveloped by probe,
// without removing them.
func (idx *ExclusionIndex) QueryByInterval(probe Interval) []Interval {
	candidates := idx.candidates(probe)
	var out []Interval
	for _, iv := range candidates {
		if matches(probe, iv) {
			out = append(out, *iv)
		}
	}
	return out
}

// QueryByPoint returns every stored interval bounding p: stabs the mass
// tree at p.Mass when set, otherwise walks every interval.
func (idx *ExclusionIndex) QueryByPoint(p Point) []Interval {
	var entries []tree.Entry
	if p.Mass != nil {
		entries = idx.massTree.Stab(*p.Mass)
	} else {
		entries = idx.massTree.All()
	}

	var out []Interval
	for _, e := range entries {
		iv := e.Value.(*Interval)
		if p.IsBoundedBy(*iv) {
			out = append(out, *iv)
		}
	}
	return out
}

// QueryByLabel returns every stored interval with the given label.
func (idx *ExclusionIndex) QueryByLabel(label string) []Interval {
	bucket, ok := idx.labelIndex[label]
	if !ok {
		return nil
	}
	out := make([]Interval, 0, len(bucket))
	for _, iv := range bucket {
		out = append(out, *iv)
	}
	return out
}

// Status implements the §4.4 algorithm: materialise, classify by the
// set of polarities present among the matches.
func (idx *ExclusionIndex) Status(p Point) Status {
	matches := idx.QueryByPoint(p)
	if len(matches) == 0 {
		return StatusNone
	}

	sawExclude, sawInclude := false, false
	for _, iv := range matches {
		if iv.Polarity == Include {
			sawInclude = true
		} else {
			sawExclude = true
		}
	}

	switch {
	case sawExclude && sawInclude:
		return StatusMixed
	case sawInclude:
		return StatusIncluded
	default:
		return StatusExcluded
	}
}

// IsExcluded reports whether p's status is EXCLUDED or MIXED.
func (idx *ExclusionIndex) IsExcluded(p Point) bool {
	s := idx.Status(p)
	return s == StatusExcluded || s == StatusMixed
}

// IsIncluded reports whether p's status is INCLUDED or MIXED.
func (idx *ExclusionIndex) IsIncluded(p Point) bool {
	s := idx.Status(p)
	return s == StatusIncluded || s == StatusMixed
}

// BatchStatus returns one Status per point, preserving input order.
func (idx *ExclusionIndex) BatchStatus(points []Point) []Status {
	out := make([]Status, len(points))
	for i, p := range points {
		out[i] = idx.Status(p)
	}
	return out
}

// Clear empties every view.
func (idx *ExclusionIndex) Clear() {
	idx.massTree.Clear()
	idx.labelIndex = make(map[string]map[Handle]*Interval)
	idx.handleIndex = make(map[Handle]*Interval)
}

// Len returns the number of stored intervals.
func (idx *ExclusionIndex) Len() int {
	return len(idx.handleIndex)
}

// Intervals returns every stored interval, in unspecified order. Used
// by the snapshot codec to materialise a full dump.
func (idx *ExclusionIndex) Intervals() []Interval {
	out := make([]Interval, 0, len(idx.handleIndex))
	for _, iv := range idx.handleIndex {
		out = append(out, *iv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// LoadIntervals replaces the index's contents with ivs verbatim,
// preserving every handle (P5). Any prior contents are cleared first;
// Guard.Restore calls this under the write lock.
func (idx *ExclusionIndex) LoadIntervals(ivs []Interval) {
	idx.Clear()
	for _, iv := range ivs {
		stored := iv
		min := bounds.ResolveMin(stored.MinMass)
		max := bounds.ResolveMax(stored.MaxMass)
		idx.massTree.Insert(min, max, string(stored.Handle), &stored)
		idx.handleIndex[stored.Handle] = &stored
		idx.addToLabelIndex(&stored)
	}
}

// Stats reports the current size of every view plus a mass-value
// spread summary over the stored intervals' resolved min_mass.
func (idx *ExclusionIndex) Stats() Stats {
	s := Stats{
		Len:         idx.Len(),
		TreeLen:     idx.massTree.Len(),
		LabelCount:  len(idx.labelIndex),
		HandleCount: len(idx.handleIndex),
		Impl:        "exclusionms/treap",
	}
	if s.Len == 0 {
		return s
	}

	masses := make([]float64, 0, s.Len)
	for _, iv := range idx.handleIndex {
		masses = append(masses, bounds.ResolveMin(iv.MinMass))
	}
	sort.Float64s(masses)
	s.MinMass = masses[0]
	s.MaxMass = masses[len(masses)-1]
	s.MeanMass = stat.Mean(masses, nil)
	return s
}
