package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// Filters and groupings never copy records; they hold index lists into the
// parent view.
//
// Implementations:
//   Table      — the immutable base table
//   SliceView  — wraps []Record (tests, ad-hoc callers)
//   SubView    — filtered subset (indices into parent, zero-copy)
// ============================================================================

// RecordView provides indexed, read-only access to records.
// At is called in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	At(index int) *Record
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	records []Record
}

// NewSliceView creates a RecordView from a []Record slice.
func NewSliceView(records []Record) RecordView {
	return &SliceView{records: records}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) At(i int) *Record {
	if i < 0 || i >= len(v.records) {
		return nil
	}
	return &v.records[i]
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) At(i int) *Record {
	if i < 0 || i >= len(v.indices) {
		return nil
	}
	return v.parent.At(v.indices[i])
}

// ============================================================================
// HELPERS
// ============================================================================

// Slice returns the records at positions [from, to) of a view.
func Slice(view RecordView, from, to int) RecordView {
	if from < 0 {
		from = 0
	}
	if to > view.Len() {
		to = view.Len()
	}
	if from >= to {
		return newSubView(view, nil)
	}
	indices := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		indices = append(indices, i)
	}
	return newSubView(view, indices)
}
