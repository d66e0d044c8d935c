package schema

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// ============================================================================
// VOCABULARIES — Closed, ordered label sets
// ============================================================================
// Labels are NFC-canonicalized once when a Vocabulary is built. Matching
// code works on canonical text only and never re-normalizes per match.
// ============================================================================

// SubjectLabels is the ordered subject vocabulary (21 labels).
var SubjectLabels = []string{
	"Macroeconomics",
	"Civil Rights, Minority Issues, and Civil Liberties",
	"Health",
	"Agriculture",
	"Labor and Employment",
	"Education",
	"Environment",
	"Energy",
	"Immigration",
	"Transportation",
	"Law, Crime, and Family Issues",
	"Social Welfare",
	"Community Development and Housing Ideas",
	"Banking, Finance, and Domestic Commerce",
	"Defense",
	"Space, Science, Technology, and Communications",
	"Foreign Trade",
	"International Affairs and Foreign Aid",
	"Government Operations",
	"Public Lands and Water Management",
	"District of Columbia Affairs",
}

// ReliefLabels is the ordered relief vocabulary (20 labels).
// "Non–Article III" uses an en dash; it is kept verbatim.
var ReliefLabels = []string{
	"For Federal Government Service",
	"For Federal Contract Claims",
	"For Damage Caused by the Federal Government",
	"Federal Tax Relief",
	"Relief from Non-Tax Federal Monetary Obligations",
	"Real Property",
	"Chattel Property",
	"Patent Rights or Copyright",
	"Adjusting Immigration Status",
	"Bringing Claims Before Article III Court",
	"Bringing Claims Before an Existing, Non–Article III Tribunal",
	"Creating Ad Hoc Adjudication Process",
	"Directing Further Fact-Finding",
	"Statutory or Regulatory Procedures and Obligations",
	"Article III and non-Article III Procedures or Decisions",
	"Relief from Constitutional Disability",
	"Providing or Amending an Institutional Charter",
	"Granting a Divorce or Authorizing a Name Change",
	"Payment of Private Liabilities",
	"Providing Relief from Harm Caused by Natural or non-Natural Disasters",
}

// Vocabulary is an immutable, ordered set of canonical labels.
type Vocabulary struct {
	name    string
	labels  []string
	longest []int // indices into labels, longest label first
	index   map[string]int
}

// NewVocabulary canonicalizes labels and fixes the longest-first match order.
// Empty labels are dropped and duplicates keep their first position.
func NewVocabulary(name string, labels []string) Vocabulary {
	v := Vocabulary{
		name:  name,
		index: make(map[string]int, len(labels)),
	}
	for _, raw := range labels {
		label := Canonical(strings.TrimSpace(raw))
		if label == "" {
			continue
		}
		if _, dup := v.index[label]; dup {
			continue
		}
		v.index[label] = len(v.labels)
		v.labels = append(v.labels, label)
	}

	v.longest = make([]int, len(v.labels))
	for i := range v.longest {
		v.longest[i] = i
	}
	// Stable: equal-length labels keep vocabulary order.
	sort.SliceStable(v.longest, func(a, b int) bool {
		return len(v.labels[v.longest[a]]) > len(v.labels[v.longest[b]])
	})
	return v
}

// Canonical returns the NFC form used for all stored and matched label text.
func Canonical(s string) string {
	return norm.NFC.String(s)
}

var (
	subjectsOnce = sync.OnceValue(func() Vocabulary { return NewVocabulary("subject", SubjectLabels) })
	reliefsOnce  = sync.OnceValue(func() Vocabulary { return NewVocabulary("relief", ReliefLabels) })
)

// Subjects returns the shared subject vocabulary.
func Subjects() Vocabulary { return subjectsOnce() }

// Reliefs returns the shared relief vocabulary.
func Reliefs() Vocabulary { return reliefsOnce() }

func (v Vocabulary) Name() string { return v.name }
func (v Vocabulary) Len() int     { return len(v.labels) }

// Labels returns a copy of the labels in vocabulary order.
func (v Vocabulary) Labels() []string {
	return append([]string(nil), v.labels...)
}

// Label returns the label at position i in vocabulary order.
func (v Vocabulary) Label(i int) string {
	if i < 0 || i >= len(v.labels) {
		return ""
	}
	return v.labels[i]
}

// LongestFirst returns vocabulary positions ordered by descending label length.
func (v Vocabulary) LongestFirst() []int {
	return v.longest
}

// IndexOf returns the vocabulary position of label, or -1.
func (v Vocabulary) IndexOf(label string) int {
	if i, ok := v.index[label]; ok {
		return i
	}
	if i, ok := v.index[Canonical(label)]; ok {
		return i
	}
	return -1
}

// Contains reports whether label belongs to the vocabulary.
func (v Vocabulary) Contains(label string) bool {
	return v.IndexOf(label) >= 0
}

func (v Vocabulary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name   string   `json:"name"`
		Labels []string `json:"labels"`
	}{v.name, v.labels})
}
