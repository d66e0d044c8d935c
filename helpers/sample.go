package helpers

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// SAMPLE DATA — Deterministic synthetic private laws
// ============================================================================
// Used when the data file is missing and sample fallback is enabled, and by
// the `sample` command. The same (n, seed) always yields the same table.
// ============================================================================

// Defaults for the synthetic dataset.
const (
	DefaultSampleSize = 5000
	DefaultSampleSeed = 42
)

type period struct {
	weight   float64
	from, to int // to is exclusive
}

var samplePeriods = []period{
	{0.1, 1789, 1860},
	{0.2, 1860, 1920},
	{0.5, 1920, 1970},
	{0.2, 1970, 2025},
}

var (
	sampleLabelWeights = []float64{0.7, 0.25, 0.05}
	sampleFirstNames   = []string{"John", "Mary", "James", "Elizabeth", "William", "Sarah"}
	sampleLastNames    = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
)

const sampleSummary = "This private law provides relief to the named individual(s)."

// GenerateSample builds n synthetic records weighted toward the 1920-1969 peak.
func GenerateSample(n int, seed int64) (*engine.Table, error) {
	if n < 0 {
		n = 0
	}
	rng := rand.New(rand.NewSource(seed))
	subjects := schema.Subjects()

	records := make([]engine.Record, 0, n)
	for i := 0; i < n; i++ {
		p := samplePeriods[weighted(rng, periodWeights())]
		year := p.from + rng.Intn(p.to-p.from)
		session := SessionForYear(year)
		date := time.Date(year, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)

		k := 1 + weighted(rng, sampleLabelWeights)
		perm := rng.Perm(subjects.Len())[:k]
		labels := make([]string, k)
		for j, idx := range perm {
			labels[j] = subjects.Label(idx)
		}

		pdfVolume, pdfPage := 1+rng.Intn(119), 1+rng.Intn(999)
		records = append(records, engine.Record{
			Session:   session,
			Volume:    1 + rng.Intn(149),
			Chapter:   1 + rng.Intn(499),
			Title:     fmt.Sprintf("An Act for the Relief of %s %s", pick(rng, sampleFirstNames), pick(rng, sampleLastNames)),
			Date:      date,
			DateValid: true,
			DateRaw:   date.Format(engine.DateLayout),
			Year:      year,
			Subjects:  strings.Join(labels, ", "),
			Summary:   sampleSummary,
			PDFLink: fmt.Sprintf("https://www.govinfo.gov/content/pkg/STATUTE-%d/pdf/STATUTE-%d-Pg%d.pdf",
				pdfVolume, pdfVolume, pdfPage),
			DetailsLink: fmt.Sprintf("https://www.congress.gov/bill/%s-congress/private-law/%d",
				engine.Ordinal(session), 1+rng.Intn(499)),
		})
	}

	sort.SliceStable(records, func(a, b int) bool { return records[a].Date.Before(records[b].Date) })
	for i := range records {
		records[i].ID = i + 1
	}

	return engine.NewTable(records, engine.LoadReport{
		Source:        "sample",
		DateStrategy:  DateStrategyFormat,
		DateFormat:    schema.DateFormats[0].Pattern,
		YearSource:    "column",
		SessionSource: "column",
		Synthetic:     true,
	})
}

func periodWeights() []float64 {
	w := make([]float64, len(samplePeriods))
	for i, p := range samplePeriods {
		w[i] = p.weight
	}
	return w
}

// weighted returns an index drawn with the given probabilities.
func weighted(rng *rand.Rand, weights []float64) int {
	x := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if x < acc {
			return i
		}
	}
	return len(weights) - 1
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}
