package advisor_test

import (
	"testing"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/advisor"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/testutil"
)

// TestQualityScorer tests mistake tagging and scores per stock and month.
//
// WHY: The score is only useful if the same ledger always yields the same tags;
// each category has a precise trigger that must not overlap with the others.
func TestQualityScorer(t *testing.T) {
	settings := testutil.NewSettings().WithoutBrokerage().WithMaxAllocation("100").Value()
	scorer := advisor.NewQualityScorer(settings)

	replay(t, testutil.Ledger(
		testutil.NewBuy("A", "2024-01-01", "10", "100"),
		testutil.NewBuy("B", "2024-01-02", "10", "100"),
		testutil.NewSell("B", "2024-01-10", "10", "95"),
		testutil.NewBuy("A", "2024-02-01", "1", "105"),
		testutil.NewBuy("A", "2024-02-02", "1", "100"),
		testutil.NewBuy("A", "2024-02-03", "1", "90"),
	), settings, scorer)

	r := scorer.Report()

	if r.Overall.Chase != 1 || r.Overall.WeakDrop != 1 || r.Overall.Panic != 1 || r.Overall.OverAlloc != 0 {
		t.Errorf("Unexpected overall counts %+v", r.Overall)
	}
	if r.Score != 70 {
		t.Errorf("Expected overall score 70, got %d", r.Score)
	}

	if len(r.Stocks) != 2 {
		t.Fatalf("Expected 2 stocks, got %d", len(r.Stocks))
	}
	a, b := r.Stocks[0], r.Stocks[1]
	if a.Stock != "A" || a.Score != 80 || a.Buys != 4 {
		t.Errorf("Unexpected A row %+v", a)
	}
	if b.Stock != "B" || b.Score != 90 || b.Sells != 1 {
		t.Errorf("Unexpected B row %+v", b)
	}
	if len(a.Details) != 2 || a.Details[0].Category != advisor.CategoryChaseBuy || a.Details[1].Category != advisor.CategoryWeakDropBuy {
		t.Errorf("Unexpected A details %+v", a.Details)
	}
	if len(b.Details) != 1 || b.Details[0].Category != advisor.CategoryPanicSell {
		t.Errorf("Unexpected B details %+v", b.Details)
	}

	if len(r.Months) != 2 {
		t.Fatalf("Expected 2 months, got %d", len(r.Months))
	}
	if r.Months[0].Month != "2024-01" || r.Months[0].Score != 90 {
		t.Errorf("Unexpected January row %+v", r.Months[0])
	}
	if r.Months[1].Month != "2024-02" || r.Months[1].Score != 80 || r.Months[1].Buys != 3 {
		t.Errorf("Unexpected February row %+v", r.Months[1])
	}
}

func TestQualityScorer_OverAllocation(t *testing.T) {
	settings := testutil.NewSettings().WithoutBrokerage().WithMaxAllocation("25").Value()
	scorer := advisor.NewQualityScorer(settings)

	replay(t, testutil.Ledger(
		testutil.NewBuy("A", "2024-01-01", "10", "100"),
		testutil.NewBuy("B", "2024-01-01", "10", "100"),
		testutil.NewBuy("C", "2024-01-01", "10", "100"),
		testutil.NewBuy("D", "2024-01-01", "10", "100"),
	), settings, scorer)

	r := scorer.Report()

	// 100%, 50% and 33% exceed the limit; the fourth buy lands exactly on 25%.
	if r.Overall.OverAlloc != 3 {
		t.Errorf("Expected 3 over-allocation buys, got %d", r.Overall.OverAlloc)
	}
	for _, s := range r.Stocks {
		want := 85
		if s.Stock == "D" {
			want = 100
		}
		if s.Score != want {
			t.Errorf("%s: score %d, want %d", s.Stock, s.Score, want)
		}
	}
}

func TestQualityCounts_Score(t *testing.T) {
	tests := []struct {
		name   string
		counts advisor.QualityCounts
		want   int
	}{
		{"clean", advisor.QualityCounts{Buys: 5}, 100},
		{"one of each", advisor.QualityCounts{Chase: 1, WeakDrop: 1, OverAlloc: 1, Panic: 1}, 55},
		{"floors at zero", advisor.QualityCounts{OverAlloc: 7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.counts.Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}
