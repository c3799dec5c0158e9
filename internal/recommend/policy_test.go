package recommend

import (
	"strings"
	"testing"
)

func TestAdvise_BuyBranches(t *testing.T) {
	// 0.3% predicted gain crosses the 0.2 threshold.
	comparison, rec := Advise(100, 100.3)
	if !strings.Contains(comparison, "0.3%") || !strings.Contains(comparison, "higher") {
		t.Errorf("unexpected comparison: %q", comparison)
	}
	if rec != "Buy 10% of your holdings." {
		t.Errorf("expected 10%% buy recommendation, got %q", rec)
	}

	// A tiny gain stays in the cautious branch.
	_, rec = Advise(100, 100.1)
	if !strings.Contains(rec, "small percentage") {
		t.Errorf("expected small-buy recommendation, got %q", rec)
	}
}

func TestAdvise_SellBranches(t *testing.T) {
	_, rec := Advise(100, 99.5)
	if rec != "Sell 5% of your holdings." {
		t.Errorf("expected 5%% sell recommendation, got %q", rec)
	}

	// 0.05% predicted drop stays below the 0.1 threshold.
	_, rec = Advise(100, 99.95)
	if !strings.Contains(rec, "Do nothing") {
		t.Errorf("expected do-nothing recommendation, got %q", rec)
	}
}

func TestAdvise_FlatPrediction(t *testing.T) {
	comparison, rec := Advise(100, 100)
	if comparison != "Tomorrow's price is predicted to remain the same." {
		t.Errorf("unexpected comparison: %q", comparison)
	}
	if rec != "" {
		t.Errorf("expected empty recommendation for flat prediction, got %q", rec)
	}
}

func TestAdvise_ExactThresholdIsStrict(t *testing.T) {
	// Exactly +0.2% must stay in the small-buy branch.
	_, rec := Advise(1000, 1002)
	if !strings.Contains(rec, "small percentage") {
		t.Errorf("expected small-buy branch at exactly 0.2%%, got %q", rec)
	}

	// Exactly -0.1% must stay in the do-nothing branch.
	_, rec = Advise(1000, 999)
	if !strings.Contains(rec, "Do nothing") {
		t.Errorf("expected do-nothing branch at exactly 0.1%%, got %q", rec)
	}
}

func TestAdvise_Pure(t *testing.T) {
	c1, r1 := Advise(42000, 42500)
	for i := 0; i < 10; i++ {
		c2, r2 := Advise(42000, 42500)
		if c1 != c2 || r1 != r2 {
			t.Fatalf("Advise not deterministic: (%q,%q) vs (%q,%q)", c1, r1, c2, r2)
		}
	}
}
