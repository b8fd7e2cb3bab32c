package predictions

import "testing"

func TestLabelFromConfidence(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       Label
	}{
		{"zero", 0, LabelNonCancer},
		{"below threshold", 49.9, LabelNonCancer},
		{"exactly at threshold", 50, LabelNonCancer},
		{"just above threshold", 50.1, LabelCancer},
		{"high confidence", 93, LabelCancer},
		{"max", 100, LabelCancer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabelFromConfidence(tt.confidence); got != tt.want {
				t.Errorf("LabelFromConfidence(%v) = %q, want %q", tt.confidence, got, tt.want)
			}
		})
	}
}

func TestSuggestionFor(t *testing.T) {
	if got := SuggestionFor(LabelCancer); got != "Segera periksa ke dokter!" {
		t.Errorf("cancer suggestion: got %q", got)
	}
	if got := SuggestionFor(LabelNonCancer); got != "Penyakit kanker tidak terdeteksi." {
		t.Errorf("non-cancer suggestion: got %q", got)
	}
}

func TestNewDerivesSuggestion(t *testing.T) {
	for _, label := range []Label{LabelCancer, LabelNonCancer} {
		p := New("some-id", label, "2024-01-02T03:04:05.000Z")
		if p.Suggestion != SuggestionFor(label) {
			t.Errorf("label %q: suggestion %q inconsistent", label, p.Suggestion)
		}
		if p.ID != "some-id" || p.CreatedAt != "2024-01-02T03:04:05.000Z" {
			t.Errorf("record fields not carried through: %+v", p)
		}
	}
}
