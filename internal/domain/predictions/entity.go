package predictions

// ID tipe untuk Prediction
type PredictionID string

// Label enum, closed set
type Label string

const (
	LabelCancer    Label = "Cancer"
	LabelNonCancer Label = "Non-cancer"
)

// CancerThreshold is a policy constant, not a tunable: a prediction is
// labeled Cancer only when confidence is strictly greater than this value.
const CancerThreshold = 50.0

const (
	suggestionCancer    = "Segera periksa ke dokter!"
	suggestionNonCancer = "Penyakit kanker tidak terdeteksi."
)

// SuggestionFor maps a label to its advisory text. The pair is never stored
// inconsistently: records are only built through New.
func SuggestionFor(result Label) string {
	if result == LabelCancer {
		return suggestionCancer
	}
	return suggestionNonCancer
}

// LabelFromConfidence applies the fixed threshold to a confidence in [0,100].
func LabelFromConfidence(confidence float64) Label {
	if confidence > CancerThreshold {
		return LabelCancer
	}
	return LabelNonCancer
}

// Aggregate Root: Prediction
type Prediction struct {
	ID         PredictionID `json:"id"`
	Result     Label        `json:"result"`
	Suggestion string       `json:"suggestion"`
	CreatedAt  string       `json:"createdAt"`
}

// New bikin record yang konsisten: suggestion selalu diturunkan dari result.
func New(id PredictionID, result Label, createdAt string) *Prediction {
	return &Prediction{
		ID:         id,
		Result:     result,
		Suggestion: SuggestionFor(result),
		CreatedAt:  createdAt,
	}
}
