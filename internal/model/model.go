package model

// Band is the qualitative label attached to a grade.
type Band string

const (
	BandExcellent Band = "Excellent"
	BandGood      Band = "Good"
	BandFair      Band = "Fair"
	BandPoor      Band = "Poor"
	BandVeryPoor  Band = "Very Poor"
)

// NoAnswerKey is the reference text used when the answer key has no entry
// for a student question. Grading proceeds against it normally; the low
// similarity that results is the expected outcome, not an error.
const NoAnswerKey = "No answer key provided."

// StrategyName selects the grading strategy.
type StrategyName string

const (
	// StrategySimilarity is the deterministic text-similarity grader.
	StrategySimilarity StrategyName = "similarity"
	// StrategyLLM sends each answer pair to an OpenAI-compatible model.
	StrategyLLM StrategyName = "llm"
)

// Result is the grading outcome for a single question.
type Result struct {
	QuestionID string   `json:"question_id"`
	Student    string   `json:"student_answer"`
	Reference  string   `json:"reference_answer"`
	Similarity float64  `json:"similarity"`
	Grade      float64  `json:"grade"`
	Band       Band     `json:"band"`
	Feedback   []string `json:"feedback"`
	// Failed marks a per-question scoring failure (LLM strategy faults).
	// The failure description is carried in Feedback; the run continues.
	Failed bool `json:"failed,omitempty"`
}

// Summary holds the aggregate statistics for one grading run.
type Summary struct {
	Questions int     `json:"questions"`
	MeanGrade float64 `json:"mean_grade"`
	// PassRate is the share of grades >= 6.0, as a percentage.
	PassRate float64 `json:"pass_rate"`
}

// Summarize computes the aggregate statistics over a set of results.
func Summarize(results []Result) Summary {
	s := Summary{Questions: len(results)}
	if len(results) == 0 {
		return s
	}
	var sum float64
	passed := 0
	for _, r := range results {
		sum += r.Grade
		if r.Grade >= 6.0 {
			passed++
		}
	}
	s.MeanGrade = sum / float64(len(results))
	s.PassRate = float64(passed) / float64(len(results)) * 100
	return s
}

// Options holds runtime grading parameters set via CLI flags or API request.
type Options struct {
	Strategy StrategyName
	// Strict is a reserved extension point: the deterministic thresholds do
	// not change with it. Its only current effect is selecting the strict
	// prompt variant for the LLM strategy.
	Strict bool
	// ShowSimilarity controls whether feedback includes the raw similarity
	// percentage line.
	ShowSimilarity bool
}

// DefaultOptions returns the baseline grading configuration.
func DefaultOptions() Options {
	return Options{
		Strategy:       StrategySimilarity,
		ShowSimilarity: true,
	}
}
