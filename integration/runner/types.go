package runner

import (
	"time"

	"github.com/google/uuid"
)

// Special input values that trigger non-play actions
const (
	ResetSessionInput = "RESET_SESSION"
)

// TestSuite defines a complete walkthrough of the story.
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name    string        `json:"name"`
	Locale  string        `json:"locale,omitempty"`  // Overrides the configured locale
	Player  string        `json:"player,omitempty"`  // Player name, blank for the default
	Opening *Expectations `json:"opening,omitempty"` // Checked against the welcome text
	Steps   []TestStep    `json:"steps,omitempty"`   // Used for regular tests
	Cases   []string      `json:"cases,omitempty"`   // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single line of input and its expected outcomes
// Use input: "RESET_SESSION" to start over with a fresh map and player
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Input        string       `json:"input"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a step executes
type Expectations struct {
	// Player state
	SceneName *string            `json:"scene_name,omitempty"` // Scene the player is in afterwards
	IsEnded   *bool              `json:"is_ended,omitempty"`   // Game ended state
	Boredom   *int               `json:"boredom,omitempty"`    // Adventurer boredom level
	Inventory map[string]float64 `json:"inventory,omitempty"`  // Numeric inventory entries

	// Response Analysis
	Response            []string `json:"response,omitempty"` // Exact messages, in order
	ResponseContains    []string `json:"response_contains,omitempty"`
	ResponseNotContains []string `json:"response_not_contains,omitempty"`
	ResponseRegex       string   `json:"response_regex,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName     string
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
	IsReset      bool // True if this was a RESET_SESSION step (should not count toward pass/fail metrics)
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Session  uuid.UUID // ID of the last session used for this test
}
