package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jwebster45206/dungeon/internal/app"
	"github.com/jwebster45206/dungeon/internal/config"
	"github.com/jwebster45206/dungeon/pkg/session"
	"github.com/jwebster45206/dungeon/pkg/story/goldseekers"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner plays test suites through the same app the console drivers use.
type Runner struct {
	Config            config.Config
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
	LocaleOverride    string // If set, overrides the locale for all test cases
}

// NewRunner creates a new test runner. cfg selects the transcript backend
// every suite records to.
func NewRunner(cfg config.Config) *Runner {
	return &Runner{
		Config:            cfg,
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// suiteRun is the live state of one suite.
type suiteRun struct {
	app     *app.App
	session *session.Session
	turns   int // recorded entries, opening included
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cfg := r.Config
	if r.LocaleOverride != "" {
		cfg.Locale = r.LocaleOverride
	} else if suite.Locale != "" {
		cfg.Locale = suite.Locale
	}

	a, err := app.NewWithConfig(ctx, &cfg)
	if err != nil {
		result.Error = fmt.Errorf("failed to start app: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	defer func() {
		if err := a.Close(); err != nil {
			r.Logger("    failed to close app: %v", err)
		}
	}()

	run := &suiteRun{app: a}
	opening, err := r.startSession(ctx, run, suite.Player)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Session = run.session.ID()

	if suite.Opening != nil {
		if err := r.checkExpectations(*suite.Opening, run, opening, nil); err != nil {
			result.Error = fmt.Errorf("opening: %w", err)
			result.Duration = time.Since(start)
			return result, result.Error
		}
	}

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.executeStep(ctx, run, suite, step)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)
		result.Session = run.session.ID()

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	if result.Error == nil {
		if err := VerifyTranscript(ctx, a.Store, run.session.ID(), run.turns); err != nil {
			result.Error = fmt.Errorf("transcript: %w", err)
		}
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// startSession replaces the suite's session with a fresh one and returns its
// opening text.
func (r *Runner) startSession(ctx context.Context, run *suiteRun, player string) ([]string, error) {
	s, err := run.app.NewSession(player)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	run.session = s
	run.turns = 1
	return s.Opening(ctx), nil
}

// executeStep plays one line of input, or restarts the session for a reset
// step, and checks the step's expectations.
func (r *Runner) executeStep(ctx context.Context, run *suiteRun, suite TestSuite, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}

	if step.Input == ResetSessionInput {
		opening, err := r.startSession(ctx, run, suite.Player)
		if err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			return result
		}
		if err := r.checkExpectations(step.Expectations, run, opening, nil); err != nil {
			result.Error = fmt.Errorf("reset expectation failed: %w", err)
			result.Duration = time.Since(start)
			return result
		}
		result.Success = true
		result.IsReset = true
		result.ResponseText = "[SESSION RESET]"
		result.Duration = time.Since(start)
		return result
	}

	res, turnErr := run.session.Turn(ctx, step.Input)
	if turnErr == nil {
		run.turns++
	}
	result.ResponseText = strings.Join(res.Messages, "\n")

	if err := r.checkExpectations(step.Expectations, run, res.Messages, turnErr); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// checkExpectations validates the expectations against the messages a step
// produced and the player's state afterwards.
func (r *Runner) checkExpectations(exp Expectations, run *suiteRun, msgs []string, turnErr error) error {
	if turnErr != nil {
		return fmt.Errorf("turn failed: %w", turnErr)
	}

	p := run.session.Player()

	if exp.SceneName != nil {
		got := ""
		if sc := p.Scene(); sc != nil {
			got = sc.Name()
		}
		if got != *exp.SceneName {
			return fmt.Errorf("expected scene %s, got %s", *exp.SceneName, got)
		}
	}

	if exp.IsEnded != nil {
		if run.session.Over() != *exp.IsEnded {
			return fmt.Errorf("expected is_ended to be %t, got %t", *exp.IsEnded, run.session.Over())
		}
	}

	if exp.Boredom != nil {
		adv, err := goldseekers.AdventurerOf(p)
		if err != nil {
			return fmt.Errorf("failed to get adventurer: %w", err)
		}
		if adv.Boredom() != *exp.Boredom {
			return fmt.Errorf("expected boredom to be %d, got %d", *exp.Boredom, adv.Boredom())
		}
	}

	for item, want := range exp.Inventory {
		v, exists := p.Inventory[item]
		if !exists {
			return fmt.Errorf("expected inventory to contain '%s', but it's missing. Actual inventory: %v", item, p.Inventory)
		}
		got, ok := v.(float64)
		if !ok || math.Abs(got-want) > 1e-9 {
			return fmt.Errorf("expected inventory '%s' to be %v, got %v", item, want, v)
		}
	}

	if exp.Response != nil && !slices.Equal(exp.Response, msgs) {
		return fmt.Errorf("expected response %q, got %q", exp.Response, msgs)
	}

	responseText := strings.Join(msgs, "\n")
	if len(exp.ResponseContains) > 0 {
		lowerResponse := strings.ToLower(responseText)
		for _, expectedText := range exp.ResponseContains {
			if !strings.Contains(lowerResponse, strings.ToLower(expectedText)) {
				return fmt.Errorf("expected response to contain '%s', but it didn't", expectedText)
			}
		}
	}

	if len(exp.ResponseNotContains) > 0 {
		lowerResponse := strings.ToLower(responseText)
		for _, unexpectedText := range exp.ResponseNotContains {
			if strings.Contains(lowerResponse, strings.ToLower(unexpectedText)) {
				return fmt.Errorf("expected response to NOT contain '%s', but it did", unexpectedText)
			}
		}
	}

	if exp.ResponseRegex != "" {
		matched, err := regexp.MatchString(exp.ResponseRegex, responseText)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("response didn't match regex pattern: %s", exp.ResponseRegex)
		}
	}

	return nil
}
