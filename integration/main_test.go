//go:build integration
// +build integration

package integration

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/dungeon/integration/runner"
	"github.com/jwebster45206/dungeon/internal/config"
)

var caseFlag = flag.String("case", "", "Name of test case to run (from integration/cases/)")
var errFlag = flag.String("err", "continue", "Error handling mode: 'continue' (run all steps) or 'exit' (stop on first failure)")
var runsFlag = flag.Int("runs", 1, "Number of times to run each test suite (useful for catching randomized text in expectations)")
var localeFlag = flag.String("locale", "", "Override locale for all test cases (e.g., 'ru_RU')")

func TestMain(m *testing.M) {
	cfg := config.Load(nil)
	transcript := cfg.Transcript
	if transcript == "" {
		transcript = config.TranscriptNone
	}

	fmt.Printf("Running Dungeon Integration Tests\n")
	fmt.Printf("   Transcript: %s\n", transcript)

	code := m.Run()
	os.Exit(code)
}

func newRunner(t *testing.T) *runner.Runner {
	t.Helper()
	cfg := config.Load(nil)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Invalid configuration: %v", err)
	}

	testRunner := runner.NewRunner(*cfg)
	testRunner.Timeout = time.Duration(getIntEnv("TEST_TIMEOUT_SECONDS", 30)) * time.Second
	testRunner.LocaleOverride = *localeFlag
	testRunner.Logger = func(format string, args ...interface{}) {
		fmt.Printf(format+"\n", args...)
	}
	return testRunner
}

func TestIntegrationSuites(t *testing.T) {
	testRunner := newRunner(t)
	testRunner.ErrorHandlingMode = runner.ErrorHandlingContinue

	testFiles, err := discoverTestFiles("cases")
	if err != nil {
		t.Fatalf("Failed to discover test files: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No test files found in cases directory")
	}

	var jobs []runner.TestJob
	for _, file := range testFiles {
		suite, err := runner.LoadTestSuite(file)
		if err != nil {
			t.Errorf("Failed to load test suite %s: %v", file, err)
			continue
		}
		// Sequences only regroup cases that are already discovered.
		if suite.IsSequence() {
			continue
		}
		jobs = append(jobs, runner.TestJob{Name: suite.Name, Suite: suite, CaseFile: file})
	}

	if len(jobs) == 0 {
		t.Fatal("No valid test suites loaded")
	}

	t.Logf("Loaded %d test suites", len(jobs))

	var failed []string
	for i, job := range jobs {
		t.Logf("[%d/%d] Starting test suite: %s (%d steps)", i+1, len(jobs), job.Name, len(job.Suite.Steps))

		result, err := testRunner.RunSuite(context.Background(), job.Suite)
		if err != nil && result.Error == nil {
			result.Error = err
		}
		t.Logf("Session ID: %s", result.Session.String())

		if result.Error != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", job.Name, result.Error))
			t.Errorf("[%d/%d] FAILED: Test suite '%s' failed: %v", i+1, len(jobs), job.Name, result.Error)
		} else {
			t.Logf("[%d/%d] PASSED: Test suite '%s' completed in %v", i+1, len(jobs), job.Name, result.Duration)
		}
		logSteps(t, result)
	}

	t.Logf("Integration Test Summary:")
	t.Logf("   Passed: %d", len(jobs)-len(failed))
	t.Logf("   Failed: %d", len(failed))
	if len(failed) > 0 {
		for _, failure := range failed {
			t.Logf("   - %s", failure)
		}
		t.Fatalf("Integration tests failed")
	}
}

// TestSingleSuite allows running individual test suites for debugging
// Supports multiple cases comma-separated: -case "case1,case2,case3"
func TestSingleSuite(t *testing.T) {
	flag.Parse()

	if *caseFlag == "" {
		t.Skip("Skipping single suite test (use -case flag to run)")
	}
	if *errFlag != "exit" && *errFlag != "continue" {
		t.Fatalf("Invalid -err flag value: %s (must be 'exit' or 'continue')", *errFlag)
	}
	runs := *runsFlag
	if runs < 1 {
		t.Fatalf("Number of runs must be >= 1, got: %d", runs)
	}

	var suiteFiles []string
	for _, caseName := range strings.Split(*caseFlag, ",") {
		caseName = strings.TrimSpace(caseName)
		if caseName == "" {
			continue
		}
		suiteFile := filepath.Join("cases", caseName)
		if !strings.HasSuffix(suiteFile, ".json") {
			suiteFile += ".json"
		}
		suiteFiles = append(suiteFiles, suiteFile)
	}
	if len(suiteFiles) == 0 {
		t.Fatalf("No valid test cases found in -case flag: %s", *caseFlag)
	}

	testRunner := newRunner(t)
	// For multi-run, always use continue mode to collect complete data
	if runs > 1 {
		testRunner.ErrorHandlingMode = runner.ErrorHandlingContinue
	} else {
		testRunner.ErrorHandlingMode = runner.ErrorHandlingMode(*errFlag)
	}

	stats := map[string]struct{ passes, failures int }{}
	var names []string

	for run := 1; run <= runs; run++ {
		if runs > 1 {
			t.Logf("=== RUN %d/%d ===", run, runs)
		}
		for _, suiteFile := range suiteFiles {
			jobs, err := runner.LoadTestSuiteWithExpansion(suiteFile, "cases")
			if err != nil {
				t.Fatalf("Failed to load test suite %s: %v", suiteFile, err)
			}

			for _, job := range jobs {
				result, err := testRunner.RunSuite(context.Background(), job.Suite)
				if err != nil && result.Error == nil {
					result.Error = err
				}

				s, seen := stats[job.Name]
				if !seen {
					names = append(names, job.Name)
				}
				if result.Error != nil {
					s.failures++
					t.Errorf("FAILED: Test suite '%s' (run %d): %v", job.Name, run, result.Error)
					if runs == 1 && *errFlag == "exit" {
						t.FailNow()
					}
				} else {
					s.passes++
					t.Logf("PASSED: Test suite '%s' completed in %v", job.Name, result.Duration)
				}
				stats[job.Name] = s
				logSteps(t, result)
			}
		}
	}

	if runs > 1 {
		t.Log(buildFinalReport(names, stats))
	}
}

func logSteps(t *testing.T, result runner.TestRunResult) {
	t.Helper()
	for _, stepResult := range result.Results {
		switch {
		case stepResult.IsReset:
			t.Logf("   ↻ %s (%v)", stepResult.StepName, stepResult.Duration)
		case stepResult.Success:
			t.Logf("   ✓ %s (%v)", stepResult.StepName, stepResult.Duration)
		default:
			t.Logf("   ✗ %s: %v", stepResult.StepName, stepResult.Error)
		}
	}
}

// buildFinalReport summarizes repeated runs per suite
func buildFinalReport(names []string, stats map[string]struct{ passes, failures int }) string {
	var sb strings.Builder
	sb.WriteString("\n=== FINAL MULTI-RUN STATISTICS ===\n")

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	for _, name := range sorted {
		s := stats[name]
		total := s.passes + s.failures
		fmt.Fprintf(&sb, "  %s: %d/%d passes (%.1f%%)\n", name, s.passes, total, float64(s.passes)/float64(total)*100)
		if s.passes > 0 && s.failures > 0 {
			sb.WriteString("    FLAKY: This suite both passed and failed across runs\n")
		}
	}
	return sb.String()
}

func discoverTestFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func getIntEnv(name string, defaultValue int) int {
	str := os.Getenv(name)
	if str == "" {
		return defaultValue
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultValue
	}

	return val
}
