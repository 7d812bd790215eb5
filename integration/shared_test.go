//go:build basic || database

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a shared studytrack binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// answersCSV has three subjects over five days in March 2024: 7 correct and 4 incorrect.
const answersCSV = `question_id,subject,topic,answer,is_correct,answered_at
q-1,math,algebra,A,true,2024-03-01T12:00:00Z
q-2,math,algebra,B,false,2024-03-01T13:00:00Z
q-3,math,geometry,C,true,2024-03-02T12:00:00Z
q-4,physics,kinematics,D,true,2024-03-02T15:00:00Z
q-5,physics,kinematics,A,false,2024-03-03T12:00:00Z
q-6,physics,optics,B,true,2024-03-03T18:00:00Z
q-7,history,brazil,C,true,2024-03-04T09:00:00Z
q-8,history,brazil,D,false,2024-03-04T10:00:00Z
q-9,math,algebra,A,true,2024-03-05T12:00:00Z
q-10,math,geometry,B,false,2024-03-05T13:00:00Z
q-11,history,europe,C,true,2024-03-05T14:00:00Z
`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getStudytrackBinary returns the path to the studytrack binary, building it once if needed.
func getStudytrackBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "studytrack-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "studytrack")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build studytrack: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runStudytrack runs the binary and returns its stdout.
// Backend settings come from the environment of the test.
func runStudytrack(t *testing.T, args ...string) string {
	t.Helper()
	cmd := exec.Command(getStudytrackBinary(), args...)
	cmd.Dir = t.TempDir() // Keep config files of the project out of the way
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.NoError(t, err, "command %s failed\nstderr: %s", cmd.String(), stderr.String())
	return stdout.String()
}

// writeAnswers writes the sample answers to a CSV file.
func writeAnswers(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.csv")
	require.NoError(t, os.WriteFile(path, []byte(answersCSV), 0o644))
	return path
}

// decodeJSON decodes command output into a generic value.
func decodeJSON(t *testing.T, out string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

// summaryOutput is the JSON form of the summary view.
type summaryOutput struct {
	Empty     bool    `json:"empty"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Total     int     `json:"total"`
	Accuracy  float64 `json:"accuracy"`
}

// evolutionOutput is the subset of the evolution JSON the tests check.
type evolutionOutput struct {
	Empty   bool     `json:"empty"`
	Labels  []string `json:"labels"`
	Periods []struct {
		Correct   int `json:"correct"`
		Incorrect int `json:"incorrect"`
	} `json:"periods"`
}

// verifyStore imports the sample answers and checks the views against them.
func verifyStore(t *testing.T) {
	t.Helper()
	window := []string{"--start", "2024-03-01", "--end", "2024-03-05", "--timezone", "UTC", "--output", "json"}

	out := runStudytrack(t, "import", writeAnswers(t))
	require.Contains(t, out, "Imported 11 answers.")

	var summary summaryOutput
	decodeJSON(t, runStudytrack(t, append([]string{"summary"}, window...)...), &summary)
	require.False(t, summary.Empty)
	require.Equal(t, 7, summary.Correct)
	require.Equal(t, 4, summary.Incorrect)
	require.Equal(t, 11, summary.Total)

	var evolution evolutionOutput
	decodeJSON(t, runStudytrack(t, append([]string{"evolution"}, window...)...), &evolution)
	require.False(t, evolution.Empty)
	require.NotEmpty(t, evolution.Labels)
	require.Equal(t, "01/03", evolution.Labels[0])
	correct, incorrect := 0, 0
	for _, p := range evolution.Periods {
		correct += p.Correct
		incorrect += p.Incorrect
	}
	require.Equal(t, 7, correct)
	require.Equal(t, 4, incorrect)

	decodeJSON(t, runStudytrack(t, append([]string{"summary", "--subject", "math"}, window...)...), &summary)
	require.Equal(t, 3, summary.Correct)
	require.Equal(t, 2, summary.Incorrect)
}
