package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "press.golden"),
		GoldenPath(filepath.Join("scenarios", "press.yaml")))
}

func TestUpdateAndCompareGolden(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "roundtrip",
		Description: "roundtrip",
		Machine:     machineIdle(),
		Bound:       2,
		Assertions:  []Assertion{{Type: AssertIterations, Count: 2}},
	})
	require.NoError(t, err)

	path := GoldenPath(filepath.Join(t.TempDir(), "roundtrip.yaml"))
	require.NoError(t, UpdateGolden(path, "roundtrip", result))

	match, err := CompareGolden(path, "roundtrip", result)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CompareGolden(path, "renamed", result)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestCompareGolden_MissingFile(t *testing.T) {
	_, err := CompareGolden(filepath.Join(t.TempDir(), "missing.golden"), "x", NewResult())
	require.Error(t, err)
}

func TestExampleScenariosMatchGolden(t *testing.T) {
	files, err := filepath.Glob("../../examples/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			scenario, err := LoadScenario(f)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)

			match, err := CompareGolden(GoldenPath(f), scenario.Name, result)
			require.NoError(t, err)
			assert.True(t, match, "trace differs from %s", GoldenPath(f))
		})
	}
}
