package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

func TestTrajectoryRoundTrip(t *testing.T) {
	rec := NewRunRecord("campaign", "csaes", sampleProblem(), 1, 0, sampleResults())
	path := filepath.Join(t.TempDir(), "trajectory.parquet")

	require.NoError(t, WriteTrajectory(path, rec))

	runID, samples, err := ReadTrajectory(path)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, runID)
	assert.Equal(t, rec.Trajectory, samples)
}

func TestExportTrajectories(t *testing.T) {
	first := NewRunRecord("campaign", "csaes", sampleProblem(), 1, 0, sampleResults())
	second := NewRunRecord("campaign", "de", sampleProblem(), 2, 1, sampleResults())
	empty := NewRunRecord("campaign", "sa", sampleProblem(), 3, 2, &core.Results{})

	dir := filepath.Join(t.TempDir(), "trajectories")
	paths, err := ExportTrajectories(dir, []RunRecord{first, empty, second})
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, first.ID+".parquet"), paths[0])
	assert.Equal(t, filepath.Join(dir, second.ID+".parquet"), paths[1])
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestReadTrajectoryMissingFile(t *testing.T) {
	_, _, err := ReadTrajectory(filepath.Join(t.TempDir(), "absent.parquet"))
	assert.True(t, errors.Is(err, errors.New(errors.ExportFailed, "")))
}
