package spawn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpawnRejectsEmptyArgv(t *testing.T) {
	_, err := Spawn(nil, Options{})
	require.ErrorIs(t, err, ErrNoCommand)
}

func TestSpawnRejectsMissingCommand(t *testing.T) {
	_, err := Spawn([]string{"definitely-not-a-real-binary-xyz"}, Options{})
	require.Error(t, err)
}

func TestSpawnLaunchesOnPath(t *testing.T) {
	pid, err := Spawn([]string{"true"}, Options{})
	require.NoError(t, err)
	require.Greater(t, pid, 0)
}

func TestApplyEnvSetAndUnset(t *testing.T) {
	base := []string{"FOO=old", "KEEP=1"}
	v := "new"
	out := applyEnv(base, []EnvOp{
		{Name: "FOO", Value: &v},
		{Name: "KEEP", Value: nil},
		{Name: "ADDED", Value: &v},
	})
	require.Contains(t, out, "FOO=new")
	require.Contains(t, out, "ADDED=new")
	require.NotContains(t, out, "KEEP=1")
}
