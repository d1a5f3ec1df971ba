package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roastsim/model"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.ini")
	ini := "[library]\nDriver = sqlite\nPath = " + filepath.Join(dir, "roasts.db") + "\n\n[log]\nLevel = warn\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(ini), 0644))

	out := execute(t, "simulate", "-c", cfgPath, "--variant", "phase", "--speed", "instant",
		"--name", "Kenya AA", "--dev", "0.3", "--drop", "204", "--save")
	assert.Contains(t, out, "Kenya AA (phase): 468 s, start 20.0°C")
	assert.Contains(t, out, "phase 1 ends at 240 s: 150.00°C")
	assert.Contains(t, out, "phase 2 ends at 450 s: 200.00°C")
	assert.Contains(t, out, "high/fresh")
	assert.Contains(t, out, "risk of grassy/underdeveloped flavor")
	assert.Contains(t, out, `saved "Kenya AA"`)

	out = execute(t, "library", "list", "-c", cfgPath)
	assert.Contains(t, out, "Kenya AA")
	assert.Contains(t, out, "DTR  3.85%")

	out = execute(t, "library", "export", "-c", cfgPath)
	assert.Contains(t, out, "name: Kenya AA")

	out = execute(t, "library", "delete", "Kenya AA", "-c", cfgPath)
	assert.Contains(t, out, `deleted "Kenya AA"`)

	out = execute(t, "library", "clear", "-c", cfgPath)
	assert.Contains(t, out, "library cleared")

	out = execute(t, "library", "list", "-c", cfgPath)
	assert.Contains(t, out, "library is empty")
}

func TestSimulateRejectsInvalid(t *testing.T) {
	rootCmd.SetArgs([]string{"simulate", "-c", filepath.Join(t.TempDir(), "none.ini"),
		"--variant", "empirical", "--speed", "instant", "--time", "0"})
	rootCmd.SetOut(&bytes.Buffer{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total_time_min")
}

func TestSimulateRejectsNaN(t *testing.T) {
	for flag, field := range map[string]string{"--batch": "batch_grams", "--charge": "charge_temp_c"} {
		// 标志值在多次 Execute 之间保留，先显式给出合法值再覆盖
		rootCmd.SetArgs([]string{"simulate", "-c", filepath.Join(t.TempDir(), "none.ini"),
			"--variant", "empirical", "--speed", "instant", "--time", "10",
			"--batch", "500", "--charge", "220", flag, "NaN"})
		rootCmd.SetOut(&bytes.Buffer{})
		err := rootCmd.Execute()
		require.Error(t, err, flag)
		assert.ErrorIs(t, err, model.ErrInvalidParameter, flag)
		assert.Contains(t, err.Error(), field)
	}
}
