package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCommand_ListsStepsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tools:
  - name: fzf
    requires: [git]
  - name: git
    critical: true
`), 0o644))

	prevCfg := cfgFile
	cfgFile = path
	defer func() { cfgFile = prevCfg }()

	var buf bytes.Buffer
	planCmd.SetOut(&buf)
	defer planCmd.SetOut(nil)

	require.NoError(t, runPlan(planCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "pkgmgr:install:git")
	assert.Contains(t, out, "pkgmgr:install:fzf  (after pkgmgr:install:git)")
	assert.Contains(t, out, "[critical]")
	assert.Contains(t, out, "2 steps")
	assert.Less(t,
		bytes.Index(buf.Bytes(), []byte("install:git")),
		bytes.Index(buf.Bytes(), []byte("install:fzf")))
}

func TestPlanCommand_SurfacesConfigErrors(t *testing.T) {
	prevCfg := cfgFile
	cfgFile = filepath.Join(t.TempDir(), "absent.yaml")
	defer func() { cfgFile = prevCfg }()

	err := runPlan(planCmd, nil)
	require.Error(t, err)
	assert.Contains(t, formatError(err), "not found")
}
