package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/actionserver"
	"github.com/aretw0/actionserver/internal/config"
	"github.com/aretw0/actionserver/pkg/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestActionsValue(t *testing.T) {
	var v actionsValue

	assert.NoError(t, v.Set("actions.act"))
	assert.Equal(t, "actions.act", v.String())

	err := v.Set("actions/act")
	assert.ErrorIs(t, err, domain.ErrInvalidActionsSpecifier)
	assert.Equal(t, "actions.act", v.String(), "rejected value must not replace the current one")

	assert.Error(t, v.Set(`actions\act`))
	assert.Error(t, v.Set("actions..act"))
}

func TestFolderPathFailsAtParseTime(t *testing.T) {
	_, err := execute(t, "actions", "--actions", "actions/act")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid argument "actions/act"`)
	assert.Contains(t, err.Error(), "folder path")
}

func TestActionsCommand(t *testing.T) {
	out, err := execute(t, "actions", "--actions", "demo")
	require.NoError(t, err)

	assert.Equal(t, []string{"action_greet", "action_restart", "action_set_slot", "action_remind"}, actionNames(t, out))
}

func TestUnknownPackageFailsBeforeServing(t *testing.T) {
	_, err := execute(t, "run", "--actions", "does.not.exist", "--port", "1")

	assert.ErrorIs(t, err, domain.ErrInvalidActionsSpecifier)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "action-server version "+actionserver.Version+"\n", out)
}

func TestMCPUnknownTransport(t *testing.T) {
	_, err := execute(t, "mcp", "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport")
}

func actionNames(t *testing.T, out string) []string {
	t.Helper()
	var infos []domain.ActionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

func TestConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("actions: demo.params\nlogging_level: error\n"), 0o600))
	params := []string{"action_set_slot", "action_remind"}
	all := []string{"action_greet", "action_restart", "action_set_slot", "action_remind"}

	out, err := execute(t, "actions", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, params, actionNames(t, out), "file overrides defaults")

	out, err = execute(t, "actions", "--config", path, "--actions", "demo")
	require.NoError(t, err)
	assert.Equal(t, all, actionNames(t, out), "flags override the file")

	t.Setenv("ACTION_SERVER_ACTIONS", "demo")
	out, err = execute(t, "actions", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, all, actionNames(t, out), "env overrides the file")

	out, err = execute(t, "actions", "--config", path, "--actions", "demo.params")
	require.NoError(t, err)
	assert.Equal(t, params, actionNames(t, out), "flags override env")
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := execute(t, "actions", "--port", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
