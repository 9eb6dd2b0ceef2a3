package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuickstart_LogsInAndOut(t *testing.T) {
	out, err := execute(t, "--username", "lonestarr", "--password", "vespa", "--session-timeout", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "user logged in successfully")
	assert.Contains(t, out, "you may use a lightsaber ring")
	assert.Contains(t, out, "after logout")
}

func TestQuickstart_WrongPassword(t *testing.T) {
	out, err := execute(t, "--username", "lonestarr", "--password", "nope")
	require.NoError(t, err)
	assert.Contains(t, out, "password for account was incorrect")
	assert.NotContains(t, out, "user logged in successfully")
}

func TestQuickstart_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickstart.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"guest","password":"guest"}`), 0o600))

	out, err := execute(t, "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "subject does not have the role")
}

func TestQuickstart_BadLogLevel(t *testing.T) {
	_, err := execute(t, "--password", "vespa", "--log-level", "loud")
	assert.Error(t, err)
}

func TestQuickstart_MissingConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
