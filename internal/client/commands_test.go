package client

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

func nopLoggerFactory(*config.ClientConfig) *logger.Logger {
	return logger.Nop()
}

// execute runs the command tree with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand("test", nopLoggerFactory)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func deviceArgs(t *testing.T, address, token string) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		"--address", address,
		"--token", token,
		"--db", filepath.Join(dir, "state.db"),
		"--file", filepath.Join(dir, "data.json"),
		"--log-file", filepath.Join(dir, "client.log"),
	}
}

func TestCommands_PushAndPull(t *testing.T) {
	srv := newSyncServer(t)
	token := srv.token(t, "user-1")

	out, err := execute(t, `{"todo":["milk"]}`, append([]string{"push", "-i", "-"}, deviceArgs(t, srv.URL, token)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Data synced to cloud")

	out, err = execute(t, "", append([]string{"pull", "--stdout"}, deviceArgs(t, srv.URL, token)...)...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"todo":["milk"]}`, strings.TrimSpace(out))
}

func TestCommands_PushRejectsInvalidJSON(t *testing.T) {
	srv := newSyncServer(t)

	_, err := execute(t, `{"broken`, append([]string{"push", "-i", "-"}, deviceArgs(t, srv.URL, srv.token(t, "u"))...)...)
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestCommands_PushEmptyPayloadFails(t *testing.T) {
	srv := newSyncServer(t)

	out, err := execute(t, `null`, append([]string{"push", "-i", "-"}, deviceArgs(t, srv.URL, srv.token(t, "u"))...)...)
	assert.Error(t, err)
	assert.Contains(t, out, "Failed (validation)")
}

func TestCommands_PullEmpty(t *testing.T) {
	srv := newSyncServer(t)

	out, err := execute(t, "", append([]string{"pull"}, deviceArgs(t, srv.URL, srv.token(t, "u"))...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "No cloud data found")
}

func TestCommands_Status(t *testing.T) {
	srv := newSyncServer(t)

	out, err := execute(t, "", append([]string{"status"}, deviceArgs(t, srv.URL, srv.token(t, "u"))...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Online: true")
	assert.Contains(t, out, "Authenticated: true")
	assert.Contains(t, out, "User: u\n")
	assert.Contains(t, out, "Pending: none")
	assert.Contains(t, out, "Cloud configured: true")
	assert.Contains(t, out, "Cloud last sync: never")
}

func TestCommands_ResolveConflict(t *testing.T) {
	srv := newSyncServer(t)
	token := srv.token(t, "user-1")

	_, err := execute(t, `{"v":"a"}`, append([]string{"push", "-i", "-"}, deviceArgs(t, srv.URL, token)...)...)
	require.NoError(t, err)

	out, err := execute(t, `{"v":"b"}`, append([]string{"resolve", "local", "-i", "-"}, deviceArgs(t, srv.URL, token)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Kept local data")

	out, err = execute(t, "", append([]string{"pull", "--stdout"}, deviceArgs(t, srv.URL, token)...)...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"b"}`, strings.TrimSpace(out))
}

func TestCommands_ResolveRejectsUnknownChoice(t *testing.T) {
	_, err := execute(t, "", "resolve", "mine")
	assert.Error(t, err)
}

func TestCommands_PendingEmpty(t *testing.T) {
	srv := newSyncServer(t)
	args := deviceArgs(t, srv.URL, srv.token(t, "u"))

	out, err := execute(t, "", append([]string{"pending"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing pending")

	out, err = execute(t, "", append([]string{"pending", "--flush"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing pending")
}

func TestCommands_PendingFlagsExclusive(t *testing.T) {
	_, err := execute(t, "", "pending", "--flush", "--drop")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestCommands_Token(t *testing.T) {
	out, err := execute(t, "", "token", "--user", "user-9", "--sign-key", "secret", "--issuer", "go-sync-keeper")
	require.NoError(t, err)

	userID, err := utils.ParseUserIDFromJWT(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)
}

func TestCommands_TokenRequiresUserAndKey(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "")

	_, err := execute(t, "", "token", "--user", "user-9")
	assert.Error(t, err)

	_, err = execute(t, "", "token", "--sign-key", "secret")
	assert.Error(t, err)
}
