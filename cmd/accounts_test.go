package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/weeklycal/internal/config"
)

func TestAccountsCommand(t *testing.T) {
	envFile := isolate(t)
	root := testArchive(t)

	stdout, _, err := execute(newAccountsCmd(),
		"--env-file", envFile,
		"--email", self,
		"--archive", root,
		"--exclude-account", "Alice",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"FOLDER", "MEMBER", "STATUS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Alice", "Alice", "excluded"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Calendar", self, statusReady}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Empty", "Empty", "skipped"}, strings.Fields(lines[3]))
}

func TestAccountsCommand_RequiresEmail(t *testing.T) {
	envFile := isolate(t)

	_, _, err := execute(newAccountsCmd(), "--env-file", envFile, "--archive", testArchive(t))
	assert.ErrorIs(t, err, config.ErrMissingSelfEmail)
}
