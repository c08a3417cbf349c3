package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/adapters/shell"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return shell.NewExecutor(log)
}

func TestExecutor_Execute_StreamsOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := newExecutor(t).Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "echo line1; echo oops >&2; echo line2"},
		Dir:  t.TempDir(),
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "line1\nline2\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()

	var stdout bytes.Buffer
	err := newExecutor(t).Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "touch grammar.wasm && pwd"},
		Dir:  dir,
	}, &stdout, io.Discard)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "grammar.wasm"))
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, strings.TrimSpace(stdout.String()))
}

func TestExecutor_Execute_Environment(t *testing.T) {
	t.Setenv("TSBUILD_INHERITED", "from-parent")

	var stdout bytes.Buffer
	err := newExecutor(t).Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "echo $TSBUILD_INHERITED $TSBUILD_EXTRA"},
		Env:  map[string]string{"TSBUILD_EXTRA": "from-config"},
	}, &stdout, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "from-parent from-config\n", stdout.String())
}

func TestExecutor_Execute_Failure(t *testing.T) {
	err := newExecutor(t).Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "echo parser.c: syntax error >&2; exit 3"},
	}, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	md := zErr.Metadata()
	assert.Equal(t, 3, md["exit_code"])
	assert.Equal(t, "parser.c: syntax error\n", md["output"])
	assert.Equal(t, "sh -c echo parser.c: syntax error >&2; exit 3", md["command"])
}

func TestExecutor_Execute_OutputTailIsBounded(t *testing.T) {
	err := newExecutor(t).Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "i=0; while [ $i -lt 2000 ]; do echo 0123456789; i=$((i+1)); done; echo last; exit 1"},
	}, io.Discard, io.Discard)
	require.Error(t, err)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	out, ok := zErr.Metadata()["output"].(string)
	require.True(t, ok)
	assert.Len(t, out, 4096)
	assert.True(t, strings.HasSuffix(out, "last\n"))
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	err := newExecutor(t).Execute(context.Background(), domain.Command{
		Args: []string{"tsbuild-definitely-not-a-binary"},
	}, io.Discard, io.Discard)
	require.Error(t, err)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, -1, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	err := newExecutor(t).Execute(context.Background(), domain.Command{}, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newExecutor(t).Execute(ctx, domain.Command{Args: []string{"sh", "-c", "sleep 5"}}, io.Discard, io.Discard)
	require.Error(t, err)
}

func TestExecutor_Execute_TTY(t *testing.T) {
	if _, err := os.Stat("/dev/ptmx"); err != nil {
		t.Skip("no pseudo-terminal support")
	}

	var stdout bytes.Buffer
	err := newExecutor(t).Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "if [ -t 1 ]; then echo tty; else echo pipe; fi; echo err >&2"},
		TTY:  true,
	}, &stdout, io.Discard)
	require.NoError(t, err)

	out := strings.ReplaceAll(stdout.String(), "\r", "")
	assert.Contains(t, out, "tty\n")
	assert.Contains(t, out, "err\n", "stderr is merged into the terminal stream")
}
