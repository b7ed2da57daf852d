package shell_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/donk/internal/adapters/shell"
	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports"
)

func openSession(t *testing.T, opts ports.SessionOptions) (ports.Session, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	opts.Stdio = ports.Stdio{Stdout: &stdout, Stderr: &bytes.Buffer{}}
	if opts.Dir == "" {
		opts.Dir = t.TempDir()
	}
	session, err := shell.NewShell().Open(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session, &stdout
}

func TestSession_StatePersistsAcrossLines(t *testing.T) {
	session, stdout := openSession(t, ports.SessionOptions{})
	ctx := context.Background()

	require.NoError(t, session.Run(ctx, "GREETING=hello"))
	require.NoError(t, session.Run(ctx, "mkdir sub && cd sub"))
	require.NoError(t, session.Run(ctx, `echo "$GREETING"; basename "$PWD"`))

	assert.Equal(t, "hello\nsub\n", stdout.String())
}

func TestSession_SeparateSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	first, _ := openSession(t, ports.SessionOptions{})
	require.NoError(t, first.Run(ctx, "X=1"))

	second, stdout := openSession(t, ports.SessionOptions{})
	require.NoError(t, second.Run(ctx, `echo "[${X:-}]"`))

	assert.Equal(t, "[]\n", stdout.String())
}

func TestSession_EnvAndArgs(t *testing.T) {
	session, stdout := openSession(t, ports.SessionOptions{
		Env:  []string{"DONK_DEPTH=3"},
		Args: []string{"one", "two words"},
	})

	require.NoError(t, session.Run(context.Background(), `echo "$DONK_DEPTH $# $2"`))
	assert.Equal(t, "3 2 two words\n", stdout.String())
}

func TestSession_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	session, stdout := openSession(t, ports.SessionOptions{Dir: dir})

	require.NoError(t, session.Run(context.Background(), "pwd"))
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSession_NonZeroExit(t *testing.T) {
	session, _ := openSession(t, ports.SessionOptions{})

	err := session.Run(context.Background(), "exit 4")
	var exitErr *domain.ExitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 4, exitErr.Code)
}

func TestSession_ExitZeroEndsShell(t *testing.T) {
	session, _ := openSession(t, ports.SessionOptions{})

	require.NoError(t, session.Run(context.Background(), "exit 0"))
	assert.True(t, session.Exited())
}

func TestSession_ErrexitStopsLine(t *testing.T) {
	session, stdout := openSession(t, ports.SessionOptions{})

	err := session.Run(context.Background(), "false; echo unreachable")
	var exitErr *domain.ExitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Empty(t, stdout.String())
}

func TestSession_SyntaxError(t *testing.T) {
	session, _ := openSession(t, ports.SessionOptions{})

	err := session.Run(context.Background(), "if then fi (")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrShellSyntax))
}

func TestSession_Complete(t *testing.T) {
	session, _ := openSession(t, ports.SessionOptions{})

	tests := []struct {
		text string
		want bool
	}{
		{text: "echo hi", want: true},
		{text: "", want: true},
		{text: "for i in 1 2; do", want: false},
		{text: "for i in 1 2; do\necho $i", want: false},
		{text: "for i in 1 2; do\necho $i\ndone", want: true},
		{text: `echo "open`, want: false},
		{text: "if true; then\necho yes\nfi", want: true},
		{text: "echo )", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, session.Complete(tt.text))
		})
	}
}

func TestSession_RunsMultiLineStatement(t *testing.T) {
	session, stdout := openSession(t, ports.SessionOptions{})

	require.NoError(t, session.Run(context.Background(), "for i in 1 2; do\necho \"$i\"\ndone"))
	assert.Equal(t, "1\n2\n", stdout.String())
}
