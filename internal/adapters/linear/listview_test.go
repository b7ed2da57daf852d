package linear_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/donk/internal/adapters/linear"
	"go.trai.ch/donk/internal/core/domain"
)

func TestSummary_Truncation(t *testing.T) {
	exact := strings.Repeat("x", linear.MaxSummaryWidth)
	long := strings.Repeat("y", linear.MaxSummaryWidth+15)
	wide := strings.Repeat("界", linear.MaxSummaryWidth)

	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "short line", line: "go build ./...", want: "go build ./..."},
		{name: "exact length is untouched", line: exact, want: exact},
		{name: "long line is truncated", line: long, want: strings.Repeat("y", linear.MaxSummaryWidth-1) + linear.Ellipsis},
		{name: "only the first physical line", line: "echo a\necho b", want: "echo a"},
		{name: "wide runes count double", line: wide, want: strings.Repeat("界", linear.MaxSummaryWidth/2-1) + linear.Ellipsis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linear.Summary(&domain.CommandSpec{Run: []string{tt.line}})
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), linear.MaxSummaryWidth)
		})
	}
}

func TestSummary_Description(t *testing.T) {
	spec := &domain.CommandSpec{Run: []string{"make"}, Description: "Build everything"}
	assert.Equal(t, "Build everything", linear.Summary(spec))
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		spec *domain.CommandSpec
		want string
	}{
		{name: "single line", spec: &domain.CommandSpec{Run: []string{"make"}}, want: "(1 line)"},
		{name: "multiple lines", spec: &domain.CommandSpec{Run: []string{"a", "b", "c"}}, want: "(3 lines)"},
		{name: "executor", spec: &domain.CommandSpec{Run: []string{"a", "b"}, Executor: "python3"}, want: "(python3, 2 lines)"},
		{name: "bash-smart is not shown", spec: &domain.CommandSpec{Run: []string{"a"}, Executor: domain.SmartExecutor}, want: "(1 line)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linear.Hint(tt.spec))
		})
	}
}

func TestWriteList(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cmds := domain.NewCommands()
	require.NoError(t, cmds.Add(&domain.CommandSpec{Name: "build", Run: []string{"go build ./..."}}))
	require.NoError(t, cmds.Add(&domain.CommandSpec{Name: "test", Run: []string{"go vet ./...", "go test ./..."}, Description: "Run the checks"}))
	require.NoError(t, cmds.Add(&domain.CommandSpec{Name: "report", Run: []string{"import sys", "print(sys.version)"}, Executor: "python3"}))
	require.NoError(t, cmds.Add(&domain.CommandSpec{Name: "a-command-name-longer-than-the-cap", Run: []string{"true"}}))

	var buf bytes.Buffer
	require.NoError(t, linear.WriteList(&buf, cmds))

	g := goldie.New(t)
	g.Assert(t, "list", buf.Bytes())
}

func TestWriteCompletion(t *testing.T) {
	cmds := domain.NewCommands()
	require.NoError(t, cmds.Add(&domain.CommandSpec{Name: "build", Run: []string{"make"}}))
	require.NoError(t, cmds.Add(&domain.CommandSpec{Name: "test", Run: []string{"make test"}}))

	var buf bytes.Buffer
	require.NoError(t, linear.WriteCompletion(&buf, cmds))
	assert.Equal(t, "build test\n", buf.String())
}
