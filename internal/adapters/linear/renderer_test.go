package linear_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/donk/internal/adapters/linear"
	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestRenderer_RunSuccess(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stderr bytes.Buffer
	r := linear.NewRenderer(&stderr, "/work")

	r.OnRunStart("c", "/work/donk.yml")
	r.OnLine(domain.NewBreadcrumb("c").Named("a"), 2, "echo a")
	r.OnRunComplete(domain.Succeeded("c", 12*time.Millisecond))

	assert.Equal(t,
		"Running command \"c\" from \"donk.yml\"...\n"+
			"++ [c>a] echo a\n"+
			"Command \"c\" successful, took 12ms\n",
		stderr.String())
}

func TestRenderer_RunFailure(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stderr bytes.Buffer
	r := linear.NewRenderer(&stderr, "/work")

	r.OnRunComplete(domain.OutcomeFromError("c", 3001*time.Millisecond, domain.NewExitCodeError(4)))
	assert.Equal(t, "Command \"c\" failed, took 3.001s, exit code 4\n", stderr.String())
}

func TestRenderer_RunKilled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stderr bytes.Buffer
	r := linear.NewRenderer(&stderr, "")

	r.OnRunComplete(domain.OutcomeFromError("c", 2*time.Second, domain.NewSignalError("interrupt")))
	assert.Equal(t, "Command \"c\" killed with signal interrupt after 2.000s\n", stderr.String())
}

func TestRenderer_EngineErrorIsLeftToLogger(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stderr bytes.Buffer
	r := linear.NewRenderer(&stderr, "")

	r.OnRunComplete(domain.OutcomeFromError("c", time.Second, zerr.Wrap(domain.ErrInlineRecursion, "loop")))
	assert.Empty(t, stderr.String())
}

func TestRenderer_ConfigOutsideCwd(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stderr bytes.Buffer
	r := linear.NewRenderer(&stderr, "/work/sub")

	r.OnRunStart("c", "/work/donk.yml")
	assert.Equal(t, "Running command \"c\" from \"/work/donk.yml\"...\n", stderr.String())
}

func TestEchoPrefix(t *testing.T) {
	tests := []struct {
		name  string
		crumb domain.Breadcrumb
		depth int
		want  string
	}{
		{name: "top level", crumb: domain.NewBreadcrumb("build"), depth: 1, want: "+ [build]"},
		{name: "named", crumb: domain.NewBreadcrumb("c").Named("a"), depth: 2, want: "++ [c>a]"},
		{name: "inline keeps depth", crumb: domain.NewBreadcrumb("c").Inline("setup"), depth: 1, want: "+ [c<setup]"},
		{name: "nested process", crumb: domain.ParseBreadcrumb("ci>test").Named("lint"), depth: 3, want: "+++ [ci>test>lint]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linear.EchoPrefix(tt.crumb, tt.depth))
		})
	}
}
