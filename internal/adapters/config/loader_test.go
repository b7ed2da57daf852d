package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/donk/internal/adapters/config"
	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	return config.NewLoader(mocks.NewMockLogger(ctrl))
}

func location(t *testing.T, err error) string {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	loc, _ := zErr.Metadata()["location"].(string)
	return loc
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "donk.yml", `
build: go build ./...
test:
  - go vet ./...
  - go test ./...
deploy:
  run: ./deploy.sh
  description: Ship it
  working_dir: ops
  ex: python3
  env:
    PORT: 8080
  args: [prod]
`)

	cmds, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"build", "test", "deploy"}, cmds.Names())

	build, ok := cmds.Get("build")
	require.True(t, ok)
	assert.Equal(t, []string{"go build ./..."}, build.Run)
	assert.True(t, build.Smart())

	test, _ := cmds.Get("test")
	assert.Equal(t, []string{"go vet ./...", "go test ./..."}, test.Run)

	deploy, _ := cmds.Get("deploy")
	assert.Equal(t, []string{"./deploy.sh"}, deploy.Run)
	assert.Equal(t, "Ship it", deploy.Description)
	assert.Equal(t, "ops", deploy.WorkingDir)
	assert.Equal(t, "python3", deploy.Executor)
	assert.Equal(t, map[string]string{"PORT": "8080"}, deploy.Env)
	assert.Equal(t, []string{"prod"}, deploy.Args)
	assert.False(t, deploy.Smart())
}

func TestLoad_YAML_BashSmartIsSmart(t *testing.T) {
	path := writeConfig(t, "donk.yml", `
setup:
  run: [X=1]
  ex: bash-smart
`)

	cmds, err := newLoader(t).Load(path)
	require.NoError(t, err)
	setup, _ := cmds.Get("setup")
	assert.True(t, setup.Smart())
}

func TestLoad_YAML_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantLoc string
	}{
		{name: "bare number", content: "answer: 42\n", wantLoc: ":1:9"},
		{name: "boolean", content: "flag: true\n", wantLoc: ":1:7"},
		{name: "empty entry", content: "nothing:\n"},
		{name: "sequence containing a mapping", content: "build:\n  - echo: hi\n", wantLoc: ":2:5"},
		{name: "object without run", content: "build:\n  description: nope\n", wantLoc: ":2:3"},
		{name: "unknown field", content: "build:\n  run: make\n  retries: 3\n", wantLoc: ":3:3"},
		{name: "unknown reserved key", content: ".shell: zsh\nbuild: make\n", wantLoc: ":1:1"},
		{name: "top level sequence", content: "- make\n", wantLoc: ":1:1"},
		{name: "named separator in name", content: "build: make\n\"ci>test\": make test\n", wantLoc: ":2:1"},
		{name: "inline separator in name", content: "a<b: make\n", wantLoc: ":1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "donk.yml", tt.content)

			_, err := newLoader(t).Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
			if tt.wantLoc != "" {
				assert.Equal(t, path+tt.wantLoc, location(t, err))
			}
		})
	}
}

func TestLoad_YAML_SyntaxError(t *testing.T) {
	path := writeConfig(t, "donk.yml", "build: [unterminated\n")

	_, err := newLoader(t).Load(path)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}

func TestLoad_DuplicateCommand(t *testing.T) {
	path := writeConfig(t, "donk.yml", "build: make\nbuild: make all\n")

	_, err := newLoader(t).Load(path)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}

func TestLoad_Empty(t *testing.T) {
	path := writeConfig(t, "donk.yml", "")

	_, err := newLoader(t).Load(path)
	assert.True(t, errors.Is(err, domain.ErrNoCommands))
}

func TestLoad_Default(t *testing.T) {
	path := writeConfig(t, "donk.yml", ".default: test\nbuild: make\ntest: make test\n")

	cmds, err := newLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cmds.Default)
	assert.Equal(t, []string{"build", "test"}, cmds.Names())
}

func TestLoad_DefaultUnknown(t *testing.T) {
	path := writeConfig(t, "donk.yml", ".default: tset\nbuild: make\n")

	_, err := newLoader(t).Load(path)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.env"),
		[]byte("FROM_FILE=file\nSHARED=file\n"), domain.PrivateFilePerm))

	path := filepath.Join(dir, "donk.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
.env_file: local.env
.env:
  SHARED: explicit
  PORT: 8080
build: make
`), domain.PrivateFilePerm))

	cmds, err := newLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"FROM_FILE": "file",
		"SHARED":    "explicit",
		"PORT":      "8080",
	}, cmds.Env)
}

func TestLoad_EnvFileMissing(t *testing.T) {
	path := writeConfig(t, "donk.yml", ".env_file: missing.env\nbuild: make\n")

	_, err := newLoader(t).Load(path)
	require.Error(t, err)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "donk.toml", `
".default" = "build"
build = "go build"
test = ["go vet", "go test"]

[".env"]
PORT = 8080

[deploy]
run = "./deploy.sh"
ex = "python3"
args = ["prod"]
`)

	cmds, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"build", "test", "deploy"}, cmds.Names())
	assert.Equal(t, "build", cmds.Default)
	assert.Equal(t, map[string]string{"PORT": "8080"}, cmds.Env)

	test, _ := cmds.Get("test")
	assert.Equal(t, []string{"go vet", "go test"}, test.Run)

	deploy, _ := cmds.Get("deploy")
	assert.Equal(t, "python3", deploy.Executor)
	assert.Equal(t, []string{"prod"}, deploy.Args)
}

func TestLoad_TOML_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantLoc string
	}{
		{name: "bare number", content: "answer = 42\n", wantLoc: ":answer"},
		{name: "table without run", content: "[build]\ndescription = \"nope\"\n", wantLoc: ":build"},
		{name: "unknown field", content: "[build]\nrun = \"make\"\nretries = 3\n", wantLoc: ":build.retries"},
		{name: "array with a number", content: "build = [\"make\", 1]\n", wantLoc: ":build"},
		{name: "separator in name", content: "\"ci>test\" = \"make\"\n", wantLoc: ":ci>test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "donk.toml", tt.content)

			_, err := newLoader(t).Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
			assert.Equal(t, path+tt.wantLoc, location(t, err))
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "donk.yml"))
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
}
