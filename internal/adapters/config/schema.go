package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/zerr"
)

// Reserved top-level keys. Every other dot-prefixed key is rejected.
const (
	keyDefault = ".default"
	keyEnv     = ".env"
	keyEnvFile = ".env_file"
)

// Fields of a structured command entry.
const (
	fieldRun         = "run"
	fieldDescription = "description"
	fieldWorkingDir  = "working_dir"
	fieldExecutor    = "ex"
	fieldEnv         = "env"
	fieldArgs        = "args"
)

// settings holds the reserved keys of a config file.
type settings struct {
	defaultName string
	env         map[string]string
	envFile     string
}

func isReserved(key string) bool {
	return strings.HasPrefix(key, ".")
}

// invalid builds a ConfigParseError pointing at location.
func invalid(location, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, msg), "location", location)
}

// checkName rejects command names containing a breadcrumb separator, which
// could not be told apart from a crossing in DONK_COMMAND.
func checkName(location, name string) error {
	if strings.ContainsAny(name, domain.NamedSeparator+domain.InlineSeparator) {
		return invalid(location, fmt.Sprintf("command name %q must not contain %q or %q",
			name, domain.NamedSeparator, domain.InlineSeparator))
	}
	return nil
}

// finish applies the config-level settings to the decoded commands.
// The dotenv file is resolved relative to the config file and its entries
// sit under the explicit .env map.
func finish(path string, cmds *domain.Commands, s settings) (*domain.Commands, error) {
	if cmds.Len() == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoCommands, "empty config file"), "path", path)
	}

	if s.envFile != "" {
		envPath := s.envFile
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(filepath.Dir(path), envPath)
		}
		fileEnv, err := godotenv.Read(envPath)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read env file"), "path", envPath)
		}
		maps.Copy(cmds.Env, fileEnv)
	}
	maps.Copy(cmds.Env, s.env)

	if s.defaultName != "" {
		if _, ok := cmds.Get(s.defaultName); !ok {
			return nil, zerr.With(
				zerr.Wrap(domain.ErrConfigInvalid, "default command is not defined"),
				"command", s.defaultName,
			)
		}
		cmds.Default = s.defaultName
	}

	return cmds, nil
}
