package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/zerr"
)

// tomlDecoder builds commands from decoded TOML values. Locations are key
// paths, since the decoded values carry no positions.
type tomlDecoder struct {
	path string
}

func decodeTOML(path string, data []byte) (*domain.Commands, settings, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, settings{}, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, err.Error()), "path", path)
	}

	d := tomlDecoder{path: path}
	cmds := domain.NewCommands()
	var s settings

	for _, name := range topLevelKeys(md) {
		value := raw[name]

		if isReserved(name) {
			if err := d.setting(&s, name, value); err != nil {
				return nil, settings{}, err
			}
			continue
		}

		if err := checkName(d.location(name), name); err != nil {
			return nil, settings{}, err
		}
		spec, err := d.command(name, value)
		if err != nil {
			return nil, settings{}, err
		}
		if err := cmds.Add(spec); err != nil {
			return nil, settings{}, zerr.With(err, "location", d.location(name))
		}
	}
	return cmds, s, nil
}

// topLevelKeys returns the top-level keys in document order.
func topLevelKeys(md toml.MetaData) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		if _, ok := seen[key[0]]; ok {
			continue
		}
		seen[key[0]] = struct{}{}
		keys = append(keys, key[0])
	}
	return keys
}

func (d tomlDecoder) setting(s *settings, name string, value any) error {
	var err error
	switch name {
	case keyDefault:
		s.defaultName, err = d.str(value, name)
	case keyEnvFile:
		s.envFile, err = d.str(value, name)
	case keyEnv:
		s.env, err = d.stringMap(value, name)
	default:
		err = invalid(d.location(name), fmt.Sprintf("unknown reserved key %q", name))
	}
	return err
}

func (d tomlDecoder) command(name string, value any) (*domain.CommandSpec, error) {
	spec := &domain.CommandSpec{Name: name}

	table, ok := value.(map[string]any)
	if !ok {
		run, err := d.lines(value, name)
		if err != nil {
			return nil, invalid(d.location(name), "command must be a string, an array of strings or a table")
		}
		spec.Run = run
		return spec, nil
	}

	if _, ok := table[fieldRun]; !ok {
		return nil, invalid(d.location(name), fmt.Sprintf("command %q has no %q field", name, fieldRun))
	}

	for field, v := range table {
		key := name + "." + field

		var err error
		switch field {
		case fieldRun:
			spec.Run, err = d.lines(v, key)
		case fieldDescription:
			spec.Description, err = d.str(v, key)
		case fieldWorkingDir:
			spec.WorkingDir, err = d.str(v, key)
		case fieldExecutor:
			spec.Executor, err = d.str(v, key)
		case fieldEnv:
			spec.Env, err = d.stringMap(v, key)
		case fieldArgs:
			spec.Args, err = d.strings(v, key)
		default:
			err = invalid(d.location(key), fmt.Sprintf("unknown field %q", field))
		}
		if err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func (d tomlDecoder) lines(value any, key string) ([]string, error) {
	if _, ok := value.([]any); ok {
		return d.strings(value, key)
	}
	line, err := d.str(value, key)
	if err != nil {
		return nil, err
	}
	return []string{line}, nil
}

func (d tomlDecoder) strings(value any, key string) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, invalid(d.location(key), "expected an array of strings")
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, err := d.str(item, fmt.Sprintf("%s[%d]", key, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d tomlDecoder) str(value any, key string) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", invalid(d.location(key), "expected a string")
	}
	return s, nil
}

func (d tomlDecoder) stringMap(value any, key string) (map[string]string, error) {
	table, ok := value.(map[string]any)
	if !ok {
		return nil, invalid(d.location(key), "expected a table of strings")
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		switch v := v.(type) {
		case string:
			out[k] = v
		case int64, float64, bool:
			out[k] = fmt.Sprint(v)
		default:
			return nil, invalid(d.location(key+"."+k), "expected a scalar value")
		}
	}
	return out, nil
}

func (d tomlDecoder) location(key string) string {
	return d.path + ":" + key
}
