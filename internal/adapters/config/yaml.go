package config

import (
	"fmt"

	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// yamlDecoder walks a YAML node tree so that command order and the
// position of every offending node are preserved.
type yamlDecoder struct {
	path string
}

func decodeYAML(path string, data []byte) (*domain.Commands, settings, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, settings{}, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, err.Error()), "path", path)
	}

	d := yamlDecoder{path: path}
	cmds := domain.NewCommands()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return cmds, settings{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, settings{}, invalid(d.location(root), "config must be a mapping of command names")
	}

	var s settings
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		name := key.Value

		if isReserved(name) {
			if err := d.setting(&s, key, value); err != nil {
				return nil, settings{}, err
			}
			continue
		}

		if err := checkName(d.location(key), name); err != nil {
			return nil, settings{}, err
		}
		spec, err := d.command(name, value)
		if err != nil {
			return nil, settings{}, err
		}
		if err := cmds.Add(spec); err != nil {
			return nil, settings{}, zerr.With(err, "location", d.location(key))
		}
	}
	return cmds, s, nil
}

func (d yamlDecoder) setting(s *settings, key, value *yaml.Node) error {
	var err error
	switch key.Value {
	case keyDefault:
		s.defaultName, err = d.str(value)
	case keyEnvFile:
		s.envFile, err = d.str(value)
	case keyEnv:
		s.env, err = d.stringMap(value)
	default:
		err = invalid(d.location(key), fmt.Sprintf("unknown reserved key %q", key.Value))
	}
	return err
}

func (d yamlDecoder) command(name string, node *yaml.Node) (*domain.CommandSpec, error) {
	spec := &domain.CommandSpec{Name: name}

	switch node.Kind {
	case yaml.ScalarNode, yaml.SequenceNode:
		run, err := d.lines(node)
		if err != nil {
			return nil, err
		}
		spec.Run = run
		return spec, nil
	case yaml.MappingNode:
	default:
		return nil, invalid(d.location(node), "command must be a string, a list of strings or a mapping")
	}

	hasRun := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var err error
		switch key.Value {
		case fieldRun:
			hasRun = true
			spec.Run, err = d.lines(value)
		case fieldDescription:
			spec.Description, err = d.str(value)
		case fieldWorkingDir:
			spec.WorkingDir, err = d.str(value)
		case fieldExecutor:
			spec.Executor, err = d.str(value)
		case fieldEnv:
			spec.Env, err = d.stringMap(value)
		case fieldArgs:
			spec.Args, err = d.strings(value)
		default:
			err = invalid(d.location(key), fmt.Sprintf("unknown field %q", key.Value))
		}
		if err != nil {
			return nil, err
		}
	}

	if !hasRun {
		return nil, invalid(d.location(node), fmt.Sprintf("command %q has no %q field", name, fieldRun))
	}
	return spec, nil
}

// lines accepts a single string or a sequence of strings.
func (d yamlDecoder) lines(node *yaml.Node) ([]string, error) {
	if node.Kind == yaml.SequenceNode {
		return d.strings(node)
	}
	line, err := d.str(node)
	if err != nil {
		return nil, err
	}
	return []string{line}, nil
}

func (d yamlDecoder) strings(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, invalid(d.location(node), "expected a list of strings")
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		s, err := d.str(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d yamlDecoder) str(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!str" {
		return "", invalid(d.location(node), "expected a string")
	}
	return node.Value, nil
}

// stringMap accepts any scalar value so that numbers such as ports can be
// written unquoted.
func (d yamlDecoder) stringMap(node *yaml.Node) (map[string]string, error) {
	if node.Kind != yaml.MappingNode {
		return nil, invalid(d.location(node), "expected a mapping of strings")
	}
	out := make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			return nil, invalid(d.location(value), fmt.Sprintf("value of %q must be a scalar", key.Value))
		}
		out[key.Value] = value.Value
	}
	return out, nil
}

func (d yamlDecoder) location(node *yaml.Node) string {
	return fmt.Sprintf("%s:%d:%d", d.path, node.Line, node.Column)
}
