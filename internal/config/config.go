// Package config loads CLI defaults from YAML files through kong's
// configuration resolver.
//
// Keys may be flat or scoped by command:
//
//	log_level: debug
//	build:
//	  sorted: true
//	  text_key: message
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	rterrors "github.com/FocuswithJustin/richtext/core/errors"
)

// FileName is the per-user configuration file name.
const FileName = "config.yaml"

// LocalFileName is the per-directory configuration file name.
const LocalFileName = ".richtext.yaml"

// Paths returns the configuration files the CLI consults: the user config
// under $XDG_CONFIG_HOME (or ~/.config), then ./.richtext.yaml. Missing
// files are skipped by kong.
func Paths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "richtext", FileName))
	}
	return append(paths, LocalFileName)
}

// YAML is a kong.ConfigurationLoader for YAML files. An empty file
// resolves nothing.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		perr := rterrors.NewParse("config", "", err.Error())
		perr.Err = err
		return nil, perr
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if scoped, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(scoped, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}
	return f, nil
}

// lookup finds a flag by its name with dashes as underscores, then by
// dotted path.
func lookup(values map[string]any, name string) (any, bool) {
	key := strings.ReplaceAll(name, "-", "_")
	if v, ok := values[key]; ok {
		return v, true
	}
	if v, ok := values[name]; ok {
		return v, true
	}

	var raw any = values
	for _, part := range strings.Split(key, ".") {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, false
		}
		if raw, ok = m[part]; !ok {
			return nil, false
		}
	}
	return raw, true
}
