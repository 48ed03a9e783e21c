// Package wdconfig is the YAML-backed watchdog.ConfigSource this
// repository wires in, adapted from the teacher's config loading
// conventions but built directly on gopkg.in/yaml.v3 rather than a
// generated schema.
package wdconfig

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is a decoded YAML config file: a map of section name to a map
// of key/value pairs. Values are kept as any so Bool/Int can coerce
// whatever YAML actually produced (bool, int, string "true"/"10", etc.).
type Document map[string]map[string]any

// YAMLSource answers watchdog.ConfigSource lookups against a decoded
// Document.
type YAMLSource struct {
	doc Document
}

// NewYAMLSource wraps an already-decoded Document.
func NewYAMLSource(doc Document) *YAMLSource {
	if doc == nil {
		doc = Document{}
	}
	return &YAMLSource{doc: doc}
}

// LoadYAMLFile reads and parses path. A missing file is not an error: it
// yields an empty source so every lookup falls back to its caller-supplied
// default, matching how the embedding service is expected to run with
// watchdog configuration entirely optional.
func LoadYAMLFile(path string) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewYAMLSource(nil), nil
		}
		return nil, fmt.Errorf("wdconfig: read %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("wdconfig: parse %s: %w", path, err)
	}
	return NewYAMLSource(doc), nil
}

// Bool looks up section/key, coercing common YAML scalar shapes (native
// bool, or a string strconv.ParseBool accepts, such as "true", "False",
// "TRUE" or "1"; mixed case like "tRuE" is not accepted). Anything else,
// including an absent section or key, yields def.
func (s *YAMLSource) Bool(section, key string, def bool) bool {
	v, ok := s.lookup(section, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(t); err == nil {
			return b
		}
	}
	return def
}

// Int looks up section/key, coercing common YAML scalar shapes (native
// int, float64 as decoded by yaml.v3, or a numeric string). Anything
// else, including an absent section or key, yields def.
func (s *YAMLSource) Int(section, key string, def int) int {
	v, ok := s.lookup(section, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return def
}

func (s *YAMLSource) lookup(section, key string) (any, bool) {
	sec, ok := s.doc[section]
	if !ok {
		return nil, false
	}
	v, ok := sec[key]
	return v, ok
}

// StaticSource is an in-memory watchdog.ConfigSource for tests.
type StaticSource struct {
	Bools map[string]bool
	Ints  map[string]int
}

// NewStaticSource returns an empty StaticSource ready for its maps to be
// populated by the caller before use.
func NewStaticSource() *StaticSource {
	return &StaticSource{Bools: map[string]bool{}, Ints: map[string]int{}}
}

func (s *StaticSource) Bool(section, key string, def bool) bool {
	if v, ok := s.Bools[section+"."+key]; ok {
		return v
	}
	return def
}

func (s *StaticSource) Int(section, key string, def int) int {
	if v, ok := s.Ints[section+"."+key]; ok {
		return v
	}
	return def
}
