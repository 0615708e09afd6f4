// Package config is the keyed configuration provider the postings core
// treats as an external collaborator: it resolves the core's handful of
// recognized keys (forward-index stem, libsvm location, analyzer and
// ranker selection) out of a YAML document.
package config

import (
	"fts/internal/postingserr"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider exposes optional typed accessors over a parsed YAML
// document. Keys are dotted paths with an optional trailing [N] index,
// e.g. "analyzers[0].method" or "ranker.params.k1".
type Provider struct {
	data map[string]interface{}
}

// Load reads and parses the YAML document at path.
func Load(path string) (*Provider, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, postingserr.WrapIo("config.Load", err)
	}
	return Parse(buf)
}

// Parse parses an in-memory YAML document, for callers that already
// have the bytes (tests, embedded defaults).
func Parse(buf []byte) (*Provider, error) {
	var data map[string]interface{}
	if err := yaml.Unmarshal(buf, &data); err != nil {
		return nil, postingserr.WrapCorrupt("config: invalid yaml", err)
	}
	return &Provider{data: data}, nil
}

func (p *Provider) lookup(key string) (interface{}, bool) {
	var cur interface{} = p.data
	for _, seg := range strings.Split(key, ".") {
		name, idx, hasIdx := parseSegment(seg)
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[name]
		if !ok {
			return nil, false
		}
		if hasIdx {
			arr, ok := v.([]interface{})
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			v = arr[idx]
		}
		cur = v
	}
	return cur, true
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func parseSegment(seg string) (name string, idx int, hasIdx bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 || !strings.HasSuffix(seg, "]") {
		return seg, 0, false
	}
	n, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil {
		return seg, 0, false
	}
	return seg[:open], n, true
}

// GetString returns key's value as a string, or a ConfigError if the
// key is missing or not a string.
func (p *Provider) GetString(key string) (string, error) {
	v, ok := p.lookup(key)
	if !ok {
		return "", postingserr.NewConfig(key, "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", postingserr.NewConfig(key, "not a string")
	}
	return s, nil
}

// GetInt returns key's value as an int, or a ConfigError if the key is
// missing or not numeric.
func (p *Provider) GetInt(key string) (int, error) {
	v, ok := p.lookup(key)
	if !ok {
		return 0, postingserr.NewConfig(key, "missing")
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, postingserr.NewConfig(key, "not numeric")
	}
}

// GetFloat64 returns key's value as a float64, or a ConfigError if the
// key is missing or not numeric.
func (p *Provider) GetFloat64(key string) (float64, error) {
	v, ok := p.lookup(key)
	if !ok {
		return 0, postingserr.NewConfig(key, "missing")
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, postingserr.NewConfig(key, "not numeric")
	}
}

// StringOr returns key's string value, or def if the key is absent.
func (p *Provider) StringOr(key, def string) string {
	v, err := p.GetString(key)
	if err != nil {
		return def
	}
	return v
}

// Float64Or returns key's float64 value, or def if the key is absent.
func (p *Provider) Float64Or(key string, def float64) float64 {
	v, err := p.GetFloat64(key)
	if err != nil {
		return def
	}
	return v
}
