/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package casefile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/IBM/sss-recovery/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

// Case is the content of one share document.
type Case struct {
	Path   string
	N      int
	K      int
	Shares []RawShare

	// Skipped lists entries that are not shares (no base or no value), in document order.
	Skipped []string
}

type metadata struct {
	N *count `json:"n" yaml:"n"`
	K *count `json:"k" yaml:"k"`
}

// count accepts both 4 and "4".
type count int

func (c *count) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		return c.parse(str)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = count(n)
	return nil
}

func (c *count) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected an integer", value.Line)
	}
	return c.parse(value.Value)
}

func (c *count) parse(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.Errorf("%q is not an integer", s)
	}
	*c = count(n)
	return nil
}

type entry struct {
	Base  *scalar `json:"base" yaml:"base"`
	Value *scalar `json:"value" yaml:"value"`
}

// scalar accepts both "16" and 16. Anything else is kept verbatim and fails decoding later.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = scalar(str)
		return nil
	}
	*s = scalar(bytes.TrimSpace(data))
	return nil
}

// FormatOf picks the format from the file extension, defaulting to JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the case file at path.
func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	c, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to parse %s", path)
	}

	c.Path = path
	return c, nil
}

// Parse decodes a case document. Shares are returned in document order.
func Parse(data []byte, format Format) (*Case, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	default:
		return parseJSON(data)
	}
}

func parseJSON(data []byte) (*Case, error) {
	keys, values, err := jsonObject(data)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedCase, err.Error())
	}

	c := &Case{}
	var sawMetadata bool

	for i, key := range keys {
		if key == MetadataKey {
			var md metadata
			if err := json.Unmarshal(values[i], &md); err != nil {
				return nil, errors.Wrapf(ErrMalformedCase, "%q: %v", MetadataKey, err)
			}
			if err := c.setMetadata(md); err != nil {
				return nil, err
			}
			sawMetadata = true
			continue
		}

		var e entry
		if err := json.Unmarshal(values[i], &e); err != nil {
			c.Skipped = append(c.Skipped, key)
			continue
		}
		c.addEntry(key, e)
	}

	if !sawMetadata {
		return nil, errors.Wrapf(ErrMalformedCase, "missing %q", MetadataKey)
	}

	return c, nil
}

// jsonObject splits a top level JSON object into its keys and raw values, preserving order.
func jsonObject(data []byte) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.Errorf("expected an object, got %v", tok)
	}

	var keys []string
	var values []json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, errors.Errorf("expected a key, got %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}

		keys = append(keys, key)
		values = append(values, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return keys, values, nil
}

func parseYAML(data []byte) (*Case, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(ErrMalformedCase, err.Error())
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Wrap(ErrMalformedCase, "expected a mapping")
	}
	root := doc.Content[0]

	c := &Case{}
	var sawMetadata bool

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]

		if key == MetadataKey {
			var md metadata
			if err := value.Decode(&md); err != nil {
				return nil, errors.Wrapf(ErrMalformedCase, "%q: %v", MetadataKey, err)
			}
			if err := c.setMetadata(md); err != nil {
				return nil, err
			}
			sawMetadata = true
			continue
		}

		var e entry
		if value.Kind != yaml.MappingNode || value.Decode(&e) != nil {
			c.Skipped = append(c.Skipped, key)
			continue
		}
		c.addEntry(key, e)
	}

	if !sawMetadata {
		return nil, errors.Wrapf(ErrMalformedCase, "missing %q", MetadataKey)
	}

	return c, nil
}

func (c *Case) setMetadata(md metadata) error {
	if md.N == nil || md.K == nil {
		return errors.Wrapf(ErrMalformedCase, "%q must hold both n and k", MetadataKey)
	}
	c.N, c.K = int(*md.N), int(*md.K)
	return nil
}

func (c *Case) addEntry(key string, e entry) {
	if e.Base == nil || e.Value == nil {
		c.Skipped = append(c.Skipped, key)
		return
	}
	c.Shares = append(c.Shares, RawShare{
		Key:   key,
		Base:  string(*e.Base),
		Value: string(*e.Value),
	})
}

// String renders the case back into the JSON layout, mostly for logs.
func (c *Case) String() string {
	var sb strings.Builder
	sb.WriteString(`{"keys":{"n":` + strconv.Itoa(c.N) + `,"k":` + strconv.Itoa(c.K) + `}`)
	for _, s := range c.Shares {
		sb.WriteString(`,` + strconv.Quote(s.Key) + `:{"base":` + strconv.Quote(s.Base) + `,"value":` + strconv.Quote(s.Value) + `}`)
	}
	sb.WriteString(`}`)
	return sb.String()
}
