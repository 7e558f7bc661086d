package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveSelections writes the current value of each dropdown, keyed by ID, into
// the value attribute of the matching declaration in the config file.
// Dropdowns missing from the file are skipped. Comments and formatting in the
// rest of the file are preserved by editing the yaml.Node tree.
func SaveSelections(configPath string, values map[string]string) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path is the loaded config file
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("parsing config: %s is empty", configPath)
	}

	dropdowns := mappingValue(doc.Content[0], "dropdowns")
	if dropdowns == nil || dropdowns.Kind != yaml.SequenceNode {
		return fmt.Errorf("config %s has no dropdowns list", configPath)
	}

	for _, node := range dropdowns.Content {
		if node.Kind != yaml.MappingNode {
			continue
		}
		idNode := mappingValue(node, "id")
		if idNode == nil {
			continue
		}
		value, ok := values[idNode.Value]
		if !ok {
			continue
		}
		setMappingScalar(node, "value", value)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// mappingValue returns the value node stored under key, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// setMappingScalar replaces or appends a string scalar under key.
// Values are always written as strings so that "4" stays "4".
func setMappingScalar(m *yaml.Node, key, value string) {
	scalar := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			// Keep any comment attached to the old value
			scalar.LineComment = m.Content[i+1].LineComment
			m.Content[i+1] = scalar
			return
		}
	}

	// Insert right after id so the attribute sits at the top of the block
	at := len(m.Content)
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == "id" {
			at = i + 2
			break
		}
	}
	kv := []*yaml.Node{{Kind: yaml.ScalarNode, Value: key}, scalar}
	m.Content = append(m.Content[:at], append(kv, m.Content[at:]...)...)
}

// writeAtomic writes to a temp file in the target directory, then renames it.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".xselect.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
