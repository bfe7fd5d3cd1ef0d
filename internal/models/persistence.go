package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSaveDir is where exported worlds go when no directory is configured.
const DefaultSaveDir = ".saves"

const exportExt = ".json"

// ExportJSON renders w as indented JSON, the downloadable form of a World.
func ExportJSON(w World) ([]byte, error) {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal world: %w", err)
	}
	return data, nil
}

// ParseJSON decodes a World previously produced by ExportJSON.
func ParseJSON(data []byte) (World, error) {
	var w World
	if err := json.Unmarshal(data, &w); err != nil {
		return World{}, fmt.Errorf("unmarshal world: %w", err)
	}
	return w, nil
}

// ExportYAML renders w as YAML.
func ExportYAML(w World) ([]byte, error) {
	data, err := yaml.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal world yaml: %w", err)
	}
	return data, nil
}

// FileName returns the export file name for w: the world name lower-cased
// with spaces replaced by underscores.
func FileName(w World) string {
	name := strings.ToLower(strings.TrimSpace(w.Name))
	if name == "" {
		name = "world"
	}
	name = strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(name)
	return name + exportExt
}

// SaveWorld writes w as JSON into dir and returns the path written.
func SaveWorld(dir string, w World) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := ExportJSON(w)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(w))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// LoadWorld reads an exported world from dir. name may be given with or
// without the .json extension.
func LoadWorld(dir, name string) (World, error) {
	if !strings.HasSuffix(name, exportExt) {
		name += exportExt
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return World{}, err
	}
	return ParseJSON(data)
}

// ListWorlds returns the names (without extension) of exported worlds in dir.
func ListWorlds(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var worlds []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != exportExt {
			continue
		}
		worlds = append(worlds, strings.TrimSuffix(entry.Name(), exportExt))
	}
	sort.Strings(worlds)
	return worlds, nil
}
