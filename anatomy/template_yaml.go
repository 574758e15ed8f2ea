package anatomy

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateDocument is the designer-authored YAML form of an anatomy template.
// Exotic creatures ship as documents instead of built-in tables.
type TemplateDocument struct {
	Kind  string         `yaml:"kind" json:"kind"`
	Parts []PartDocument `yaml:"parts" json:"parts"`
}

// PartDocument declares one part inside a template document.
type PartDocument struct {
	Type        string   `yaml:"type" json:"type"`
	Name        string   `yaml:"name" json:"name,omitempty"`
	HealthRatio float64  `yaml:"health_ratio" json:"health_ratio"`
	Vital       bool     `yaml:"vital" json:"vital,omitempty"`
	Limb        bool     `yaml:"limb" json:"limb,omitempty"`
	Protection  float64  `yaml:"protection" json:"protection,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

// TemplateFile pairs a parsed template with its on-disk source.
type TemplateFile struct {
	Template Template
	Path     string
}

// Validate checks structural requirements before a document becomes a
// template: a kind, at least one part, unique part types, positive health
// ratios.
func (d TemplateDocument) Validate() error {
	if strings.TrimSpace(d.Kind) == "" {
		return fmt.Errorf("anatomy: template kind is required")
	}
	if len(d.Parts) == 0 {
		return fmt.Errorf("anatomy: template %q declares no parts", d.Kind)
	}
	seen := make(map[string]struct{}, len(d.Parts))
	for i, part := range d.Parts {
		if strings.TrimSpace(part.Type) == "" {
			return fmt.Errorf("anatomy: template %q part %d missing type", d.Kind, i)
		}
		if _, dup := seen[part.Type]; dup {
			return fmt.Errorf("anatomy: template %q repeats part %q", d.Kind, part.Type)
		}
		seen[part.Type] = struct{}{}
		if part.HealthRatio <= 0 {
			return fmt.Errorf("anatomy: template %q part %q needs a positive health ratio", d.Kind, part.Type)
		}
	}
	return nil
}

// Normalized converts the document into a Template with trimmed names and
// deduplicated, sorted tags.
func (d TemplateDocument) Normalized() Template {
	tmpl := Template{Kind: Kind(strings.TrimSpace(d.Kind))}
	for _, part := range d.Parts {
		name := strings.TrimSpace(part.Name)
		if name == "" {
			name = strings.ReplaceAll(part.Type, "_", " ")
		}
		tmpl.Parts = append(tmpl.Parts, PartSpec{
			Type:        PartType(strings.TrimSpace(part.Type)),
			Name:        name,
			HealthRatio: part.HealthRatio,
			Vital:       part.Vital,
			Limb:        part.Limb,
			Protection:  part.Protection,
			Tags:        NewTagSet(part.Tags...).Sorted(),
		})
	}
	return tmpl
}

// ParseTemplateYAML decodes and validates a single template payload.
func ParseTemplateYAML(data []byte) (Template, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Template{}, fmt.Errorf("anatomy: template payload is empty")
	}
	var doc TemplateDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Template{}, fmt.Errorf("anatomy: decode template: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Template{}, err
	}
	return doc.Normalized(), nil
}

// LoadTemplateFile reads a YAML file from disk and returns the parsed
// template.
func LoadTemplateFile(path string) (TemplateFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return TemplateFile{}, fmt.Errorf("anatomy: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return TemplateFile{}, fmt.Errorf("anatomy: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return TemplateFile{}, fmt.Errorf("anatomy: read %s: %w", path, err)
	}
	tmpl, err := ParseTemplateYAML(data)
	if err != nil {
		return TemplateFile{}, fmt.Errorf("anatomy: %s: %w", path, err)
	}
	return TemplateFile{Template: tmpl, Path: filepath.Clean(path)}, nil
}

// LoadTemplateDir scans a directory for *.yaml templates and returns the
// parsed definitions sorted by path. Missing directories mean "no extra
// templates" to simplify startup.
func LoadTemplateDir(dir string) ([]TemplateFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("anatomy: read %s: %w", trimmed, err)
	}
	var templates []TemplateFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isYAMLFile(name) {
			continue
		}
		tmpl, err := LoadTemplateFile(filepath.Join(trimmed, name))
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	if len(templates) == 0 {
		return nil, nil
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Path < templates[j].Path })
	return templates, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
