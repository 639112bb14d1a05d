package pages

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var embedded embed.FS

// Severity ranks a map marker.
type Severity string

// Marker severities.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Marker is a status marker on the map page.
type Marker struct {
	ID       int      `yaml:"id"`
	X        int      `yaml:"x"`
	Y        int      `yaml:"y"`
	Message  string   `yaml:"message"`
	Severity Severity `yaml:"severity"`
}

// SeverityStyle describes how a severity is drawn.
type SeverityStyle struct {
	Color  string `yaml:"color"`
	Shape  string `yaml:"shape"`
	Symbol string `yaml:"symbol"`
	Icon   string `yaml:"icon"`
	Legend string `yaml:"legend"`
}

// ChecklistItem is one common accessibility issue.
type ChecklistItem struct {
	ID          string   `yaml:"id"`
	Problem     string   `yaml:"problem"`
	Solution    string   `yaml:"solution"`
	Description string   `yaml:"description"`
	Bad         string   `yaml:"bad"`
	Good        string   `yaml:"good"`
	Example     string   `yaml:"example"`
	Benefits    []string `yaml:"benefits"`
}

// Catalog is the static page data.
type Catalog struct {
	Markers    []Marker
	Severities map[Severity]SeverityStyle
	Checklist  []ChecklistItem
}

type markersFile struct {
	Markers    []Marker                   `yaml:"markers"`
	Severities map[Severity]SeverityStyle `yaml:"severities"`
}

type checklistFile struct {
	Items []ChecklistItem `yaml:"items"`
}

// LoadCatalog parses the embedded content files.
func LoadCatalog() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, err
	}
	return LoadCatalogFS(sub)
}

// LoadCatalogFS parses markers.yaml and checklist.yaml from fsys.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	var markers markersFile
	if err := decode(fsys, "markers.yaml", &markers); err != nil {
		return nil, err
	}
	var checklist checklistFile
	if err := decode(fsys, "checklist.yaml", &checklist); err != nil {
		return nil, err
	}

	c := &Catalog{
		Markers:    markers.Markers,
		Severities: markers.Severities,
		Checklist:  checklist.Items,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoadCatalog is like LoadCatalog but panics on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func decode(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("pages: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("pages: parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) validate() error {
	seen := make(map[int]bool, len(c.Markers))
	for _, m := range c.Markers {
		if seen[m.ID] {
			return fmt.Errorf("pages: duplicate marker id %d", m.ID)
		}
		seen[m.ID] = true
		if _, ok := c.Severities[m.Severity]; !ok {
			return fmt.Errorf("pages: marker %d has unknown severity %q", m.ID, m.Severity)
		}
		if m.X < 0 || m.X > 100 || m.Y < 0 || m.Y > 100 {
			return fmt.Errorf("pages: marker %d is off the map", m.ID)
		}
	}
	ids := make(map[string]bool, len(c.Checklist))
	for _, item := range c.Checklist {
		if item.ID == "" || ids[item.ID] {
			return fmt.Errorf("pages: invalid or duplicate checklist id %q", item.ID)
		}
		ids[item.ID] = true
	}
	return nil
}

// Style returns the drawing style for s.
func (c *Catalog) Style(s Severity) SeverityStyle {
	return c.Severities[s]
}
