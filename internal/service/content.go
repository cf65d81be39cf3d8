package service

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wari-market/wari/internal/catalog"
	"github.com/wari-market/wari/internal/chart"
	"github.com/wari-market/wari/internal/simulator"
)

//go:embed data/content.yaml
var defaultContent []byte

// ErrInvalidContent wraps every validation failure of a content file.
var ErrInvalidContent = errors.New("invalid content")

// ImpactStat is one animated counter on the landing page.
type ImpactStat struct {
	Label  string `yaml:"label"`
	Count  int    `yaml:"count"`
	Suffix string `yaml:"suffix"`
}

// Region is a point on the production map, positioned relative to the map size.
type Region struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Hectares  int     `yaml:"hectares"`
	Producers int     `yaml:"producers"`
}

// Content is the static data every view is built from.
type Content struct {
	Impact    []ImpactStat     `yaml:"impact"`
	Products  catalog.Products `yaml:"products"`
	Regions   []Region         `yaml:"regions"`
	Simulator simulator.Tables `yaml:"simulator"`
	Income    chart.Series     `yaml:"income"`
}

// ContentService loads the page content.
type ContentService struct {
	// Path overrides the embedded content when non-empty.
	Path string
}

// NewContentService creates a content service. An empty path uses the embedded content.
func NewContentService(path string) *ContentService {
	return &ContentService{Path: path}
}

// Load reads and validates the content.
func (cs *ContentService) Load() (*Content, error) {
	data := defaultContent
	if cs.Path != "" {
		b, err := os.ReadFile(cs.Path)
		if err != nil {
			return nil, fmt.Errorf("reading content file: %w", err)
		}
		data = b
	}
	return ParseContent(data)
}

// ParseContent decodes YAML content and fills missing sections with defaults.
func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if len(c.Simulator.YieldPerHa) == 0 || len(c.Simulator.PricePerKg) == 0 {
		c.Simulator = simulator.DefaultTables()
	}
	if len(c.Income.Values) == 0 {
		c.Income = chart.SampleIncome()
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	seen := map[string]bool{}
	for i, p := range c.Products {
		if p.ID == "" {
			return fmt.Errorf("%w: product %d has no id", ErrInvalidContent, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate product id %q", ErrInvalidContent, p.ID)
		}
		seen[p.ID] = true
	}
	for _, r := range c.Regions {
		if r.X < 0 || r.X > 1 || r.Y < 0 || r.Y > 1 {
			return fmt.Errorf("%w: region %q lies outside the map", ErrInvalidContent, r.ID)
		}
	}
	if len(c.Income.Labels) != len(c.Income.Values) {
		return fmt.Errorf("%w: income has %d labels for %d values", ErrInvalidContent, len(c.Income.Labels), len(c.Income.Values))
	}
	return nil
}
