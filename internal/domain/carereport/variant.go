package carereport

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnalysisTemplate: instrucciones fijas del stage 1.
type AnalysisTemplate struct {
	Preamble string   `yaml:"preamble"`
	Focus    []string `yaml:"focus"`
}

// ReportTemplate: instrucciones fijas del stage 2. El usuario no las configura.
type ReportTemplate struct {
	System   []string `yaml:"system"`
	Preamble string   `yaml:"preamble"`
	Sections []string `yaml:"sections"`
	Closing  string   `yaml:"closing"`

	// WebSearch habilita búsqueda web en el stage 2 si el proveedor la soporta.
	WebSearch bool `yaml:"web_search"`
}

// Variant es un estilo de reporte: copy, foco y secciones.
// Todas las variantes corren por el mismo pipeline.
type Variant struct {
	Key      string           `yaml:"key"`
	Title    string           `yaml:"title"`
	Analysis AnalysisTemplate `yaml:"analysis"`
	Report   ReportTemplate   `yaml:"report"`

	// Concerns enumera las preocupaciones válidas. Vacío = texto libre.
	Concerns []string `yaml:"concerns"`
}

func (v Variant) Validate() error {
	if strings.TrimSpace(v.Key) == "" {
		return &InvalidInputError{Field: "variant.key", Reason: "required"}
	}
	if countNonEmpty(v.Analysis.Focus) == 0 {
		return &InvalidInputError{Field: "variant.analysis.focus", Reason: "at least one focus area required"}
	}
	if countNonEmpty(v.Report.Sections) == 0 {
		return &InvalidInputError{Field: "variant.report.sections", Reason: "at least one section required"}
	}
	return nil
}

// AllowsConcern compara sin distinguir mayúsculas.
func (v Variant) AllowsConcern(concern string) bool {
	if len(v.Concerns) == 0 {
		return true
	}
	concern = strings.TrimSpace(concern)
	for _, c := range v.Concerns {
		if strings.EqualFold(strings.TrimSpace(c), concern) {
			return true
		}
	}
	return false
}

// ValidateProfile aplica las reglas del perfil más las de la variante.
func (v Variant) ValidateProfile(p OwnerProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Concern) == "" && len(v.Concerns) > 0 {
		return &InvalidInputError{Field: "concern", Reason: "required"}
	}
	if !v.AllowsConcern(p.Concern) {
		return &InvalidInputError{
			Field:  "concern",
			Reason: fmt.Sprintf("must be one of: %s", strings.Join(v.Concerns, ", ")),
		}
	}
	return nil
}

// Catalog indexa variantes por key.
type Catalog struct {
	byKey      map[string]Variant
	defaultKey string
}

func NewCatalog(defaultKey string, variants ...Variant) (*Catalog, error) {
	c := &Catalog{byKey: map[string]Variant{}}
	for _, v := range variants {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Key, err)
		}
		v.Key = strings.TrimSpace(v.Key)
		c.byKey[v.Key] = v
	}

	defaultKey = strings.TrimSpace(defaultKey)
	if _, ok := c.byKey[defaultKey]; !ok {
		return nil, fmt.Errorf("default variant %q: %w", defaultKey, ErrVariantNotFound)
	}
	c.defaultKey = defaultKey
	return c, nil
}

// DefaultCatalog trae solo las variantes embebidas.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultVariantKey, BuiltinVariants()...)
	if err != nil {
		panic(err)
	}
	return c
}

type variantFile struct {
	Variants []Variant `yaml:"variants"`
}

// LoadCatalogFile lee un YAML con variantes extra. Las del archivo
// pisan a las embebidas con la misma key.
func LoadCatalogFile(path, defaultKey string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read variants file: %w", err)
	}
	return ParseCatalog(raw, defaultKey)
}

func ParseCatalog(raw []byte, defaultKey string) (*Catalog, error) {
	var f variantFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse variants yaml: %w", err)
	}

	all := append(BuiltinVariants(), f.Variants...)
	return NewCatalog(defaultKey, all...)
}

// Get con key vacía devuelve la variante por defecto.
func (c *Catalog) Get(key string) (Variant, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = c.defaultKey
	}
	v, ok := c.byKey[key]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %s", ErrVariantNotFound, key)
	}
	return v, nil
}

func (c *Catalog) DefaultKey() string { return c.defaultKey }

// List ordenado por key para salida estable.
func (c *Catalog) List() []Variant {
	out := make([]Variant, 0, len(c.byKey))
	for _, v := range c.byKey {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
