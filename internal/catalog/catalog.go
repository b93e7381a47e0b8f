// Package catalog holds the static menu offered by the order form.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

type ServiceType string

const (
	PerPerson  ServiceType = "per_person"
	QuoteBased ServiceType = "quote_based"
)

type Package struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle"`
	Price       float64  `json:"price" yaml:"price"`
	Description string   `json:"description,omitempty" yaml:"description"`
	BestFor     string   `json:"bestFor,omitempty" yaml:"bestFor"`
	Entrees     int      `json:"entrees,omitempty" yaml:"entrees"`
	Sides       int      `json:"sides,omitempty" yaml:"sides"`
	Features    []string `json:"features,omitempty" yaml:"features"`
}

type Entree struct {
	Name     string  `json:"name" yaml:"name"`
	Category string  `json:"category,omitempty" yaml:"category"`
	Price    float64 `json:"price" yaml:"price"`
}

type Side struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

type Service struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Price       float64     `json:"price" yaml:"price"`
	Description string      `json:"description,omitempty" yaml:"description"`
	Type        ServiceType `json:"type,omitempty" yaml:"type"`
}

type Catalog struct {
	Packages           []Package `json:"packages" yaml:"packages"`
	Entrees            []Entree  `json:"entrees" yaml:"entrees"`
	Sides              []Side    `json:"sides" yaml:"sides"`
	AdditionalServices []Service `json:"additionalServices" yaml:"additionalServices"`
}

//go:embed catalog.yaml
var defaultDocument []byte

// Default parses the embedded menu.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

func Parse(doc []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode document: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Packages))
	for _, p := range c.Packages {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("catalog: package %q is missing id or name", p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("catalog: duplicate package id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Price < 0 {
			return fmt.Errorf("catalog: package %q has negative price", p.ID)
		}
	}
	for _, e := range c.Entrees {
		if e.Price < 0 {
			return fmt.Errorf("catalog: entree %q has negative price", e.Name)
		}
	}
	for _, s := range c.Sides {
		if s.Price < 0 {
			return fmt.Errorf("catalog: side %q has negative price", s.Name)
		}
	}
	for _, s := range c.AdditionalServices {
		if s.Price < 0 {
			return fmt.Errorf("catalog: service %q has negative price", s.ID)
		}
		if s.Type != PerPerson && s.Type != QuoteBased {
			return fmt.Errorf("catalog: service %q has unknown type %q", s.ID, s.Type)
		}
	}
	return nil
}

func (c *Catalog) Package(id string) (Package, bool) {
	for _, p := range c.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

func (c *Catalog) Service(id string) (Service, bool) {
	for _, s := range c.AdditionalServices {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
