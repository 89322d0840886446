package instrument

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// ErrUnknownInstrument é devolvido quando o id não existe no catálogo.
var ErrUnknownInstrument = errors.New("instrument not found")

// Catalog é a tabela somente-leitura de instrumentos, carregada uma vez na inicialização
// e compartilhada por todas as partidas.
type Catalog struct {
	items []*Instrument
	byID  map[string]*Instrument
}

type catalogFile struct {
	Instruments [][]string        `yaml:"instruments"`
	Files       map[string]string `yaml:"files"`
}

// Load carrega o catálogo embutido no binário.
func Load() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// MustLoad é para o main: um catálogo inválido é erro de build, não de runtime.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(fmt.Sprintf("instrument: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse lê um catálogo YAML. Cada entrada é [rótulo, categoria em texto livre];
// o nome do arquivo de imagem vem de "files" ou, na falta, do próprio rótulo.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("instrument: failed to parse catalog: %w", err)
	}
	if len(f.Instruments) == 0 {
		return nil, fmt.Errorf("instrument: catalog is empty")
	}

	c := &Catalog{byID: make(map[string]*Instrument, len(f.Instruments))}
	for i, row := range f.Instruments {
		if len(row) != 2 {
			return nil, fmt.Errorf("instrument: catalog row %d must be [label, category], got %d fields", i, len(row))
		}
		label, categoryName := row[0], row[1]
		id := Slugify(label)
		base, ok := f.Files[id]
		if !ok {
			base = label
		}
		inst, err := New(label, NormalizeCategory(categoryName), base)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[inst.ID()]; dup {
			return nil, fmt.Errorf("instrument: duplicate id %q (label %q)", inst.ID(), label)
		}
		c.items = append(c.items, inst)
		c.byID[inst.ID()] = inst
	}
	return c, nil
}

// NewCatalog monta um catálogo a partir de instrumentos já construídos (útil em testes).
func NewCatalog(items ...*Instrument) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Instrument, len(items))}
	for _, inst := range items {
		if _, dup := c.byID[inst.ID()]; dup {
			return nil, fmt.Errorf("instrument: duplicate id %q", inst.ID())
		}
		c.items = append(c.items, inst)
		c.byID[inst.ID()] = inst
	}
	return c, nil
}

// Get busca um instrumento pelo id.
func (c *Catalog) Get(id string) (*Instrument, error) {
	if inst, ok := c.byID[id]; ok {
		return inst, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, id)
}

func (c *Catalog) Len() int { return len(c.items) }

// All devolve os instrumentos na ordem do catálogo. O slice é uma cópia.
func (c *Catalog) All() List {
	out := make(List, len(c.items))
	copy(out, c.items)
	return out
}
