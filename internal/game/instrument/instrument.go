package instrument

import (
	"encoding/json"
	"fmt"
)

// Instrument é imutável depois de construído pelo catálogo.
type Instrument struct {
	id       string
	label    string
	category Category
	visual   Visual
}

func (i *Instrument) ID() string         { return i.id }
func (i *Instrument) Label() string      { return i.label }
func (i *Instrument) Category() Category { return i.category }
func (i *Instrument) Visual() Visual     { return i.visual }

func (i *Instrument) String() string {
	return fmt.Sprintf("%s [%s]", i.label, i.category)
}

func (i *Instrument) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string   `json:"id"`
		Label    string   `json:"label"`
		Category Category `json:"category"`
		Visual   Visual   `json:"visual"`
	}{i.id, i.label, i.category, i.visual})
}

// Tipo para funções de validação
type instrumentValidator func(*Instrument) error

func validateID(i *Instrument) error {
	if i.id == "" {
		return fmt.Errorf("invalid instrument label %q: empty slug", i.label)
	}
	return nil
}

func validateCategory(i *Instrument) error {
	if !i.category.Valid() {
		return fmt.Errorf("invalid category for %q: %s", i.label, i.category)
	}
	return nil
}

// New constrói um instrumento. O id é o slug do rótulo.
func New(label string, category Category, imageBase string) (*Instrument, error) {
	inst := &Instrument{
		id:       Slugify(label),
		label:    label,
		category: category,
		visual:   newVisual(category, imageBase),
	}

	validators := []instrumentValidator{
		validateID,
		validateCategory,
	}
	for _, v := range validators {
		if err := v(inst); err != nil {
			return nil, err
		}
	}
	return inst, nil
}
