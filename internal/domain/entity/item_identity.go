package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Donaciones-api/internal/domain"
)

// Category clasifica los artículos donados (enumeración cerrada).
type Category string

// Categorías válidas.
const (
	CategoryFood       Category = "FOOD"
	CategoryToiletries Category = "TOILETRIES"
	CategoryClothing   Category = "CLOTHING"
)

// Categories devuelve todas las categorías en orden estable.
func Categories() []Category {
	return []Category{CategoryFood, CategoryToiletries, CategoryClothing}
}

var upper = cases.Upper(language.Und)

// ParseCategory busca la categoría que corresponde a s.
// La búsqueda ignora mayúsculas/minúsculas y espacios en los extremos:
// "food", " Food " y "FOOD" resuelven a CategoryFood. Si no hay coincidencia devuelve ("", false).
func ParseCategory(s string) (Category, bool) {
	key := Category(upper.String(strings.TrimSpace(s)))
	for _, c := range Categories() {
		if c == key {
			return c, true
		}
	}
	return "", false
}

func (c Category) String() string { return string(c) }

// Valid indica si c pertenece a la enumeración.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ItemIdentity es la clave natural de un artículo dentro de un centro: (categoría, nombre).
// Es comparable con == y puede usarse directamente como clave de map.
type ItemIdentity struct {
	category Category
	name     string
}

// NewItemIdentity valida y construye la identidad a partir de la categoría en texto y el nombre.
func NewItemIdentity(category, name string) (ItemIdentity, error) {
	var id ItemIdentity
	if err := id.SetCategory(category); err != nil {
		return ItemIdentity{}, err
	}
	if err := id.SetName(name); err != nil {
		return ItemIdentity{}, err
	}
	return id, nil
}

// MustItemIdentity es como NewItemIdentity pero entra en pánico si la entrada es inválida.
// Solo para literales conocidos (tests, seeds).
func MustItemIdentity(category, name string) ItemIdentity {
	id, err := NewItemIdentity(category, name)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ItemIdentity) Category() Category { return id.category }
func (id ItemIdentity) Name() string       { return id.name }

// IsZero indica que la identidad no fue construida.
func (id ItemIdentity) IsZero() bool { return id.category == "" && id.name == "" }

// Equal compara por (categoría, nombre).
func (id ItemIdentity) Equal(other ItemIdentity) bool { return id == other }

// SetName cambia el nombre; rechaza nombres en blanco sin modificar la identidad.
func (id *ItemIdentity) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalidf("el nombre del artículo es requerido")
	}
	id.name = name
	return nil
}

// SetCategory cambia la categoría; rechaza categorías desconocidas sin modificar la identidad.
func (id *ItemIdentity) SetCategory(category string) error {
	c, ok := ParseCategory(category)
	if !ok {
		return domain.Invalidf("categoría desconocida %q", category)
	}
	id.category = c
	return nil
}

func (id ItemIdentity) String() string {
	return string(id.category) + "/" + id.name
}
