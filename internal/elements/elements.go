// Package elements provides the periodic table used to select the beam
// element. A small built-in table covers the default configuration; a full
// table can be loaded from JSON.
package elements

import (
	"encoding/json"
	"fmt"
	"os"
)

// Element describes one entry of the periodic table.
type Element struct {
	AtomicNumber int     `json:"atomic_number"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	AtomicMass   float64 `json:"atomic_mass"`
}

// Table is an ordered list of elements.
type Table []Element

// Default returns the built-in table (first 10 elements). It is enough for
// the stock configurations and keeps the simulator runnable without any
// data files.
func Default() Table {
	return Table{
		{AtomicNumber: 1, Symbol: "H", Name: "Hydrogen", AtomicMass: 1.008},
		{AtomicNumber: 2, Symbol: "He", Name: "Helium", AtomicMass: 4.002602},
		{AtomicNumber: 3, Symbol: "Li", Name: "Lithium", AtomicMass: 6.94},
		{AtomicNumber: 4, Symbol: "Be", Name: "Beryllium", AtomicMass: 9.0121831},
		{AtomicNumber: 5, Symbol: "B", Name: "Boron", AtomicMass: 10.81},
		{AtomicNumber: 6, Symbol: "C", Name: "Carbon", AtomicMass: 12.011},
		{AtomicNumber: 7, Symbol: "N", Name: "Nitrogen", AtomicMass: 14.007},
		{AtomicNumber: 8, Symbol: "O", Name: "Oxygen", AtomicMass: 15.999},
		{AtomicNumber: 9, Symbol: "F", Name: "Fluorine", AtomicMass: 18.998403163},
		{AtomicNumber: 10, Symbol: "Ne", Name: "Neon", AtomicMass: 20.1797},
	}
}

type tableFile struct {
	Elements []Element `json:"elements"`
}

// Load reads a periodic table from a JSON file of the form
// {"elements": [...]}.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tf tableFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("elements: parse %s: %w", path, err)
	}
	if len(tf.Elements) == 0 {
		return nil, fmt.Errorf("elements: %s contains no elements", path)
	}
	return Table(tf.Elements), nil
}

// ByAtomicNumber returns the element with atomic number z.
func (t Table) ByAtomicNumber(z int) (Element, error) {
	for _, e := range t {
		if e.AtomicNumber == z {
			return e, nil
		}
	}
	return Element{}, fmt.Errorf("elements: no element with atomic_number=%d", z)
}

// BySymbol returns the element with the given symbol.
func (t Table) BySymbol(symbol string) (Element, error) {
	for _, e := range t {
		if e.Symbol == symbol {
			return e, nil
		}
	}
	return Element{}, fmt.Errorf("elements: no element with symbol=%q", symbol)
}
