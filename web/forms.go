/*
 * forms.go, part of goStoich.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package web

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/stoichjson"
)

// operation is one entry of the menu.
type operation struct {
	Key   string
	Title string
	Blurb string
}

var menu = []operation{
	{"moles", "Moles", "moles from a mass and a molar mass."},
	{"avogadro", "Avogadro's number", "number of atoms, molecules or particles of a compound, using Avogadro's number."},
	{"molar-mass", "Molar mass", "molar mass of a compound."},
	{"percent-composition", "Percent composition", "mass percentage of each element in a compound."},
	{"empirical", "Empirical and molecular formula", "empirical and molecular formulas from experimental masses."},
}

func lookupOperation(key string) (operation, bool) {
	for _, op := range menu {
		if op.Key == key {
			return op, true
		}
	}
	return operation{}, false
}

//Limits for the number of rows of the empirical formula form.
const (
	defaultRows = 2
	maxRows     = 20
)

type massRow struct {
	Number int
	Symbol string
	Mass   string
}

// rowCount reads n from the form, clamped to [1, maxRows].
func rowCount(form url.Values) int {
	n, err := strconv.Atoi(strings.TrimSpace(form.Get("n")))
	if err != nil {
		return defaultRows
	}
	if n < 1 {
		return 1
	}
	if n > maxRows {
		return maxRows
	}
	return n
}

// massRows pairs the repeated symbol and mass fields, in order, padding
// with empty rows up to n.
func massRows(form url.Values, n int) []massRow {
	symbols, masses := form["symbol"], form["mass"]
	rows := make([]massRow, n)
	for i := range rows {
		rows[i].Number = i + 1
		if i < len(symbols) {
			rows[i].Symbol = strings.TrimSpace(symbols[i])
		}
		if i < len(masses) {
			rows[i].Mass = strings.TrimSpace(masses[i])
		}
	}
	return rows
}

// quantity parses a non-negative number. An empty field is 0, as an untouched
// numeric input would be.
func quantity(form url.Values, name, label string) (float64, error) {
	v := strings.TrimSpace(form.Get(name))
	if v == "" {
		return 0, nil
	}
	return parseQuantity(v, label)
}

func parseQuantity(v, label string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be a number", label)
	}
	if f < 0 {
		return 0, fmt.Errorf("%s must be zero or larger", label)
	}
	return f, nil
}

// formRequest translates the submitted form of the operation key into a request.
// The error is meant for the user.
func formRequest(key string, form url.Values) (*stoichjson.Request, error) {
	var err error
	req := new(stoichjson.Request)
	switch key {
	case "moles":
		req.Operation = stoichjson.OpMoles
		if req.Mass, err = quantity(form, "mass", "The mass"); err != nil {
			return nil, err
		}
		req.MolarMass, err = quantity(form, "molar_mass", "The molar mass")
	case "avogadro":
		req.Moles, err = quantity(form, "moles", "The amount of moles")
		switch form.Get("kind") {
		case "compound":
			req.Operation = stoichjson.OpCompoundParticles
			req.Formula = strings.TrimSpace(form.Get("formula"))
		case string(stoich.KindAtoms):
			req.Operation = stoichjson.OpParticles
			req.Kind = string(stoich.KindAtoms)
		default:
			req.Operation = stoichjson.OpParticles
			req.Kind = string(stoich.KindMolecules)
		}
	case "molar-mass":
		req.Operation = stoichjson.OpMolarMass
		req.Formula = strings.TrimSpace(form.Get("formula"))
	case "percent-composition":
		req.Operation = stoichjson.OpPercentComposition
		req.Formula = strings.TrimSpace(form.Get("formula"))
	case "empirical":
		req.Operation = stoichjson.OpEmpirical
		for _, row := range massRows(form, rowCount(form)) {
			var m float64
			if row.Mass != "" {
				if m, err = parseQuantity(row.Mass, "The mass of element #"+strconv.Itoa(row.Number)); err != nil {
					return nil, err
				}
			}
			req.Masses = append(req.Masses, stoich.ElementMass{Symbol: row.Symbol, Mass: m})
		}
		req.MolecularMass, err = quantity(form, "molecular_mass", "The molecular mass")
	default:
		return nil, fmt.Errorf("unknown operation %q", key)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// formValues keeps what the user typed, to show it again with the result.
func formValues(form url.Values) map[string]string {
	ret := make(map[string]string, len(form))
	for k, v := range form {
		if len(v) > 0 {
			ret[k] = v[0]
		}
	}
	return ret
}
