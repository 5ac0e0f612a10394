/*
 * empirical.go, part of goStoich.
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

package stoich

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//maxFormulaCount bounds the counts of an empirical or molecular formula, so
//they are exact ints on every platform.
const maxFormulaCount = math.MaxInt32

// ElementMass is the experimental mass, in grams, of one element in a sample.
type ElementMass struct {
	Symbol string
	Mass   float64
}

// EmpiricalResult contains the empirical formula obtained from experimental
// masses and, if a molecular mass was given, the molecular formula.
type EmpiricalResult struct {
	Ratios       *Composition //smallest whole-number ratios, in input order
	Formula      string       //empirical formula
	FormulaMass  float64      //mass of one empirical formula unit, g/mol
	HasMolecular bool         //false if no valid molecular mass was given
	Factor       int          //molecular formula = empirical formula times Factor
	Molecular    string       //molecular formula
}

// Empirical obtains the empirical formula of a compound from the mass of each of
// its elements in a sample. Entries with a blank symbol or a non-positive mass are
// ignored, and if an element appears twice, the last mass given counts.
// Symbols are not checked against the element table: an unknown one
// gets a mass of 1. Ratios are rounded half to even.
// If molecularMass is positive, the molecular formula is also obtained, using the
// integer factor (at least 1) closest to molecularMass over the empirical formula mass.
// A molecular mass that would give counts beyond math.MaxInt32 is treated as
// not given. Empirical returns an error when no usable entry is given, and
// an InvalidCount error when a ratio is beyond math.MaxInt32.
func Empirical(masses []ElementMass, molecularMass float64) (*EmpiricalResult, error) {
	symbols := make([]string, 0, len(masses))
	moles := make(map[string]float64, len(masses))
	for _, v := range masses {
		s := strings.TrimSpace(v.Symbol)
		if s == "" || !(v.Mass > 0) || math.IsInf(v.Mass, 1) {
			continue
		}
		if _, ok := moles[s]; !ok {
			symbols = append(symbols, s)
		}
		moles[s] = v.Mass / lenientMass(s)
	}
	if len(symbols) == 0 {
		return nil, Error{message: NoValidInputs, deco: []string{"Empirical"}}
	}
	mols := make([]float64, len(symbols))
	for i, s := range symbols {
		mols[i] = moles[s]
	}
	min := floats.Min(mols)
	ret := &EmpiricalResult{Ratios: NewComposition()}
	for i, s := range symbols {
		r := math.RoundToEven(mols[i] / min)
		if !(r <= maxFormulaCount) {
			return nil, Error{message: InvalidCount, symbol: s, deco: []string{"Empirical"}}
		}
		ret.Ratios.Add(s, int(r))
	}
	ret.Formula = ret.Ratios.String()
	ret.FormulaMass = CompositionMass(ret.Ratios)
	if factor, ok := molecularFactor(ret.Ratios, ret.FormulaMass, molecularMass); ok {
		ret.HasMolecular = true
		ret.Factor = factor
		ret.Molecular = scaledFormula(ret.Ratios, factor)
	}
	return ret, nil
}

//molecularFactor returns the integer, at least 1, closest to molecularMass/formulaMass,
//and false if molecularMass is not a valid positive number or if any count of
//comp times the factor would be larger than maxFormulaCount.
func molecularFactor(comp *Composition, formulaMass, molecularMass float64) (int, bool) {
	if !(molecularMass > 0) || math.IsInf(molecularMass, 1) {
		return 0, false
	}
	f := math.RoundToEven(molecularMass / formulaMass)
	if f < 1 {
		f = 1
	}
	if !(f <= maxFormulaCount) {
		return 0, false
	}
	factor := int(f)
	for _, s := range comp.Symbols() {
		if comp.Count(s) > maxFormulaCount/factor {
			return 0, false
		}
	}
	return factor, true
}

//scaledFormula renders comp with every count multiplied by factor.
func scaledFormula(comp *Composition, factor int) string {
	var b strings.Builder
	for _, s := range comp.Symbols() {
		b.WriteString(formulaPart(s, comp.Count(s)*factor))
	}
	return b.String()
}
