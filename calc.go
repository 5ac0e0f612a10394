/*
 * calc.go, part of goStoich.
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

import "gonum.org/v1/gonum/floats"

// Moles returns the amount of substance, in mol, in mass grams of
// a compound with the given molar mass (g/mol). molarMass must be positive.
func Moles(mass, molarMass float64) (float64, error) {
	if molarMass <= 0 {
		return 0, Error{message: InvalidMolarMass, deco: []string{"Moles"}}
	}
	return mass / molarMass, nil
}

// Particles returns the number of particles (atoms, molecules, whatever
// the moles were counting) in the given amount of substance.
func Particles(moles float64) float64 {
	return moles * Avogadro
}

// ParticlesInCompound returns the total number of atoms in the given moles of
// the compound with the given formula, i.e. the atoms per formula unit times
// the number of formula units.
func ParticlesInCompound(formula string, moles float64) (float64, error) {
	comp, err := ParseFormula(formula)
	if err != nil {
		return 0, errDecorate(err, "ParticlesInCompound")
	}
	return float64(comp.Atoms()) * moles * Avogadro, nil
}

// MolarMass returns the molar mass, in g/mol, of the compound with the given formula.
func MolarMass(formula string) (float64, error) {
	comp, err := ParseFormula(formula)
	if err != nil {
		return 0, errDecorate(err, "MolarMass")
	}
	return CompositionMass(comp), nil
}

// CompositionMass returns the sum of atomic mass times count over comp.
// Symbols not in the element table weigh 1, which can only happen for
// compositions built by hand.
func CompositionMass(comp *Composition) float64 {
	return floats.Sum(elementMasses(comp))
}

//elementMasses returns, for each element of comp in order, its atomic
//mass times its count.
func elementMasses(comp *Composition) []float64 {
	symbols := comp.Symbols()
	masses := make([]float64, len(symbols))
	for i, s := range symbols {
		masses[i] = lenientMass(s) * float64(comp.Count(s))
	}
	return masses
}

// Percent is the mass percentage of one element in a compound.
type Percent struct {
	Symbol  string
	Percent float64
}

// PercentComposition returns the mass percentage of each element in the compound
// with the given formula, in the order in which the elements appear in the formula.
// The percentages add up to 100. An empty formula gives an empty slice.
func PercentComposition(formula string) ([]Percent, error) {
	comp, err := ParseFormula(formula)
	if err != nil {
		return nil, errDecorate(err, "PercentComposition")
	}
	masses := elementMasses(comp)
	total := floats.Sum(masses)
	ret := make([]Percent, 0, len(masses))
	for i, s := range comp.Symbols() {
		ret = append(ret, Percent{Symbol: s, Percent: masses[i] / total * 100})
	}
	return ret, nil
}
