/*
 * atomicdata.go, part of goStoich.
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

import "fmt"

// Element is an entry of the periodic table, as far as this library cares.
type Element struct {
	Number int     //atomic number
	Symbol string  //1 or 2 letters, first one uppercase
	Mass   float64 //g/mol
}

//All elements from H (1) to Og (118), in order of atomic number.
//Masses for elements without stable isotopes are those of the
//longest-lived isotope, rounded.
var elements = [...]Element{
	{1, "H", 1.008}, {2, "He", 4.0026}, {3, "Li", 6.94}, {4, "Be", 9.0122},
	{5, "B", 10.81}, {6, "C", 12.01}, {7, "N", 14.01}, {8, "O", 16.00},
	{9, "F", 18.998}, {10, "Ne", 20.180}, {11, "Na", 22.99}, {12, "Mg", 24.305},
	{13, "Al", 26.982}, {14, "Si", 28.085}, {15, "P", 30.974}, {16, "S", 32.06},
	{17, "Cl", 35.45}, {18, "Ar", 39.948}, {19, "K", 39.098}, {20, "Ca", 40.078},
	{21, "Sc", 44.956}, {22, "Ti", 47.867}, {23, "V", 50.942}, {24, "Cr", 51.996},
	{25, "Mn", 54.938}, {26, "Fe", 55.845}, {27, "Co", 58.933}, {28, "Ni", 58.693},
	{29, "Cu", 63.546}, {30, "Zn", 65.38}, {31, "Ga", 69.723}, {32, "Ge", 72.630},
	{33, "As", 74.922}, {34, "Se", 78.971}, {35, "Br", 79.904}, {36, "Kr", 83.798},
	{37, "Rb", 85.468}, {38, "Sr", 87.62}, {39, "Y", 88.906}, {40, "Zr", 91.224},
	{41, "Nb", 92.906}, {42, "Mo", 95.95}, {43, "Tc", 98.0}, {44, "Ru", 101.07},
	{45, "Rh", 102.91}, {46, "Pd", 106.42}, {47, "Ag", 107.87}, {48, "Cd", 112.41},
	{49, "In", 114.82}, {50, "Sn", 118.71}, {51, "Sb", 121.76}, {52, "Te", 127.60},
	{53, "I", 126.90}, {54, "Xe", 131.29}, {55, "Cs", 132.91}, {56, "Ba", 137.33},
	{57, "La", 138.91}, {58, "Ce", 140.12}, {59, "Pr", 140.91}, {60, "Nd", 144.24},
	{61, "Pm", 145.0}, {62, "Sm", 150.36}, {63, "Eu", 151.96}, {64, "Gd", 157.25},
	{65, "Tb", 158.93}, {66, "Dy", 162.50}, {67, "Ho", 164.93}, {68, "Er", 167.26},
	{69, "Tm", 168.93}, {70, "Yb", 173.05}, {71, "Lu", 174.97}, {72, "Hf", 178.49},
	{73, "Ta", 180.95}, {74, "W", 183.84}, {75, "Re", 186.21}, {76, "Os", 190.23},
	{77, "Ir", 192.22}, {78, "Pt", 195.08}, {79, "Au", 196.97}, {80, "Hg", 200.59},
	{81, "Tl", 204.38}, {82, "Pb", 207.2}, {83, "Bi", 208.98}, {84, "Po", 209.0},
	{85, "At", 210.0}, {86, "Rn", 222.0}, {87, "Fr", 223.0}, {88, "Ra", 226.0},
	{89, "Ac", 227.0}, {90, "Th", 232.04}, {91, "Pa", 231.04}, {92, "U", 238.03},
	{93, "Np", 237.0}, {94, "Pu", 244.0}, {95, "Am", 243.0}, {96, "Cm", 247.0},
	{97, "Bk", 247.0}, {98, "Cf", 251.0}, {99, "Es", 252.0}, {100, "Fm", 257.0},
	{101, "Md", 258.0}, {102, "No", 259.0}, {103, "Lr", 262.0}, {104, "Rf", 267.0},
	{105, "Db", 270.0}, {106, "Sg", 271.0}, {107, "Bh", 274.0}, {108, "Hs", 277.0},
	{109, "Mt", 278.0}, {110, "Ds", 281.0}, {111, "Rg", 282.0}, {112, "Cn", 285.0},
	{113, "Nh", 286.0}, {114, "Fl", 289.0}, {115, "Mc", 290.0}, {116, "Lv", 293.0},
	{117, "Ts", 294.0}, {118, "Og", 294.0},
}

//A map for assigning mass to elements. Built once from elements and never written again.
var symbolMass = buildSymbolMass()

func buildSymbolMass() map[string]float64 {
	m := make(map[string]float64, len(elements))
	for _, e := range elements {
		m[e.Symbol] = e.Mass
	}
	return m
}

// Mass returns the atomic mass, in g/mol, of the element with the given symbol.
// The symbol is case-sensitive ("Co" is cobalt, "CO" is not a symbol).
func Mass(symbol string) (float64, error) {
	m, ok := symbolMass[symbol]
	if !ok {
		return 0, Error{message: UnknownElement, symbol: symbol, deco: []string{"Mass"}}
	}
	return m, nil
}

// Known reports whether symbol is in the element table.
func Known(symbol string) bool {
	_, ok := symbolMass[symbol]
	return ok
}

// Elements returns a copy of the element table, ordered by atomic number.
func Elements() []Element {
	ret := make([]Element, len(elements))
	copy(ret, elements[:])
	return ret
}

// ElementByNumber returns the element with atomic number z.
func ElementByNumber(z int) (Element, error) {
	if z < 1 || z > len(elements) {
		return Element{}, fmt.Errorf("stoich: atomic number %d out of range 1-%d", z, len(elements))
	}
	return elements[z-1], nil
}

//lenientMass is the mass used by the empirical formula procedure, where
//an unknown symbol weighs 1 instead of being an error.
func lenientMass(symbol string) float64 {
	if m, ok := symbolMass[symbol]; ok {
		return m
	}
	return 1
}
