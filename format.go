/*
 * format.go, part of goStoich.
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
 */

package stoich

import (
	"fmt"
	"strings"
)

//Display formatting. Everything is fixed-point (or fixed exponent) and English.

// ParticleKind names what a generic particle count is counting.
type ParticleKind string

const (
	KindAtoms     ParticleKind = "atoms"
	KindMolecules ParticleKind = "molecules"
)

// Title returns the kind with its first letter uppercase, as used in results.
func (k ParticleKind) Title() string {
	if k == "" {
		return "Particles"
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// MolecularInfo is shown instead of a molecular formula when no valid
// molecular mass was given.
const MolecularInfo = "Enter a valid experimental molecular mass to compute the molecular formula."

func FormatMoles(moles float64) string {
	return fmt.Sprintf("Moles = %.4f %s", moles, UnitMol)
}

func FormatParticles(kind ParticleKind, n float64) string {
	return fmt.Sprintf("%s = %.3e", kind.Title(), n)
}

func FormatCompoundParticles(formula string, moles, n float64) string {
	return fmt.Sprintf("Total particles in %.3f %s of %s: %.3e", moles, UnitMol, formula, n)
}

func FormatMolarMass(formula string, m float64) string {
	return fmt.Sprintf("Molar mass of %s = %.3f %s", formula, m, UnitMolarMass)
}

// FormatPercents writes one "Symbol: xx.xx%" line per element.
func FormatPercents(p []Percent) string {
	var b strings.Builder
	for _, v := range p {
		fmt.Fprintf(&b, "%s: %.2f%s\n", v.Symbol, v.Percent, UnitPercent)
	}
	return b.String()
}

// Lines returns the result lines to show for an empirical calculation: the
// empirical formula, and either the molecular formula or MolecularInfo.
func (E *EmpiricalResult) Lines() []string {
	ret := []string{"Empirical formula: " + E.Formula}
	if E.HasMolecular {
		return append(ret, "Molecular formula: "+E.Molecular)
	}
	return append(ret, MolecularInfo)
}
