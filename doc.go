/*
 * doc.go, part of goStoich.
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

/*
Package stoich is the main package of the goStoich library. It provides an element
table, a chemical formula parser and the basic stoichiometry calculations an
introductory chemistry course needs.

	**goStoich Capabilities**

	Atomic masses for elements 1 (H) to 118 (Og).

	Parses simple formulas such as H2O, C6H12O6 or NaCl (no parentheses,
	hydrates or charges).

	Moles from a mass and a molar mass.

	Number of particles in an amount of substance, either generic or
	counting every atom of a compound.

	Molar mass and percent composition of a compound.

	Empirical and molecular formulas from experimental masses.

	goStoich requests and results can be JSON encoded (package stoichjson),
	percent compositions can be plotted (package stoichplot, uses gonum/plot)
	and everything can be used from a browser (package web, command gostoich).

All functions in this package are pure: they keep no state between calls and
can be used concurrently. Errors are of type Error, and can be compared with
errors.Is against ErrUnknownElement, ErrInvalidMolarMass, ErrNoValidInputs
and ErrInvalidCount.
*/
package stoich
