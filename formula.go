/*
 * formula.go, part of goStoich.
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
	"regexp"
	"strconv"
	"strings"
)

//One uppercase letter plus any lowercase ones, then an optional count.
var formulaToken = regexp.MustCompile(`([A-Z][a-z]*)(\d*)`)

// Composition maps element symbols to atom counts, keeping the order in which
// the symbols first appeared. The zero value is an empty composition.
type Composition struct {
	symbols []string
	counts  map[string]int
}

// NewComposition returns an empty composition, ready to be filled with Add.
func NewComposition() *Composition {
	return &Composition{counts: make(map[string]int)}
}

// Add adds n atoms of symbol to the composition. Counts for a symbol
// already present are summed, saturating at math.MaxInt. n <= 0 does nothing.
// Add does not check the symbol against the element table, ParseFormula does.
func (C *Composition) Add(symbol string, n int) {
	if n <= 0 {
		return
	}
	if C.counts == nil {
		C.counts = make(map[string]int)
	}
	old, ok := C.counts[symbol]
	if !ok {
		C.symbols = append(C.symbols, symbol)
	}
	C.counts[symbol] = addCounts(old, n)
}

//addCounts returns a+b for non-negative a and b, or math.MaxInt if the sum
//does not fit in an int.
func addCounts(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Len returns the number of different elements in the composition.
func (C *Composition) Len() int {
	if C == nil {
		return 0
	}
	return len(C.symbols)
}

// Symbols returns the element symbols in order of first appearance.
func (C *Composition) Symbols() []string {
	if C == nil {
		return nil
	}
	ret := make([]string, len(C.symbols))
	copy(ret, C.symbols)
	return ret
}

// Count returns the number of atoms of symbol, 0 if it is not present.
func (C *Composition) Count(symbol string) int {
	if C == nil {
		return 0
	}
	return C.counts[symbol]
}

// Atoms returns the total number of atoms per formula unit, saturating at
// math.MaxInt. It never saturates for a composition from ParseFormula.
func (C *Composition) Atoms() int {
	var n int
	for _, s := range C.Symbols() {
		n = addCounts(n, C.counts[s])
	}
	return n
}

// Map returns the composition as a plain map. The order is lost.
func (C *Composition) Map() map[string]int {
	ret := make(map[string]int, C.Len())
	for _, s := range C.Symbols() {
		ret[s] = C.counts[s]
	}
	return ret
}

// String renders the composition as a formula, omitting counts of 1.
func (C *Composition) String() string {
	var b strings.Builder
	for _, s := range C.Symbols() {
		b.WriteString(formulaPart(s, C.counts[s]))
	}
	return b.String()
}

//formulaPart renders a symbol with its count, which is only written when larger than 1.
func formulaPart(symbol string, n int) string {
	if n > 1 {
		return symbol + strconv.Itoa(n)
	}
	return symbol
}

// ParseFormula reads a formula such as "H2O" or "C6H12O6" into a Composition.
// Anything that is not an element symbol followed by an optional count is skipped
// without complaint, so "Na Cl" and "NaCl" give the same result, and an empty
// string gives an empty composition. A symbol repeated in the formula has its
// counts summed. Parentheses, hydrates and charges are not supported. It
// returns an error if a symbol is not in the element table, or if a count,
// the total for a symbol or the total number of atoms does not fit in an int.
func ParseFormula(formula string) (*Composition, error) {
	comp := NewComposition()
	var atoms int
	for _, m := range formulaToken.FindAllStringSubmatch(formula, -1) {
		symbol, digits := m[1], m[2]
		if !Known(symbol) {
			return nil, Error{message: UnknownElement, symbol: symbol, deco: []string{"ParseFormula"}}
		}
		n := 1
		if digits != "" {
			var err error
			n, err = strconv.Atoi(digits)
			if err != nil {
				return nil, Error{message: InvalidCount, symbol: symbol + digits, deco: []string{"ParseFormula"}}
			}
		}
		//Atoms bounds every single count, so one check covers both.
		if atoms > math.MaxInt-n {
			return nil, Error{message: InvalidCount, symbol: symbol + digits, deco: []string{"ParseFormula"}}
		}
		atoms += n
		comp.Add(symbol, n)
	}
	return comp, nil
}
