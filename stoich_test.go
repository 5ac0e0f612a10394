/*
 * stoich_test.go
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
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestElementTable(Te *testing.T) {
	els := Elements()
	if len(els) != 118 {
		Te.Fatalf("expected 118 elements, got %d", len(els))
	}
	seen := make(map[string]bool)
	for i, e := range els {
		if e.Number != i+1 {
			Te.Errorf("element %s has number %d, expected %d", e.Symbol, e.Number, i+1)
		}
		if e.Mass <= 0 {
			Te.Errorf("element %s has non-positive mass %f", e.Symbol, e.Mass)
		}
		if seen[e.Symbol] {
			Te.Errorf("symbol %s repeated", e.Symbol)
		}
		seen[e.Symbol] = true
	}
	els[0].Mass = 1000 //the copy must not touch the table
	if m, _ := Mass("H"); m != 1.008 {
		Te.Errorf("element table was modified through Elements: H=%f", m)
	}
	og, err := ElementByNumber(118)
	if err != nil || og.Symbol != "Og" {
		Te.Errorf("ElementByNumber(118) gave %v, %v", og, err)
	}
	if _, err := ElementByNumber(0); err == nil {
		Te.Error("ElementByNumber(0) should fail")
	}
	if _, err := Mass("Xx"); !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("Mass(Xx) gave %v", err)
	}
	if m, err := Mass("Fe"); err != nil || m != 55.845 {
		Te.Errorf("Mass(Fe) gave %f, %v", m, err)
	}
}

func TestParseFormula(Te *testing.T) {
	tests := []struct {
		formula string
		want    map[string]int
		order   []string
	}{
		{"H2O", map[string]int{"H": 2, "O": 1}, []string{"H", "O"}},
		{"", map[string]int{}, []string{}},
		{"NaCl", map[string]int{"Na": 1, "Cl": 1}, []string{"Na", "Cl"}},
		{"Na Cl", map[string]int{"Na": 1, "Cl": 1}, []string{"Na", "Cl"}},
		{"CH3COOH", map[string]int{"C": 2, "H": 4, "O": 2}, []string{"C", "H", "O"}},
		{"2H2O", map[string]int{"H": 2, "O": 1}, []string{"H", "O"}},
		{"C6H12O6", map[string]int{"C": 6, "H": 12, "O": 6}, []string{"C", "H", "O"}},
		{"H0O", map[string]int{"O": 1}, []string{"O"}},
		{"42", map[string]int{}, []string{}},
	}
	for _, t := range tests {
		comp, err := ParseFormula(t.formula)
		if err != nil {
			Te.Errorf("ParseFormula(%q): %v", t.formula, err)
			continue
		}
		if got := comp.Map(); !reflect.DeepEqual(got, t.want) {
			Te.Errorf("ParseFormula(%q) = %v, want %v", t.formula, got, t.want)
		}
		if got := comp.Symbols(); len(got) != len(t.order) || (len(got) > 0 && !reflect.DeepEqual(got, t.order)) {
			Te.Errorf("ParseFormula(%q) order %v, want %v", t.formula, got, t.order)
		}
	}
}

func TestParseFormulaErrors(Te *testing.T) {
	_, err := ParseFormula("Xx2O")
	if !errors.Is(err, ErrUnknownElement) {
		Te.Fatalf("expected unknown element, got %v", err)
	}
	var e Error
	if !errors.As(err, &e) || e.Symbol() != "Xx" {
		Te.Errorf("expected the symbol Xx in the error, got %v", err)
	}
	if err.Error() != "unknown element: Xx" {
		Te.Errorf("unexpected message %q", err.Error())
	}
	//lowercase letters are greedy, so "Hoo" is one (unknown) symbol.
	if _, err := ParseFormula("Hoo"); !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("expected unknown element for Hoo, got %v", err)
	}
	if _, err := ParseFormula("H99999999999999999999999"); !errors.Is(err, ErrInvalidCount) {
		Te.Errorf("expected invalid count, got %v", err)
	}
}

func TestCountOverflow(Te *testing.T) {
	big := strconv.Itoa(math.MaxInt)
	c, err := ParseFormula("H" + big)
	if err != nil {
		Te.Fatal(err)
	}
	if c.Count("H") != math.MaxInt || c.Atoms() != math.MaxInt {
		Te.Errorf("H%s gave %d atoms", big, c.Atoms())
	}
	//the total of one symbol, and the total of all atoms, must fit in an int.
	for _, f := range []string{"H" + big + "H", "H" + big + "O", "O2H" + big} {
		if _, err := ParseFormula(f); !errors.Is(err, ErrInvalidCount) {
			Te.Errorf("ParseFormula(%s) gave %v, want invalid count", f, err)
		}
		if m, err := MolarMass(f); !errors.Is(err, ErrInvalidCount) {
			Te.Errorf("MolarMass(%s) = %f, %v", f, m, err)
		}
		if n, err := ParticlesInCompound(f, 1); !errors.Is(err, ErrInvalidCount) {
			Te.Errorf("ParticlesInCompound(%s) = %e, %v", f, n, err)
		}
	}
	//hand-built compositions saturate instead of wrapping around.
	h := NewComposition()
	h.Add("H", math.MaxInt)
	h.Add("H", 1)
	h.Add("O", 5)
	if h.Count("H") != math.MaxInt || h.Atoms() != math.MaxInt {
		Te.Errorf("saturation failed: H=%d atoms=%d", h.Count("H"), h.Atoms())
	}
	if CompositionMass(h) <= 0 {
		Te.Errorf("mass of a saturated composition is %f", CompositionMass(h))
	}
}

func TestMolarMass(Te *testing.T) {
	m, err := MolarMass("H2O")
	if err != nil {
		Te.Fatal(err)
	}
	if !near(m, 18.015, 0.01) {
		Te.Errorf("molar mass of water %f", m)
	}
	_, err = MolarMass("H2Xx")
	if !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("expected unknown element, got %v", err)
	}
	if m, err := MolarMass(""); err != nil || m != 0 {
		Te.Errorf("empty formula gave %f, %v", m, err)
	}
}

//A composition built by hand must weigh the same as the parsed one.
func TestCompositionMassRoundTrip(Te *testing.T) {
	comp := NewComposition()
	comp.Add("C", 6)
	comp.Add("H", 12)
	comp.Add("O", 6)
	want := 6*12.01 + 12*1.008 + 6*16.00
	if got := CompositionMass(comp); !near(got, want, 1e-9) {
		Te.Errorf("hand-built glucose weighs %f, want %f", got, want)
	}
	parsed, err := MolarMass("C6H12O6")
	if err != nil {
		Te.Fatal(err)
	}
	if !near(parsed, want, 1e-9) {
		Te.Errorf("parsed glucose weighs %f, want %f", parsed, want)
	}
	if comp.String() != "C6H12O6" {
		Te.Errorf("composition renders as %s", comp.String())
	}
	var zero Composition
	zero.Add("Na", 1)
	zero.Add("Na", 0)
	if zero.Count("Na") != 1 || zero.Len() != 1 {
		Te.Errorf("zero value composition misbehaves: %v", zero.Map())
	}
}

func TestPercentComposition(Te *testing.T) {
	p, err := PercentComposition("H2O")
	if err != nil {
		Te.Fatal(err)
	}
	if len(p) != 2 || p[0].Symbol != "H" || p[1].Symbol != "O" {
		Te.Fatalf("unexpected composition %v", p)
	}
	if !near(p[0].Percent, 11.19, 0.01) || !near(p[1].Percent, 88.81, 0.01) {
		Te.Errorf("unexpected percentages %v", p)
	}
	for _, f := range []string{"H2O", "C6H12O6", "NaCl", "KMnO4", "Fe2O3"} {
		p, err := PercentComposition(f)
		if err != nil {
			Te.Fatal(err)
		}
		var sum float64
		for _, v := range p {
			sum += v.Percent
		}
		if !near(sum, 100, 0.01) {
			Te.Errorf("percentages of %s add up to %f", f, sum)
		}
	}
	if p, err := PercentComposition(""); err != nil || len(p) != 0 {
		Te.Errorf("empty formula gave %v, %v", p, err)
	}
	if _, err := PercentComposition("Qq"); !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("expected unknown element, got %v", err)
	}
}

func TestMoles(Te *testing.T) {
	m, err := Moles(18.015, 18.015)
	if err != nil || m != 1.0 {
		Te.Errorf("Moles(18.015,18.015) = %f, %v", m, err)
	}
	for _, mm := range []float64{0, -3} {
		if _, err := Moles(10, mm); !errors.Is(err, ErrInvalidMolarMass) {
			Te.Errorf("Moles(10, %f) gave %v", mm, err)
		}
	}
}

func TestParticles(Te *testing.T) {
	if p := Particles(2); p != 2*Avogadro {
		Te.Errorf("Particles(2) = %e", p)
	}
	p, err := ParticlesInCompound("H2O", 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	if !near(p/(3*Avogadro), 1, 1e-12) {
		Te.Errorf("particles in a mol of water: %e", p)
	}
	_, err = ParticlesInCompound("Xx", 1)
	if !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("expected unknown element, got %v", err)
	}
	var e Error
	if errors.As(err, &e) {
		deco := e.Decorate("")
		if len(deco) != 2 || deco[0] != "ParseFormula" || deco[1] != "ParticlesInCompound" {
			Te.Errorf("unexpected decorations %v", deco)
		}
	}
}

func TestEmpirical(Te *testing.T) {
	masses := []ElementMass{{"C", 2.40}, {"H", 0.60}}
	r, err := Empirical(masses, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Formula != "CH3" {
		Te.Errorf("empirical formula %s, want CH3", r.Formula)
	}
	if r.HasMolecular {
		Te.Error("no molecular mass was given, but a molecular formula was computed")
	}
	if !near(r.FormulaMass, 15.034, 0.001) {
		Te.Errorf("empirical formula mass %f", r.FormulaMass)
	}
	r, err = Empirical(masses, 30.07)
	if err != nil {
		Te.Fatal(err)
	}
	if !r.HasMolecular || r.Factor != 2 || r.Molecular != "C2H6" {
		Te.Errorf("molecular formula %s (factor %d), want C2H6", r.Molecular, r.Factor)
	}
	lines := r.Lines()
	if lines[0] != "Empirical formula: CH3" || lines[1] != "Molecular formula: C2H6" {
		Te.Errorf("unexpected lines %v", lines)
	}
}

func TestEmpiricalLeniency(Te *testing.T) {
	//blank symbols and non-positive masses are skipped, not errors.
	in := []ElementMass{{" ", 3}, {"O", 0}, {"Na", -1}, {"Na", 2.299}, {"Cl", 3.545}, {"Na", 2.299}}
	r, err := Empirical(in, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Formula != "NaCl" {
		Te.Errorf("formula %s, want NaCl", r.Formula)
	}
	//unknown symbols weigh 1 here, unlike in ParseFormula.
	r, err = Empirical([]ElementMass{{"Xx", 2}, {"H", 1.008}}, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Formula != "Xx2H" {
		Te.Errorf("formula %s, want Xx2H", r.Formula)
	}
	_, err = Empirical([]ElementMass{{"", 1}, {"C", 0}}, 10)
	if !errors.Is(err, ErrNoValidInputs) {
		Te.Errorf("expected no valid inputs, got %v", err)
	}
	//a molecular mass much smaller than the formula mass still gives factor 1.
	r, err = Empirical([]ElementMass{{"C", 12.01}, {"O", 16}}, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Factor != 1 || r.Molecular != "CO" {
		Te.Errorf("factor %d, molecular %s", r.Factor, r.Molecular)
	}
}

func TestEmpiricalRoundsHalfToEven(Te *testing.T) {
	tests := []struct {
		masses    []ElementMass
		molecular float64
		formula   string
		factor    int
		mformula  string
	}{
		{[]ElementMass{{"C", 12.01}, {"O", 24}}, 0, "CO2", 0, ""}, //1.5
		{[]ElementMass{{"C", 12.01}, {"O", 40}}, 0, "CO2", 0, ""}, //2.5
		{[]ElementMass{{"C", 12.01}, {"O", 56}}, 0, "CO4", 0, ""}, //3.5
		{[]ElementMass{{"O", 16}}, 8, "O", 1, "O"},                //0.5, clamped
		{[]ElementMass{{"O", 16}}, 24, "O", 2, "O2"},              //1.5
		{[]ElementMass{{"O", 16}}, 40, "O", 2, "O2"},              //2.5
		{[]ElementMass{{"O", 16}}, 56, "O", 4, "O4"},              //3.5
	}
	for _, t := range tests {
		r, err := Empirical(t.masses, t.molecular)
		if err != nil {
			Te.Fatal(err)
		}
		if r.Formula != t.formula || r.Factor != t.factor || r.Molecular != t.mformula {
			Te.Errorf("Empirical(%v, %f) gave %s, factor %d, %s; want %s, factor %d, %s",
				t.masses, t.molecular, r.Formula, r.Factor, r.Molecular, t.formula, t.factor, t.mformula)
		}
	}
}

func TestEmpiricalBounds(Te *testing.T) {
	_, err := Empirical([]ElementMass{{"C", 1e-300}, {"H", 1e300}}, 0)
	var e Error
	if !errors.Is(err, ErrInvalidCount) || !errors.As(err, &e) || e.Symbol() != "H" {
		Te.Errorf("a huge ratio gave %v, want invalid count for H", err)
	}
	//a factor out of range is the same as no molecular mass.
	r, err := Empirical([]ElementMass{{"C", 12.01}}, 1e300)
	if err != nil {
		Te.Fatal(err)
	}
	if r.HasMolecular || r.Formula != "C" || r.Lines()[1] != MolecularInfo {
		Te.Errorf("unexpected result %+v", r)
	}
	//so is one that would push a count out of range.
	r, err = Empirical([]ElementMass{{"C", 12.01}, {"O", 16e6}}, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Formula != "CO1000000" {
		Te.Fatalf("formula %s, want CO1000000", r.Formula)
	}
	r, err = Empirical([]ElementMass{{"C", 12.01}, {"O", 16e6}}, r.FormulaMass*3000)
	if err != nil {
		Te.Fatal(err)
	}
	if r.HasMolecular {
		Te.Errorf("molecular formula %s should not have been computed", r.Molecular)
	}
	r, err = Empirical([]ElementMass{{"C", 12.01}, {"O", 16e6}}, r.FormulaMass*2)
	if err != nil {
		Te.Fatal(err)
	}
	if !r.HasMolecular || r.Molecular != "C2O2000000" {
		Te.Errorf("molecular formula %s, want C2O2000000", r.Molecular)
	}
}

//Calling any calculation twice gives the same answer.
func TestPurity(Te *testing.T) {
	a, _ := PercentComposition("KMnO4")
	b, _ := PercentComposition("KMnO4")
	if !reflect.DeepEqual(a, b) {
		Te.Errorf("%v != %v", a, b)
	}
	m1, _ := MolarMass("C2H5OH")
	m2, _ := MolarMass("C2H5OH")
	if m1 != m2 {
		Te.Errorf("%f != %f", m1, m2)
	}
	e1, _ := Empirical([]ElementMass{{"Fe", 6.98}, {"O", 3.0}}, 160)
	e2, _ := Empirical([]ElementMass{{"Fe", 6.98}, {"O", 3.0}}, 160)
	if e1.Formula != e2.Formula || e1.Molecular != e2.Molecular {
		Te.Errorf("%v != %v", e1, e2)
	}
}

func TestFormat(Te *testing.T) {
	if s := FormatMoles(0.5); s != "Moles = 0.5000 mol" {
		Te.Errorf("got %q", s)
	}
	if s := FormatParticles(KindAtoms, 2*Avogadro); s != "Atoms = 1.204e+24" {
		Te.Errorf("got %q", s)
	}
	if s := FormatCompoundParticles("H2O", 1, 3*Avogadro); s != "Total particles in 1.000 mol of H2O: 1.807e+24" {
		Te.Errorf("got %q", s)
	}
	if s := FormatMolarMass("H2O", 18.015); s != "Molar mass of H2O = 18.015 g/mol" {
		Te.Errorf("got %q", s)
	}
	if s := FormatPercents([]Percent{{"H", 11.19}, {"O", 88.81}}); s != "H: 11.19%\nO: 88.81%\n" {
		Te.Errorf("got %q", s)
	}
}
