/*
 * json.go, part of goStoich.
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

package stoichjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	stoich "github.com/rmera/gostoich"
)

//Operations a Request can ask for.
const (
	OpMoles              = "moles"
	OpParticles          = "particles"
	OpCompoundParticles  = "compound_particles"
	OpMolarMass          = "molar_mass"
	OpPercentComposition = "percent_composition"
	OpEmpirical          = "empirical"
)

// Operations returns the names of all supported operations, in menu order.
func Operations() []string {
	return []string{OpMoles, OpParticles, OpCompoundParticles, OpMolarMass, OpPercentComposition, OpEmpirical}
}

// Request is what an external program sends. Only the fields the operation
// needs are read.
type Request struct {
	Operation     string
	Formula       string               //compound_particles, molar_mass, percent_composition
	Mass          float64              //moles, grams
	MolarMass     float64              //moles, g/mol
	Moles         float64              //particles, compound_particles
	Kind          string               //particles: "atoms" or "molecules"
	Masses        []stoich.ElementMass //empirical, in the order the user gave them
	MolecularMass float64              //empirical, optional
}

// Info is the result passed back to the calling program.
type Info struct {
	Operation    string
	Value        float64          //the numeric result, if there is a single one
	Unit         string           //unit of Value, empty for counts
	Text         []string         //the result as it should be displayed
	Percents     []stoich.Percent //percent_composition
	Formula      string           //empirical
	FormulaMass  float64          //empirical
	HasMolecular bool             //empirical
	Factor       int              //empirical
	Molecular    string           //empirical
}

// Send marshals the info and writes it to out as a single line.
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "Info.Send", err)
	}
	return nil
}

// An easily JSON-serializable error type.
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InOptions     bool //the request itself was wrong
	InProcess     bool //the calculation failed
	InPostProcess bool //was it in preparing the output?
	Operation     string
	Function      string //which go function gave the error
	Kind          string //one of the stoich error messages, if the error came from a calculation
	Symbol        string //offending element symbol, if any
	Message       string //the error itself
}

// Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

// Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

// Send writes the error to out as a single JSON line.
func (J *Error) Send(out io.Writer) error {
	_, err := out.Write(append(J.Marshal(), '\n'))
	return err
}

// NewError takes an error and some additional info to create a json-marshal-able error.
// where is one of "options", "postprocess" or anything else for a calculation error.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "options":
		jerr.InOptions = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	var serr stoich.Error
	if errors.As(err, &serr) {
		jerr.Kind = serr.Message()
		jerr.Symbol = serr.Symbol()
		jerr.deco = serr.Decorate("")
	}
	jerr.Decorate(function)
	return jerr
}

// DecodeRequest reads one line from stdin and unmarshals it into a Request.
func DecodeRequest(stdin *bufio.Reader) (*Request, *Error) {
	line, err := stdin.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(bytes.TrimSpace(line)) == 0) {
		return nil, NewError("options", "DecodeRequest", err)
	}
	return UnmarshalRequest(line)
}

// UnmarshalRequest unmarshals a JSON request.
func UnmarshalRequest(data []byte) (*Request, *Error) {
	ret := new(Request)
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, NewError("options", "UnmarshalRequest", err)
	}
	return ret, nil
}

func nonNegative(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a non-negative number, got %v", name, v)
	}
	return nil
}

// Validate checks that the request names a known operation and that its
// quantities are non-negative.
func (R *Request) Validate() *Error {
	const funcname = "Request.Validate"
	var err error
	switch R.Operation {
	case OpMoles:
		if err = nonNegative("Mass", R.Mass); err == nil {
			err = nonNegative("MolarMass", R.MolarMass)
		}
	case OpParticles:
		err = nonNegative("Moles", R.Moles)
		if err == nil && R.Kind != "" && R.Kind != string(stoich.KindAtoms) && R.Kind != string(stoich.KindMolecules) {
			err = fmt.Errorf("Kind must be %q or %q, got %q", stoich.KindAtoms, stoich.KindMolecules, R.Kind)
		}
	case OpCompoundParticles:
		err = nonNegative("Moles", R.Moles)
	case OpMolarMass, OpPercentComposition:
	case OpEmpirical:
		for _, v := range R.Masses {
			if err = nonNegative("Mass of "+v.Symbol, v.Mass); err != nil {
				break
			}
		}
		if err == nil {
			err = nonNegative("MolecularMass", R.MolecularMass)
		}
	default:
		err = fmt.Errorf("unknown operation %q", R.Operation)
	}
	if err != nil {
		jerr := NewError("options", funcname, err)
		jerr.Operation = R.Operation
		return jerr
	}
	return nil
}

// Process validates the request, runs the calculation it asks for and returns the result.
func Process(R *Request) (*Info, *Error) {
	if jerr := R.Validate(); jerr != nil {
		return nil, jerr
	}
	info := &Info{Operation: R.Operation}
	var err error
	var funcname string
	switch R.Operation {
	case OpMoles:
		funcname = "stoich.Moles"
		info.Value, err = stoich.Moles(R.Mass, R.MolarMass)
		info.Unit = stoich.UnitMol
		info.Text = []string{stoich.FormatMoles(info.Value)}
	case OpParticles:
		kind := stoich.ParticleKind(R.Kind)
		if kind == "" {
			kind = stoich.KindMolecules
		}
		info.Value = stoich.Particles(R.Moles)
		info.Text = []string{stoich.FormatParticles(kind, info.Value)}
	case OpCompoundParticles:
		funcname = "stoich.ParticlesInCompound"
		info.Value, err = stoich.ParticlesInCompound(R.Formula, R.Moles)
		info.Text = []string{stoich.FormatCompoundParticles(R.Formula, R.Moles, info.Value)}
	case OpMolarMass:
		funcname = "stoich.MolarMass"
		info.Value, err = stoich.MolarMass(R.Formula)
		info.Unit = stoich.UnitMolarMass
		info.Text = []string{stoich.FormatMolarMass(R.Formula, info.Value)}
	case OpPercentComposition:
		funcname = "stoich.PercentComposition"
		info.Percents, err = stoich.PercentComposition(R.Formula)
		info.Unit = stoich.UnitPercent
		info.Text = []string{}
		if out := strings.TrimSuffix(stoich.FormatPercents(info.Percents), "\n"); out != "" {
			info.Text = strings.Split(out, "\n")
		}
	case OpEmpirical:
		funcname = "stoich.Empirical"
		var res *stoich.EmpiricalResult
		res, err = stoich.Empirical(R.Masses, R.MolecularMass)
		if err == nil {
			info.Formula = res.Formula
			info.FormulaMass = res.FormulaMass
			info.HasMolecular = res.HasMolecular
			info.Factor = res.Factor
			info.Molecular = res.Molecular
			info.Text = res.Lines()
		}
	}
	if err != nil {
		jerr := NewError("process", funcname, err)
		jerr.Operation = R.Operation
		return nil, jerr
	}
	return info, nil
}

// Serve reads requests from in, one per line, and writes one answer line to out
// for each of them, either an Info or an Error. Empty lines are skipped. It returns
// the number of requests answered, and an error only if reading or writing failed.
func Serve(in io.Reader, out io.Writer) (int, error) {
	stream := bufio.NewReader(in)
	var n int
	for {
		line, err := stream.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return n, err
		}
		if len(bytes.TrimSpace(line)) > 0 {
			if werr := answer(line, out); werr != nil {
				return n, werr
			}
			n++
		}
		if err == io.EOF {
			return n, nil
		}
	}
}

func answer(line []byte, out io.Writer) error {
	req, jerr := UnmarshalRequest(line)
	if jerr != nil {
		return jerr.Send(out)
	}
	info, jerr := Process(req)
	if jerr != nil {
		return jerr.Send(out)
	}
	if jerr = info.Send(out); jerr != nil {
		return jerr
	}
	return nil
}
