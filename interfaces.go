/*
 * interfaces.go, part of goStoich.
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

//Errors

// Messages for the errors returned by this package. They are also what
// a user gets to see, so keep them readable.
const (
	UnknownElement   = "unknown element"
	InvalidMolarMass = "molar mass must be greater than zero"
	NoValidInputs    = "no valid element/mass pairs given"
	InvalidCount     = "invalid atom count"
)

// Sentinel errors to compare with errors.Is. An Error matches the sentinel
// with the same message, regardless of symbol and decorations.
var (
	ErrUnknownElement   = Error{message: UnknownElement}
	ErrInvalidMolarMass = Error{message: InvalidMolarMass}
	ErrNoValidInputs    = Error{message: NoValidInputs}
	ErrInvalidCount     = Error{message: InvalidCount}
)

// Error is the error type returned by all calculations in this package.
// The Decorate method allows to add and retrieve info from the error,
// without changing its type or wrapping it around something else.
type Error struct {
	message string
	symbol  string //the offending symbol or token, if any.
	deco    []string
}

// Error returns the message, with the offending symbol if there is one.
func (err Error) Error() string {
	if err.symbol != "" {
		return fmt.Sprintf("%s: %s", err.message, err.symbol)
	}
	return err.message
}

// Message returns the bare message, one of the constants above.
func (err Error) Message() string { return err.message }

// Symbol returns the element symbol (or token) that caused the error, or an empty string.
func (err Error) Symbol() string { return err.symbol }

// Decorate adds dec to the decoration slice of the error and returns the resulting slice.
// If dec is empty, it just returns the current decorations.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns false. Every error in this package only rejects the calculation at hand.
func (err Error) Critical() bool { return false }

// Is reports whether target is an Error with the same message.
func (err Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return t.message == err.message
}

//errDecorate adds the caller's name to err if err is an Error, and returns it.
//Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.Decorate(caller)
	return e
}
