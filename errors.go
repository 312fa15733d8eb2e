/*
 * errors.go, part of golie.
 *
 * Copyright 2025 Raul Mera <rmeraa{at}academicos(dot)uta(dot)cl>
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

package lie

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// Kind classifies the failures the pipeline can run into. None of them
// aborts a whole batch: the offending file, group or bin is dropped and the
// caller moves on.
type Kind int

const (
	Unknown Kind = iota
	MissingInput
	MalformedRecord
	SchemaMismatch
	ConfigurationMiss
	ResolutionFailure
	InvalidConfiguration //a configuration file or value that can't be used
)

func (k Kind) String() string {
	switch k {
	case MissingInput:
		return "missing input"
	case MalformedRecord:
		return "malformed record"
	case SchemaMismatch:
		return "schema mismatch"
	case ConfigurationMiss:
		return "configuration miss"
	case ResolutionFailure:
		return "resolution failure"
	case InvalidConfiguration:
		return "invalid configuration"
	default:
		return "unknown"
	}
}

// Error is the error type returned by golie packages. Like the trajectory
// errors in gochem, it keeps the file involved and a trail of the functions
// the error went through.
type Error struct {
	Kind     Kind
	message  string
	filename string //the file with problems, or empty string if none.
	deco     []string
	critical bool
}

// NewError returns a new Error of the given kind. filename can be empty.
func NewError(kind Kind, filename, message string, critical bool, caller ...string) *Error {
	return &Error{Kind: kind, message: message, filename: filename, deco: caller, critical: critical}
}

func (E *Error) Error() string {
	s := E.Kind.String() + ": " + E.message
	if E.filename != "" {
		s = fmt.Sprintf("%s (file %s)", s, E.filename)
	}
	if len(E.deco) > 0 {
		s = strings.Join(E.deco, ": ") + ": " + s
	}
	return s
}

// Decorate adds the caller's name to the error trail and returns the trail.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append([]string{deco}, E.deco...)
	}
	return E.deco
}

// FileName returns the file associated with the error.
func (E *Error) FileName() string { return E.filename }

// Critical returns true if the error should stop the current step.
func (E *Error) Critical() bool { return E.critical }

// errDecorate decorates err with caller if it is an *Error, otherwise
// it wraps it in one of kind k.
func errDecorate(err error, k Kind, caller string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
		return e
	}
	return &Error{Kind: k, message: err.Error(), deco: []string{caller}, critical: true}
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// Logf prints to l, or to the standard logger if l is nil.
func Logf(l *log.Logger, format string, v ...interface{}) {
	if l == nil {
		log.Printf(format, v...)
		return
	}
	l.Printf(format, v...)
}
