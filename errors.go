/*
 * errors.go, part of frdvis.
 *
 * Copyright 2026 The frdvis developers
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

package frdvis

import "fmt"

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call appends the given string (if not empty) to the decoration slice and returns it. The slice should contain the names of the functions in the calling stack, plus, for each function, any relevant information, or nothing.
}

// FileError is the interface for errors tied to one input or output file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
}

//CError is the concrete error type for the root package. It fullfills Error and FileError.
type CError struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err CError) Error() string {
	if err.filename == "" {
		return err.message
	}
	return fmt.Sprintf("frdvis, file %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error, or an empty string
func (err CError) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err CError) Critical() bool { return err.critical }

//errDecorate asserts that the given error implements Error and decorates it with
//the caller's name before returning it. Used with any other error it will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
