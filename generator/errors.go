// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"strings"
)

// MissingFileError reports requested files that are not part of the request.
type MissingFileError struct {
	// Names are the requested names without a matching file.
	Names []string
}

func (e *MissingFileError) Error() string {
	return "files_to_generate missing in the request: " + strings.Join(e.Names, ", ")
}

// OrderingError reports a Schema operation invoked in the wrong state.
type OrderingError struct {
	Op    string
	State State
}

func (e *OrderingError) Error() string {
	switch e.Op {
	case "GenerateFile":
		if e.State == StateCollecting {
			return "Prepare() must be called before GenerateFile()"
		}
	case "Prepare":
		if e.State != StateCollecting {
			return "Prepare() must be called only once"
		}
	}
	return fmt.Sprintf("%s() is not allowed in state %s", e.Op, e.State)
}

// FinalizedFileError reports a mutation or render of an already rendered file.
type FinalizedFileError struct {
	Name string
	Op   string
}

func (e *FinalizedFileError) Error() string {
	return fmt.Sprintf("%s: %s() called after the file was rendered", e.Name, e.Op)
}

// DuplicateFileNameError reports a second GenerateFile call with a name
// already in use.
type DuplicateFileNameError struct {
	Name string
}

func (e *DuplicateFileNameError) Error() string {
	return fmt.Sprintf("file %q is already generated", e.Name)
}

// ParameterError reports an invalid plugin parameter.
type ParameterError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Key == "" {
		return "invalid parameter: " + e.Reason
	}
	return fmt.Sprintf("invalid parameter %q=%q: %s", e.Key, e.Value, e.Reason)
}
