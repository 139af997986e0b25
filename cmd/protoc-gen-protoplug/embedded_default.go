// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build !protoplug_full

package main

import (
	"github.com/albertocavalcante/protoplug/generator"
	"github.com/albertocavalcante/protoplug/generators/es"
)

func init() {
	// Default build: only the es generator embedded
	generator.Register(es.New())
}
