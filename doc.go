// SPDX-License-Identifier: MIT

// Package linstep is a step-by-step linear-algebra engine: every reduction it
// performs is narrated as a readable log of row operations and matrix snapshots.
//
// 🚀 What is linstep?
//
//	A small, dependency-light library and CLI that brings together:
//		• Gauss-Jordan RREF with partial pivoting and a full step log
//		• Linear systems A·x = b classified as unique, infinite or inconsistent
//		• Homogeneous systems: null-space basis from the free variables
//		• Matrix primitives: add, multiply, transpose, LUP, determinant, inverse
//		• Structure checks: identity, symmetric, triangular, diagonal, singular
//		• Vector primitives: dot, cross, norm, projection, angle
//
// Under the hood:
//
//	matrix/            Dense storage, RREF, solvers, primitives, formatting
//	internal/textio/   plain-text matrix and step-log I/O
//	internal/history/  SQLite log of CLI runs
//	internal/config/   environment-driven configuration
//	cmd/linstep/       command-line front end
//
// Quick example (2x2 with a row swap):
//
//	[0 1 | 1]      Swap R1 <-> R2      [1 0 | 2]
//	[1 0 | 2]   ----------------->     [0 1 | 1]
//
//	go get github.com/katalvlaran/linstep/matrix
package linstep
