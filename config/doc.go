// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides a functional approach to reading and composing configuration values.
//
// The package is built around the concept of a Reader[T], which represents a source of
// configuration values that may or may not be present. Readers can be composed using
// functional combinators to build configuration logic from simple building blocks.
//
// # Core Concepts
//
// Value[T] represents a configuration value that may or may not be set. This distinguishes
// between "not set" and "set to zero value", which is what lets a reader fall back to a
// documented default only when a setting is really absent.
//
// Reader[T] is an interface for reading configuration values. Readers are composable and
// can be chained together using combinators like Or, Map and Default.
//
// # Basic Usage
//
// Read a value from an environment variable with a default:
//
//	level, err := config.Read(ctx,
//	    config.Default("info", config.Env("EMBEDWEAVE_LOG_LEVEL")),
//	)
//
// Try multiple sources in order:
//
//	weaver, err := config.Read(ctx,
//	    config.Or(
//	        config.Env("EMBEDWEAVE_WEAVER"),
//	        config.ReaderOf("Costura"),
//	    ),
//	)
//
// Transform values using Map:
//
//	enabled := config.Map(
//	    config.Env("EMBEDWEAVE_STRICT"),
//	    func(ctx context.Context, s string) (bool, error) {
//	        return strconv.ParseBool(s)
//	    },
//	)
//
// # Error Handling
//
// Readers distinguish between three states:
//   - Value is set (returns Value with set=true)
//   - Value is not set (returns Value with set=false, no error)
//   - Error occurred (returns error)
//
// Default only replaces the second state; an error always propagates.
// The Read function converts "not set" to ErrValueNotSet for convenience.
package config
