// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package weaving reads the embedding configuration of a weaver element.
//
// A weaver element carries its settings in two ways. Booleans are always
// attributes:
//
//	<Costura IncludeDebugSymbols='false' CreateTemporaryAssemblies='true'/>
//
// Lists may be given as a '|' separated attribute, as a child element with
// one name per line, or both:
//
//	<Costura ExcludeAssemblies='Foo|Bar'>
//	    <ExcludeAssemblies>
//	        Baz
//	    </ExcludeAssemblies>
//	</Costura>
//
// When both are present the attribute entries come first. Every entry is
// trimmed and blank entries are dropped.
//
// [NewConfiguration] fails on the first malformed boolean, and when both
// IncludeAssemblies and ExcludeAssemblies end up non-empty.
package weaving
