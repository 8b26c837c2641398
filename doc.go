// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package embedweave loads the build-time configuration that tells an
// embedding pipeline which dependency assemblies to pack into a host
// artifact and how to load them at runtime.
//
// The configuration lives on a weaver element, usually inside the
// project's weavers file:
//
//	<Weavers>
//	    <Costura IncludeDebugSymbols='false' PreloadOrder='Native32|Native64'>
//	        <ExcludeAssemblies>
//	            Foo
//	            Bar
//	        </ExcludeAssemblies>
//	    </Costura>
//	</Weavers>
//
// LoadFile reads such a file and returns a [weaving.Configuration]:
//
//	cfg, err := embedweave.LoadFile(ctx, "FodyWeavers.xml")
//	if err != nil {
//	    return err
//	}
//
// Every failure is fatal and is reported through a typed error
// ([FileNotFoundError], [DocumentParseError], [WeaverNotFoundError] or
// [ConfigurationError]). The decoding rules themselves live in package weaving.
package embedweave
