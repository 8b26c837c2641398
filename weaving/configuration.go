// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package weaving

import (
	"errors"
	"path"
	"strings"

	"github.com/z5labs/embedweave/xmltree"
)

// Defaults applied when a boolean attribute is absent.
const (
	DefaultIncludeDebugSymbols       = true
	DefaultDisableCompression        = false
	DefaultDisableCleanup            = false
	DefaultLoadAtModuleInit          = true
	DefaultCreateTemporaryAssemblies = false
)

// ErrIncludeExcludeConflict is returned when both IncludeAssemblies and
// ExcludeAssemblies are configured.
var ErrIncludeExcludeConflict = errors.New("Either configure IncludeAssemblies OR ExcludeAssemblies, not both.")

// Configuration is the decoded embedding configuration. It is built once by
// [NewConfiguration] and should be treated as read-only afterwards.
type Configuration struct {
	IncludeDebugSymbols       bool `json:"IncludeDebugSymbols" yaml:"IncludeDebugSymbols" toml:"IncludeDebugSymbols"`
	DisableCompression        bool `json:"DisableCompression" yaml:"DisableCompression" toml:"DisableCompression"`
	DisableCleanup            bool `json:"DisableCleanup" yaml:"DisableCleanup" toml:"DisableCleanup"`
	LoadAtModuleInit          bool `json:"LoadAtModuleInit" yaml:"LoadAtModuleInit" toml:"LoadAtModuleInit"`
	CreateTemporaryAssemblies bool `json:"CreateTemporaryAssemblies" yaml:"CreateTemporaryAssemblies" toml:"CreateTemporaryAssemblies"`

	ExcludeAssemblies     []string `json:"ExcludeAssemblies" yaml:"ExcludeAssemblies" toml:"ExcludeAssemblies"`
	IncludeAssemblies     []string `json:"IncludeAssemblies" yaml:"IncludeAssemblies" toml:"IncludeAssemblies"`
	Unmanaged32Assemblies []string `json:"Unmanaged32Assemblies" yaml:"Unmanaged32Assemblies" toml:"Unmanaged32Assemblies"`
	Unmanaged64Assemblies []string `json:"Unmanaged64Assemblies" yaml:"Unmanaged64Assemblies" toml:"Unmanaged64Assemblies"`
	PreloadOrder          []string `json:"PreloadOrder" yaml:"PreloadOrder" toml:"PreloadOrder"`
}

// NewDefaultConfiguration returns the configuration of an empty weaver element.
func NewDefaultConfiguration() Configuration {
	return Configuration{
		IncludeDebugSymbols:       DefaultIncludeDebugSymbols,
		DisableCompression:        DefaultDisableCompression,
		DisableCleanup:            DefaultDisableCleanup,
		LoadAtModuleInit:          DefaultLoadAtModuleInit,
		CreateTemporaryAssemblies: DefaultCreateTemporaryAssemblies,
		ExcludeAssemblies:         []string{},
		IncludeAssemblies:         []string{},
		Unmanaged32Assemblies:     []string{},
		Unmanaged64Assemblies:     []string{},
		PreloadOrder:              []string{},
	}
}

type boolField struct {
	name string
	def  bool
	dst  *bool
}

// NewConfiguration decodes elem into a Configuration. A nil elem behaves
// like an element without attributes or children. On error the zero
// Configuration is returned.
func NewConfiguration(elem *xmltree.Element) (Configuration, error) {
	var cfg Configuration

	fields := []boolField{
		{name: "IncludeDebugSymbols", def: DefaultIncludeDebugSymbols, dst: &cfg.IncludeDebugSymbols},
		{name: "DisableCompression", def: DefaultDisableCompression, dst: &cfg.DisableCompression},
		{name: "DisableCleanup", def: DefaultDisableCleanup, dst: &cfg.DisableCleanup},
		{name: "LoadAtModuleInit", def: DefaultLoadAtModuleInit, dst: &cfg.LoadAtModuleInit},
		{name: "CreateTemporaryAssemblies", def: DefaultCreateTemporaryAssemblies, dst: &cfg.CreateTemporaryAssemblies},
	}
	for _, f := range fields {
		v, err := ReadBool(elem, f.name, f.def)
		if err != nil {
			return Configuration{}, err
		}
		*f.dst = v
	}

	cfg.ExcludeAssemblies = ReadList(elem, "ExcludeAssemblies")
	cfg.IncludeAssemblies = ReadList(elem, "IncludeAssemblies")
	cfg.Unmanaged32Assemblies = ReadList(elem, "Unmanaged32Assemblies")
	cfg.Unmanaged64Assemblies = ReadList(elem, "Unmanaged64Assemblies")
	cfg.PreloadOrder = ReadList(elem, "PreloadOrder")

	if len(cfg.IncludeAssemblies) > 0 && len(cfg.ExcludeAssemblies) > 0 {
		return Configuration{}, ErrIncludeExcludeConflict
	}
	return cfg, nil
}

// Embeds reports whether the assembly should be embedded. With an include
// list only listed assemblies are embedded, otherwise everything not
// excluded is. Names match case-insensitively and a .dll or .exe
// extension on assembly is ignored.
func (c Configuration) Embeds(assembly string) bool {
	if len(c.IncludeAssemblies) > 0 {
		return indexOf(c.IncludeAssemblies, assembly) >= 0
	}
	return indexOf(c.ExcludeAssemblies, assembly) < 0
}

// PreloadIndex returns the position of assembly in PreloadOrder.
func (c Configuration) PreloadIndex(assembly string) (int, bool) {
	i := indexOf(c.PreloadOrder, assembly)
	return i, i >= 0
}

func indexOf(list []string, assembly string) int {
	name := assemblyName(assembly)
	for i, entry := range list {
		if strings.EqualFold(entry, name) {
			return i
		}
	}
	return -1
}

func assemblyName(s string) string {
	switch ext := path.Ext(s); {
	case strings.EqualFold(ext, ".dll"), strings.EqualFold(ext, ".exe"):
		return strings.TrimSuffix(s, ext)
	}
	return s
}
