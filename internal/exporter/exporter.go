// Package exporter renders parsed file models into the output records
// consumed downstream. It performs no I/O; path resolution against the
// project root is its only computation beyond reshaping.
package exporter

import (
	"path/filepath"

	"github.com/wp-hooks/parser/internal/parser"
	"github.com/wp-hooks/parser/internal/phpdoc"
)

// Export produces the output record for one parsed file. The root is the
// declared project root; the record's path is made relative to it.
func Export(file *parser.File, root string) FileExport {
	out := FileExport{
		File:      docOrEmpty(file.Doc),
		Path:      relativePath(root, file.Path),
		Root:      root,
		Includes:  []IncludeExport{},
		Constants: []ConstantExport{},
		Functions: []FunctionExport{},
		Classes:   []ClassExport{},
	}

	for _, inc := range file.Includes {
		out.Includes = append(out.Includes, IncludeExport{
			Name: inc.Name,
			Line: inc.Line,
			Kind: inc.Kind,
		})
	}

	for _, c := range file.Constants {
		out.Constants = append(out.Constants, ConstantExport{
			Name:  c.Name,
			Line:  c.Line,
			Value: c.Value,
		})
	}

	// The hooks key is conditional: absent entirely when the file dispatched
	// none, never an empty array.
	for _, h := range file.Hooks {
		out.Hooks = append(out.Hooks, HookExport{
			Name:      h.Name,
			Line:      h.Line,
			EndLine:   h.EndLine,
			Kind:      string(h.Kind),
			Arguments: h.Arguments,
			Doc:       docOrEmpty(h.Doc),
		})
	}

	for _, fn := range file.Functions {
		out.Functions = append(out.Functions, FunctionExport{
			Name:      fn.Name,
			Namespace: namespaceOrGlobal(fn.Namespace),
			Line:      fn.Line,
			EndLine:   fn.EndLine,
			Arguments: exportArguments(fn.Arguments),
			Doc:       docOrEmpty(fn.Doc),
		})
	}

	for _, cls := range file.Classes {
		out.Classes = append(out.Classes, exportClass(cls))
	}

	return out
}

func exportClass(cls parser.Class) ClassExport {
	out := ClassExport{
		Name:       cls.Name,
		Namespace:  namespaceOrGlobal(cls.Namespace),
		Line:       cls.Line,
		EndLine:    cls.EndLine,
		Final:      cls.Final,
		Abstract:   cls.Abstract,
		Extends:    cls.Extends,
		Implements: cls.Implements,
		Properties: []PropertyExport{},
		Methods:    []MethodExport{},
		Doc:        docOrEmpty(cls.Doc),
	}
	if out.Implements == nil {
		out.Implements = []string{}
	}

	for _, p := range cls.Properties {
		out.Properties = append(out.Properties, PropertyExport{
			Name:       p.Name,
			Line:       p.Line,
			EndLine:    p.EndLine,
			Default:    p.Default,
			Static:     p.Static,
			Visibility: p.Visibility,
			Doc:        docOrEmpty(p.Doc),
		})
	}

	for _, m := range cls.Methods {
		out.Methods = append(out.Methods, MethodExport{
			Name:    m.Name,
			Line:    m.Line,
			EndLine: m.EndLine,
			// Methods keep an empty namespace as-is rather than mapping it
			// to "global" like functions and classes do. Downstream
			// consumers rely on this difference.
			Namespace:  m.Namespace,
			Final:      m.Final,
			Abstract:   m.Abstract,
			Static:     m.Static,
			Visibility: m.Visibility,
			Arguments:  exportArguments(m.Arguments),
			Doc:        docOrEmpty(m.Doc),
		})
	}

	return out
}

func exportArguments(args []parser.Argument) []ArgumentExport {
	out := []ArgumentExport{}
	for _, a := range args {
		out = append(out, ArgumentExport{
			Name:    a.Name,
			Default: a.Default,
			Type:    a.Type,
		})
	}
	return out
}

// docOrEmpty guarantees the non-null docblock invariant: missing
// documentation exports as an empty record, never as null.
func docOrEmpty(doc *phpdoc.DocBlock) *phpdoc.DocBlock {
	if doc == nil {
		return phpdoc.Empty()
	}
	return doc
}

func namespaceOrGlobal(ns string) string {
	if ns == "" {
		return "global"
	}
	return ns
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
