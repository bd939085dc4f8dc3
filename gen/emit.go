package gen

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"
)

// Header is the first line of every generated file.
const Header = "// Code generated by endiangen. DO NOT EDIT."

var fileTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`{{.Header}}
{{if .Source}}// source: {{.Source}}
{{end}}
package {{.Package}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}{{quote .Path}}
{{- end}}
)
{{range .Impls}}
{{.Code}}{{end}}`))

// FileSpec describes one generated output file.
type FileSpec struct {
	// Package is the package clause of the output.
	Package string
	// Filename is used for import resolution and error messages.
	Filename string
	// Source names the input package, recorded in the header when set.
	Source string
	Impls  []*Impl
}

// Emit renders impls into a single formatted Go source file. The imports of
// every declaration are merged with io and the runtime package; unused ones
// are dropped by the formatter.
func (g *Generator) Emit(spec FileSpec) ([]byte, error) {
	data := struct {
		Header  string
		Source  string
		Package string
		Imports []Import
		Impls   []*Impl
	}{
		Header:  Header,
		Source:  spec.Source,
		Package: spec.Package,
		Imports: g.collectImports(spec.Impls),
		Impls:   spec.Impls,
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", spec.Filename, err)
	}

	out, err := imports.Process(spec.Filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", spec.Filename, err)
	}
	return out, nil
}

func (g *Generator) collectImports(impls []*Impl) []Import {
	seen := map[string]Import{
		"io":           {Path: "io"},
		g.opts.Runtime: {Path: g.opts.Runtime},
	}
	for _, impl := range impls {
		for _, imp := range impl.Decl.Imports {
			if _, ok := seen[imp.Path]; !ok {
				seen[imp.Path] = imp
			}
		}
	}

	list := make([]Import, 0, len(seen))
	for _, imp := range seen {
		list = append(list, imp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}
