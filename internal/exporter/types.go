package exporter

import "github.com/wp-hooks/parser/internal/phpdoc"

// FileExport is the output record for one source file. Key order and
// presence semantics are the downstream compatibility surface: every list
// key is always present as an array except hooks, which is omitted entirely
// when the file dispatched none.
type FileExport struct {
	File      *phpdoc.DocBlock `json:"file"`
	Path      string           `json:"path"`
	Root      string           `json:"root"`
	Includes  []IncludeExport  `json:"includes"`
	Constants []ConstantExport `json:"constants"`
	Hooks     []HookExport     `json:"hooks,omitempty"`
	Functions []FunctionExport `json:"functions"`
	Classes   []ClassExport    `json:"classes"`
}

type IncludeExport struct {
	Name string `json:"name"`
	Line int    `json:"line"`
	Kind string `json:"kind"`
}

type ConstantExport struct {
	Name  string `json:"name"`
	Line  int    `json:"line"`
	Value string `json:"value"`
}

type HookExport struct {
	Name      string           `json:"name"`
	Line      int              `json:"line"`
	EndLine   int              `json:"end_line"`
	Kind      string           `json:"kind"`
	Arguments []string         `json:"arguments"`
	Doc       *phpdoc.DocBlock `json:"doc"`
}

type FunctionExport struct {
	Name      string           `json:"name"`
	Namespace string           `json:"namespace"`
	Line      int              `json:"line"`
	EndLine   int              `json:"end_line"`
	Arguments []ArgumentExport `json:"arguments"`
	Doc       *phpdoc.DocBlock `json:"doc"`
}

type ClassExport struct {
	Name       string           `json:"name"`
	Namespace  string           `json:"namespace"`
	Line       int              `json:"line"`
	EndLine    int              `json:"end_line"`
	Final      bool             `json:"final"`
	Abstract   bool             `json:"abstract"`
	Extends    string           `json:"extends"`
	Implements []string         `json:"implements"`
	Properties []PropertyExport `json:"properties"`
	Methods    []MethodExport   `json:"methods"`
	Doc        *phpdoc.DocBlock `json:"doc"`
}

type MethodExport struct {
	Name       string           `json:"name"`
	Namespace  string           `json:"namespace"`
	Line       int              `json:"line"`
	EndLine    int              `json:"end_line"`
	Final      bool             `json:"final"`
	Abstract   bool             `json:"abstract"`
	Static     bool             `json:"static"`
	Visibility string           `json:"visibility"`
	Arguments  []ArgumentExport `json:"arguments"`
	Doc        *phpdoc.DocBlock `json:"doc"`
}

type PropertyExport struct {
	Name       string           `json:"name"`
	Line       int              `json:"line"`
	EndLine    int              `json:"end_line"`
	Default    string           `json:"default,omitempty"`
	Static     bool             `json:"static"`
	Visibility string           `json:"visibility"`
	Doc        *phpdoc.DocBlock `json:"doc"`
}

type ArgumentExport struct {
	Name    string `json:"name"`
	Default string `json:"default,omitempty"`
	Type    string `json:"type,omitempty"`
}
