package parser

import "github.com/wp-hooks/parser/internal/phpdoc"

// HookKind classifies a detected hook dispatch call site.
type HookKind string

const (
	KindFilter           HookKind = "filter"
	KindFilterReference  HookKind = "filter_reference"
	KindFilterDeprecated HookKind = "filter_deprecated"
	KindAction           HookKind = "action"
	KindActionReference  HookKind = "action_reference"
	KindActionDeprecated HookKind = "action_deprecated"
)

// File is the parsed model of one PHP source file. All lists are in source
// order. Docblocks are parsed during the walk; a nil Doc means the entity had
// none.
type File struct {
	Path      string
	Doc       *phpdoc.DocBlock
	Includes  []Include
	Constants []Constant
	Hooks     []Hook
	Functions []Function
	Classes   []Class
}

// Include is one include/require statement.
type Include struct {
	Name string
	Line int
	Kind string // include, include_once, require, require_once
}

// Constant is a top-level constant from a const declaration or define() call.
type Constant struct {
	Name  string
	Line  int
	Value string
}

// Hook is one detected hook dispatch call site.
type Hook struct {
	Name      string
	Line      int
	EndLine   int
	Kind      HookKind
	Arguments []string // verbatim source text, excluding the name argument
	Doc       *phpdoc.DocBlock
}

// Function is a top-level function definition.
type Function struct {
	Name      string
	Namespace string
	Line      int
	EndLine   int
	Arguments []Argument
	Doc       *phpdoc.DocBlock
}

// Class is a class declaration with its members.
type Class struct {
	Name       string
	Namespace  string
	Line       int
	EndLine    int
	Final      bool
	Abstract   bool
	Extends    string
	Implements []string
	Properties []Property
	Methods    []Method
	Doc        *phpdoc.DocBlock
}

// Method is a method declaration inside a class.
type Method struct {
	Name       string
	Namespace  string
	Line       int
	EndLine    int
	Final      bool
	Abstract   bool
	Static     bool
	Visibility string
	Arguments  []Argument
	Doc        *phpdoc.DocBlock
}

// Property is a class property. Name keeps the $ sigil.
type Property struct {
	Name       string
	Line       int
	EndLine    int
	Default    string
	Static     bool
	Visibility string
	Doc        *phpdoc.DocBlock
}

// Argument is one declared parameter of a function or method.
type Argument struct {
	Name    string
	Default string
	Type    string
}
