// Package parser turns PHP source files into a structured file model:
// includes, constants, functions, classes with their members, and hook
// dispatch call sites, each with an attached docblock where one exists.
package parser

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/wp-hooks/parser/internal/phpdoc"
)

// Parser parses PHP files. It is safe for reuse across files; each parse
// creates its own tree-sitter parser instance.
type Parser struct {
	language *sitter.Language
}

// New creates a PHP parser.
func New() *Parser {
	return &Parser{language: sitter.NewLanguage(php.LanguagePHP())}
}

// ParseFile reads and parses a PHP source file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.ParseSource(ctx, path, source)
}

// ParseSource parses PHP source held in memory. The path is recorded on the
// returned model but not accessed.
func (p *Parser) ParseSource(ctx context.Context, path string, source []byte) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	defer tsParser.Close()

	tsParser.SetLanguage(p.language)

	tree := tsParser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse php file: %s", path)
	}
	defer tree.Close()

	file := &File{
		Path:      path,
		Includes:  []Include{},
		Constants: []Constant{},
		Functions: []Function{},
		Classes:   []Class{},
	}

	w := &walker{file: file, source: source}
	root := tree.RootNode()

	w.collectDeclarations(root, true)
	if err := w.collectStatements(root); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// define() constants come out of the statement pass; restore source order
	// across both constant sources.
	sort.SliceStable(file.Constants, func(i, j int) bool {
		return file.Constants[i].Line < file.Constants[j].Line
	})

	return file, nil
}

// walker carries the per-parse state: the file model under construction, the
// raw source for text extraction, and namespace tracking.
type walker struct {
	file      *File
	source    []byte
	namespace string

	// topDocCount counts doc comments seen at the top level; the first one
	// that ends up attached to nothing becomes the file docblock.
	topDocCount int
}

// pendingDoc is a doc comment waiting to be claimed by the next declaration.
type pendingDoc struct {
	text   string
	endRow uint
	seq    int // ordinal among top-level doc comments, -1 inside bodies
}

// collectDeclarations walks one statement scope (the program or a namespace
// body) and records functions, classes, and const declarations. Doc comments
// attach to the directly following node; at the top level, the first doc
// comment left unclaimed becomes the file docblock.
func (w *walker) collectDeclarations(scope *sitter.Node, topLevel bool) {
	var pending *pendingDoc

	for i := 0; i < int(scope.ChildCount()); i++ {
		child := scope.Child(uint(i))

		if child.Kind() == "comment" {
			text := w.text(child)
			if strings.HasPrefix(text, "/**") {
				w.releaseDoc(pending)
				pending = w.newPendingDoc(child, topLevel)
			}
			continue
		}
		if !child.IsNamed() {
			continue
		}

		doc := w.claimDoc(&pending, child)

		switch child.Kind() {
		case "namespace_definition":
			name := ""
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				name = w.text(nameNode)
			}
			if body := child.ChildByFieldName("body"); body != nil {
				prev := w.namespace
				w.namespace = name
				w.collectDeclarations(body, topLevel)
				w.namespace = prev
			} else {
				w.namespace = name
			}

		case "function_definition":
			w.addFunction(child, doc)

		case "class_declaration":
			w.addClass(child, doc)

		case "const_declaration":
			w.addConstants(child)
		}
	}

	w.releaseDoc(pending)
}

func (w *walker) newPendingDoc(comment *sitter.Node, topLevel bool) *pendingDoc {
	seq := -1
	if topLevel {
		seq = w.topDocCount
		w.topDocCount++
	}
	return &pendingDoc{
		text:   w.text(comment),
		endRow: comment.EndPosition().Row,
		seq:    seq,
	}
}

// claimDoc hands the pending doc comment to node when it directly precedes
// it, releasing it otherwise. Claiming consumes the comment even when the
// node turns out not to be a declaration we model, so a hook statement's doc
// never leaks into the file docblock.
func (w *walker) claimDoc(pending **pendingDoc, node *sitter.Node) *phpdoc.DocBlock {
	p := *pending
	if p == nil {
		return nil
	}
	*pending = nil
	if node.StartPosition().Row <= p.endRow+1 {
		return phpdoc.Parse(p.text)
	}
	w.releaseDoc(p)
	return nil
}

// releaseDoc disposes of an unclaimed doc comment. The first top-level doc
// comment in the file that nothing claimed is the file docblock.
func (w *walker) releaseDoc(p *pendingDoc) {
	if p == nil {
		return
	}
	if p.seq == 0 && w.file.Doc == nil {
		w.file.Doc = phpdoc.Parse(p.text)
	}
}

func (w *walker) addFunction(node *sitter.Node, doc *phpdoc.DocBlock) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	w.file.Functions = append(w.file.Functions, Function{
		Name:      w.text(nameNode),
		Namespace: w.namespace,
		Line:      startLine(node),
		EndLine:   endLine(node),
		Arguments: w.parameters(node),
		Doc:       doc,
	})
}

func (w *walker) addClass(node *sitter.Node, doc *phpdoc.DocBlock) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	cls := Class{
		Name:       w.text(nameNode),
		Namespace:  w.namespace,
		Line:       startLine(node),
		EndLine:    endLine(node),
		Implements: []string{},
		Properties: []Property{},
		Methods:    []Method{},
		Doc:        doc,
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "final_modifier":
			cls.Final = true
		case "abstract_modifier":
			cls.Abstract = true
		case "base_clause":
			if parent := firstTypeName(child); parent != nil {
				cls.Extends = w.text(parent)
			}
		case "class_interface_clause":
			for j := 0; j < int(child.ChildCount()); j++ {
				if iface := child.Child(uint(j)); isTypeName(iface) {
					cls.Implements = append(cls.Implements, w.text(iface))
				}
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		w.collectMembers(body, &cls)
	}

	w.file.Classes = append(w.file.Classes, cls)
}

// collectMembers walks a class body declaration list, applying the same doc
// comment adjacency rule as the top level. Class constants are not part of
// the file model and are skipped.
func (w *walker) collectMembers(body *sitter.Node, cls *Class) {
	var pending *pendingDoc

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))

		if child.Kind() == "comment" {
			if text := w.text(child); strings.HasPrefix(text, "/**") {
				pending = w.newPendingDoc(child, false)
			}
			continue
		}
		if !child.IsNamed() {
			continue
		}

		doc := w.claimDoc(&pending, child)

		switch child.Kind() {
		case "method_declaration":
			w.addMethod(child, cls, doc)
		case "property_declaration":
			w.addProperties(child, cls, doc)
		}
	}
}

func (w *walker) addMethod(node *sitter.Node, cls *Class, doc *phpdoc.DocBlock) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	m := Method{
		Name:       w.text(nameNode),
		Namespace:  w.namespace,
		Line:       startLine(node),
		EndLine:    endLine(node),
		Visibility: "public",
		Arguments:  w.parameters(node),
		Doc:        doc,
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "visibility_modifier":
			m.Visibility = w.text(child)
		case "static_modifier":
			m.Static = true
		case "final_modifier":
			m.Final = true
		case "abstract_modifier":
			m.Abstract = true
		}
	}

	cls.Methods = append(cls.Methods, m)
}

func (w *walker) addProperties(node *sitter.Node, cls *Class, doc *phpdoc.DocBlock) {
	visibility := "public"
	static := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "visibility_modifier":
			visibility = w.text(child)
		case "static_modifier":
			static = true
		}
	}

	// One declaration may introduce several properties; the docblock and
	// modifiers apply to each.
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "property_element" {
			continue
		}
		nameNode := findChildByKind(child, "variable_name")
		if nameNode == nil {
			continue
		}
		prop := Property{
			Name:       w.text(nameNode),
			Line:       startLine(child),
			EndLine:    endLine(child),
			Static:     static,
			Visibility: visibility,
			Doc:        doc,
		}
		if def := lastNamedChild(child); def != nil && def.Id() != nameNode.Id() {
			prop.Default = w.text(def)
		}
		cls.Properties = append(cls.Properties, prop)
	}
}

func (w *walker) addConstants(node *sitter.Node) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "const_element" {
			continue
		}
		nameNode := findChildByKind(child, "name")
		if nameNode == nil {
			continue
		}
		c := Constant{
			Name: w.text(nameNode),
			Line: startLine(child),
		}
		if value := lastNamedChild(child); value != nil && value.Id() != nameNode.Id() {
			c.Value = w.text(value)
		}
		w.file.Constants = append(w.file.Constants, c)
	}
}

// parameters extracts the declared parameter list of a function or method.
func (w *walker) parameters(fn *sitter.Node) []Argument {
	args := []Argument{}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return args
	}

	for i := 0; i < int(params.ChildCount()); i++ {
		child := params.Child(uint(i))
		switch child.Kind() {
		case "simple_parameter", "variadic_parameter", "property_promotion_parameter":
		default:
			continue
		}

		arg := Argument{}
		if nameNode := child.ChildByFieldName("name"); nameNode != nil {
			arg.Name = w.text(nameNode)
		}
		if typeNode := child.ChildByFieldName("type"); typeNode != nil {
			arg.Type = w.text(typeNode)
		}
		if defNode := child.ChildByFieldName("default_value"); defNode != nil {
			arg.Default = w.text(defNode)
		}
		args = append(args, arg)
	}
	return args
}

// text extracts the source text of a node.
func (w *walker) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(w.source[node.StartByte():node.EndByte()])
}

func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

func endLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// findChildByKind finds the first child node with the given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(uint(i)); child.Kind() == kind {
			return child
		}
	}
	return nil
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(uint(i)); child.IsNamed() {
			return child
		}
	}
	return nil
}

func lastNamedChild(node *sitter.Node) *sitter.Node {
	for i := int(node.ChildCount()) - 1; i >= 0; i-- {
		if child := node.Child(uint(i)); child.IsNamed() {
			return child
		}
	}
	return nil
}

func firstTypeName(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(uint(i)); isTypeName(child) {
			return child
		}
	}
	return nil
}

func isTypeName(node *sitter.Node) bool {
	kind := node.Kind()
	return kind == "name" || kind == "qualified_name"
}
