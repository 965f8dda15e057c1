package parser

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wp-hooks/parser/internal/phpdoc"
)

// hookKinds maps the six recognized dispatch functions to their kinds. The
// mapping is total; no other callee ever produces a hook.
var hookKinds = map[string]HookKind{
	"apply_filters":            KindFilter,
	"apply_filters_ref_array":  KindFilterReference,
	"apply_filters_deprecated": KindFilterDeprecated,
	"do_action":                KindAction,
	"do_action_ref_array":      KindActionReference,
	"do_action_deprecated":     KindActionDeprecated,
}

// collectStatements runs the statement-level extractors over the whole tree:
// hook detection, include/require statements, and define() constants.
func (w *walker) collectStatements(node *sitter.Node) error {
	if node.Kind() == "expression_statement" {
		if err := w.handleStatement(node); err != nil {
			return err
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if err := w.collectStatements(node.Child(uint(i))); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) handleStatement(stmt *sitter.Node) error {
	expr := firstNamedChild(stmt)
	if expr == nil {
		return nil
	}

	switch expr.Kind() {
	case "include_expression", "include_once_expression",
		"require_expression", "require_once_expression":
		w.addInclude(expr)
		return nil

	case "function_call_expression":
		return w.handleCall(stmt, expr)

	case "assignment_expression":
		// A call wrapped in exactly one assignment still counts:
		// $value = apply_filters( ... );
		if right := expr.ChildByFieldName("right"); right != nil && right.Kind() == "function_call_expression" {
			return w.handleCall(stmt, right)
		}
	}
	return nil
}

// handleCall inspects a call in statement position. Only calls through a
// simple name match; method calls and dynamic callees never do.
func (w *walker) handleCall(stmt, call *sitter.Node) error {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Kind() != "name" {
		return nil
	}
	name := w.text(callee)

	if kind, ok := hookKinds[name]; ok {
		return w.addHook(stmt, call, name, kind)
	}
	if name == "define" {
		w.addDefine(call)
	}
	return nil
}

func (w *walker) addHook(stmt, call *sitter.Node, callee string, kind HookKind) error {
	args := w.callArguments(call)
	if len(args) == 0 {
		// All six dispatch functions require a name argument; a match we
		// cannot extract from is a parse failure, not a skip.
		return fmt.Errorf("%s call on line %d is missing its hook name argument", callee, startLine(call))
	}

	hook := Hook{
		Name:      NormalizeHookName(args[0]),
		Line:      startLine(call),
		EndLine:   endLine(call),
		Kind:      kind,
		Arguments: args[1:],
		Doc:       w.statementDoc(stmt),
	}

	w.file.Hooks = append(w.file.Hooks, hook)
	return nil
}

func (w *walker) addInclude(expr *sitter.Node) {
	name := ""
	if target := firstNamedChild(expr); target != nil {
		name = w.text(target)
		if literalNameRe.MatchString(name) {
			name = unquote(name)
		}
	}
	w.file.Includes = append(w.file.Includes, Include{
		Name: name,
		Line: startLine(expr),
		Kind: strings.TrimSuffix(expr.Kind(), "_expression"),
	})
}

// addDefine records a define() call as a constant declaration.
func (w *walker) addDefine(call *sitter.Node) {
	args := w.callArguments(call)
	if len(args) == 0 {
		return
	}
	name := args[0]
	if literalNameRe.MatchString(name) {
		name = unquote(name)
	}
	c := Constant{
		Name: name,
		Line: startLine(call),
	}
	if len(args) > 1 {
		c.Value = args[1]
	}
	w.file.Constants = append(w.file.Constants, c)
}

// callArguments returns the verbatim source text of each positional argument.
func (w *walker) callArguments(call *sitter.Node) []string {
	args := []string{}
	argsNode := call.ChildByFieldName("arguments")
	if argsNode == nil {
		return args
	}
	for i := 0; i < int(argsNode.ChildCount()); i++ {
		if child := argsNode.Child(uint(i)); child.Kind() == "argument" {
			args = append(args, w.text(child))
		}
	}
	return args
}

// statementDoc returns the doc comment directly above a statement, if any.
func (w *walker) statementDoc(stmt *sitter.Node) *phpdoc.DocBlock {
	prev := stmt.PrevNamedSibling()
	if prev == nil || prev.Kind() != "comment" {
		return nil
	}
	text := w.text(prev)
	if !strings.HasPrefix(text, "/**") {
		return nil
	}
	if stmt.StartPosition().Row > prev.EndPosition().Row+1 {
		return nil
	}
	return phpdoc.Parse(text)
}
