package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the structural parser:
// - File docblock is the first top-level doc comment not claimed by code
// - Includes record kind, unquoted path, and line
// - Constants come from const declarations and define() calls in source order
// - Functions carry name, namespace, line range, parameters, and doc
// - Classes carry modifiers, extends, implements, properties, and methods
// - Property declarations share modifiers and doc across their elements
// - Namespace tracking covers both the braced and the semicolon form
// - Empty collections are non-nil so they serialize as empty arrays

func TestParser_FileDocBlock(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
/**
 * Core bootstrap for the plugin.
 *
 * @package Demo
 */

function demo_init() {}
`)

	require.NotNil(t, file.Doc)
	assert.Equal(t, "Core bootstrap for the plugin.", file.Doc.Description)
	require.Len(t, file.Doc.Tags, 1)
	assert.Equal(t, "package", file.Doc.Tags[0].Name)

	// Separated by a blank line, the comment belongs to the file, not the
	// function.
	require.Len(t, file.Functions, 1)
	assert.Nil(t, file.Functions[0].Doc)
}

func TestParser_AdjacentDocBelongsToDeclaration(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
/** Boots the plugin. */
function demo_init() {}
`)

	assert.Nil(t, file.Doc)
	require.Len(t, file.Functions, 1)
	require.NotNil(t, file.Functions[0].Doc)
	assert.Equal(t, "Boots the plugin.", file.Functions[0].Doc.Description)
}

func TestParser_Includes(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
require 'bootstrap.php';
require_once __DIR__ . '/lib/helpers.php';
include 'optional.php';
include_once 'optional-once.php';
`)

	require.Len(t, file.Includes, 4)
	assert.Equal(t, Include{Name: "bootstrap.php", Line: 2, Kind: "require"}, file.Includes[0])
	assert.Equal(t, "require_once", file.Includes[1].Kind)
	assert.Equal(t, "__DIR__ . '/lib/helpers.php'", file.Includes[1].Name)
	assert.Equal(t, Include{Name: "optional.php", Line: 4, Kind: "include"}, file.Includes[2])
	assert.Equal(t, Include{Name: "optional-once.php", Line: 5, Kind: "include_once"}, file.Includes[3])
}

func TestParser_Constants(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
const FIRST = 1;
define( 'SECOND', '2' );
const THIRD = 3, FOURTH = 4;
define( $dynamic, 5 );
`)

	require.Len(t, file.Constants, 5)
	assert.Equal(t, Constant{Name: "FIRST", Line: 2, Value: "1"}, file.Constants[0])
	assert.Equal(t, Constant{Name: "SECOND", Line: 3, Value: "'2'"}, file.Constants[1])
	assert.Equal(t, Constant{Name: "THIRD", Line: 4, Value: "3"}, file.Constants[2])
	assert.Equal(t, Constant{Name: "FOURTH", Line: 4, Value: "4"}, file.Constants[3])
	assert.Equal(t, Constant{Name: "$dynamic", Line: 5, Value: "5"}, file.Constants[4])
}

func TestParser_FunctionSignature(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
function register_type( string $name, array $args = array(), ...$extra ) {
	return $name;
}
`)

	require.Len(t, file.Functions, 1)
	fn := file.Functions[0]
	assert.Equal(t, "register_type", fn.Name)
	assert.Equal(t, "", fn.Namespace)
	assert.Equal(t, 2, fn.Line)
	assert.Equal(t, 4, fn.EndLine)

	require.Len(t, fn.Arguments, 3)
	assert.Equal(t, Argument{Name: "$name", Type: "string"}, fn.Arguments[0])
	assert.Equal(t, Argument{Name: "$args", Type: "array", Default: "array()"}, fn.Arguments[1])
	assert.Equal(t, "$extra", fn.Arguments[2].Name)
}

func TestParser_Class(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
/** Handles request routing. */
final class Router extends Dispatcher implements Countable, ArrayAccess {
	/** Registered routes. */
	protected static $routes = array(), $fallback;

	public $prefix = '/';

	/** Adds a route. */
	public function add( string $path, $handler ) {}

	abstract protected function match( $request );

	final public static function instance() {}
}
`)

	require.Len(t, file.Classes, 1)
	cls := file.Classes[0]
	assert.Equal(t, "Router", cls.Name)
	assert.True(t, cls.Final)
	assert.False(t, cls.Abstract)
	assert.Equal(t, "Dispatcher", cls.Extends)
	assert.Equal(t, []string{"Countable", "ArrayAccess"}, cls.Implements)
	require.NotNil(t, cls.Doc)
	assert.Equal(t, "Handles request routing.", cls.Doc.Description)

	require.Len(t, cls.Properties, 3)
	routes := cls.Properties[0]
	assert.Equal(t, "$routes", routes.Name)
	assert.Equal(t, "protected", routes.Visibility)
	assert.True(t, routes.Static)
	assert.Equal(t, "array()", routes.Default)
	require.NotNil(t, routes.Doc)
	assert.Equal(t, "Registered routes.", routes.Doc.Description)

	// The second element of the same declaration shares modifiers and doc.
	fallback := cls.Properties[1]
	assert.Equal(t, "$fallback", fallback.Name)
	assert.Equal(t, "protected", fallback.Visibility)
	assert.True(t, fallback.Static)
	assert.Equal(t, "", fallback.Default)
	assert.Equal(t, routes.Doc, fallback.Doc)

	prefix := cls.Properties[2]
	assert.Equal(t, "$prefix", prefix.Name)
	assert.Equal(t, "public", prefix.Visibility)
	assert.False(t, prefix.Static)
	assert.Equal(t, "'/'", prefix.Default)
	assert.Nil(t, prefix.Doc)

	require.Len(t, cls.Methods, 3)
	add := cls.Methods[0]
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, "public", add.Visibility)
	require.Len(t, add.Arguments, 2)
	assert.Equal(t, Argument{Name: "$path", Type: "string"}, add.Arguments[0])
	require.NotNil(t, add.Doc)
	assert.Equal(t, "Adds a route.", add.Doc.Description)

	match := cls.Methods[1]
	assert.Equal(t, "match", match.Name)
	assert.Equal(t, "protected", match.Visibility)
	assert.True(t, match.Abstract)

	instance := cls.Methods[2]
	assert.Equal(t, "instance", instance.Name)
	assert.True(t, instance.Static)
	assert.True(t, instance.Final)
	assert.Equal(t, "public", instance.Visibility)
}

func TestParser_MethodVisibilityDefaultsToPublic(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
class Legacy {
	function run() {}
}
`)

	require.Len(t, file.Classes, 1)
	require.Len(t, file.Classes[0].Methods, 1)
	assert.Equal(t, "public", file.Classes[0].Methods[0].Visibility)
}

func TestParser_NamespaceSemicolonForm(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
namespace Demo\Admin;

function boot() {}

class Screen {
	public function render() {}
}
`)

	require.Len(t, file.Functions, 1)
	assert.Equal(t, `Demo\Admin`, file.Functions[0].Namespace)
	require.Len(t, file.Classes, 1)
	assert.Equal(t, `Demo\Admin`, file.Classes[0].Namespace)
	require.Len(t, file.Classes[0].Methods, 1)
	assert.Equal(t, `Demo\Admin`, file.Classes[0].Methods[0].Namespace)
}

func TestParser_NamespaceBracedForm(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
namespace First {
	function alpha() {}
}
namespace Second {
	function beta() {}
}
namespace {
	function gamma() {}
}
`)

	require.Len(t, file.Functions, 3)
	assert.Equal(t, "First", file.Functions[0].Namespace)
	assert.Equal(t, "Second", file.Functions[1].Namespace)
	assert.Equal(t, "", file.Functions[2].Namespace)
}

func TestParser_EmptyFileHasEmptyCollections(t *testing.T) {
	t.Parallel()

	file := parsePHP(t, `<?php
`)

	assert.Nil(t, file.Doc)
	assert.NotNil(t, file.Includes)
	assert.Empty(t, file.Includes)
	assert.NotNil(t, file.Constants)
	assert.NotNil(t, file.Functions)
	assert.NotNil(t, file.Classes)
	assert.Nil(t, file.Hooks)
}

func TestParser_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ParseSource(ctx, "x.php", []byte(`<?php`))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParser_ParseFileMissing(t *testing.T) {
	t.Parallel()

	_, err := New().ParseFile(context.Background(), "testdata/does-not-exist.php")
	require.Error(t, err)
}

func TestParser_TemplateLoaderFixture(t *testing.T) {
	t.Parallel()

	file, err := New().ParseFile(context.Background(), "testdata/template-loader.php")
	require.NoError(t, err)

	require.NotNil(t, file.Doc)
	assert.Equal(t, "Loads the correct template based on the visitor's url.", file.Doc.Description)

	require.Len(t, file.Includes, 1)
	assert.Equal(t, "require_once", file.Includes[0].Kind)
	assert.Equal(t, "__DIR__ . '/template-functions.php'", file.Includes[0].Name)

	require.Len(t, file.Constants, 1)
	assert.Equal(t, "DEMO_TEMPLATE_VERSION", file.Constants[0].Name)
	assert.Equal(t, "'2.4.1'", file.Constants[0].Value)

	require.Len(t, file.Hooks, 4)

	redirect := file.Hooks[0]
	assert.Equal(t, "template_redirect", redirect.Name)
	assert.Equal(t, KindAction, redirect.Kind)
	assert.Equal(t, 17, redirect.Line)
	require.NotNil(t, redirect.Doc)
	assert.Equal(t, "Fires before the template loader runs.", redirect.Doc.Description)

	include := file.Hooks[1]
	assert.Equal(t, "template_include", include.Name)
	assert.Equal(t, KindFilter, include.Kind)
	assert.Equal(t, 26, include.Line)
	assert.Equal(t, []string{"$template"}, include.Arguments)
	require.NotNil(t, include.Doc)
	require.Len(t, include.Doc.Tags, 2)
	assert.Equal(t, "since", include.Doc.Tags[0].Name)
	assert.Equal(t, "$template", include.Doc.Tags[1].Variable)

	part := file.Hooks[2]
	assert.Equal(t, "get_template_part_{$slug}", part.Name)
	assert.Equal(t, []string{"$slug", "$args"}, part.Arguments)
	require.NotNil(t, part.Doc)
	assert.Equal(t, "Fires when a template part is loaded.", part.Doc.Description)

	registered := file.Hooks[3]
	assert.Equal(t, "demo_template_location_registered", registered.Name)
	assert.Equal(t, []string{"$path"}, registered.Arguments)
	assert.Nil(t, registered.Doc)

	require.Len(t, file.Functions, 1)
	fn := file.Functions[0]
	assert.Equal(t, "demo_locate_template", fn.Name)
	require.NotNil(t, fn.Doc)
	assert.Equal(t, "Resolves a template file for the given slug.", fn.Doc.Description)

	require.Len(t, file.Classes, 1)
	cls := file.Classes[0]
	assert.Equal(t, "Demo_Template_Loader", cls.Name)
	require.Len(t, cls.Properties, 1)
	assert.Equal(t, "$locations", cls.Properties[0].Name)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, "register", cls.Methods[0].Name)
}
