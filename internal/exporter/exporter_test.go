package exporter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wp-hooks/parser/internal/parser"
)

// Test Plan for the exporter:
// - Paths are made relative to the declared project root
// - Missing docblocks export as empty records, never null
// - The hooks key is absent from the JSON when no hooks were found, and
//   present when at least one was
// - Functions and classes with no namespace export "global"; methods keep
//   the empty string
// - Empty entity lists serialize as [] rather than null
// - The full pipeline carries a dynamic hook name, its arguments, and its
//   docblock description through to the output record

func parseAndExport(t *testing.T, path, root, source string) FileExport {
	t.Helper()
	file, err := parser.New().ParseSource(context.Background(), path, []byte(source))
	require.NoError(t, err)
	return Export(file, root)
}

func TestExport_RelativePathAndRoot(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/project/wp-includes/post.php", "/project", `<?php`)

	assert.Equal(t, "wp-includes/post.php", out.Path)
	assert.Equal(t, "/project", out.Root)
}

func TestExport_MissingDocsAreEmptyRecords(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/p/f.php", "/p", `<?php
function undocumented() {}
`)

	require.NotNil(t, out.File)
	assert.Equal(t, "", out.File.Description)
	assert.NotNil(t, out.File.Tags)

	require.Len(t, out.Functions, 1)
	fn := out.Functions[0]
	require.NotNil(t, fn.Doc)
	assert.Equal(t, "", fn.Doc.Description)
	assert.Equal(t, "", fn.Doc.LongDescription)
	assert.Empty(t, fn.Doc.Tags)
}

func TestExport_HooksKeyOmittedWhenNoneFound(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/p/f.php", "/p", `<?php
function plain() {}
`)

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.NotContains(t, keys, "hooks")
	assert.Contains(t, keys, "includes")
	assert.Contains(t, keys, "constants")
	assert.Contains(t, keys, "functions")
	assert.Contains(t, keys, "classes")
}

func TestExport_HooksKeyPresentWhenFound(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/p/f.php", "/p", `<?php
do_action( 'init' );
`)

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Contains(t, keys, "hooks")

	require.Len(t, out.Hooks, 1)
	assert.Equal(t, "init", out.Hooks[0].Name)
	assert.Equal(t, "action", out.Hooks[0].Kind)
	assert.NotNil(t, out.Hooks[0].Arguments)
}

func TestExport_NamespaceDefaults(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/p/f.php", "/p", `<?php
function top_level() {}

class Bare {
	public function member() {}
}
`)

	require.Len(t, out.Functions, 1)
	assert.Equal(t, "global", out.Functions[0].Namespace)

	require.Len(t, out.Classes, 1)
	assert.Equal(t, "global", out.Classes[0].Namespace)

	require.Len(t, out.Classes[0].Methods, 1)
	assert.Equal(t, "", out.Classes[0].Methods[0].Namespace)
}

func TestExport_NamespacedEntities(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/p/f.php", "/p", `<?php
namespace Demo\Admin;

function boot() {}

class Screen {
	public function render() {}
}
`)

	require.Len(t, out.Functions, 1)
	assert.Equal(t, `Demo\Admin`, out.Functions[0].Namespace)
	require.Len(t, out.Classes, 1)
	assert.Equal(t, `Demo\Admin`, out.Classes[0].Namespace)
	assert.Equal(t, `Demo\Admin`, out.Classes[0].Methods[0].Namespace)
}

func TestExport_EmptyListsSerializeAsArrays(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/p/f.php", "/p", `<?php
class Empty_Class {}
`)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"includes":[]`)
	assert.Contains(t, s, `"constants":[]`)
	assert.Contains(t, s, `"functions":[]`)
	assert.Contains(t, s, `"implements":[]`)
	assert.Contains(t, s, `"properties":[]`)
	assert.Contains(t, s, `"methods":[]`)
	assert.NotContains(t, s, "null")
}

func TestExport_ClassShape(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/p/f.php", "/p", `<?php
abstract class Base extends Core implements Loggable {
	protected $level = 'info';

	abstract public function handle( $event );
}
`)

	require.Len(t, out.Classes, 1)
	cls := out.Classes[0]
	assert.True(t, cls.Abstract)
	assert.False(t, cls.Final)
	assert.Equal(t, "Core", cls.Extends)
	assert.Equal(t, []string{"Loggable"}, cls.Implements)

	require.Len(t, cls.Properties, 1)
	assert.Equal(t, "$level", cls.Properties[0].Name)
	assert.Equal(t, "'info'", cls.Properties[0].Default)
	assert.Equal(t, "protected", cls.Properties[0].Visibility)

	require.Len(t, cls.Methods, 1)
	m := cls.Methods[0]
	assert.Equal(t, "handle", m.Name)
	assert.True(t, m.Abstract)
	assert.Equal(t, "public", m.Visibility)
	require.Len(t, m.Arguments, 1)
	assert.Equal(t, "$event", m.Arguments[0].Name)
}

func TestExport_EndToEnd(t *testing.T) {
	t.Parallel()

	out := parseAndExport(t, "/p/events.php", "/p", `<?php
/** Fires the thing event. */
do_action( 'my_' . $thing . '_event', $a, $b );
`)

	require.Len(t, out.Hooks, 1)
	hook := out.Hooks[0]
	assert.Equal(t, "my_{$thing}_event", hook.Name)
	assert.Equal(t, "action", hook.Kind)
	assert.Equal(t, []string{"$a", "$b"}, hook.Arguments)
	require.NotNil(t, hook.Doc)
	assert.Equal(t, "Fires the thing event.", hook.Doc.Description)
}
