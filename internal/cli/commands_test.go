package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/apiscaffold/internal/engine"
)

// resetFlags restores every flag to its default and redirects output to a
// buffer. Cobra keeps flag state between Execute calls on the same tree.
func resetFlags(t *testing.T) *bytes.Buffer {
	t.Helper()

	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	createCmd.Flags().VisitAll(reset)
	templatesCmd.Flags().VisitAll(reset)

	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

// setupTestEnv points APISCAFFOLD_HOME at a temp directory holding one
// template and returns the home and a fresh work directory.
func setupTestEnv(t *testing.T) (home, work string) {
	t.Helper()

	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("APISCAFFOLD_HOME", home)
	for _, key := range []string{"TEMPLATES_DIR", "PACKAGE_MANAGER", "SKIP_INSTALL", "SKIP_GIT", "VERBOSE"} {
		t.Setenv("APISCAFFOLD_"+key, "")
		require.NoError(t, os.Unsetenv("APISCAFFOLD_"+key))
	}

	files := map[string]string{
		"@express.vanilla/template.yaml":                           "name: Express\ndescription: Plain express server\ndefault_language: typescript\n",
		"@express.vanilla/typescript/base/src/index.ts":            "const app = express();\n// @routes\n",
		"@express.vanilla/typescript/base/@dependencies.json":      `{"dependencies":["express"],"devDependencies":["typescript"]}`,
		"@express.vanilla/typescript/sequelize/src/db.ts":          "export {};\n",
		"@express.vanilla/typescript/sequelize/@inserts.json":      `[{"file":"src/index.ts","inserts":[{"position":"after","search":"// @routes","content":"connect();"}]}]`,
		"@express.vanilla/typescript/sequelize/@dependencies.json": `{"dependencies":["sequelize"],"devDependencies":[]}`,
	}
	for rel, content := range files {
		path := filepath.Join(home, "templates", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return home, work
}

func run(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestTemplatesCommand_Empty(t *testing.T) {
	buf := resetFlags(t)
	t.Setenv("APISCAFFOLD_HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "missing")

	require.NoError(t, run("templates", "--json", "--templates-dir", missing))
	assert.JSONEq(t, "[]", buf.String())
	assert.NoDirExists(t, missing)
}

func TestTemplatesCommand_SeedsBuiltinCatalog(t *testing.T) {
	buf := resetFlags(t)
	home := t.TempDir()
	t.Setenv("APISCAFFOLD_HOME", home)
	t.Setenv("APISCAFFOLD_TEMPLATES_DIR", "")
	require.NoError(t, os.Unsetenv("APISCAFFOLD_TEMPLATES_DIR"))

	require.NoError(t, run("templates", "--json"))

	var templates []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &templates))
	require.Len(t, templates, 1)
	assert.Equal(t, "@express.vanilla", templates[0]["id"])
	assert.DirExists(t, filepath.Join(home, "templates", "@express.vanilla", "typescript", "sequelize"))
}

func TestCreateCommand_BuiltinTemplate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("APISCAFFOLD_HOME", home)
	for _, key := range []string{"TEMPLATES_DIR", "PACKAGE_MANAGER", "SKIP_INSTALL", "SKIP_GIT", "VERBOSE"} {
		t.Setenv("APISCAFFOLD_"+key, "")
		require.NoError(t, os.Unsetenv("APISCAFFOLD_"+key))
	}
	buf := resetFlags(t)
	dest := filepath.Join(t.TempDir(), "app")

	require.NoError(t, run("create", dest,
		"-t", "express.vanilla", "-f", "sequelize",
		"--db-type", "sqlite", "--skip-install", "--skip-git", "--json"))

	var result engine.CreateResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "typescript", result.Language)
	assert.Contains(t, result.Assembly.Deps.Dependencies, "sequelize")

	server, err := os.ReadFile(filepath.Join(dest, "src", "server.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(server), "// @imports\nimport { connect } from \"./services/db.service\";")
	assert.Contains(t, string(server), "        // @services\n        connect()")

	assert.FileExists(t, filepath.Join(dest, ".gitignore"))
	assert.FileExists(t, filepath.Join(dest, ".env"))
	assert.NoFileExists(t, filepath.Join(dest, "src", "@inserts.json"))
}

func TestTemplatesCommand(t *testing.T) {
	setupTestEnv(t)

	t.Run("table", func(t *testing.T) {
		buf := resetFlags(t)
		require.NoError(t, run("templates"))
		assert.Contains(t, buf.String(), "@express.vanilla")
		assert.Contains(t, buf.String(), "sequelize")
		assert.Contains(t, buf.String(), "Plain express server")
	})

	t.Run("json", func(t *testing.T) {
		buf := resetFlags(t)
		require.NoError(t, run("templates", "--json"))

		var templates []map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &templates))
		require.Len(t, templates, 1)
		assert.Equal(t, "@express.vanilla", templates[0]["id"])
	})
}

func TestCreateCommand_DryRun(t *testing.T) {
	_, work := setupTestEnv(t)
	buf := resetFlags(t)
	dest := filepath.Join(work, "app")

	require.NoError(t, run("create", dest, "-t", "express.vanilla", "-f", "sequelize", "--dry-run", "--json"))

	var result engine.CreateResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.True(t, result.DryRun)
	assert.Equal(t, "typescript", result.Language)
	require.Len(t, result.Roots, 2)
	assert.Equal(t, "feature:sequelize", result.Roots[1].Layer)
	assert.NoDirExists(t, dest)
}

func TestCreateCommand_WritesProject(t *testing.T) {
	_, work := setupTestEnv(t)
	buf := resetFlags(t)
	dest := filepath.Join(work, "app")

	require.NoError(t, run("create", dest,
		"--template", "@express.vanilla",
		"--feature", "sequelize",
		"--db-type", "postgres", "--db-database", "shop",
		"--skip-install", "--skip-git", "--json"))

	var result engine.CreateResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.False(t, result.Installed)
	assert.False(t, result.GitInitialized)
	assert.Contains(t, result.Checksums, "src/index.ts")

	index, err := os.ReadFile(filepath.Join(dest, "src", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "const app = express();\n// @routes\nconnect();\n", string(index))

	env, err := os.ReadFile(filepath.Join(dest, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "DB_PORT=5432")
	assert.Contains(t, string(env), `DB_DATABASE="shop"`)

	assert.NoFileExists(t, filepath.Join(dest, "@inserts.json"))
	assert.NoFileExists(t, filepath.Join(dest, "@dependencies.json"))
}

func TestCreateCommand_HumanOutput(t *testing.T) {
	_, work := setupTestEnv(t)
	buf := resetFlags(t)
	dest := filepath.Join(work, "app")

	require.NoError(t, run("create", dest, "-t", "express.vanilla", "--skip-install", "--skip-git", "--verbose"))

	output := buf.String()
	assert.Contains(t, output, "variant")
	assert.Contains(t, output, "src/index.ts")
	assert.Contains(t, output, "1 created, 0 replaced, 0 patched")
	assert.Contains(t, output, "Dependencies were not installed")
	assert.Contains(t, output, "Created project in")
}

func TestCreateCommand_SettingsFromConfigFile(t *testing.T) {
	home, work := setupTestEnv(t)
	buf := resetFlags(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("skip_install: true\nskip_git: true\n"), 0644))

	require.NoError(t, run("create", filepath.Join(work, "app"), "-t", "express.vanilla", "--json"))

	var result engine.CreateResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.False(t, result.Installed)
	assert.False(t, result.GitInitialized)
}

func TestCreateCommand_Errors(t *testing.T) {
	_, work := setupTestEnv(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown template", []string{"create", filepath.Join(work, "a"), "-t", "nope", "--skip-install", "--skip-git"}, engine.ErrNotFound},
		{"unknown feature", []string{"create", filepath.Join(work, "b"), "-t", "express.vanilla", "-f", "graphql", "--skip-git"}, engine.ErrNotFound},
		{"database without sequelize", []string{"create", filepath.Join(work, "c"), "-t", "express.vanilla", "--db-type", "sqlite", "--skip-git"}, engine.ErrValidation},
		{"unsupported package manager", []string{"create", filepath.Join(work, "d"), "-t", "express.vanilla", "-p", "bun"}, engine.ErrValidation},
		{"non-empty destination", []string{"create", work, "-t", "express.vanilla", "--skip-install", "--skip-git"}, engine.ErrConflict},
	}

	require.NoError(t, os.WriteFile(filepath.Join(work, "existing.txt"), []byte("x"), 0644))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			err := run(tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}

	t.Run("missing template flag", func(t *testing.T) {
		resetFlags(t)
		err := run("create", filepath.Join(work, "e"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "template")
	})

	t.Run("missing directory", func(t *testing.T) {
		resetFlags(t)
		assert.Error(t, run("create", "-t", "express.vanilla"))
	})
}

func TestFormatError(t *testing.T) {
	got := FormatError(os.ErrNotExist)
	if !strings.Contains(got, "Error:") || !strings.Contains(got, os.ErrNotExist.Error()) {
		t.Errorf("FormatError() = %q", got)
	}
}

func TestOutputJSON(t *testing.T) {
	buf := resetFlags(t)

	if err := outputJSON(map[string]string{"test": "value"}); err != nil {
		t.Fatalf("outputJSON() error = %v", err)
	}

	var v map[string]string
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Fatalf("outputJSON() produced invalid JSON: %v", err)
	}
	if v["test"] != "value" {
		t.Errorf("unexpected JSON: %v", v)
	}
}

func TestPrintFunctions(t *testing.T) {
	buf := resetFlags(t)

	PrintSection("Section")
	PrintSuccess("Success message")
	PrintWarning("Warning message")
	PrintEntry("created", "src/index.ts")
	PrintTable([]string{"A", "B"}, [][]string{{"1", "2"}})
	PrintEmptyState("nothing")

	for _, want := range []string{"Section", "Success message", "Warning message", "src/index.ts", "nothing"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q: %q", want, buf.String())
		}
	}

	if got := PrintCount(1, "layer", "layers"); got != "1 layer" {
		t.Errorf("PrintCount(1) = %q", got)
	}
	if got := PrintCount(3, "layer", "layers"); got != "3 layers" {
		t.Errorf("PrintCount(3) = %q", got)
	}
}
