package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/filesystem"
	"github.com/arthur-debert/stencil/pkg/testutil"
	"github.com/arthur-debert/stencil/pkg/vars"
)

func TestRenderString(t *testing.T) {
	env := vars.Build("my-api", map[string]interface{}{"db": "postgres"})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple placeholder", "name = {{project_name}}", "name = my-api"},
		{"derived placeholder", "struct {{project_name_pascal_case}}", "struct MyApi"},
		{"several placeholders", "{{project_name}} uses {{db}}", "my-api uses postgres"},
		{"unknown stays literal", "value is {{unknown_var}}", "value is {{unknown_var}}"},
		{"no placeholders", "plain text", "plain text"},
		{"malformed braces stay literal", "{{not valid}} and {{", "{{not valid}} and {{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderString(tt.in, env))
		})
	}
}

func TestTargetName(t *testing.T) {
	env := vars.Build("my-api", nil)

	assert.Equal(t, "src/main.rs", TargetName("src/main.rs.template", env))
	assert.Equal(t, "src/main.rs", TargetName("src/main.rs", env))
	assert.Equal(t, "my-api/README.md", TargetName("{{project_name}}/README.md.template", env))
}

func TestIsTextLike(t *testing.T) {
	assert.True(t, IsTextLike("main.rs"))
	assert.True(t, IsTextLike("Cargo.toml"))
	assert.True(t, IsTextLike("Dockerfile"))
	assert.True(t, IsTextLike(".gitignore"))
	assert.True(t, IsTextLike("logo.png.template"))
	assert.False(t, IsTextLike("logo.png"))
	assert.False(t, IsTextLike("data.bin"))
}

func TestRenderFileSubstitutes(t *testing.T) {
	fsys := filesystem.NewMemory()
	env := vars.Build("my-api", nil)
	testutil.WriteFile(t, fsys, "/tpl/src/main.rs.template",
		"fn main() { println!(\"{{project_name}}\"); }")

	require.NoError(t, RenderFile(fsys, "/tpl/src/main.rs.template", "/out/src/main.rs.template", env))
	testutil.AssertFileContent(t, fsys, "/out/src/main.rs",
		"fn main() { println!(\"my-api\"); }")
}

func TestRenderFileCopiesBinaryVerbatim(t *testing.T) {
	fsys := filesystem.NewMemory()
	env := vars.Build("my-api", nil)
	payload := "\x89PNG {{project_name}} raw bytes"
	testutil.WriteFile(t, fsys, "/tpl/logo.png", payload)

	require.NoError(t, RenderFile(fsys, "/tpl/logo.png", "/out/logo.png", env))
	testutil.AssertFileContent(t, fsys, "/out/logo.png", payload)
}

func TestRenderFileOverwrites(t *testing.T) {
	fsys := filesystem.NewMemory()
	env := vars.Build("my-api", nil)
	testutil.WriteFile(t, fsys, "/tpl/README.md", "# {{project_name}}")
	testutil.WriteFile(t, fsys, "/out/README.md", "stale content")

	require.NoError(t, RenderFile(fsys, "/tpl/README.md", "/out/README.md", env))
	testutil.AssertFileContent(t, fsys, "/out/README.md", "# my-api")
}

func TestRenderFileMissingSource(t *testing.T) {
	fsys := filesystem.NewMemory()
	env := vars.Build("my-api", nil)

	err := RenderFile(fsys, "/tpl/absent.rs", "/out/absent.rs", env)
	require.Error(t, err)
	assert.Equal(t, errors.ErrSourceMissing, errors.GetErrorCode(err))
}

func TestRenderFileMarksScriptsExecutable(t *testing.T) {
	fsys := filesystem.NewMemory()
	env := vars.Build("my-api", nil)
	testutil.WriteFile(t, fsys, "/tpl/setup.sh", "#!/bin/sh\necho {{project_name}}")

	require.NoError(t, RenderFile(fsys, "/tpl/setup.sh", "/out/setup.sh", env))

	info, err := fsys.Stat("/out/setup.sh")
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0111, "script should carry the executable bit")
}

func TestRenderTree(t *testing.T) {
	fsys := filesystem.NewMemory()
	env := vars.Build("my-api", nil)
	testutil.WriteFile(t, fsys, "/tpl/template.json", `{}`)
	testutil.WriteFile(t, fsys, "/tpl/Cargo.toml", "name = \"{{project_name}}\"")
	testutil.WriteFile(t, fsys, "/tpl/src/main.rs", "// {{project_name}}")
	testutil.WriteFile(t, fsys, "/tpl/.git/HEAD", "ref: refs/heads/main")
	testutil.WriteFile(t, fsys, "/tpl/target/debug/junk", "build output")

	require.NoError(t, RenderTree(fsys, "/tpl", "/out", env))

	testutil.AssertFileContent(t, fsys, "/out/Cargo.toml", "name = \"my-api\"")
	testutil.AssertFileContent(t, fsys, "/out/src/main.rs", "// my-api")
	testutil.AssertFileNotExists(t, fsys, "/out/template.json")
	testutil.AssertFileNotExists(t, fsys, "/out/.git/HEAD")
	testutil.AssertFileNotExists(t, fsys, "/out/target/debug/junk")
}

func TestRenderTreeRendersDirectoryNames(t *testing.T) {
	fsys := filesystem.NewMemory()
	env := vars.Build("my-api", nil)
	testutil.WriteFile(t, fsys, "/tpl/{{project_name_snake_case}}/mod.rs", "pub fn hello() {}")

	require.NoError(t, RenderTree(fsys, "/tpl", "/out", env))
	testutil.AssertFileExists(t, fsys, "/out/my_api/mod.rs")
}

func TestIsScript(t *testing.T) {
	assert.True(t, IsScript("run.sh", []byte("echo hi")))
	assert.True(t, IsScript("run", []byte("#!/usr/bin/env python")))
	assert.False(t, IsScript("main.rs", []byte("fn main() {}")))
}
