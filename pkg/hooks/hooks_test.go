package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stencil/pkg/filesystem"
	"github.com/arthur-debert/stencil/pkg/testutil"
	"github.com/arthur-debert/stencil/pkg/types"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		template string
		want     Kind
	}{
		{"server/axum", KindServer},
		{"client/leptos", KindClient},
		{"embedded/rp2040", KindEmbedded},
		{"data-science/burn", KindDataScience},
		{"data-science", KindDataScience},
		{"minimal", KindGeneric},
		{"unknown/thing", KindGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.template), "template %q", tt.template)
	}
}

func TestRunDispatchesByKind(t *testing.T) {
	fsys := filesystem.NewMemory()
	r := &Registry{fs: fsys, patches: make(map[Kind][]Patch)}

	var ran []string
	r.Register(KindServer, func(fsys types.FS, targetDir string) error {
		ran = append(ran, "first:"+targetDir)
		return nil
	}, func(fsys types.FS, targetDir string) error {
		ran = append(ran, "second:"+targetDir)
		return nil
	})

	require.NoError(t, r.Run("server/axum", "/out"))
	assert.Equal(t, []string{"first:/out", "second:/out"}, ran, "patches run in registration order")

	ran = nil
	require.NoError(t, r.Run("minimal", "/out"))
	assert.Empty(t, ran, "kinds without patches are a no-op")
}

func TestNormalizeWorkspaceManifest(t *testing.T) {
	fsys := filesystem.NewMemory()
	testutil.WriteFile(t, fsys, "/out/Cargo.toml", `[package]
name = "model"
edition.workspace = true
version.workspace = true
license.workspace = true

[dependencies]
burn = { workspace = true }
serde = "1.0"
`)

	require.NoError(t, NormalizeWorkspaceManifest(fsys, "/out"))

	got := testutil.ReadFile(t, fsys, "/out/Cargo.toml")
	assert.Contains(t, got, `edition = "2021"`)
	assert.Contains(t, got, `version = "0.1.0"`)
	assert.Contains(t, got, `license = "MIT"`)
	assert.Contains(t, got, `burn = { version = "1.0" }`)
	assert.Contains(t, got, `serde = "1.0"`)
	assert.NotContains(t, got, "workspace = true")
}

func TestNormalizeWorkspaceManifestNoManifest(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/out", 0755))
	assert.NoError(t, NormalizeWorkspaceManifest(fsys, "/out"))
}

func TestFixDeprecatedDeviceInit(t *testing.T) {
	fsys := filesystem.NewMemory()
	testutil.WriteFile(t, fsys, "/out/src/main.rs",
		"let device = MyBackend::default_device();\n")
	testutil.WriteFile(t, fsys, "/out/src/train.rs",
		"fn train() { let d = Wgpu::default_device(); }\n")
	testutil.WriteFile(t, fsys, "/out/README.md",
		"call MyBackend::default_device() to pick a device\n")

	require.NoError(t, FixDeprecatedDeviceInit(fsys, "/out"))

	testutil.AssertFileContent(t, fsys, "/out/src/main.rs",
		"let device = MyBackend::Device::default();\n")
	testutil.AssertFileContent(t, fsys, "/out/src/train.rs",
		"fn train() { let d = Wgpu::Device::default(); }\n")
	testutil.AssertFileContent(t, fsys, "/out/README.md",
		"call MyBackend::default_device() to pick a device\n")
}

func TestRegistryBuiltins(t *testing.T) {
	fsys := filesystem.NewMemory()
	testutil.WriteFile(t, fsys, "/out/Cargo.toml", "edition.workspace = true\n")
	testutil.WriteFile(t, fsys, "/out/src/main.rs", "let d = B::default_device();\n")

	r := NewRegistry(fsys)
	require.NoError(t, r.Run("data-science/burn", "/out"))

	assert.Contains(t, testutil.ReadFile(t, fsys, "/out/Cargo.toml"), `edition = "2021"`)
	testutil.AssertFileContent(t, fsys, "/out/src/main.rs", "let d = B::Device::default();\n")
}
