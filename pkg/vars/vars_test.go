package vars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDerivedNames(t *testing.T) {
	tests := []struct {
		name        string
		projectName string
		pascal      string
		snake       string
		kebab       string
	}{
		{
			name:        "mixed separators",
			projectName: "My-Cool App",
			pascal:      "MyCoolApp",
			snake:       "My_Cool App",
			kebab:       "My-Cool App",
		},
		{
			name:        "kebab name",
			projectName: "my-api",
			pascal:      "MyApi",
			snake:       "my_api",
			kebab:       "my-api",
		},
		{
			name:        "snake name",
			projectName: "data_pipeline",
			pascal:      "DataPipeline",
			snake:       "data_pipeline",
			kebab:       "data-pipeline",
		},
		{
			name:        "single word",
			projectName: "demo",
			pascal:      "Demo",
			snake:       "demo",
			kebab:       "demo",
		},
		{
			name:        "digits stay in runs",
			projectName: "web3-app",
			pascal:      "Web3App",
			snake:       "web3_app",
			kebab:       "web3-app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Build(tt.projectName, nil)

			got := func(key string) string {
				s, ok := env.String(key)
				assert.True(t, ok, "expected %s to be set", key)
				return s
			}
			assert.Equal(t, tt.projectName, got("project_name"))
			assert.Equal(t, tt.pascal, got("project_name_pascal_case"))
			assert.Equal(t, tt.snake, got("project_name_snake_case"))
			assert.Equal(t, tt.kebab, got("project_name_kebab_case"))
		})
	}
}

func TestBuildOverridesWin(t *testing.T) {
	env := Build("demo", map[string]interface{}{
		"project_name_pascal_case": "Forced",
		"db":                       "postgres",
	})

	pascal, _ := env.String("project_name_pascal_case")
	assert.Equal(t, "Forced", pascal, "overrides beat derived names")

	db, ok := env.String("db")
	assert.True(t, ok)
	assert.Equal(t, "postgres", db)
}

func TestLookupMiss(t *testing.T) {
	env := Build("demo", nil)

	_, ok := env.Lookup("feature_x")
	assert.False(t, ok)
	assert.False(t, env.Has("feature_x"))

	s, ok := env.String("feature_x")
	assert.False(t, ok)
	assert.Empty(t, s)
}

func TestStringFormatsValues(t *testing.T) {
	env := Build("demo", map[string]interface{}{
		"enabled": true,
		"count":   int(3),
		"ratio":   1.5,
		"port":    float64(8080),
	})

	tests := []struct {
		key  string
		want string
	}{
		{"enabled", "true"},
		{"count", "3"},
		{"ratio", "1.5"},
		{"port", "8080"},
	}
	for _, tt := range tests {
		got, ok := env.String(tt.key)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestKeysSorted(t *testing.T) {
	env := Build("demo", map[string]interface{}{"zeta": "1", "alpha": "2"})
	keys := env.Keys()
	assert.Equal(t, 6, len(keys))
	assert.Equal(t, "alpha", keys[0])
	assert.Equal(t, "zeta", keys[len(keys)-1])
}

func TestCaseHelpers(t *testing.T) {
	assert.Equal(t, "MyCoolApp", ToPascalCase("my cool-app"))
	assert.Equal(t, "my_cool_app", ToSnakeCase("my-cool-app"))
	assert.Equal(t, "my-cool-app", ToKebabCase("my_cool_app"))
	assert.Equal(t, "", ToPascalCase(""))
}
