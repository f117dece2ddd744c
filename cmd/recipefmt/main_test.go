package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := map[string]struct {
		opts options
		want string
	}{
		"scaled fraction": {options{quantity: "0.75", unit: "cup", name: "sugar", servings: 8, original: 4}, "1 1/2 cup sugar\n"},
		"unscaled":        {options{quantity: "0.5", unit: "tsp", original: 4}, "1/2 tsp\n"},
		"metric":          {options{quantity: "2", unit: "cups", name: "milk", original: 4, metric: true}, "480 ml milk\n"},
		"duration":        {options{duration: "PT1H30M"}, "1 hour 30 minutes\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(tt.opts, &out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(options{}, &out))
	assert.Error(t, run(options{quantity: "lots"}, &out))
	assert.Error(t, run(options{file: filepath.Join(t.TempDir(), "missing.json")}, &out))
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "Rice",
		"servings": "2",
		"cook_time": "PT20M",
		"ingredients": [
			{"ingredient": {"name": "rice"}, "quantity": 1, "unit": "cup", "position": 0},
			{"ingredient": {"name": "salt"}, "quantity": null, "position": 1}
		],
		"instructions": [{"step_number": 1, "description": "Simmer covered."}]
	}`), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(options{file: path, servings: 4}, &out))
	assert.Equal(t, "Rice (serves 4)\nCook: 20 minutes\n\n- 2 cup rice\n- salt, to taste\n\n1. Simmer covered.\n", out.String())
}
