package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/shapes/internal/config"
)

func TestRunDemos_All(t *testing.T) {
	cfg = config.DefaultConfig()
	results, err := runDemos(demoOrder)
	require.NoError(t, err)
	require.Len(t, results, len(demoOrder))

	byName := make(map[string][]string, len(results))
	for _, r := range results {
		byName[r.Name] = r.Output
	}

	assert.Equal(t, []string{"Hello, Alice!", "Hello, Alice!", "Hello, Alice!"}, byName["greet"])
	assert.Equal(t, []string{"25", "[1 4 9 16 25]"}, byName["square"])
	assert.Equal(t, []string{"array: [1 2 3] (copy: [1 4 3])", "slice: [1 4 3]"}, byName["mutability"])
	assert.Equal(t, []string{"[4 16]"}, byName["evens"])
	assert.Equal(t, []string{"5", "divide 10: division by zero is not allowed", "+Inf"}, byName["divide"])
	assert.Equal(t, []string{"Hello, file!", "This is a sample text."}, byName["file"])
	assert.Equal(t, []string{`{"name":"Alice","age":30,"city":"New York"}`, "{Name:Alice Age:30 City:New York}"}, byName["json"])
	assert.Equal(t, []string{"Rex says Woof!", "Whiskers says Meow!"}, byName["animals"])
	assert.Equal(t, []string{"This is a Circle. Area: 78.53981633974483", "This is a Rectangle. Area: 24"}, byName["shapes"])
}

func TestRunDemos_Unknown(t *testing.T) {
	t.Parallel()
	_, err := runDemos([]string{"teleport"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown demo "teleport"`)
}

func TestDemos_OrderCoversRegistry(t *testing.T) {
	t.Parallel()
	assert.Len(t, demos, len(demoOrder))
	for _, name := range demoOrder {
		assert.Contains(t, demos, name)
	}
}
