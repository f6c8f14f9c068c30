package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_DryRun(t *testing.T) {
	t.Run("Bundled catalog", func(t *testing.T) {
		assert.NoError(t, run(filepath.Join("..", "..", "seed", "catalog.yaml"), true))
	})

	t.Run("Invalid catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		assert.NoError(t, os.WriteFile(path, []byte("products:\n  - {id: 1, name: P, price: 0, category_id: 1}\n"), 0644))
		assert.Error(t, run(path, true))
	})
}
