package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPageCatalog = `categories:
  - key: pizzas
    title: PIZZAS
    headers: [PRODUCTO, PRECIO]
    products:
      - {name: Hawaiana, prices: ["$180.00"]}
  - key: vodka
    title: VODKA
    headers: [PRODUCTO, PRECIO BOTELLA, PRECIO COPA]
    products:
      - {name: Absolut, prices: ["$1,250.00", "$110.00"]}
      - {name: Smirnoff, prices: ["$950.00", "$90.00"]}
`

const brokenCatalog = `categories:
  - key: pizzas
    title: PIZZAS
    headers: [PRODUCTO, PRECIO]
    products:
      - {name: Hawaiana, prices: ["$180.00", "$200.00"]}
  - key: pizzas
    title: MÁS PIZZAS
    headers: [PRODUCTO, PRECIO]
    products: []
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateEmbeddedMenu(t *testing.T) {
	out, err := execute(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ embedded menu: 12 categories")
}

func TestValidateCatalogFile(t *testing.T) {
	path := writeFile(t, "menu.yaml", twoPageCatalog)

	out, err := execute(t, "", "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 2, resp.Data.Categories)
	assert.Equal(t, 3, resp.Data.Products)
}

func TestValidateReportsEveryIssue(t *testing.T) {
	path := writeFile(t, "menu.yaml", brokenCatalog)

	out, err := execute(t, "", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "2 issue(s)")
	assert.Contains(t, out, `duplicate key "pizzas"`)
	assert.Contains(t, out, "Hawaiana has 2 prices, want 1")
}

func TestValidateIssuesJSON(t *testing.T) {
	path := writeFile(t, "menu.yaml", brokenCatalog)

	out, err := execute(t, "", "--format", "json", "validate", path)
	require.Error(t, err)

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string           `json:"code"`
			Details ValidationResult `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CodeCatalog, resp.Error.Code)
	assert.False(t, resp.Error.Details.Valid)
	assert.Len(t, resp.Error.Details.Issues, 2)
}

func TestValidateUnreadableCatalog(t *testing.T) {
	out, err := execute(t, "", "validate", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, "Error [E_CATALOG]: read catalog")

	path := writeFile(t, "menu.yaml", "categories:\n  - key: pizzas\n    colour: red\n")
	out, err = execute(t, "", "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "field colour not found")
}

func TestValidateUsesConfiguredCatalog(t *testing.T) {
	menu := writeFile(t, "menu.yaml", twoPageCatalog)
	cfg := writeFile(t, "kiosk.toml", "catalog = \""+filepath.ToSlash(menu)+"\"\n")

	out, err := execute(t, "", "--config", cfg, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "2 categories, 3 products")
}

func TestValidateBadConfig(t *testing.T) {
	cfg := writeFile(t, "kiosk.toml", "log_level = \"loud\"\n")

	out, err := execute(t, "", "--config", cfg, "validate")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E_CONFIG]")
	assert.Contains(t, out, "unknown log level")
}
