package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// Issue is one problem found in a catalog.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists every issue found in a catalog.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "invalid catalog"
	case 1:
		return "invalid catalog: " + e.Issues[0].String()
	}
	return fmt.Sprintf("invalid catalog: %s (and %d more)", e.Issues[0], len(e.Issues)-1)
}

// Validate checks the catalog against the embedded schema, then checks that
// keys are unique and every row has one cell per price column.
func (c *Catalog) Validate() error {
	issues := c.schemaIssues()
	if len(issues) == 0 {
		issues = c.layoutIssues()
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func (c *Catalog) schemaIssues() []Issue {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []Issue{{Path: "schema.cue", Message: err.Error()}}
	}

	data, err := json.Marshal(c)
	if err != nil {
		return []Issue{{Message: fmt.Sprintf("encode catalog: %v", err)}}
	}
	value := ctx.CompileBytes(data, cue.Filename("catalog.json"))
	if err := value.Err(); err != nil {
		return []Issue{{Message: err.Error()}}
	}

	unified := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(value)
	err = unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}
	var issues []Issue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		issues = append(issues, Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return issues
}

func (c *Catalog) layoutIssues() []Issue {
	var issues []Issue
	seen := map[string]int{}
	for i, cat := range c.Categories {
		path := "categories." + strconv.Itoa(i)
		key := strings.ToLower(cat.Key)
		if first, dup := seen[key]; dup {
			issues = append(issues, Issue{
				Path:    path + ".key",
				Message: fmt.Sprintf("duplicate key %q (first at categories.%d)", cat.Key, first),
			})
		} else {
			seen[key] = i
		}

		columns := len(cat.Headers) - 1
		for j, p := range cat.Products {
			if len(p.Prices) != columns {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s.products.%d.prices", path, j),
					Message: fmt.Sprintf("%s has %d prices, want %d", p.Name, len(p.Prices), columns),
				})
			}
		}
	}
	return issues
}
