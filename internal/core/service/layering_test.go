package service

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// The core packages may depend on shared pkg code but never on the HTTP or
// storage adapters that wrap them.
func TestCorePackages_DoNotImportAdapters(t *testing.T) {
	forbidden := []string{
		"github.com/ecoagua/storefront/internal/api",
		"github.com/ecoagua/storefront/internal/infrastructure",
	}

	for _, dir := range []string{".", "../domain", "../ports"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		if err != nil {
			t.Fatalf("glob %s: %v", dir, err)
		}
		for _, path := range files {
			f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", path, err)
			}
			for _, imp := range f.Imports {
				p, _ := strconv.Unquote(imp.Path.Value)
				for _, prefix := range forbidden {
					if strings.HasPrefix(p, prefix) {
						t.Errorf("%s imports %s", path, p)
					}
				}
			}
		}
	}
}
