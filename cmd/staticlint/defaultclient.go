package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// Helpers of net/http that go through http.DefaultClient.
var defaultClientFuncs = map[string]struct{}{
	"Get":      {},
	"Head":     {},
	"Post":     {},
	"PostForm": {},
}

// DefaultClientAnalyzer reports use of http.DefaultClient and its helpers.
// Backend calls must go through a client with timeout and request logging.
var DefaultClientAnalyzer = &analysis.Analyzer{
	Name: "defaultclient",
	Doc:  "check use of http.DefaultClient, http.Get, http.Post and similar",
	Run:  runDefaultClient,
}

func runDefaultClient(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(node ast.Node) bool {
			sel, ok := node.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if isPkgObject(pass, sel, "net/http", "DefaultClient") {
				pass.Reportf(sel.Pos(), "http.DefaultClient used, inject *http.Client instead")
				return true
			}
			if _, ok := defaultClientFuncs[sel.Sel.Name]; ok && isPkgObject(pass, sel, "net/http", sel.Sel.Name) {
				pass.Reportf(sel.Pos(), "http.%s uses http.DefaultClient, inject *http.Client instead", sel.Sel.Name)
			}
			return true
		})
	}

	return nil, nil
}

// isPkgObject reports whether sel refers to package-level name of package path.
func isPkgObject(pass *analysis.Pass, sel *ast.SelectorExpr, path, name string) bool {
	if sel.Sel.Name != name {
		return false
	}
	obj := pass.TypesInfo.Uses[sel.Sel]
	if obj == nil || obj.Pkg() == nil {
		return false
	}
	// метод или поле с тем же именем не считается
	if obj.Parent() != obj.Pkg().Scope() {
		return false
	}
	switch obj.(type) {
	case *types.Func, *types.Var:
		return obj.Pkg().Path() == path
	}
	return false
}

func isPkgFunc(pass *analysis.Pass, expr ast.Expr, path, name string) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	return isPkgObject(pass, sel, path, name)
}
