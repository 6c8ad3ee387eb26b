package main

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

// OSExitCheckAnalyzer reports direct os.Exit calls in func main of package main.
// Deferred cleanup (token storage close, logger sync) does not run after os.Exit.
var OSExitCheckAnalyzer = &analysis.Analyzer{
	Name: "osexit",
	Doc:  "check os.Exit() in main()",
	Run:  runOSExit,
}

func runOSExit(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || fn.Name.Name != "main" || fn.Body == nil {
				continue
			}

			ast.Inspect(fn.Body, func(node ast.Node) bool {
				// вложенные функции вызываются не из main напрямую
				if _, ok := node.(*ast.FuncLit); ok {
					return false
				}
				call, ok := node.(*ast.CallExpr)
				if !ok {
					return true
				}
				if isPkgFunc(pass, call.Fun, "os", "Exit") {
					pass.Reportf(call.Pos(), "os.Exit called in main")
				}
				return true
			})
		}
	}

	return nil, nil
}
