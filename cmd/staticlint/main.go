// Command staticlint runs the analyzers the project is checked with.
//
//	go run ./cmd/staticlint ./...
package main

import (
	"github.com/kisielk/errcheck/errcheck"
	"github.com/ultraware/whitespace"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck/st1005"
	"honnef.co/go/tools/stylecheck/st1012"
)

// Analyzers returns the full analyzer set.
func Analyzers() []*analysis.Analyzer {
	checks := []*analysis.Analyzer{
		printf.Analyzer,     // check consistency of Printf format strings and arguments
		shadow.Analyzer,     // check for possible unintended shadowing of variables
		structtag.Analyzer,  // checks struct field tags are well formed
		shift.Analyzer,      // checks for shifts that exceed the width of an integer
		lostcancel.Analyzer, // timers and shutdown contexts must be cancelled

		st1005.Analyzer, // incorrectly formatted error string
		st1012.Analyzer, // poorly chosen name for error variable

		errcheck.Analyzer,           // check for unchecked errors
		whitespace.NewAnalyzer(nil), // unnecessary newlines at the start and end of blocks

		OSExitCheckAnalyzer,   // check os.Exit() in main()
		DefaultClientAnalyzer, // backend calls must not use http.DefaultClient
	}

	// SA analyzers
	for _, v := range staticcheck.Analyzers {
		checks = append(checks, v.Analyzer)
	}
	return checks
}

func main() {
	multichecker.Main(Analyzers()...)
}
