package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain registers the shellrun binary as an in-process testscript
// command, grounded on the teacher's cmd test harness pattern of
// exercising the CLI end-to-end via txtar fixtures rather than only unit
// tests.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"shellrun": func() int { return runMain(os.Args[1:]) },
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
