package fuzztests

import (
	"context"
	"testing"

	"ranoc/internal/driver"
)

// FuzzCompileSource checks that codegen turns every failure into a
// diagnostic instead of an error or a panic.
func FuzzCompileSource(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		res, err := driver.CompileSource(context.Background(), "fuzz.rano", input, driver.Options{MaxDiagnostics: 64})
		if err != nil {
			t.Fatalf("compile returned error: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if res.Aborted {
			t.Fatalf("non-strict compile aborted\ninput: %q", truncateForLog(input, 200))
		}
		if res.Program == nil {
			t.Fatalf("missing program\ninput: %q", truncateForLog(input, 200))
		}
	})
}
