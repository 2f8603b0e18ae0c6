// Package diff compares tape dumps. It uses github.com/pmezard/go-difflib
// to produce classic unified patches (---/+++ headers, @@ hunks, lines
// prefixed with ' ', '-', '+').
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation.
type Options struct {
	// MaxBytes is a guardrail on input size (old+new). When exceeded, a
	// placeholder patch is returned and oversize=true. 0 means no limit.
	MaxBytes int

	// Context is the number of context lines in hunks. If 0, default to 3.
	Context int
}

// Unified produces a unified patch for a↦b. An empty body means the inputs
// are identical.
func Unified(aName, bName string, a, b string, opt Options) (body string, oversize bool, err error) {
	if opt.MaxBytes > 0 && len(a)+len(b) > opt.MaxBytes {
		return omitted(aName, bName), true, nil
	}
	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(a),
		B:        splitLinesKeepNL(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", false, fmt.Errorf("diff %s %s: %w", aName, bName, err)
	}
	return s, false, nil
}

// splitLinesKeepNL splits into lines and keeps newline characters, which
// produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

// omitted returns a compact placeholder when size limits are exceeded.
func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName)
}
