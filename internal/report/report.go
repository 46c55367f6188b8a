// Package report prints the human-readable progress transcript of a run.
package report

import (
	"fmt"
	"io"

	"github.com/dunamismax/pngwebp/internal/domain"
)

type Reporter struct {
	w io.Writer
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) Found(n int) {
	fmt.Fprintf(r.w, "Found %d images to optimize...\n", n)
}

func (r *Reporter) File(res domain.Result) {
	fmt.Fprintln(r.w, FileLine(res))
}

func (r *Reporter) Done() {
	fmt.Fprint(r.w, "\n✅ All images optimized!\n")
}

// FileLine formats the per-file line, e.g.
// "✓ widget.png: 500.0KB → 120.3KB (75.9% smaller)".
func FileLine(res domain.Result) string {
	return fmt.Sprintf("✓ %s: %.1fKB → %.1fKB (%.1f%% smaller)",
		res.Source.Name,
		res.OriginalKB(),
		res.OptimizedKB(),
		res.SavingsPct,
	)
}
