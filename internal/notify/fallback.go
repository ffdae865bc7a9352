package notify

import (
	"fmt"
	"io"
)

// textFallback implements Backend by printing one line. It is the last
// resort in automatic mode and never fails.
type textFallback struct {
	out io.Writer
}

func newTextFallback(out io.Writer) Backend {
	return &textFallback{out: out}
}

func (b *textFallback) Name() BackendName { return TextFallback }

func (b *textFallback) Available() bool { return true }

// Attempt writes "[urgency] title: body". Write errors are ignored; there is
// nowhere left to report them.
func (b *textFallback) Attempt(req Request) error {
	_, _ = fmt.Fprintf(b.out, "[%s] %s: %s\n", req.Urgency, req.Title, req.Body)
	return nil
}
