package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// Writer wraps an io.WriteSeeker and periodically reports how many bytes went
// through it. The wrapped target keeps its Seek behavior so download code that
// rewinds on retry still works; a rewind resets the byte count.
type Writer struct {
	w           io.WriteSeeker
	out         io.Writer
	label       string
	total       int64
	written     int64
	mu          sync.Mutex
	lastPrinted time.Time
}

// NewWriter creates a progress Writer. If total is 0, the percentage is omitted.
func NewWriter(w io.WriteSeeker, total int64, label string, out io.Writer) *Writer {
	return &Writer{w: w, out: out, label: label, total: total}
}

func (p *Writer) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.mu.Lock()
		p.written += int64(n)
		now := time.Now()
		if now.Sub(p.lastPrinted) >= 200*time.Millisecond {
			p.print()
			p.lastPrinted = now
		}
		p.mu.Unlock()
	}
	return n, err
}

func (p *Writer) Seek(offset int64, whence int) (int64, error) {
	pos, err := p.w.Seek(offset, whence)
	if err == nil {
		p.mu.Lock()
		p.written = pos
		p.mu.Unlock()
	}
	return pos, err
}

// Done prints the final count and a newline.
func (p *Writer) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.print()
	if p.out != nil {
		fmt.Fprint(p.out, "\n")
	}
}

func (p *Writer) print() {
	if p.out == nil {
		return
	}
	if p.total > 0 {
		pct := float64(p.written) / float64(p.total) * 100
		fmt.Fprintf(p.out, "\r[%s] %.1f%% (%s of %s)", p.label, pct, humanize.Bytes(uint64(p.written)), humanize.Bytes(uint64(p.total)))
	} else {
		fmt.Fprintf(p.out, "\r[%s] %s", p.label, humanize.Bytes(uint64(p.written)))
	}
}
