package upload

import "io"

// progressReader reports the transferred fraction after every read.
// total <= 0 disables reporting.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    func(float64)
}

func newProgressReader(r io.Reader, total int64, fn func(float64)) *progressReader {
	return &progressReader{r: r, total: total, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 && p.fn != nil {
		p.sent += int64(n)
		frac := float64(p.sent) / float64(p.total)
		if frac > 1 {
			frac = 1
		}
		p.fn(frac)
	}
	return n, err
}
