package progressbar

import "io"

// Reader is an io.Reader that advances a bar by the number of bytes read.
type Reader struct {
	io.Reader
	bar *ProgressBar
}

// NewReader wraps r so reading from it advances bar.
func NewReader(r io.Reader, bar *ProgressBar) *Reader {
	return &Reader{
		Reader: r,
		bar:    bar,
	}
}

// Read reads buffer and adds the number of bytes to the progressbar.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	if n > 0 {
		if rerr := r.bar.Add(n); rerr != nil && err == nil {
			err = rerr
		}
	}
	return
}

// Close closes the embedded reader if it implements io.Closer and fills the bar to full.
func (r *Reader) Close() (err error) {
	if closer, ok := r.Reader.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return r.bar.Finish()
}

// Write implements io.Writer, advancing the bar by len(b).
func (p *ProgressBar) Write(b []byte) (n int, err error) {
	n = len(b)
	return n, p.Add(n)
}

// Close implements io.Closer.
func (p *ProgressBar) Close() (err error) {
	return p.Finish()
}
