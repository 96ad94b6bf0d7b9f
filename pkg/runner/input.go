package runner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

type inputResult struct {
	text string
	err  error
}

// lineReader reads lines on a background goroutine so a blocked read never
// prevents the loop from observing context cancellation.
type lineReader struct {
	results chan inputResult
	done    chan struct{}
	once    sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		results: make(chan inputResult),
		done:    make(chan struct{}),
	}
	go lr.pump(bufio.NewReader(r))
	return lr
}

func (lr *lineReader) pump(br *bufio.Reader) {
	defer close(lr.results)
	for {
		text, err := br.ReadString('\n')
		// A final line without newline still counts.
		if text != "" && !lr.send(inputResult{text: strings.TrimRight(text, "\r\n")}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				lr.send(inputResult{err: err})
			}
			return
		}
	}
}

func (lr *lineReader) send(res inputResult) bool {
	select {
	case lr.results <- res:
		return true
	case <-lr.done:
		return false
	}
}

// next returns the next line, io.EOF at end of input, or ctx.Err().
func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-lr.results:
		if !ok {
			return "", io.EOF
		}
		return res.text, res.err
	}
}

// close releases the pump once its current read returns.
func (lr *lineReader) close() {
	lr.once.Do(func() { close(lr.done) })
}
