package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ReadLines reads r on its own goroutine and delivers lines until r is
// exhausted or ctx is done; the channel is then closed. Lines have no length
// limit. A read error other than io.EOF is logged at warn level before the
// channel closes. A goroutine blocked in a read of r outlives ctx until that
// read returns.
func ReadLines(ctx context.Context, r io.Reader, logger *zap.Logger) <-chan string {
	if logger == nil {
		logger = zap.NewNop()
	}
	ch := make(chan string)
	go func() {
		defer close(ch)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				select {
				case ch <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					logger.Warn("input error", zap.Error(err))
				}
				return
			}
		}
	}()
	return ch
}

// next blocks for one line; ok is false when input ended or ctx is done.
func next(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lines:
		return line, ok
	}
}
