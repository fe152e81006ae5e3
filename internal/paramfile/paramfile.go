// Package paramfile reads parameter files: plain or gzip-compressed text whose
// whitespace-separated words are command-line tokens.
//
// Grammar, per line:
//
//	# comment          dropped
//	\                  dropped (lone continuation marker)
//	--x 1 \            trailing " \" is stripped; the next line continues
//	--y	  2            tabs and runs of spaces collapse
package paramfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/Zhangliubin/commandParser-1.1-sub000/internal/pool"
)

// GzipSuffix marks files that are decompressed transparently
const GzipSuffix = ".gz"

const (
	initialBuffer = 64 * 1024
	maxLine       = 16 * 1024 * 1024
)

// line buffers are shared by nested @file reads
var buffers = pool.Buffers(initialBuffer, initialBuffer)

// ReadFile opens path and returns its tokens.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, GzipSuffix) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("paramfile %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	tokens, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("paramfile %s: %w", path, err)
	}
	return tokens, nil
}

// Read tokenizes everything r yields.
func Read(r io.Reader) ([]string, error) {
	buf := buffers.Get()
	defer buffers.Put(buf)

	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(*buf, maxLine)
	for scanner.Scan() {
		tokens = append(tokens, Line(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Tokenize splits text held in memory.
func Tokenize(text string) []string {
	var tokens []string
	for _, line := range strings.Split(text, "\n") {
		tokens = append(tokens, Line(line)...)
	}
	return tokens
}

// Line returns the tokens of a single line.
func Line(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || line == `\` || strings.HasPrefix(line, "#") {
		return nil
	}
	if body, ok := strings.CutSuffix(line, `\`); ok && body != strings.TrimRight(body, " \t") {
		line = body
	}
	return strings.Fields(line)
}
