// Package insert executes insert directives against files that already
// exist in the destination project.
//
// Each insert locates the first occurrence of its anchor text, captures the
// indentation in front of the anchor, and places new lines directly above or
// below the anchor's line with that indentation repeated on every line.
package insert

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/apiscaffold/internal/directive"
	"github.com/danieljhkim/apiscaffold/internal/fsops"
)

// anchorLine is the line that holds an anchor match.
type anchorLine struct {
	// start is the offset of the first byte of the line
	start int

	// end is the offset of the line's terminating newline, or len(buf)
	end int

	// padding is the run of spaces and tabs directly before the match
	padding string
}

// locate scans outward from the match at idx.
// Walking back it accumulates spaces and tabs as padding until the first
// other byte; padding stops growing there but the walk continues to the
// previous newline (or buffer start) to find the line start.
func locate(buf string, idx int) anchorLine {
	line := anchorLine{start: idx, end: len(buf)}

	padStart := idx
	inPadding := true
	for line.start > 0 {
		c := buf[line.start-1]
		if c == '\n' {
			break
		}
		if inPadding && (c == ' ' || c == '\t') {
			padStart = line.start - 1
		} else {
			inPadding = false
		}
		line.start--
	}
	line.padding = buf[padStart:idx]

	if nl := strings.IndexByte(buf[idx:], '\n'); nl >= 0 {
		line.end = idx + nl
	}

	return line
}

// indent repeats padding after every newline inside content.
func indent(content, padding string) string {
	if padding == "" {
		return content
	}
	return strings.ReplaceAll(content, "\n", "\n"+padding)
}

// Apply runs one insert against buf and returns the new buffer.
// target is only used in error messages.
func Apply(buf, target string, op directive.InsertOp) (string, error) {
	if !op.Position.Valid() {
		return "", &directive.InvalidDirectiveError{File: target, Position: string(op.Position)}
	}

	idx := strings.Index(buf, op.Search)
	if idx < 0 {
		return "", &directive.AnchorNotFoundError{File: target, Search: op.Search}
	}

	line := locate(buf, idx)
	content := indent(op.Content, line.padding)

	var b strings.Builder
	b.Grow(len(buf) + len(content) + len(line.padding) + 1)

	switch op.Position {
	case directive.Before:
		b.WriteString(buf[:line.start])
		b.WriteString(line.padding)
		b.WriteString(content)
		b.WriteByte('\n')
		b.WriteString(buf[line.start:])
	case directive.After:
		b.WriteString(buf[:line.end])
		b.WriteByte('\n')
		b.WriteString(line.padding)
		b.WriteString(content)
		b.WriteString(buf[line.end:])
	}

	return b.String(), nil
}

// ApplyAll runs ops in order, each one against the output of the previous.
// Positions are checked for every op before any splice happens.
func ApplyAll(buf, target string, ops []directive.InsertOp) (string, error) {
	for _, op := range ops {
		if !op.Position.Valid() {
			return "", &directive.InvalidDirectiveError{File: target, Position: string(op.Position)}
		}
	}

	for _, op := range ops {
		var err error
		buf, err = Apply(buf, target, op)
		if err != nil {
			return "", err
		}
	}
	return buf, nil
}

// ApplyFile executes spec against root/spec.File.
// The file is read once, patched in memory and written back once; on any
// failure the file on disk is left untouched. It returns the absolute path
// of the patched file.
func ApplyFile(fs fsops.FS, root string, spec directive.FileInsertSpec) (string, error) {
	target, err := fs.ResolveWithin(root, spec.File)
	if err != nil {
		return "", &directive.ValidationError{Path: "file", Reason: err.Error()}
	}

	info, err := fs.Stat(target)
	if err != nil {
		return "", fmt.Errorf("failed to stat insert target %s: %w", target, err)
	}
	data, err := fs.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("failed to read insert target %s: %w", target, err)
	}

	patched, err := ApplyAll(string(data), target, spec.Inserts)
	if err != nil {
		return "", err
	}

	if err := fs.AtomicWrite(target, []byte(patched), info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("failed to write insert target %s: %w", target, err)
	}
	return target, nil
}
