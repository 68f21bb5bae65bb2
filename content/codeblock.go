package content

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeBlock is one fenced code block lifted out of a Markdown body.
// Raw holds the exact source text including both fence lines, so a block
// can be re-embedded byte for byte.
type CodeBlock struct {
	Lang      string // language tag from the fence info string, may be empty
	Highlight []int  // 1-based line numbers from {1,3-5} style metadata
	Info      string // full info string after the opening fence
	Code      string // inner lines without the fences
	Raw       string
}

// CodeBlocks extracts every fenced code block from a Markdown body.
// An opening fence without a matching close is an error.
func CodeBlocks(body string) ([]CodeBlock, error) {
	var blocks []CodeBlock
	lines := strings.Split(body, "\n")

	openLine := -1
	var raw, code []string
	var info string

	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimRight(line, "\r"), "```") {
			if openLine >= 0 {
				raw = append(raw, line)
				code = append(code, line)
			}
			continue
		}
		if openLine < 0 {
			openLine = i
			info = strings.TrimSpace(strings.TrimRight(line, "\r")[3:])
			raw = []string{line}
			code = nil
			continue
		}
		raw = append(raw, line)
		lang, highlight := ParseFenceInfo(info)
		blocks = append(blocks, CodeBlock{
			Lang:      lang,
			Highlight: highlight,
			Info:      info,
			Code:      strings.Join(code, "\n"),
			Raw:       strings.Join(raw, "\n"),
		})
		openLine = -1
	}

	if openLine >= 0 {
		return nil, fmt.Errorf("unclosed code fence opened at line %d", openLine+1)
	}
	return blocks, nil
}

// ParseFenceInfo splits a fence info string like "csharp {3,5-7}" into the
// language tag and the expanded highlight line list. Metadata the renderer
// does not understand is ignored.
func ParseFenceInfo(info string) (string, []int) {
	info = strings.TrimSpace(info)
	if info == "" {
		return "", nil
	}

	lang := info
	meta := ""
	if idx := strings.Index(info, "{"); idx >= 0 {
		lang = strings.TrimSpace(info[:idx])
		meta = info[idx:]
	} else if idx := strings.IndexAny(info, " \t"); idx >= 0 {
		lang = info[:idx]
	}

	if !strings.HasPrefix(meta, "{") || !strings.HasSuffix(meta, "}") {
		return lang, nil
	}

	var highlight []int
	for _, part := range strings.Split(strings.Trim(meta, "{}"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if from, to, ok := strings.Cut(part, "-"); ok {
			lo, err1 := strconv.Atoi(strings.TrimSpace(from))
			hi, err2 := strconv.Atoi(strings.TrimSpace(to))
			if err1 != nil || err2 != nil || lo < 1 || hi < lo {
				continue
			}
			for n := lo; n <= hi; n++ {
				highlight = append(highlight, n)
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			continue
		}
		highlight = append(highlight, n)
	}
	return lang, highlight
}
