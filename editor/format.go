package editor

import (
	"regexp"
	"strconv"
	"strings"
)

// Span is a byte range [Start, End) of the document content.
type Span struct {
	Start int
	End   int
}

func (s Span) Empty() bool {
	return s.Start >= s.End
}

// SelectionSpan locates the selected text next to the cursor offset. The
// cursor sits at either end of a selection; an empty or unmatched selection
// gives an empty span at the cursor.
func SelectionSpan(content string, cursor int, selected string) Span {
	cursor = max(0, min(cursor, len(content)))
	n := len(selected)
	switch {
	case n == 0:
	case cursor >= n && content[cursor-n:cursor] == selected:
		return Span{Start: cursor - n, End: cursor}
	case cursor+n <= len(content) && content[cursor:cursor+n] == selected:
		return Span{Start: cursor, End: cursor + n}
	}
	return Span{Start: cursor, End: cursor}
}

type Format int

const (
	FormatBold Format = iota
	FormatItalic
	FormatCode
	FormatHeading1
	FormatHeading2
	FormatBulletList
	FormatNumberedList
	FormatQuote
)

var formatNames = [...]string{"bold", "italic", "code", "heading-1", "heading-2", "bullet-list", "numbered-list", "quote"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Formats lists the toolbar formats in display order.
func Formats() []Format {
	return []Format{FormatBold, FormatItalic, FormatCode, FormatHeading1, FormatHeading2,
		FormatBulletList, FormatNumberedList, FormatQuote}
}

var inlineMarkers = map[Format]string{
	FormatBold:   "**",
	FormatItalic: "_",
	FormatCode:   "`",
}

// ApplyFormat toggles f on the selection and returns the new content with
// the span now covering the formatted text.
func ApplyFormat(content string, sel Span, f Format) (string, Span) {
	sel = clampSpan(content, sel)
	if marker, ok := inlineMarkers[f]; ok {
		return toggleInline(content, sel, marker)
	}
	return toggleBlock(content, sel, f)
}

func clampSpan(content string, s Span) Span {
	s.Start = max(0, min(s.Start, len(content)))
	s.End = max(s.Start, min(s.End, len(content)))
	return s
}

func toggleInline(content string, sel Span, marker string) (string, Span) {
	m := len(marker)
	if sel.Start >= m && sel.End+m <= len(content) &&
		content[sel.Start-m:sel.Start] == marker && content[sel.End:sel.End+m] == marker {
		out := content[:sel.Start-m] + content[sel.Start:sel.End] + content[sel.End+m:]
		return out, Span{Start: sel.Start - m, End: sel.End - m}
	}
	out := content[:sel.Start] + marker + content[sel.Start:sel.End] + marker + content[sel.End:]
	return out, Span{Start: sel.Start + m, End: sel.End + m}
}

var (
	headingPrefix  = regexp.MustCompile(`^#{1,6} `)
	bulletPrefix   = regexp.MustCompile(`^[-*+] `)
	numberedPrefix = regexp.MustCompile(`^\d+\. `)
	quotePrefix    = regexp.MustCompile(`^> `)
)

// toggleBlock prefixes every line touched by the selection. When all of them
// already carry the format it is removed instead.
func toggleBlock(content string, sel Span, f Format) (string, Span) {
	start := strings.LastIndex(content[:sel.Start], "\n") + 1
	end := len(content)
	if i := strings.Index(content[sel.End:], "\n"); i >= 0 {
		end = sel.End + i
	}
	lines := strings.Split(content[start:end], "\n")

	has := func(line string) bool {
		switch f {
		case FormatHeading1:
			return strings.HasPrefix(line, "# ")
		case FormatHeading2:
			return strings.HasPrefix(line, "## ")
		case FormatBulletList:
			return bulletPrefix.MatchString(line)
		case FormatNumberedList:
			return numberedPrefix.MatchString(line)
		case FormatQuote:
			return quotePrefix.MatchString(line)
		}
		return false
	}
	strip := func(line string) string {
		switch f {
		case FormatHeading1, FormatHeading2:
			return headingPrefix.ReplaceAllString(line, "")
		case FormatBulletList:
			return bulletPrefix.ReplaceAllString(line, "")
		case FormatNumberedList:
			return numberedPrefix.ReplaceAllString(line, "")
		case FormatQuote:
			return quotePrefix.ReplaceAllString(line, "")
		}
		return line
	}

	remove := true
	for _, line := range lines {
		if !has(line) {
			remove = false
			break
		}
	}

	for i, line := range lines {
		line = strip(line)
		if remove {
			lines[i] = line
			continue
		}
		switch f {
		case FormatHeading1:
			lines[i] = "# " + line
		case FormatHeading2:
			lines[i] = "## " + line
		case FormatBulletList:
			lines[i] = "- " + line
		case FormatNumberedList:
			lines[i] = strconv.Itoa(i+1) + ". " + line
		case FormatQuote:
			lines[i] = "> " + line
		}
	}

	block := strings.Join(lines, "\n")
	return content[:start] + block + content[end:], Span{Start: start, End: start + len(block)}
}

var linkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]*)\)`)

// NormalizeURL trims raw and adds https:// unless it already is an http or
// https URL. Blank input stays blank.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}

// linkAround finds the markdown link that contains the selection.
func linkAround(content string, sel Span) (loc []int, ok bool) {
	for _, m := range linkPattern.FindAllStringSubmatchIndex(content, -1) {
		if m[0] <= sel.Start && sel.End <= m[1] {
			return m, true
		}
	}
	return nil, false
}

// LinkAt returns the target of the link under the selection.
func LinkAt(content string, sel Span) (string, bool) {
	m, ok := linkAround(content, clampSpan(content, sel))
	if !ok {
		return "", false
	}
	return content[m[4]:m[5]], true
}

// ApplyLink links the selection to rawURL. A link already around the
// selection gets its target replaced, or is removed when rawURL is blank.
// Without a selection the URL itself becomes the link text.
func ApplyLink(content string, sel Span, rawURL string) (string, Span) {
	sel = clampSpan(content, sel)
	url := NormalizeURL(rawURL)

	if m, ok := linkAround(content, sel); ok {
		text := content[m[2]:m[3]]
		if url == "" {
			out := content[:m[0]] + text + content[m[1]:]
			return out, Span{Start: m[0], End: m[0] + len(text)}
		}
		link := "[" + text + "](" + url + ")"
		return content[:m[0]] + link + content[m[1]:], Span{Start: m[0] + 1, End: m[0] + 1 + len(text)}
	}
	if url == "" {
		return content, sel
	}

	text := content[sel.Start:sel.End]
	if sel.Empty() {
		text = url
	}
	link := "[" + text + "](" + url + ")"
	out := content[:sel.Start] + link + content[sel.End:]
	return out, Span{Start: sel.Start + 1, End: sel.Start + 1 + len(text)}
}
