// Package render turns raw stored text into safe HTML fragments.
//
// Formatting happens at read time, from the raw stored value. The output is
// not safe to feed back in: running FormatContent over its own output would
// double-escape, so persisted content must stay raw.
package render

import (
	"regexp"
	"strings"

	"github.com/ayame-bbs/ayame/internal/domain"
)

var (
	urlPattern   = regexp.MustCompile(`https?://[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_+.~#?&/=]*`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9._-]+`)

	// Matches the escaped form of ">>N". Escaping runs first, so a raw
	// ">>" never reaches this pattern.
	anchorPattern = regexp.MustCompile(`&gt;&gt;(\d+)`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)

	// \r\n must be handled before bare \n.
	lineBreaks = strings.NewReplacer("\r\n", "<br>", "\n", "<br>")
)

// FormatContent renders post content. The step order is fixed: escape,
// line breaks, URL links, mailto links, post anchors. Later steps only
// look for patterns that survive the earlier ones.
func FormatContent(raw string) string {
	if raw == "" {
		return ""
	}

	s := htmlEscaper.Replace(raw)
	s = lineBreaks.Replace(s)

	s = urlPattern.ReplaceAllStringFunc(s, func(url string) string {
		return `<a href="` + url + `" target="_blank" rel="noopener noreferrer">` + url + `</a>`
	})

	s = emailPattern.ReplaceAllStringFunc(s, func(email string) string {
		return `<a href="mailto:` + email + `">` + email + `</a>`
	})

	s = anchorPattern.ReplaceAllStringFunc(s, func(match string) string {
		num := anchorPattern.FindStringSubmatch(match)[1]
		return `<a href="#post-` + num + `" data-post-number="` + num + `">` + match + `</a>`
	})

	return s
}

// FormatTitle escapes a thread title. No link or anchor processing.
func FormatTitle(title string) string {
	return htmlEscaper.Replace(title)
}

// FormatName escapes a poster name, substituting the anonymous default for
// an empty one.
func FormatName(name string) string {
	if name == "" {
		return domain.DefaultPosterName
	}
	return htmlEscaper.Replace(name)
}
