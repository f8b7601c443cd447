// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock is one fenced block from a message.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
}

// Render highlights the block and draws it with a left rule and an optional
// language caption.
func (c CodeBlock) Render(theme *styles.Theme) string {
	code := strings.TrimRight(c.Code, "\n")
	body := highlightCode(code, c.Language, theme == nil || theme.IsDark)
	if theme == nil {
		return body
	}

	caption := c.Language
	if caption == "" {
		caption = strings.ToLower(DetectLanguage(code))
	}
	if caption != "" && caption != "plaintext" {
		body = theme.CodeLangBadge.Render(caption) + "\n" + body
	}
	style := theme.CodeBlock
	if c.MaxWidth > 0 {
		style = style.MaxWidth(c.MaxWidth)
	}
	return style.Render(body)
}

// Segment is a run of message text, either prose or a fenced code block.
type Segment struct {
	Text string
	Code *CodeBlock
}

// SplitCodeBlocks splits markdown text on ``` fences. An unclosed fence runs
// to the end of the text.
func SplitCodeBlocks(text string) []Segment {
	var segs []Segment
	var prose, code []string
	var lang string
	inCode := false

	flushProse := func() {
		if len(prose) > 0 {
			segs = append(segs, Segment{Text: strings.Join(prose, "\n")})
			prose = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				segs = append(segs, Segment{Code: &CodeBlock{Language: lang, Code: strings.Join(code, "\n")}})
				code, lang, inCode = nil, "", false
			} else {
				flushProse()
				lang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
				inCode = true
			}
			continue
		}
		if inCode {
			code = append(code, line)
		} else {
			prose = append(prose, line)
		}
	}

	if inCode {
		segs = append(segs, Segment{Code: &CodeBlock{Language: lang, Code: strings.Join(code, "\n")}})
	}
	flushProse()
	return segs
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies Chroma highlighting for a 256-color terminal and
// returns code unchanged if anything fails.
func highlightCode(code, language string, dark bool) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	name := "monokai"
	if !dark {
		name = "github"
	}
	style := chromaStyles.Get(name)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// DetectLanguage names the language Chroma guesses for code, or "".
func DetectLanguage(code string) string {
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
