// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reply builds the synthetic assistant reply from a mustache template.
//
// The template sees two variables: text (the submitted message, verbatim) and
// task (the task type identifier, empty when untagged). Triple mustaches keep
// the text free of HTML escaping.
package reply

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
)

// DefaultTemplate is the built-in reply.
const DefaultTemplate = `I understand you need help with: "{{{text}}}". ` +
	`{{#task}}This looks like a {{{task}}} task. {{/task}}` +
	`I'm processing this using the most appropriate LLM for optimal results. ` +
	`Let me get back to you with a comprehensive response!`

// ErrTextNotVerbatim is returned for templates that drop or escape the
// submitted text.
var ErrTextNotVerbatim = errors.New("reply template must include {{{text}}} unescaped")

// sampleText is rendered through every template on parse. It carries the
// characters mustache escapes in double-brace tags.
const sampleText = `<&"'sample'">`

// Composer renders replies from a parsed template.
type Composer struct {
	tmpl *mustache.Template
	src  string
}

// New parses src. An empty src selects DefaultTemplate. The template must
// reproduce the submitted text verbatim whether or not a task is tagged.
func New(src string) (*Composer, error) {
	if src == "" {
		src = DefaultTemplate
	}
	tmpl, err := mustache.ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("parse reply template: %w", err)
	}
	for _, task := range []catalog.Type{catalog.None, catalog.Code} {
		out, err := tmpl.Render(templateData(sampleText, task))
		if err != nil {
			return nil, fmt.Errorf("render reply template: %w", err)
		}
		if !strings.Contains(out, sampleText) {
			return nil, ErrTextNotVerbatim
		}
	}
	return &Composer{tmpl: tmpl, src: src}, nil
}

func templateData(text string, task catalog.Type) map[string]interface{} {
	return map[string]interface{}{
		"text": text,
		"task": task.String(),
	}
}

// Default returns a Composer for DefaultTemplate.
func Default() *Composer {
	c, err := New(DefaultTemplate)
	if err != nil {
		panic(err)
	}
	return c
}

// Template returns the template source.
func (c *Composer) Template() string {
	return c.src
}

// Compose renders the reply for text tagged with task. A render failure
// falls back to DefaultTemplate so a reply is always produced.
func (c *Composer) Compose(text string, task catalog.Type) string {
	data := templateData(text, task)
	out, err := c.tmpl.Render(data)
	if err == nil {
		return out
	}
	out, err = mustache.Render(DefaultTemplate, data)
	if err != nil {
		return text
	}
	return out
}

// Validate reports whether src is a usable reply template.
func Validate(src string) error {
	_, err := New(src)
	return err
}
