package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS reads rules of the form "selector { key: value; }" where selector
// is .class or #id. Other selectors and at-rules are skipped. Later rules
// override earlier ones for the same selector.
func ParseCSS(src []byte) (*Stylesheet, error) {
	p := css.NewParser(parse.NewInputBytes(src), false)
	sheet := &Stylesheet{}
	var cur *Rule
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse css: %w", err)
			}
			return sheet, nil
		case css.BeginRulesetGrammar:
			cur = &Rule{Selector: joinTokens(p.Values()), Props: make(map[string]string)}
		case css.DeclarationGrammar:
			if cur != nil {
				cur.Props[strings.ToLower(string(data))] = joinTokens(p.Values())
			}
		case css.EndRulesetGrammar:
			if cur != nil && simpleSelector(cur.Selector) {
				sheet.Rules = append(sheet.Rules, *cur)
			}
			cur = nil
		}
	}
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

func simpleSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " .#>+~:,[")
}
