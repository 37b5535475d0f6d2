package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser reads generated utility stylesheets back into structured rules. It
// understands exactly what generator produces: class selectors with optional
// :hover and min-width media blocks. Everything else is reported as warning.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

var minWidthPattern = regexp.MustCompile(`min-width\s*:\s*(\d+)px`)

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil {
				if !errors.Is(err, io.EOF) {
					p.warn(sheet, "CSS parse error: "+err.Error())
				}
				return sheet
			}
			p.warn(sheet, "invalid CSS near: "+string(data))

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule != "@media" {
				p.warn(sheet, "unsupported @-rule: "+atRule)
				p.skipAtRuleBlock(parser)
				continue
			}
			mq := p.parseMediaQuery(parser.Values(), sheet)
			rules := p.parseMediaBlockRules(parser, sheet)
			if len(rules) == 0 {
				p.warn(sheet, "empty @media block: "+mq.Raw)
			}
			p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
			sheet.Items = append(sheet.Items, StylesheetItem{MediaBlock: &MediaBlock{Query: mq, Rules: rules}})

		case css.AtRuleGrammar:
			p.warn(sheet, "unsupported @-rule: "+string(data))

		case css.QualifiedRuleGrammar:
			p.warn(sheet, "grouped selectors are not produced by generator: "+joinTokens(data, parser.Values()))

		case css.BeginRulesetGrammar:
			if rule, ok := p.parseRuleset(parser, data, sheet); ok {
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			}

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			p.warn(sheet, "declaration outside of rule: "+string(data))
		}
	}
}

// Verify parses data and returns list of problems found, empty if stylesheet
// is well formed.
func (p *Parser) Verify(data []byte, source ...string) []string {
	return p.Parse(data, source...).Warnings
}

func (p *Parser) warn(sheet *Stylesheet, msg string) {
	sheet.Warnings = append(sheet.Warnings, msg)
	p.log.Debug("CSS problem", zap.String("details", msg))
}

// parseRuleset reads selector and declarations of a single ruleset.
func (p *Parser) parseRuleset(parser *css.Parser, data []byte, sheet *Stylesheet) (Rule, bool) {
	raw := joinTokens(data, parser.Values())
	sel, err := parseSelector(raw)
	decls := p.parseDeclarations(parser, raw, sheet)
	if err != nil {
		p.warn(sheet, err.Error())
		return Rule{}, false
	}
	if len(decls) == 0 {
		p.warn(sheet, "rule without declarations: "+raw)
	}
	return Rule{Selector: sel, Declarations: decls}, true
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser, selector string, sheet *Stylesheet) Declarations {
	var decls Declarations
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil {
				if !errors.Is(err, io.EOF) {
					p.warn(sheet, "CSS parse error: "+err.Error())
				} else {
					p.warn(sheet, "unterminated rule: "+selector)
				}
				return decls
			}
			p.warn(sheet, fmt.Sprintf("invalid declaration in %s near: %s", selector, string(data)))

		case css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			prop := string(data)
			value := joinTokens(nil, parser.Values())
			if value == "" {
				p.warn(sheet, fmt.Sprintf("empty value for %q in %s", prop, selector))
				continue
			}
			decls = decls.Add(prop, value)

		case css.CustomPropertyGrammar:
			p.warn(sheet, fmt.Sprintf("custom property %q in %s", string(data), selector))
		}
	}
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil {
				if !errors.Is(err, io.EOF) {
					p.warn(sheet, "CSS parse error: "+err.Error())
				} else {
					p.warn(sheet, "unterminated @media block")
				}
				return rules
			}
			p.warn(sheet, "invalid CSS in @media block near: "+string(data))

		case css.EndAtRuleGrammar:
			return rules

		case css.BeginAtRuleGrammar:
			p.warn(sheet, "nested @-rule: "+string(data))
			p.skipAtRuleBlock(parser)

		case css.BeginRulesetGrammar:
			if rule, ok := p.parseRuleset(parser, data, sheet); ok {
				rules = append(rules, rule)
			}
		}
	}
}

// parseMediaQuery extracts media condition from CSS tokens.
func (p *Parser) parseMediaQuery(tokens []css.Token, sheet *Stylesheet) MediaQuery {
	mq := MediaQuery{Raw: joinTokens(nil, tokens)}
	if m := minWidthPattern.FindStringSubmatch(mq.Raw); m != nil {
		mq.MinWidth, _ = strconv.Atoi(m[1])
	} else {
		p.warn(sheet, "media query without min-width: "+mq.Raw)
	}
	return mq
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// joinTokens builds raw text from token data collapsing whitespace runs into
// single space.
func joinTokens(data []byte, tokens []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// parseSelector parses ".class" or ".class:hover" where class may contain
// escaped characters.
func parseSelector(raw string) (Selector, error) {
	if !strings.HasPrefix(raw, ".") || len(raw) < 2 {
		return Selector{}, fmt.Errorf("unsupported selector: %s", raw)
	}
	sel := Selector{}
	body := raw[1:]
	if rest, found := strings.CutSuffix(body, ":hover"); found && !escaped(body, len(rest)) {
		sel.Hover = true
		body = rest
	}
	// anything special left unescaped means this is not a single class
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' {
			i = skipEscape(body, i)
			continue
		}
		if c == ' ' || strings.IndexByte(specialChars, c) >= 0 {
			return Selector{}, fmt.Errorf("unsupported selector: %s", raw)
		}
	}
	sel.Class = UnescapeClass(body)
	return sel, nil
}

// skipEscape returns index of the last byte of escape sequence starting at pos.
func skipEscape(s string, pos int) int {
	i := pos + 1
	j := i
	for j < len(s) && j-i < 6 && isHex(s[j]) {
		j++
	}
	if j == i {
		return i
	}
	if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
		return j
	}
	return j - 1
}

// escaped reports whether byte at position pos is preceded by odd number of
// backslashes.
func escaped(s string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
