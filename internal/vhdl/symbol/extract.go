package symbol

import "github.com/hdlorbit/orbit/internal/vhdl/token"

// cursor walks a token slice produced by the tokenizer. The tokenizer
// already discards separators and comments are left in the stream as
// KindComment tokens, which every scan below treats like any other
// uninteresting token and steps over via the default branch.
type cursor struct {
	toks []token.Token
	idx  int
}

func (c *cursor) peek() token.Token { return c.peekAt(0) }

func (c *cursor) peekAt(n int) token.Token {
	i := c.idx + n
	if i < 0 || i >= len(c.toks) {
		return token.Token{Kind: token.KindEOF}
	}
	return c.toks[i]
}

func (c *cursor) next() token.Token {
	t := c.peek()
	if c.idx < len(c.toks) {
		c.idx++
	}
	return t
}

func (c *cursor) atEOF() bool { return c.peek().Kind == token.KindEOF }

func (c *cursor) skipToSemicolon() {
	for !c.atEOF() {
		if c.next().Kind == token.KindTerminator {
			return
		}
	}
}

// consumeParenClause consumes a balanced parenthesized clause starting at
// the current '(' token, reporting whether it held at least one token
// before its closing ')'. No-op (returns false) if the current token is
// not '('.
func (c *cursor) consumeParenClause() bool {
	if c.peek().Kind != token.KindParenL {
		return false
	}
	c.next()
	nonEmpty := c.peek().Kind != token.KindParenR
	depth := 1
	for depth > 0 && !c.atEOF() {
		switch c.peek().Kind {
		case token.KindParenL:
			depth++
		case token.KindParenR:
			depth--
		}
		c.next()
	}
	return nonEmpty
}

// parseSelectedName reads an identifier optionally followed by one or more
// '.'-separated suffixes (a selected name, e.g. ieee.std_logic_1164.all)
// and folds it into a CompoundIdentifier using only the first two
// identifiers: the library/package prefix and the unit/member suffix.
// Trailing ".all" or further member selections are consumed but do not
// change the recorded reference.
func (c *cursor) parseSelectedName() (CompoundIdentifier, bool) {
	first := c.peek()
	if first.Kind != token.KindIdentifier {
		return CompoundIdentifier{}, false
	}
	c.next()
	ident1 := *first.Identifier

	if c.peek().Kind != token.KindDot {
		return CompoundIdentifier{Suffix: ident1}, true
	}
	c.next() // '.'

	second := c.peek()
	switch second.Kind {
	case token.KindAll:
		c.next()
		return CompoundIdentifier{Suffix: ident1}, true
	case token.KindIdentifier:
		c.next()
		ident2 := *second.Identifier
		for c.peek().Kind == token.KindDot {
			c.next()
			if c.peek().Kind == token.KindIdentifier || c.peek().Kind == token.KindAll {
				c.next()
			} else {
				break
			}
		}
		return CompoundIdentifier{Prefix: &ident1, Suffix: ident2}, true
	default:
		return CompoundIdentifier{Suffix: ident1}, true
	}
}

func (c *cursor) parseUseClause() []CompoundIdentifier {
	c.next() // 'use'
	var refs []CompoundIdentifier
	for {
		ref, ok := c.parseSelectedName()
		if !ok {
			break
		}
		refs = append(refs, ref)
		if c.peek().Kind != token.KindComma {
			break
		}
		c.next()
	}
	c.skipToSemicolon()
	return refs
}

func (c *cursor) parseContextReference() []CompoundIdentifier {
	c.next() // 'context'
	var refs []CompoundIdentifier
	for {
		ref, ok := c.parseSelectedName()
		if !ok {
			break
		}
		refs = append(refs, ref)
		if c.peek().Kind != token.KindComma {
			break
		}
		c.next()
	}
	c.skipToSemicolon()
	return refs
}

func (c *cursor) skipLibraryClause() {
	c.next() // 'library'
	c.skipToSemicolon()
}

// isBlockOpener reports whether k begins a nested construct that closes
// with its own "end", so the unit-level scan below must see one more "end"
// before it can treat a later "end" as its own terminator. The match is
// keyword-agnostic: any "end" at depth > 0 closes one level, regardless of
// which opener it pairs with.
//
// "generate" is deliberately excluded: every generate statement is a
// for-generate, if-generate or case-generate, so "for"/"if"/"case" already
// supplies the one opener it needs, and "generate" itself never starts a
// block on its own. Including it too would double-count every generate
// statement and never see depth return to zero.
//
// "for" and "loop" both appear here because a bare or while-loop
// ("loop ... end loop;", "while x loop ... end loop;") has no other opener
// to supply the depth. This double-counts a plain "for ... loop ... end
// loop;" (sequential for-loop), which only occurs inside a process or
// subprogram body already made opaque by a "process" opener further out;
// since instantiation and use-clause scanning never run at depth > 0
// anyway, the extra level costs nothing there.
func isBlockOpener(k token.Kind) bool {
	switch k {
	case token.KindProcess, token.KindBlock, token.KindLoop, token.KindFor,
		token.KindCase, token.KindRecord, token.KindProtected, token.KindUnits, token.KindIf:
		return true
	}
	return false
}

// isStatementKeyword reports whether k is a keyword that can immediately
// follow a statement label's colon for a compound (non-instantiation)
// statement, so "label : if ..." etc. are not mistaken for instantiations.
func isStatementKeyword(k token.Kind) bool {
	switch k {
	case token.KindProcess, token.KindBlock, token.KindGenerate, token.KindIf,
		token.KindCase, token.KindLoop, token.KindFor:
		return true
	}
	return false
}

func identOf(t token.Token) token.Identifier {
	if t.Identifier != nil {
		return *t.Identifier
	}
	return token.Identifier{}
}

func (c *cursor) parseEntity(pending []CompoundIdentifier) Unit {
	c.next() // 'entity'
	name := identOf(c.next())
	if c.peek().Kind == token.KindIs {
		c.next()
	}

	refs := append([]CompoundIdentifier{}, pending...)
	sawPort := false
	portNonEmpty := false
	depth := 0

	for !c.atEOF() {
		k := c.peek().Kind
		switch {
		case depth == 0 && k == token.KindGeneric:
			c.next()
			c.consumeParenClause()
			c.skipToSemicolon()
		case depth == 0 && k == token.KindPort:
			c.next()
			sawPort = true
			portNonEmpty = c.consumeParenClause()
			c.skipToSemicolon()
		case depth == 0 && k == token.KindUse:
			refs = append(refs, c.parseUseClause()...)
		case depth == 0 && k == token.KindEnd:
			c.next()
			if c.peek().Kind == token.KindEntity {
				c.next()
			}
			if c.peek().Kind == token.KindIdentifier {
				c.next()
			}
			c.skipToSemicolon()
			return Unit{Kind: KindEntity, Name: name, IsTestbench: !sawPort || !portNonEmpty, Refs: refs}
		case isBlockOpener(k):
			depth++
			c.next()
		case depth > 0 && k == token.KindEnd:
			depth--
			c.next()
			c.skipToSemicolon()
		default:
			c.next()
		}
	}
	return Unit{Kind: KindEntity, Name: name, IsTestbench: !sawPort || !portNonEmpty, Refs: refs}
}

func (c *cursor) parseArchitecture(pending []CompoundIdentifier) SubUnit {
	c.next() // 'architecture'
	name := identOf(c.next())
	if c.peek().Kind == token.KindOf {
		c.next()
	}
	owner := identOf(c.next())
	if c.peek().Kind == token.KindIs {
		c.next()
	}

	refs := append([]CompoundIdentifier{}, pending...)
	depth := 0
	inStatementPart := false

	for !c.atEOF() {
		k := c.peek().Kind
		switch {
		case depth == 0 && k == token.KindUse:
			refs = append(refs, c.parseUseClause()...)
		case depth == 0 && k == token.KindBegin:
			inStatementPart = true
			c.next()
		case depth == 0 && k == token.KindEnd:
			c.next()
			if c.peek().Kind == token.KindArchitecture {
				c.next()
			}
			if c.peek().Kind == token.KindIdentifier {
				c.next()
			}
			c.skipToSemicolon()
			return SubUnit{Kind: KindArchitecture, Name: name, Owner: owner, Refs: refs}
		case depth == 0 && inStatementPart && k == token.KindIdentifier &&
			c.peekAt(1).Kind == token.KindColon && !isStatementKeyword(c.peekAt(2).Kind):
			c.next() // label
			c.next() // ':'
			switch c.peek().Kind {
			case token.KindEntity, token.KindConfiguration, token.KindComponent:
				c.next()
			}
			if ref, ok := c.parseSelectedName(); ok {
				refs = append(refs, ref)
			}
			c.skipToSemicolon()
		case isBlockOpener(k):
			depth++
			c.next()
		case depth > 0 && k == token.KindEnd:
			depth--
			c.next()
			c.skipToSemicolon()
		default:
			c.next()
		}
	}
	return SubUnit{Kind: KindArchitecture, Name: name, Owner: owner, Refs: refs}
}

func (c *cursor) parsePackage(pending []CompoundIdentifier) Unit {
	c.next() // 'package'
	name := identOf(c.next())
	if c.peek().Kind == token.KindIs {
		c.next()
	}

	refs := append([]CompoundIdentifier{}, pending...)
	depth := 0
	for !c.atEOF() {
		k := c.peek().Kind
		switch {
		case depth == 0 && k == token.KindUse:
			refs = append(refs, c.parseUseClause()...)
		case depth == 0 && k == token.KindEnd:
			c.next()
			if c.peek().Kind == token.KindPackage {
				c.next()
			}
			if c.peek().Kind == token.KindIdentifier {
				c.next()
			}
			c.skipToSemicolon()
			return Unit{Kind: KindPackage, Name: name, Refs: refs}
		case isBlockOpener(k):
			depth++
			c.next()
		case depth > 0 && k == token.KindEnd:
			depth--
			c.next()
			c.skipToSemicolon()
		default:
			c.next()
		}
	}
	return Unit{Kind: KindPackage, Name: name, Refs: refs}
}

func (c *cursor) parsePackageBody(pending []CompoundIdentifier) Unit {
	c.next() // 'package'
	c.next() // 'body'
	owner := identOf(c.next())
	if c.peek().Kind == token.KindIs {
		c.next()
	}

	refs := append([]CompoundIdentifier{}, pending...)
	depth := 0
	for !c.atEOF() {
		k := c.peek().Kind
		switch {
		case depth == 0 && k == token.KindUse:
			refs = append(refs, c.parseUseClause()...)
		case depth == 0 && k == token.KindEnd:
			c.next()
			if c.peek().Kind == token.KindPackage {
				c.next()
			}
			if c.peek().Kind == token.KindBody {
				c.next()
			}
			if c.peek().Kind == token.KindIdentifier {
				c.next()
			}
			c.skipToSemicolon()
			return Unit{Kind: KindPackageBody, Owner: owner, Refs: refs}
		case isBlockOpener(k):
			depth++
			c.next()
		case depth > 0 && k == token.KindEnd:
			depth--
			c.next()
			c.skipToSemicolon()
		default:
			c.next()
		}
	}
	return Unit{Kind: KindPackageBody, Owner: owner, Refs: refs}
}

func (c *cursor) parseConfiguration(pending []CompoundIdentifier) SubUnit {
	c.next() // 'configuration'
	name := identOf(c.next())
	if c.peek().Kind == token.KindOf {
		c.next()
	}
	target := identOf(c.next())
	if c.peek().Kind == token.KindIs {
		c.next()
	}

	refs := append([]CompoundIdentifier{}, pending...)
	depth := 0
	for !c.atEOF() {
		k := c.peek().Kind
		switch {
		case depth == 0 && k == token.KindUse:
			refs = append(refs, c.parseUseClause()...)
		case depth == 0 && k == token.KindEnd:
			c.next()
			if c.peek().Kind == token.KindConfiguration {
				c.next()
			}
			if c.peek().Kind == token.KindIdentifier {
				c.next()
			}
			c.skipToSemicolon()
			return SubUnit{Kind: KindConfiguration, Name: name, Owner: target, Refs: refs}
		case isBlockOpener(k):
			depth++
			c.next()
		case depth > 0 && k == token.KindEntity:
			// binding indication inside a nested "for ... use entity ...;"
			c.next()
			if ref, ok := c.parseSelectedName(); ok {
				refs = append(refs, ref)
			}
		case depth > 0 && k == token.KindEnd:
			depth--
			c.next()
			c.skipToSemicolon()
		default:
			c.next()
		}
	}
	return SubUnit{Kind: KindConfiguration, Name: name, Owner: target, Refs: refs}
}

func (c *cursor) parseContextDeclaration(pending []CompoundIdentifier) Unit {
	c.next() // 'context'
	name := identOf(c.next())
	if c.peek().Kind == token.KindIs {
		c.next()
	}

	refs := append([]CompoundIdentifier{}, pending...)
	for !c.atEOF() {
		switch c.peek().Kind {
		case token.KindUse:
			refs = append(refs, c.parseUseClause()...)
		case token.KindLibrary:
			c.skipLibraryClause()
		case token.KindContext:
			refs = append(refs, c.parseContextReference()...)
		case token.KindEnd:
			c.next()
			if c.peek().Kind == token.KindContext {
				c.next()
			}
			if c.peek().Kind == token.KindIdentifier {
				c.next()
			}
			c.skipToSemicolon()
			return Unit{Kind: KindContext, Name: name, Refs: refs}
		default:
			c.next()
		}
	}
	return Unit{Kind: KindContext, Name: name, Refs: refs}
}

// Extract walks the full token stream of one file and returns its primary
// units, sub-units (architectures/configurations), and package bodies.
// Library clauses are recognized and skipped (they do not themselves
// produce references); use clauses and context references accumulate as
// "pending" references attached to whichever primary/sub unit follows.
func Extract(toks []token.Token) File {
	c := &cursor{toks: toks}
	var f File
	var pending []CompoundIdentifier

	for !c.atEOF() {
		switch c.peek().Kind {
		case token.KindLibrary:
			c.skipLibraryClause()
		case token.KindUse:
			pending = append(pending, c.parseUseClause()...)
		case token.KindContext:
			if c.peekAt(1).Kind == token.KindIdentifier && c.peekAt(2).Kind == token.KindIs {
				f.Units = append(f.Units, c.parseContextDeclaration(pending))
				pending = nil
			} else {
				pending = append(pending, c.parseContextReference()...)
			}
		case token.KindEntity:
			f.Units = append(f.Units, c.parseEntity(pending))
			pending = nil
		case token.KindArchitecture:
			f.SubUnits = append(f.SubUnits, c.parseArchitecture(pending))
			pending = nil
		case token.KindPackage:
			if c.peekAt(1).Kind == token.KindBody {
				f.PackageBody = append(f.PackageBody, c.parsePackageBody(pending))
			} else {
				f.Units = append(f.Units, c.parsePackage(pending))
			}
			pending = nil
		case token.KindConfiguration:
			f.SubUnits = append(f.SubUnits, c.parseConfiguration(pending))
			pending = nil
		default:
			c.next()
		}
	}
	return f
}
