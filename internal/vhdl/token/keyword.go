package token

// keywords maps the ASCII-folded spelling of every VHDL reserved word to its
// Kind. Matching against this table is always done on a lower-cased copy of
// the candidate identifier text (see foldASCII), since the reserved word set
// is defined purely in terms of ASCII letters.
var keywords = map[string]Kind{
	"abs": KindAbs, "access": KindAccess, "after": KindAfter, "alias": KindAlias,
	"all": KindAll, "and": KindAnd, "architecture": KindArchitecture, "array": KindArray,
	"assert": KindAssert, "assume": KindAssume, "attribute": KindAttribute,
	"begin": KindBegin, "block": KindBlock, "body": KindBody, "buffer": KindBuffer,
	"bus": KindBus, "case": KindCase, "component": KindComponent,
	"configuration": KindConfiguration, "constant": KindConstant, "context": KindContext,
	"cover": KindCover, "default": KindDefault, "disconnect": KindDisconnect,
	"downto": KindDownto, "else": KindElse, "elsif": KindElsif, "end": KindEnd,
	"entity": KindEntity, "exit": KindExit, "fairness": KindFairness, "file": KindFile,
	"for": KindFor, "force": KindForce, "function": KindFunction, "generate": KindGenerate,
	"generic": KindGeneric, "group": KindGroup, "guarded": KindGuarded, "if": KindIf,
	"impure": KindImpure, "in": KindIn, "inertial": KindInertial, "inout": KindInout,
	"is": KindIs, "label": KindLabel, "library": KindLibrary, "linkage": KindLinkage,
	"literal": KindLiteral, "loop": KindLoop, "map": KindMap, "mod": KindMod,
	"nand": KindNand, "new": KindNew, "next": KindNext, "nor": KindNor, "not": KindNot,
	"null": KindNull, "of": KindOf, "on": KindOn, "open": KindOpen, "or": KindOr,
	"others": KindOthers, "out": KindOut, "package": KindPackage, "parameter": KindParameter,
	"port": KindPort, "postponed": KindPostponed, "private": KindPrivate,
	"procedure": KindProcedure, "process": KindProcess, "property": KindProperty,
	"protected": KindProtected, "pure": KindPure, "range": KindRange, "record": KindRecord,
	"register": KindRegister, "reject": KindReject, "release": KindRelease, "rem": KindRem,
	"report": KindReport, "restrict": KindRestrict, "return": KindReturn, "rol": KindRol,
	"ror": KindRor, "select": KindSelect, "sequence": KindSequence, "severity": KindSeverity,
	"signal": KindSignal, "shared": KindShared, "sla": KindSla, "sll": KindSll,
	"sra": KindSra, "srl": KindSrl, "strong": KindStrong, "subtype": KindSubtype,
	"then": KindThen, "to": KindTo, "transport": KindTransport, "type": KindType,
	"unaffected": KindUnaffected, "units": KindUnits, "until": KindUntil, "use": KindUse,
	"variable": KindVariable, "view": KindView, "vmode": KindVmode, "vpkg": KindVpkg,
	"vprop": KindVprop, "vunit": KindVunit, "wait": KindWait, "when": KindWhen,
	"while": KindWhile, "with": KindWith, "xnor": KindXnor, "xor": KindXor,
}

// keywordText renders a keyword Kind back to its canonical lower-case
// spelling, built once from the keywords table.
var keywordText = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		m[kind] = text
	}
	return m
}()

// matchKeyword reports whether the ASCII-folded form of text is a reserved
// word, returning its Kind.
func matchKeyword(text string) (Kind, bool) {
	k, ok := keywords[foldASCII(text)]
	return k, ok
}

// delimiterText renders every delimiter Kind back to its source spelling.
var delimiterText = map[Kind]string{
	KindAmpersand:   "&",
	KindSingleQuote: "'",
	KindParenL:      "(",
	KindParenR:      ")",
	KindStar:        "*",
	KindPlus:        "+",
	KindComma:       ",",
	KindDash:        "-",
	KindDot:         ".",
	KindFwdSlash:    "/",
	KindColon:       ":",
	KindTerminator:  ";",
	KindLt:          "<",
	KindEq:          "=",
	KindGt:          ">",
	KindBackTick:    "`",
	KindPipe:        "|",
	KindBrackL:      "[",
	KindBrackR:      "]",
	KindQuestion:    "?",
	KindAtSymbol:    "@",
	KindArrow:       "=>",
	KindDoubleStar:  "**",
	KindVarAssign:   ":=",
	KindInequality:  "/=",
	KindGTE:         ">=",
	KindSigAssign:   "<=",
	KindBox:         "<>",
	KindSigAssoc:    "<=>",
	KindCondConv:    "??",
	KindMatchEQ:     "?=",
	KindMatchNE:     "?/=",
	KindMatchLT:     "?<",
	KindMatchLTE:    "?<=",
	KindMatchGT:     "?>",
	KindMatchGTE:    "?>=",
	KindDoubleLT:    "<<",
	KindDoubleGT:    ">>",
}

// matchDelimiter maps raw delimiter text (including the '!'/'|' alias) to
// its Kind.
func matchDelimiter(text string) (Kind, bool) {
	if text == "!" {
		return KindPipe, true
	}
	for kind, spelling := range delimiterText {
		if spelling == text {
			return kind, true
		}
	}
	return 0, false
}
