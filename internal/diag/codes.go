package diag

import (
	"fmt"
)

// Code identifies engine-produced diagnostics. Findings of rules all share
// RuleIssue and are told apart by Diagnostic.RuleID.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexInvalidUTF8              Code = 1006
	LexFileTooLarge             Code = 1007
	LexNulByte                  Code = 1008

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectToken      Code = 2002
	SynUnclosedBrace    Code = 2003
	SynExpectIdentifier Code = 2004
	SynExpectType       Code = 2005
	SynExpectExpression Code = 2006
	SynExpectSemicolon  Code = 2007
	SynExpectMember     Code = 2008

	// Правила
	RuleIssue Code = 3000
	RuleFault Code = 3001

	// Автоисправления
	FixNotApplied      Code = 4000
	FixAmbiguousTrivia Code = 4001
	FixAnnotationLost  Code = 4002

	IOLoadFileError Code = 5000
	IOCacheError    Code = 5001

	ObsTimings Code = 6000
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid numeric literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexInvalidUTF8:              "Source is not valid UTF-8",
	LexFileTooLarge:             "Source file too large",
	LexNulByte:                  "NUL byte in source",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectToken:              "Missing token",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectMember:             "Expected member declaration",
	RuleIssue:                   "Rule finding",
	RuleFault:                   "Rule faulted",
	FixNotApplied:               "Fix could not be applied",
	FixAmbiguousTrivia:          "Fix refused: ambiguous trivia",
	FixAnnotationLost:           "Fix aborted: annotated node lost",
	IOLoadFileError:             "I/O load file error",
	IOCacheError:                "Result cache error",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RUL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FIX%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsSyntax reports whether the code was produced while lexing or parsing.
func (c Code) IsSyntax() bool { return c >= 1000 && c < 3000 }
