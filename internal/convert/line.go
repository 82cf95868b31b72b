// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"strings"

	"github.com/pdiddy/agora-convert/pkg/types"
)

// ErrInvalidFormat reports a source line that does not have the MINHA CDN shape.
var ErrInvalidFormat = errors.New(`the source file isn't a valid "MINHA CND" file`)

// minPieces is the number of tokens a source line must split into.
const minPieces = 7

// Source line positions.
const (
	posResponseSize = 0
	posStatusCode   = 1
	posCacheStatus  = 2
	posHTTPMethod   = 3
	posURIPath      = 4
	posTimeTaken    = 6
)

// ParseLine splits a MINHA CDN line into a record.
//
// Double quotes are dropped, then the line is split on '|' and ' '. Every
// delimiter ends a piece, so adjacent delimiters yield empty pieces and field
// positions never shift. Pieces past index 6 are ignored. Only the part of
// the time-taken field before its first '.' is kept.
func ParseLine(line string) (types.LogRecord, error) {
	pieces := splitPieces(strings.ReplaceAll(line, `"`, ""))
	if len(pieces) < minPieces {
		return types.LogRecord{}, ErrInvalidFormat
	}

	timeTaken, _, _ := strings.Cut(pieces[posTimeTaken], ".")
	return types.LogRecord{
		HTTPMethod:   pieces[posHTTPMethod],
		StatusCode:   pieces[posStatusCode],
		URIPath:      pieces[posURIPath],
		TimeTaken:    timeTaken,
		ResponseSize: pieces[posResponseSize],
		CacheStatus:  pieces[posCacheStatus],
	}, nil
}

// FormatLine converts one MINHA CDN line into one Agora line.
func FormatLine(line string) (string, error) {
	rec, err := ParseLine(line)
	if err != nil {
		return "", err
	}
	return rec.String(), nil
}

// splitPieces splits s on '|' and ' ' without collapsing delimiters.
// A string with n delimiters always yields n+1 pieces.
func splitPieces(s string) []string {
	pieces := make([]string, 0, minPieces+1)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '|' || s[i] == ' ' {
			pieces = append(pieces, s[start:i])
			start = i + 1
		}
	}
	return append(pieces, s[start:])
}
