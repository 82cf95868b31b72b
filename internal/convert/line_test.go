// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agora-convert/pkg/types"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "cache hit",
			in:   `312|200|HIT|"GET /robots.txt HTTP/1.1"|100.2`,
			want: `"MINHA CDN" GET 200 /robots.txt 100 312 HIT`,
		},
		{
			name: "cache miss post",
			in:   `101|200|MISS|"POST /myImages HTTP/1.1"|319.4`,
			want: `"MINHA CDN" POST 200 /myImages 319 101 MISS`,
		},
		{
			name: "not found",
			in:   `199|404|MISS|"GET /not-found HTTP/1.1"|142.9`,
			want: `"MINHA CDN" GET 404 /not-found 142 199 MISS`,
		},
		{
			name: "invalidate",
			in:   `2|200|INVALIDATE|"GET /robots.txt HTTP/1.1"|245.1`,
			want: `"MINHA CDN" GET 200 /robots.txt 245 2 INVALIDATE`,
		},
		{
			name: "time taken without dot",
			in:   `1|2|3|A B C|45`,
			want: `"MINHA CDN" A 2 B 45 1 3`,
		},
		{
			name: "only first dot splits time taken",
			in:   `1|2|3|A B C|4.5.6`,
			want: `"MINHA CDN" A 2 B 4 1 3`,
		},
		{
			name: "time taken starting with dot",
			in:   `1|2|3|A B C|.5`,
			want: `"MINHA CDN" A 2 B  1 3`,
		},
		{
			name: "pieces after index six are ignored",
			in:   `1|2|3|A B C|4.5|extra tokens`,
			want: `"MINHA CDN" A 2 B 4 1 3`,
		},
		{
			name: "adjacent delimiters keep positions",
			in:   `1||3|A B C|4.5`,
			want: `"MINHA CDN" A  B 4 1 3`,
		},
		{
			name: "pipe followed by space",
			in:   `1| 3|A B C|4.5`,
			want: `"MINHA CDN" A  B 4 1 3`,
		},
		{
			name: "leading delimiter shifts nothing but adds an empty piece",
			in:   ` 1|2|3|A B|4.5`,
			want: `"MINHA CDN" 3 1 A 4  2`,
		},
		{
			name: "empty time taken",
			in:   `1|2|3|A B C|`,
			want: `"MINHA CDN" A 2 B  1 3`,
		},
		{
			name: "quotes removed everywhere",
			in:   `"312"|"200"|"HIT"|"GET /a.html HTTP/1.1"|"1.0"`,
			want: `"MINHA CDN" GET 200 /a.html 1 312 HIT`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatLine(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLine_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty line", in: ""},
		{name: "single token", in: "garbage"},
		{name: "three fields", in: "1|2|3"},
		{name: "six pieces", in: `312|200|HIT|"GET /robots.txt"|100.2`},
		{name: "quotes only", in: `""""""`},
		{name: "tabs are not delimiters", in: "1\t2\t3\t4\t5\t6\t7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatLine(tt.in)
			assert.ErrorIs(t, err, ErrInvalidFormat)
			assert.Empty(t, got)
		})
	}
}

func TestParseLine(t *testing.T) {
	rec, err := ParseLine(`312|200|HIT|"GET /robots.txt HTTP/1.1"|100.2`)
	require.NoError(t, err)
	assert.Equal(t, types.LogRecord{
		HTTPMethod:   "GET",
		StatusCode:   "200",
		URIPath:      "/robots.txt",
		TimeTaken:    "100",
		ResponseSize: "312",
		CacheStatus:  "HIT",
	}, rec)
}

func TestSplitPieces(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: []string{""}},
		{in: "a", want: []string{"a"}},
		{in: "a|b c", want: []string{"a", "b", "c"}},
		{in: "a||b", want: []string{"a", "", "b"}},
		{in: "a| b", want: []string{"a", "", "b"}},
		{in: "|", want: []string{"", ""}},
		{in: "a ", want: []string{"a", ""}},
		{in: "  ", want: []string{"", "", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPieces(tt.in))
		})
	}
}
