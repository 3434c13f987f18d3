/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package multipart

import (
	"strings"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
	"github.com/cluedesc/clueapi-sub000/urlencoding"
)

// partHeaders is the small subset of a part's header block this parser
// cares about: the name that keys the fields/files maps, an optional
// filename that flips the part into a file, and its declared content type.
type partHeaders struct {
	name        string
	filename    string
	contentType string
}

// unfoldHeaderBlock collapses CRLF SP and CRLF TAB folded continuations
// into a single space, per RFC 822 §3.1.1 header folding.
func unfoldHeaderBlock(block string) string {
	var b strings.Builder

	b.Grow(len(block))

	for i := 0; i < len(block); i++ {
		if block[i] == '\r' && i+2 < len(block) && block[i+1] == '\n' &&
			(block[i+2] == ' ' || block[i+2] == '\t') {
			b.WriteByte(' ')
			i += 2
			continue
		}

		b.WriteByte(block[i])
	}

	return b.String()
}

// parsePartHeaders parses a part's header block (without the trailing
// CRLFCRLF separator) into a partHeaders value. Folded continuation lines
// are unfolded first; each remaining line is split once on ':'.
func parsePartHeaders(block string) (partHeaders, liberr.Error) {
	var h partHeaders

	block = unfoldHeaderBlock(block)

	for _, line := range strings.Split(block, "\r\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		colon := strings.IndexByte(line, ':')

		if colon < 0 {
			return h, ErrMalformedHeader.Error(nil)
		}

		key := strings.ToLower(strings.TrimSpace(line[:colon]))
		value := strings.TrimSpace(line[colon+1:])

		switch key {
		case "content-type":
			h.contentType = value
		case "content-disposition":
			parseContentDisposition(value, &h)
		}
	}

	return h, nil
}

// parseContentDisposition walks the semicolon-separated parameter list of
// a Content-Disposition value, extracting name, filename and filename*.
// filename* (RFC 5987) takes precedence over a plain filename regardless
// of which one appears first.
func parseContentDisposition(value string, h *partHeaders) {
	semi := strings.IndexByte(value, ';')

	if semi < 0 {
		return
	}

	rest := value[semi+1:]

	var sawExtendedFilename bool

	for len(rest) > 0 {
		rest = strings.TrimLeft(rest, " \t")

		if rest == "" {
			break
		}

		eq := strings.IndexByte(rest, '=')

		if eq < 0 {
			break
		}

		key := strings.ToLower(strings.TrimSpace(rest[:eq]))
		rest = rest[eq+1:]

		var val string

		if len(rest) > 0 && rest[0] == '"' {
			val, rest = readQuotedString(rest)
		} else {
			next := strings.IndexByte(rest, ';')

			if next < 0 {
				val = rest
				rest = ""
			} else {
				val = rest[:next]
				rest = rest[next:]
			}

			val = strings.TrimSpace(val)
		}

		rest = strings.TrimPrefix(rest, ";")

		switch key {
		case "name":
			h.name = val
		case "filename":
			if !sawExtendedFilename {
				h.filename = val
			}
		case "filename*":
			if fn, ok := decodeExtendedValue(val); ok {
				h.filename = fn
				sawExtendedFilename = true
			}
		}
	}
}

// readQuotedString consumes a leading double-quoted string from s,
// honoring backslash escapes, and returns the decoded value plus the
// remainder of s starting right after the closing quote.
func readQuotedString(s string) (string, string) {
	var b strings.Builder

	i := 1

	for i < len(s) {
		c := s[i]

		if c == '\\' && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i += 2
			continue
		}

		if c == '"' {
			i++
			break
		}

		b.WriteByte(c)
		i++
	}

	return b.String(), s[i:]
}

// decodeExtendedValue decodes an RFC 5987 ext-value of the form
// charset'language'percent-encoded-value. Only the percent-encoded portion
// is used; charset/language are accepted but not interpreted.
func decodeExtendedValue(v string) (string, bool) {
	first := strings.IndexByte(v, '\'')

	if first < 0 {
		return "", false
	}

	second := strings.IndexByte(v[first+1:], '\'')

	if second < 0 {
		return "", false
	}

	encoded := v[first+1+second+1:]

	return urlencoding.QueryUnescape(strings.ReplaceAll(encoded, "+", "%2B")), true
}
