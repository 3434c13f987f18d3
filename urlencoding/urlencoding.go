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

// Package urlencoding decodes query strings and x-www-form-urlencoded
// bodies. It keeps invalid percent-escapes intact rather than rejecting
// them outright, matching how the router and multipart parser treat
// malformed-but-survivable input elsewhere in this tree.
package urlencoding

import "strings"

// QueryUnescape decodes a query-component or form value: '+' becomes a
// space and %XX escapes are decoded. A %XX sequence that isn't followed by
// two valid hex digits is copied through unchanged instead of erroring.
func QueryUnescape(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '+':
			b.WriteByte(' ')
		case '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
				i += 2
			} else {
				b.WriteByte('%')
			}
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// ParseQuery splits a raw query string into its key/value pairs, decoding
// both sides. Repeated keys keep the last occurrence, matching this tree's
// single-value header/param model.
func ParseQuery(raw string) map[string]string {
	out := map[string]string{}

	if raw == "" {
		return out
	}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}

		if eq := strings.IndexByte(pair, '='); eq >= 0 {
			out[QueryUnescape(pair[:eq])] = QueryUnescape(pair[eq+1:])
		} else {
			out[QueryUnescape(pair)] = ""
		}
	}

	return out
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func unhex(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}

	return 0
}
