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

// Package httpcookie models Set-Cookie/Cookie headers, including the
// __Secure- and __Host- name-prefix rules browsers enforce.
package httpcookie

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
)

const (
	pkgMinCode = liberr.MinPkgCookie

	ErrInvalidPrefix liberr.CodeError = pkgMinCode + iota + 1
	ErrEmptyName
)

func init() {
	liberr.RegisterIdFctMessage(pkgMinCode, func(code liberr.CodeError) string {
		switch code {
		case ErrInvalidPrefix:
			return "cookie violates its __Secure-/__Host- name prefix contract"
		case ErrEmptyName:
			return "cookie name must not be empty"
		default:
			return ""
		}
	})
}

// SameSite mirrors the three values a Set-Cookie SameSite attribute can take.
type SameSite uint8

const (
	SameSiteDefault SameSite = iota
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteLax:
		return "Lax"
	case SameSiteStrict:
		return "Strict"
	case SameSiteNone:
		return "None"
	default:
		return ""
	}
}

// Cookie is a single name/value pair plus its Set-Cookie attributes.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	Domain   string
	MaxAge   int
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
	SameSite SameSite
}

// Validate enforces the __Secure- and __Host- name-prefix contracts: a
// __Secure- cookie must be Secure, a __Host- cookie must be Secure, must not
// set Domain and must scope Path to "/".
func (c *Cookie) Validate() liberr.Error {
	if c.Name == "" {
		return ErrEmptyName.Error(nil)
	}

	if strings.HasPrefix(c.Name, "__Host-") {
		if !c.Secure || c.Domain != "" || c.Path != "/" {
			return ErrInvalidPrefix.Error(nil)
		}
	} else if strings.HasPrefix(c.Name, "__Secure-") {
		if !c.Secure {
			return ErrInvalidPrefix.Error(nil)
		}
	}

	return nil
}

// String renders the Set-Cookie header value without calling Validate;
// the response writer drops cookies that fail Validate before rendering
// them. A SameSite=None cookie without Secure is rendered as is, and
// nothing logs it.
func (c *Cookie) String() string {
	var b strings.Builder

	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(sanitizeValue(c.Value))

	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}

	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}

	if c.MaxAge != 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(c.MaxAge))
	}

	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(http1123))
	}

	if c.Secure {
		b.WriteString("; Secure")
	}

	if c.HTTPOnly {
		b.WriteString("; HttpOnly")
	}

	if s := c.SameSite.String(); s != "" {
		b.WriteString("; SameSite=")
		b.WriteString(s)
	}

	return b.String()
}

const http1123 = "Mon, 02 Jan 2006 15:04:05 GMT"

func sanitizeValue(v string) string {
	needsQuote := false

	for i := 0; i < len(v); i++ {
		if !validCookieValueByte(v[i]) {
			needsQuote = true
			break
		}
	}

	if !needsQuote {
		return v
	}

	return fmt.Sprintf("%q", v)
}

func validCookieValueByte(b byte) bool {
	return b == 0x21 || (b >= 0x23 && b <= 0x2B) || (b >= 0x2D && b <= 0x3A) ||
		(b >= 0x3C && b <= 0x5B) || (b >= 0x5D && b <= 0x7E)
}

// ParseCookieHeader splits a request's Cookie header into name/value pairs.
func ParseCookieHeader(header string) map[string]string {
	out := map[string]string{}

	pairs := strings.Split(header, ";")

	for _, p := range pairs {
		p = strings.TrimSpace(p)

		if p == "" {
			continue
		}

		eq := strings.IndexByte(p, '=')

		if eq < 0 {
			continue
		}

		name := strings.TrimSpace(p[:eq])
		value := strings.TrimSpace(p[eq+1:])

		value = strings.Trim(value, `"`)

		if name == "" {
			continue
		}

		out[name] = value
	}

	return out
}
