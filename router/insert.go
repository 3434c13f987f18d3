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

package router

import (
	"strings"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
	"github.com/cluedesc/clueapi-sub000/httpmethod"
	"github.com/cluedesc/clueapi-sub000/route"
)

// Insert registers h for method and path. path may contain literal
// segments and named dynamic segments of the form {name}; an unclosed
// '{' or an empty name is a malformed-pattern error, a second distinct
// parameter name reaching the same node is a conflict, and registering
// the same (method, path) twice is a conflict.
func (t *Tree) Insert(method httpmethod.Method, path string, h route.HandlerFunc) liberr.Error {
	path = normalizePath(path)

	if path == "" || path == "/" {
		return attachHandler(t.root, method, h)
	}

	remaining := strings.TrimPrefix(path, "/")
	cur := t.root

	for {
		if remaining == "" {
			return attachHandler(cur, method, h)
		}

		if remaining[0] == '{' {
			end := strings.IndexByte(remaining, '}')

			if end < 0 {
				return ErrMalformedParam.Error(nil)
			}

			name := remaining[1:end]

			if name == "" || strings.ContainsAny(name, "{}") {
				return ErrMalformedParam.Error(nil)
			}

			if cur.dynamic == nil {
				cur.dynamic = newNode("")
				cur.paramName = name
			} else if cur.paramName != name {
				return ErrParamConflict.Error(nil)
			}

			cur = cur.dynamic
			remaining = strings.TrimPrefix(remaining[end+1:], "/")

			continue
		}

		b := remaining[0]
		child, ok := cur.static[b]

		if !ok {
			prefix := remaining

			if brace := strings.IndexByte(remaining, '{'); brace >= 0 {
				prefix = remaining[:brace]
			}

			child = newNode(prefix)
			cur.static[b] = child
			cur = child
			remaining = remaining[len(prefix):]

			continue
		}

		lcp := longestCommonPrefix(remaining, child.prefix)

		if lcp < len(child.prefix) {
			splitChild(child, lcp)
		}

		cur = child
		remaining = remaining[lcp:]
	}
}

// splitChild shortens n's prefix to its first newLen bytes, pushing the
// remainder (and everything n already owned) down into a fresh static
// child keyed by its own first byte.
func splitChild(n *node, newLen int) {
	tail := n.prefix[newLen:]

	moved := &node{
		prefix:    tail,
		handlers:  n.handlers,
		static:    n.static,
		dynamic:   n.dynamic,
		paramName: n.paramName,
	}

	n.prefix = n.prefix[:newLen]
	n.handlers = nil
	n.static = map[byte]*node{tail[0]: moved}
	n.dynamic = nil
	n.paramName = ""
}

func attachHandler(n *node, method httpmethod.Method, h route.HandlerFunc) liberr.Error {
	if n.handlers == nil {
		n.handlers = map[httpmethod.Method]route.HandlerFunc{}
	}

	if _, exists := n.handlers[method]; exists {
		return ErrRouteConflict.Error(nil)
	}

	n.handlers[method] = h

	return nil
}
