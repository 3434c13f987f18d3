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

// Lookup resolves method and path to a handler plus the dynamic segments
// it captured along the way. Static children are tried before the dynamic
// child at each node, so a literal segment always wins over a parameter
// that would also match it.
func (t *Tree) Lookup(method httpmethod.Method, path string) (route.HandlerFunc, map[string]string, liberr.Error) {
	path = normalizePath(path)
	params := map[string]string{}

	if path == "" || path == "/" {
		return lookupHandler(t.root, method, params)
	}

	remaining := strings.TrimPrefix(path, "/")
	cur := t.root

	for {
		if remaining == "" {
			return lookupHandler(cur, method, params)
		}

		if child, ok := cur.static[remaining[0]]; ok && strings.HasPrefix(remaining, child.prefix) {
			cur = child
			remaining = remaining[len(child.prefix):]

			continue
		}

		if cur.dynamic != nil {
			seg := remaining
			rest := ""

			if end := strings.IndexByte(remaining, '/'); end >= 0 {
				seg = remaining[:end]
				rest = remaining[end+1:]
			}

			if seg == "" {
				return nil, nil, ErrNoMatch.Error(nil)
			}

			params[cur.paramName] = seg
			cur = cur.dynamic
			remaining = rest

			continue
		}

		return nil, nil, ErrNoMatch.Error(nil)
	}
}

func lookupHandler(n *node, method httpmethod.Method, params map[string]string) (route.HandlerFunc, map[string]string, liberr.Error) {
	if n.handlers == nil {
		return nil, nil, ErrNoMatch.Error(nil)
	}

	h, ok := n.handlers[method]

	if !ok {
		return nil, nil, ErrNoMatch.Error(nil)
	}

	return h, params, nil
}
