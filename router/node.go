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

	"github.com/cluedesc/clueapi-sub000/httpmethod"
	"github.com/cluedesc/clueapi-sub000/route"
)

// node is one radix-tree node. Static children are keyed by their first
// byte so a lookup descends in O(1) per level; at most one dynamic child
// exists per node, and its parameter name must stay consistent across
// every registration that reaches it.
type node struct {
	prefix   string
	handlers map[httpmethod.Method]route.HandlerFunc

	static map[byte]*node

	dynamic   *node
	paramName string
}

func newNode(prefix string) *node {
	return &node{prefix: prefix, static: map[byte]*node{}}
}

// Tree is a radix tree routing table, built once at startup and read-only
// during serving.
type Tree struct {
	root *node
}

// New returns an empty routing table.
func New() *Tree {
	return &Tree{root: newNode("")}
}

func normalizePath(path string) string {
	if path != "/" && strings.HasSuffix(path, "/") {
		return strings.TrimSuffix(path, "/")
	}

	return path
}

func longestCommonPrefix(a, b string) int {
	n := len(a)

	if len(b) < n {
		n = len(b)
	}

	i := 0

	for i < n && a[i] == b[i] {
		i++
	}

	return i
}
