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

// Package mimetype resolves a file extension to a Content-Type, layering a
// handful of extensions the standard table misses on top of the stdlib's
// mime package. There is no third-party MIME sniffing library anywhere in
// the example pack, so this stays on the standard library deliberately (see
// DESIGN.md).
package mimetype

import (
	"mime"
	"path/filepath"
	"strings"
)

// extra holds extensions mime.TypeByExtension doesn't resolve on every
// platform/build.
var extra = map[string]string{
	".mjs":  "text/javascript; charset=utf-8",
	".wasm": "application/wasm",
	".map":  "application/json; charset=utf-8",
	".ico":  "image/x-icon",
	".webp": "image/webp",
	".avif": "image/avif",
}

// ByExtension returns the Content-Type for a path's extension, falling back
// to application/octet-stream when nothing matches.
func ByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == "" {
		return "application/octet-stream"
	}

	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}

	if t, ok := extra[ext]; ok {
		return t
	}

	return "application/octet-stream"
}
