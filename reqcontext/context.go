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

// Package reqcontext builds the value a handler actually receives: the
// request, its matched route parameters, and (for multipart submissions)
// the parsed form fields and uploaded files.
package reqcontext

import (
	"os"

	"github.com/cluedesc/clueapi-sub000/httprequest"
	"github.com/cluedesc/clueapi-sub000/logging"
	"github.com/cluedesc/clueapi-sub000/multipart"
)

// Context is handed to every handler and middleware. Fields and Files are
// only populated for a multipart/form-data request; both are left empty
// rather than failing the request if parsing goes wrong, per the
// fail-open contract.
type Context struct {
	Request *httprequest.Request
	Params  map[string]string
	Fields  map[string]string
	Files   map[string]*multipart.File
}

// Build parses request, param and multipart-body into a Context. A file
// request (body streamed to disk by the reader) is parsed and its temp
// file removed afterward, logging on deletion failure; an in-memory
// multipart body is parsed directly from Request.Body. Any other request
// shape gets an empty Fields/Files map.
func Build(req *httprequest.Request, params map[string]string, cfg multipart.Config, log logging.Logger) *Context {
	ctx := &Context{
		Request: req,
		Params:  params,
		Fields:  map[string]string{},
		Files:   map[string]*multipart.File{},
	}

	if log == nil {
		log = logging.Discard()
	}

	switch {
	case req.ParsePath != "":
		boundary, ok := httprequest.BoundaryOf(req.Headers.ContentType())

		if ok {
			if res, err := multipart.ParseFile(req.ParsePath, cfg.WithBoundary(boundary)); err != nil {
				log.Warn("multipart parse failed").Field("path", req.ParsePath).Error(err).Log()
			} else {
				ctx.Fields = res.Fields
				ctx.Files = res.Files
			}
		}

		if rerr := os.Remove(req.ParsePath); rerr != nil {
			log.Warn("failed to remove streamed request body").Field("path", req.ParsePath).Error(rerr).Log()
		}
	case req.IsMultipart():
		boundary, ok := httprequest.BoundaryOf(req.Headers.ContentType())

		if ok {
			if res, err := multipart.ParseBytes(req.Body, cfg.WithBoundary(boundary)); err != nil {
				log.Warn("multipart parse failed").Error(err).Log()
			} else {
				ctx.Fields = res.Fields
				ctx.Files = res.Files
			}
		}
	}

	return ctx
}

// Close releases any uploaded files' backing storage. Callers run this
// once the handler has returned.
func (c *Context) Close() {
	for _, f := range c.Files {
		_ = f.Close()
	}
}
