// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package assetserve

import (
	"net/http"
	"strings"
)

// ImmutableCacheControl is the cache policy of all assets except for HTML,
// web app manifests, Markdown, and service worker scripts: these must always
// be revalidated, as their names don't change with their contents.
const ImmutableCacheControl = "public, max-age=31536000, immutable"

// IndexFile is the file implicitly served for extension-less request paths,
// and also the single entry point of SPAs.
const IndexFile = "index.html"

// spaEntryPoint is the rooted path of the SPA entry point.
const spaEntryPoint = "/" + IndexFile

// encoding describes a pre-compressed variant of an asset, as produced by the
// build step.
type encoding struct {
	token  string // content coding token in Accept-Encoding and Content-Encoding.
	suffix string // file name suffix of the pre-compressed variant.
}

// encodings lists the supported pre-compressed variants in order of
// preference.
var encodings = []encoding{
	{token: "br", suffix: ".br"},
	{token: "gzip", suffix: ".gz"},
}

// compressible lists the file extensions for which pre-compressed variants are
// negotiated.
var compressible = map[string]bool{
	".html": true,
	".htm":  true,
	".js":   true,
	".mjs":  true,
	".css":  true,
}

// revalidated lists the content types that never get the immutable cache
// policy.
var revalidated = map[string]bool{
	"text/html":                 true,
	"application/manifest+json": true,
	"text/markdown":             true,
}

// Header is the set of response headers computed while resolving a request.
// Header values are never modified in place; the With methods return updated
// copies instead. Empty fields denote absent headers.
type Header struct {
	Allow           string
	ContentType     string
	ContentEncoding string
	CacheControl    string
	Vary            string
}

// WithContentType returns a copy of h with the specified Content-Type.
func (h Header) WithContentType(ct string) Header {
	h.ContentType = ct
	return h
}

// WithContentEncoding returns a copy of h with the specified Content-Encoding.
func (h Header) WithContentEncoding(ce string) Header {
	h.ContentEncoding = ce
	return h
}

// WithCacheControl returns a copy of h with the specified Cache-Control.
func (h Header) WithCacheControl(cc string) Header {
	h.CacheControl = cc
	return h
}

// WithVary returns a copy of h with the specified Vary.
func (h Header) WithVary(vary string) Header {
	h.Vary = vary
	return h
}

// Apply sets all non-empty headers of h in the specified http.Header.
func (h Header) Apply(header http.Header) {
	for _, kv := range [...]struct{ key, value string }{
		{"Allow", h.Allow},
		{"Content-Type", h.ContentType},
		{"Content-Encoding", h.ContentEncoding},
		{"Cache-Control", h.CacheControl},
		{"Vary", h.Vary},
	} {
		if kv.value != "" {
			header.Set(kv.key, kv.value)
		}
	}
}

// Resolution describes how to respond to a request: with which status code,
// which headers, and which indexed file to stream as the response body.
// Resolutions are comparable, so resolving the same request twice against the
// same AssetIndex results in equal Resolutions.
type Resolution struct {
	Status int    // one of http.StatusOK, StatusNotFound, or StatusMethodNotAllowed.
	Header Header // response headers.
	Path   string // rooted path of the indexed file to serve; only set with StatusOK.
}

// Resolver resolves GET requests to the assets in an AssetIndex. A Resolver
// is stateless after construction and safe for concurrent use.
type Resolver struct {
	index           *AssetIndex
	spa             bool
	notFoundHeaders bool
}

// ResolverOption sets optional properties at the time of creating a Resolver.
type ResolverOption func(*Resolver)

// WithSPA enables or disables SPA mode. In SPA mode, all requests for HTML
// content are resolved to the "/index.html" entry point.
func WithSPA(enable bool) ResolverOption {
	return func(r *Resolver) {
		r.spa = enable
	}
}

// WithNotFoundHeaders controls whether 404 resolutions keep the Content-Type,
// Content-Encoding, and Cache-Control headers computed for the missing asset.
// By default, 404 resolutions come without any headers.
func WithNotFoundHeaders(keep bool) ResolverOption {
	return func(r *Resolver) {
		r.notFoundHeaders = keep
	}
}

// NewResolver returns a new Resolver for the assets in the specified index.
func NewResolver(index *AssetIndex, opts ...ResolverOption) *Resolver {
	r := &Resolver{index: index}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveRequest resolves the specified HTTP request; see Resolve for details.
func (r *Resolver) ResolveRequest(req *http.Request) Resolution {
	rawURI := req.RequestURI
	if rawURI == "" {
		rawURI = req.URL.RequestURI()
	}
	return r.Resolve(req.Method, rawURI, req.Header)
}

// Resolve resolves a request, given its method, raw request URI, and request
// headers, to a Resolution. The resolution steps are, in this order:
//
//   - only GET requests are allowed.
//   - the path gets extracted from the raw URI, escaping any malformed parts
//     and removing dot segments.
//   - extension-less paths resolve to their implicit "index.html" file.
//   - the content type is assigned based on the (resolved) file extension.
//   - in SPA mode, HTML requests are rerouted to "/index.html".
//   - for HTML, JavaScript, and CSS, a Brotli or gzip variant is chosen if
//     accepted by the client and available; such responses vary by
//     Accept-Encoding.
//   - the cache policy is assigned.
//   - if the resolved file (variant) is indexed, it gets served, otherwise
//     the request resolves to 404.
//
// Resolve never fails on malformed input; at worst, it resolves to 404.
func (r *Resolver) Resolve(method, rawURI string, header http.Header) Resolution {
	if method != http.MethodGet {
		return Resolution{
			Status: http.StatusMethodNotAllowed,
			Header: Header{Allow: http.MethodGet},
		}
	}

	pathname := requestPath(rawURI)
	accepted := acceptedEncodings(sanitizeAcceptEncoding(
		strings.Join(header.Values("Accept-Encoding"), ",")))

	filePath := pathname
	ext := extension(pathname)
	if ext == "" {
		if strings.HasSuffix(pathname, "/") {
			filePath = pathname + IndexFile
		} else {
			filePath = pathname + "/" + IndexFile
		}
		ext = ".html"
	}

	contentType := ContentType(ext)
	hdr := Header{}.WithContentType(contentType)

	if r.spa && contentType == "text/html" {
		filePath = spaEntryPoint
	}

	suffix := ""
	if compressible[ext] {
		hdr = hdr.WithVary("Accept-Encoding")
		for _, enc := range encodings {
			if accepted[enc.token] && r.index.Contains(filePath+enc.suffix) {
				suffix = enc.suffix
				hdr = hdr.WithContentEncoding(enc.token)
				break
			}
		}
	}

	if !revalidated[contentType] && !strings.HasSuffix(filePath, "sw.js") {
		hdr = hdr.WithCacheControl(ImmutableCacheControl)
	}

	if !r.index.Contains(filePath + suffix) {
		if !r.notFoundHeaders {
			hdr = Header{}
		}
		return Resolution{Status: http.StatusNotFound, Header: hdr}
	}
	return Resolution{Status: http.StatusOK, Header: hdr, Path: filePath + suffix}
}
