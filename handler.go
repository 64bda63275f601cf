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
	"io"
	"io/fs"
	"net/http"
	"strconv"
)

// AssetHandler implements an http.Handler that serves the static assets from
// an fs.FS, as resolved by a Resolver against the AssetIndex of this fs.FS.
type AssetHandler struct {
	fs       fs.FS            // the FS to serve static assets from.
	index    *AssetIndex      // servable files inside fs.
	resolver *Resolver        // maps requests onto indexed files.
	ropts    []ResolverOption // options for creating the resolver.
}

// AssetHandlerOption sets optional properties at the time of creating an
// AssetHandler.
type AssetHandlerOption func(*AssetHandler)

// WithSPAFallback enables or disables rerouting all HTML requests to the
// "/index.html" entry point of an SPA.
func WithSPAFallback(enable bool) AssetHandlerOption {
	return func(h *AssetHandler) {
		h.ropts = append(h.ropts, WithSPA(enable))
	}
}

// WithNotFoundHeaderFields keeps the computed Content-Type, Content-Encoding,
// and Cache-Control headers on 404 responses.
func WithNotFoundHeaderFields(keep bool) AssetHandlerOption {
	return func(h *AssetHandler) {
		h.ropts = append(h.ropts, WithNotFoundHeaders(keep))
	}
}

// WithIndex uses the specified, already built AssetIndex instead of indexing
// the handler's fs.FS. The index must describe the fs.FS passed to
// NewAssetHandler.
func WithIndex(index *AssetIndex) AssetHandlerOption {
	return func(h *AssetHandler) {
		h.index = index
	}
}

// NewAssetHandler returns a new HTTP handler serving the static assets from
// the specified fs. Unless an index is passed using WithIndex, NewAssetHandler
// indexes all files in fs once, returning an error if this fails.
//
// In order to serve the static assets from a directory on the OS file system,
// use os.DirFS:
//
//	h, err := NewAssetHandler(os.DirFS("/opt/data/myspa"), WithSPAFallback(true))
func NewAssetHandler(fsys fs.FS, opts ...AssetHandlerOption) (*AssetHandler, error) {
	h := &AssetHandler{fs: fsys}
	for _, opt := range opts {
		opt(h)
	}
	if h.index == nil {
		index, err := NewAssetIndex(fsys)
		if err != nil {
			return nil, err
		}
		h.index = index
	}
	h.resolver = NewResolver(h.index, h.ropts...)
	return h, nil
}

// Index returns the AssetIndex of the assets served.
func (h *AssetHandler) Index() *AssetIndex {
	return h.index
}

// ServeHTTP resolves the request and then either streams the resolved asset
// or responds with an empty body and the resolved (error) status code.
func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := h.resolver.ResolveRequest(r)
	if res.Status != http.StatusOK {
		res.Header.Apply(w.Header())
		w.WriteHeader(res.Status)
		return
	}
	h.serveAsset(w, res)
}

// serveAsset streams the indexed asset of the specified resolution. Assets
// that vanished or became unreadable since indexing are reported using a
// normalized status code, without any of the resolved headers.
//
// IMPORTANT: res.Path must name an indexed file.
func (h *AssetHandler) serveAsset(w http.ResponseWriter, res Resolution) {
	f, err := h.fs.Open(res.Path[1:]) // ...fs.FS uses unrooted paths.
	if err != nil {
		w.WriteHeader(NormalizedHttpStatus(err))
		return
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		w.WriteHeader(NormalizedHttpStatus(err))
		return
	}
	res.Header.Apply(w.Header())
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, f)
}
