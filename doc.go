/*
Package assetserve serves the static output of a frontend build step, such as
the "dist" directory of a bundler, including any pre-compressed ".br" and ".gz"
sibling files the build step produced alongside the original assets.

An AssetIndex lists every servable file once at startup. A Resolver then maps
each GET request onto exactly one file from this index: it resolves implicit
"index.html" files for extension-less paths, assigns the content type and the
cache policy, optionally reroutes HTML requests to the single "/index.html"
entry point of a "Single Page Application" (SPA), and picks the Brotli or gzip
variant of HTML, JavaScript, and CSS assets when the client accepts it.

The AssetHandler type implements http.Handler on top of a Resolver, streaming
the resolved files from any fs.FS:

	h, err := assetserve.NewAssetHandler(os.DirFS("./dist"), assetserve.WithSPAFallback(true))

As the set of servable files is fixed at startup, requests never touch the file
system for anything else than the single file finally served; paths not listed
in the index cannot be reached, whatever they contain.
*/
package assetserve
