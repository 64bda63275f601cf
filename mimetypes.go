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

// DefaultContentType is the content type of assets with an unknown or missing
// file extension.
const DefaultContentType = "application/octet-stream"

// mimeTypes maps lowercase file extensions, including the leading dot, to
// their MIME types. Unlike the standard library's mime package, this table
// does not depend on the host's mime.types files.
var mimeTypes = map[string]string{
	// markup, scripts, and styles
	".html": "text/html",
	".htm":  "text/html",
	".js":   "text/javascript",
	".mjs":  "text/javascript",
	".css":  "text/css",
	".md":   "text/markdown",
	".txt":  "text/plain",
	".xml":  "application/xml",
	// data
	".json":        "application/json",
	".map":         "application/json",
	".webmanifest": "application/manifest+json",
	".pdf":         "application/pdf",
	".wasm":        "application/wasm",
	// images
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".avif": "image/avif",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	// audio and video
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	// fonts
	".woff2": "font/woff2",
	".woff":  "font/woff",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
}

// ContentType returns the MIME type for the specified lowercase file extension
// including its leading dot, such as ".js". Unknown extensions result in
// DefaultContentType.
func ContentType(ext string) string {
	if ct, ok := mimeTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}
