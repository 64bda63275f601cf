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
	"net/url"
	"path"
	"strings"

	motmedelHttpHeadersParsingAcceptEncoding "github.com/Motmedel/utils_go/pkg/http/parsing/headers/accept_encoding"
)

// uriSafe lists the bytes encodeURI leaves unescaped: letters, digits, and the
// URI reserved and unreserved marks. Notably, "%" is not in this set.
var uriSafe = func() (safe [256]bool) {
	for c := 'a'; c <= 'z'; c++ {
		safe[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		safe[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		safe[c] = true
	}
	for _, c := range "-_.!~*'();/?:@&=+$,#" {
		safe[c] = true
	}
	return
}()

// encodeURI percent-encodes all bytes of s outside the uriSafe set, including
// any "%" of existing (and possibly malformed) escape sequences.
func encodeURI(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriSafe[c] {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

// requestPath returns the decoded and rooted path of the specified raw request
// URI, with all dot segments removed. The raw URI can be either in origin form
// ("/foo?bar") or in absolute form ("http://host/foo"). Raw URIs that fail to parse, such as ones with malformed
// escapes or control characters, get escaped first and are parsed again, so
// that their oddities end up literally in the path and thus cannot match any
// indexed asset.
func requestPath(rawURI string) string {
	u, err := parseURI(rawURI)
	if err != nil {
		if u, err = parseURI(encodeURI(rawURI)); err != nil {
			return "/"
		}
	}
	if !strings.HasPrefix(u.Path, "/") {
		return removeDotSegments("/" + u.Path)
	}
	return removeDotSegments(u.Path)
}

// removeDotSegments removes all "." and ".." segments from the specified
// rooted path, as described in RFC 3986, section 5.2.4. Unlike path.Clean, it
// neither collapses empty segments nor drops a trailing slash; a final "." or
// ".." segment leaves a trailing slash behind.
func removeDotSegments(p string) string {
	if !strings.Contains(p, ".") {
		return p
	}
	segments := strings.Split(p[1:], "/")
	out := make([]string, 0, len(segments))
	for i, segment := range segments {
		final := i == len(segments)-1
		switch segment {
		case ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, segment)
			continue
		}
		if final {
			out = append(out, "")
		}
	}
	return "/" + strings.Join(out, "/")
}

// parseURI parses a raw request URI, ignoring any fragment. URIs in origin
// form are parsed as paths, so that "//foo/bar" doesn't lose its "foo" to the
// URI authority.
func parseURI(rawURI string) (*url.URL, error) {
	rawURI, _, _ = strings.Cut(rawURI, "#")
	if strings.HasPrefix(rawURI, "/") {
		return url.ParseRequestURI(rawURI)
	}
	return url.Parse(rawURI)
}

// sanitizeAcceptEncoding drops all characters from an Accept-Encoding header
// value that are neither letters, digits, spaces, nor any of the punctuation
// `"#$%&'()*+,-./:;=?@[]_`.
func sanitizeAcceptEncoding(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune("\"#$%&'()*+,-./:;=?@[]_ ", r):
			return r
		}
		return -1
	}, s)
}

// acceptedEncodings returns the set of content codings listed in the specified
// (sanitized) Accept-Encoding header value. Codings are lowercased; codings
// explicitly refused with a zero quality value are not included. Header values
// that are not valid Accept-Encoding lists result in an empty set.
func acceptedEncodings(s string) map[string]bool {
	accepted := map[string]bool{}
	s = strings.TrimSpace(s)
	if s == "" {
		return accepted
	}
	acceptEncoding, err := motmedelHttpHeadersParsingAcceptEncoding.ParseAcceptEncoding([]byte(s))
	if err != nil || acceptEncoding == nil {
		return accepted
	}
	for _, encoding := range acceptEncoding.Encodings {
		if encoding == nil || encoding.QualityValue <= 0 {
			continue
		}
		accepted[strings.ToLower(strings.TrimSpace(encoding.Coding))] = true
	}
	return accepted
}

// extension returns the lowercase file extension of the final element of the
// specified slash-separated path, including the leading dot. Names consisting
// of only a leading dot followed by a name, such as ".env", have no extension.
func extension(p string) string {
	base := strings.TrimLeft(path.Base(p), ".")
	if base == "" || base == "/" {
		return ""
	}
	return strings.ToLower(path.Ext(base))
}
