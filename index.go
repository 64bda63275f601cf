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
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// AssetIndex is the immutable set of all servable files, each identified by
// its rooted, slash-separated path, such as "/index.html" or
// "/assets/app.js.br". An AssetIndex never changes after construction and thus
// can be shared by any number of concurrently running requests without
// locking.
type AssetIndex struct {
	paths map[string]struct{}
}

// NewAssetIndexFromDir returns a new AssetIndex listing all regular files
// inside the specified directory on the OS file system, as well as inside all
// its subdirectories. It returns an error if the directory does not exist, is
// not a directory, or cannot be read.
func NewAssetIndexFromDir(dir string) (*AssetIndex, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot index assets in %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot index assets in %q: not a directory", dir)
	}
	return NewAssetIndex(os.DirFS(dir))
}

// NewAssetIndex returns a new AssetIndex listing all regular files found in
// the specified fs, recursively. Directories, symbolic links, and other
// non-regular directory entries are skipped. As fs.FS uses unrooted,
// slash-separated paths, NewAssetIndex only needs to root them with a leading
// "/".
func NewAssetIndex(fsys fs.FS) (*AssetIndex, error) {
	idx := &AssetIndex{paths: map[string]struct{}{}}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		idx.paths["/"+p] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot index assets: %w", err)
	}
	return idx, nil
}

// Contains returns true if the specified rooted path names an indexed file.
// The path must match exactly and case-sensitively; Contains does not clean or
// otherwise normalize it.
func (i *AssetIndex) Contains(path string) bool {
	_, ok := i.paths[path]
	return ok
}

// Len returns the number of indexed files.
func (i *AssetIndex) Len() int {
	return len(i.paths)
}

// Paths returns the sorted list of all indexed file paths.
func (i *AssetIndex) Paths() []string {
	paths := make([]string, 0, len(i.paths))
	for p := range i.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
