// SPDX-License-Identifier: MIT

package generator

import (
	"slices"

	"github.com/albertocavalcante/protoplug/model"
)

// selectFiles returns the files of set named in requested, in set order.
// Every requested name must match a file.
func selectFiles(set *model.Set, requested []string) ([]*model.File, error) {
	var missing []string
	for _, name := range requested {
		if !slices.ContainsFunc(set.Files, func(f *model.File) bool { return f.Name+".proto" == name }) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFileError{Names: missing}
	}

	var files []*model.File
	for _, f := range set.Files {
		if slices.Contains(requested, f.Name+".proto") {
			files = append(files, f)
		}
	}
	return files, nil
}
