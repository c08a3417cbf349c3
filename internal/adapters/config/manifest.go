package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// scanManifest returns the devDependency names of the manifest at path that
// start with prefix and are not excluded, in manifest order.
// A missing manifest yields no names and found=false.
func scanManifest(path, prefix string, exclude []string) (names []string, found bool, err error) {
	// #nosec G304 -- path is derived from the run root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	if !gjson.ValidBytes(data) {
		return nil, true, zerr.With(domain.ErrManifestParseFailed, "path", path)
	}

	gjson.GetBytes(data, "devDependencies").ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		if strings.HasPrefix(name, prefix) && !slices.Contains(exclude, name) {
			names = append(names, name)
		}
		return true
	})

	return names, true, nil
}
