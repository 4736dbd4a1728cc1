// Package programs embeds the sample shirt listings.
package programs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/timewinder-dev/tshirts/vm"
)

//go:embed listings/*.shirt
var listings embed.FS

// Prefix selects an embedded sample wherever a file path is accepted.
const Prefix = "sample:"

const ext = ".shirt"

// Names lists the embedded samples.
func Names() []string {
	entries, err := fs.ReadDir(listings, "listings")
	if err != nil {
		panic(err)
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(out)
	return out
}

// Source returns the listing text of a sample.
func Source(name string) (string, error) {
	b, err := listings.ReadFile(path.Join("listings", name+ext))
	if err != nil {
		return "", fmt.Errorf("no sample named %q", name)
	}
	return string(b), nil
}

func Load(name string) (*vm.Program, error) {
	f, err := listings.Open(path.Join("listings", name+ext))
	if err != nil {
		return nil, fmt.Errorf("no sample named %q", name)
	}
	defer f.Close()
	return vm.LoadFile(name, f)
}

// IsSample reports whether ref names an embedded sample and returns its name.
func IsSample(ref string) (string, bool) {
	return strings.CutPrefix(ref, Prefix)
}
