package taxonomy

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// DeclarationExt is the only file extension that is parsed.
const DeclarationExt = ".toml"

type declaration struct {
	Title string      `toml:"title"`
	Repo  []repoEntry `toml:"repo"`
}

type repoEntry struct {
	URL     string   `toml:"url"`
	Missing bool     `toml:"missing"`
	Tags    []string `toml:"tags"`
}

// IsDeclaration reports whether name has the recognized declaration extension.
func IsDeclaration(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), DeclarationExt)
}

// Parse decodes a declaration file into repository references in file order.
// Ineligible entries are returned too; callers filter with
// [RepositoryReference.Eligible]. Unknown keys are ignored.
func Parse(data string, file DeclarationFile) ([]RepositoryReference, error) {
	var decl declaration
	if _, err := toml.Decode(data, &decl); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Name, err)
	}

	refs := make([]RepositoryReference, 0, len(decl.Repo))
	for _, r := range decl.Repo {
		refs = append(refs, RepositoryReference{
			URL:       strings.TrimSpace(r.URL),
			Missing:   r.Missing,
			Tags:      r.Tags,
			Ecosystem: decl.Title,
			Category:  file.Category,
			File:      file.Name,
		})
	}
	return refs, nil
}
