package taxonomy

// Location identifies the taxonomy directory inside a GitHub repository.
type Location struct {
	Owner string
	Repo  string
	Path  string
}

// DefaultLocation is the Electric Capital crypto-ecosystems taxonomy.
var DefaultLocation = Location{
	Owner: "electric-capital",
	Repo:  "crypto-ecosystems",
	Path:  "data/ecosystems",
}

// String returns owner/repo/path.
func (l Location) String() string {
	return l.Owner + "/" + l.Repo + "/" + l.Path
}

// Category is a named grouping of declaration files.
type Category struct {
	Name string
	URL  string // API listing URL of the category directory
}

// DeclarationFile is a retrievable taxonomy document.
type DeclarationFile struct {
	Category    string
	Name        string
	Path        string
	DownloadURL string
}

// RepositoryReference is one repository entry of a declaration file, plus the
// metadata of the declaration it came from.
type RepositoryReference struct {
	URL       string   `json:"url" yaml:"url"`
	Missing   bool     `json:"missing,omitempty" yaml:"missing,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Ecosystem string   `json:"ecosystem,omitempty" yaml:"ecosystem,omitempty"`
	Category  string   `json:"category,omitempty" yaml:"category,omitempty"`
	File      string   `json:"file,omitempty" yaml:"file,omitempty"`
}

// Eligible reports whether the reference should be processed: it has a URL
// and is not marked missing.
func (r RepositoryReference) Eligible() bool {
	return r.URL != "" && !r.Missing
}
