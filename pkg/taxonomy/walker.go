package taxonomy

import (
	"context"
	"iter"

	"github.com/charmbracelet/log"

	pkgerrors "github.com/matzehuels/ecoscout/pkg/errors"
	"github.com/matzehuels/ecoscout/pkg/integrations"
	"github.com/matzehuels/ecoscout/pkg/integrations/github"
)

// Source is the subset of the GitHub client the walker needs.
type Source interface {
	ListContents(ctx context.Context, owner, repo, path string) ([]github.ContentEntry, error)
	ListContentsURL(ctx context.Context, apiURL string) ([]github.ContentEntry, error)
	FetchRaw(ctx context.Context, downloadURL string) (string, error)
}

// Walker traverses categories, then files, then repository entries.
type Walker struct {
	src    Source
	loc    Location
	logger *log.Logger
}

// NewWalker creates a walker over the taxonomy at loc.
// A zero loc selects [DefaultLocation].
func NewWalker(src Source, loc Location, logger *log.Logger) *Walker {
	if loc == (Location{}) {
		loc = DefaultLocation
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Walker{src: src, loc: loc, logger: logger}
}

// Location returns the taxonomy location being walked.
func (w *Walker) Location() Location { return w.loc }

// ListCategories lists the category directories of the taxonomy.
// Failure is returned as a TAXONOMY_UNAVAILABLE error.
func (w *Walker) ListCategories(ctx context.Context) ([]Category, error) {
	res := integrations.Capture(w.src.ListContents(ctx, w.loc.Owner, w.loc.Repo, w.loc.Path))
	if !res.OK() {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeTaxonomy, res.Err,
			"list categories of %s (%s)", w.loc, res.Outcome)
	}

	var cats []Category
	for _, e := range res.Value {
		if e.IsDir() {
			cats = append(cats, Category{Name: e.Name, URL: e.URL})
		}
	}
	return cats, nil
}

// ListFiles lists the declaration files of a category. Entries that are not
// files with the declaration extension are left out.
func (w *Walker) ListFiles(ctx context.Context, cat Category) ([]DeclarationFile, error) {
	entries, err := w.src.ListContentsURL(ctx, cat.URL)
	if err != nil {
		return nil, err
	}

	var files []DeclarationFile
	for _, e := range entries {
		if e.Type != "file" || !IsDeclaration(e.Name) || e.DownloadURL == "" {
			continue
		}
		files = append(files, DeclarationFile{
			Category:    cat.Name,
			Name:        e.Name,
			Path:        e.Path,
			DownloadURL: e.DownloadURL,
		})
	}
	return files, nil
}

// ParseDeclarations downloads and parses one declaration file.
func (w *Walker) ParseDeclarations(ctx context.Context, file DeclarationFile) ([]RepositoryReference, error) {
	data, err := w.src.FetchRaw(ctx, file.DownloadURL)
	if err != nil {
		return nil, err
	}
	return Parse(data, file)
}

// Eligible lazily yields the eligible references of cats in traversal order.
// File listing, download and parse failures are logged and skipped. The walk
// ends when the consumer stops or ctx is done.
func (w *Walker) Eligible(ctx context.Context, cats []Category) iter.Seq[RepositoryReference] {
	return func(yield func(RepositoryReference) bool) {
		for _, cat := range cats {
			if ctx.Err() != nil {
				return
			}
			files := integrations.Capture(w.ListFiles(ctx, cat))
			if !files.OK() {
				w.logger.Warn("skipping category", "category", cat.Name, "outcome", files.Outcome, "err", files.Err)
				continue
			}
			for _, f := range files.Value {
				if ctx.Err() != nil {
					return
				}
				refs := integrations.Capture(w.ParseDeclarations(ctx, f))
				if !refs.OK() {
					w.logger.Warn("skipping declaration", "file", f.Path, "outcome", refs.Outcome, "err", refs.Err)
					continue
				}
				for _, ref := range refs.Value {
					if !ref.Eligible() {
						continue
					}
					if !yield(ref) {
						return
					}
				}
			}
		}
	}
}

// Walk lists categories and returns the lazy sequence of eligible references.
// Only the category listing can fail.
func (w *Walker) Walk(ctx context.Context) (iter.Seq[RepositoryReference], error) {
	cats, err := w.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	w.logger.Debug("listed categories", "taxonomy", w.loc, "count", len(cats))
	return w.Eligible(ctx, cats), nil
}
