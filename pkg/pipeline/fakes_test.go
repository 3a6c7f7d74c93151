package pipeline

import (
	"context"
	"io"
	"iter"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecoscout/pkg/integrations"
	"github.com/matzehuels/ecoscout/pkg/integrations/github"
	"github.com/matzehuels/ecoscout/pkg/taxonomy"
)

func quiet() *log.Logger { return log.New(io.Discard) }

// fakeTaxonomy yields a fixed list of references and counts pulls.
type fakeTaxonomy struct {
	refs   []taxonomy.RepositoryReference
	err    error
	pulled int
}

func (f *fakeTaxonomy) Walk(ctx context.Context) (iter.Seq[taxonomy.RepositoryReference], error) {
	if f.err != nil {
		return nil, f.err
	}
	return func(yield func(taxonomy.RepositoryReference) bool) {
		for _, r := range f.refs {
			f.pulled++
			if !yield(r) {
				return
			}
		}
	}, nil
}

func refs(urls ...string) []taxonomy.RepositoryReference {
	out := make([]taxonomy.RepositoryReference, len(urls))
	for i, u := range urls {
		out[i] = taxonomy.RepositoryReference{URL: u}
	}
	return out
}

func seqOf(f *fakeTaxonomy) iter.Seq[taxonomy.RepositoryReference] {
	s, _ := f.Walk(context.Background())
	return s
}

// fakeGitHub serves canned responses keyed by repo or login. Missing keys
// answer ErrNotFound; keys present in fail answer with that error.
type fakeGitHub struct {
	mu        sync.Mutex
	languages map[string]string
	contribs  map[string][]github.Contributor
	userLangs map[string][]string
	profiles  map[string]*github.Profile
	events    map[string][]github.Event
	fail      map[string]error
	calls     []string

	// profileHook runs inside FetchProfile before it answers.
	profileHook func(login string)
}

func (f *fakeGitHub) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.fail[call]
}

func (f *fakeGitHub) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeGitHub) FetchRepoLanguage(ctx context.Context, owner, repo string) (string, error) {
	key := owner + "/" + repo
	if err := f.record("lang:" + key); err != nil {
		return "", err
	}
	lang, ok := f.languages[key]
	if !ok {
		return "", integrations.ErrNotFound
	}
	return lang, nil
}

func (f *fakeGitHub) FetchContributors(ctx context.Context, owner, repo string, limit int) ([]github.Contributor, error) {
	key := owner + "/" + repo
	if err := f.record("contrib:" + key); err != nil {
		return nil, err
	}
	cs, ok := f.contribs[key]
	if !ok {
		return nil, integrations.ErrNotFound
	}
	return cs, nil
}

func (f *fakeGitHub) FetchUserRepoLanguages(ctx context.Context, login string) ([]string, error) {
	if err := f.record("repos:" + login); err != nil {
		return nil, err
	}
	return f.userLangs[login], nil
}

func (f *fakeGitHub) FetchProfile(ctx context.Context, login string) (*github.Profile, error) {
	if f.profileHook != nil {
		f.profileHook(login)
	}
	if err := f.record("profile:" + login); err != nil {
		return nil, err
	}
	p, ok := f.profiles[login]
	if !ok {
		return &github.Profile{Login: login}, nil
	}
	return p, nil
}

func (f *fakeGitHub) FetchEvents(ctx context.Context, login string) ([]github.Event, error) {
	if err := f.record("events:" + login); err != nil {
		return nil, err
	}
	return f.events[login], nil
}

func strPtr(s string) *string { return &s }
