// Package vcs is a thin remote-fetch collaborator: it clones a dependency's
// source repository into a local directory and, when asked, rewrites an ssh
// remote into an https one before cloning ("--disable-ssh"). Nothing in the
// planning core depends on this package directly; only internal/catalog's
// lock-entry reinstallation does.
package vcs

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/kevinburke/ssh_config"
)

// Fetcher clones a repository at a given ref into dir. GitFetcher treats a
// non-empty ref as a tag name; tests substitute a fake.
type Fetcher interface {
	Clone(url, ref, dir string) error
}

// GitFetcher is the real Fetcher, backed by go-git (no external `git`
// binary required). See DESIGN.md for why go-git was chosen over other
// candidates.
type GitFetcher struct{}

func (GitFetcher) Clone(url, ref, dir string) error {
	opts := &git.CloneOptions{URL: url}
	// IP versions are published as tags; an empty ref clones the default
	// branch, used only for `orbit get`'s "latest" resolution.
	if ref != "" {
		opts.ReferenceName = plumbing.NewTagReferenceName(ref)
	}
	if _, err := git.PlainClone(dir, false, opts); err != nil {
		return fmt.Errorf("vcs: clone %s: %w", url, err)
	}
	return nil
}

var scpLikeURL = regexp.MustCompile(`^(?:ssh://)?([\w.\-]+)@([\w.\-]+)[:/](.+)$`)

// RewriteToHTTPS converts an ssh/scp-like remote URL to https, consulting
// the user's ~/.ssh/config for a Host alias's real HostName first (so
// `git@gitlab-work:org/repo.git` resolves through the same alias ssh itself
// would use before being rewritten). Used when --disable-ssh is given.
func RewriteToHTTPS(url string) string {
	m := scpLikeURL.FindStringSubmatch(url)
	if m == nil {
		return url
	}
	host, path := m[2], m[3]
	if real := lookupHostName(host); real != "" {
		host = real
	}
	return fmt.Sprintf("https://%s/%s", host, strings.TrimPrefix(path, "/"))
}

func lookupHostName(alias string) string {
	path, err := sshConfigPath()
	if err != nil {
		return ""
	}
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return ""
	}
	if name, err := cfg.Get(alias, "HostName"); err == nil && name != "" {
		return name
	}
	return ""
}

func sshConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return home + "/.ssh/config", nil
}
