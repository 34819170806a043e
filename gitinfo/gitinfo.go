// Package gitinfo discovers source repository facts from the local git
// checkout. Discovery is offline and read-only; it only supplements
// fields the settings file left empty and never overrides explicit
// configuration.
package gitinfo

import (
	"errors"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Info holds the discoverable source repository facts.
type Info struct {
	URL    string
	Branch string
	Commit string
}

// Discover inspects the git repository containing dir. A missing
// repository is not an error: (nil, nil) is returned. The CI ref name
// (GITHUB_REF_NAME) takes precedence over the checked-out branch, since
// CI builds commonly run on a detached HEAD.
func Discover(dir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, err
	}

	info := &Info{}
	if remote, err := repo.Remote(git.DefaultRemoteName); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.URL = NormalizeRemoteURL(urls[0])
		}
	}
	if head, err := repo.Head(); err == nil {
		info.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		}
	}
	if ref := os.Getenv("GITHUB_REF_NAME"); ref != "" {
		info.Branch = ref
	}
	return info, nil
}

// NormalizeRemoteURL rewrites scp-style ssh remotes
// (git@host:owner/repo.git) to https form and strips the .git suffix,
// yielding a browseable URL.
func NormalizeRemoteURL(remote string) string {
	remote = strings.TrimSuffix(remote, ".git")
	if rest, ok := strings.CutPrefix(remote, "git@"); ok {
		host, path, found := strings.Cut(rest, ":")
		if found {
			return "https://" + host + "/" + path
		}
	}
	if rest, ok := strings.CutPrefix(remote, "ssh://git@"); ok {
		return "https://" + rest
	}
	return remote
}
