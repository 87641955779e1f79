// Package source fetches markdown sources from remote Git repositories.
//
// It handles cloning and updating configured repositories into a local
// workspace with authentication support (SSH, token, basic), so the
// converter can run against repository docs the same way it runs against
// local files.
package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"git.home.luguber.info/inful/mddocx/internal/config"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
)

// Client handles Git operations against the workspace directory.
type Client struct {
	workspaceDir string
	logger       *slog.Logger
}

// NewClient creates a new Git client rooted at the specified workspace directory.
func NewClient(workspaceDir string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		workspaceDir: workspaceDir,
		logger:       logger,
	}
}

// RepoPath returns where a repository checks out inside the workspace.
func (c *Client) RepoPath(repo config.Repository) string {
	return filepath.Join(c.workspaceDir, repo.Name)
}

// CloneRepository clones a repository into the workspace, replacing any
// existing checkout.
func (c *Client) CloneRepository(repo config.Repository) (string, error) {
	repoPath := c.RepoPath(repo)

	c.logger.Debug("cloning repository",
		logfields.URL(repo.URL),
		logfields.Repository(repo.Name),
		slog.String("branch", repo.Branch),
		logfields.Path(repoPath))

	if err := os.RemoveAll(repoPath); err != nil {
		return "", fmt.Errorf("failed to remove existing directory: %w", err)
	}

	cloneOptions := &git.CloneOptions{
		URL: repo.URL,
	}

	if repo.Branch != "" {
		cloneOptions.ReferenceName = plumbing.ReferenceName("refs/heads/" + repo.Branch)
		cloneOptions.SingleBranch = true
	}

	if repo.Auth != nil {
		auth, err := c.getAuthentication(repo.Auth)
		if err != nil {
			return "", fmt.Errorf("failed to setup authentication: %w", err)
		}
		cloneOptions.Auth = auth
	}

	repository, err := git.PlainClone(repoPath, false, cloneOptions)
	if err != nil {
		return "", fmt.Errorf("failed to clone repository %s: %w", repo.URL, err)
	}

	if ref, err := repository.Head(); err == nil {
		c.logger.Info("repository cloned",
			logfields.Repository(repo.Name),
			logfields.URL(repo.URL),
			slog.String("commit", shortHash(ref.Hash().String())),
			logfields.Path(repoPath))
	} else {
		c.logger.Info("repository cloned",
			logfields.Repository(repo.Name),
			logfields.URL(repo.URL),
			logfields.Path(repoPath))
	}

	return repoPath, nil
}

// UpdateRepository updates an existing checkout or clones if it doesn't exist.
func (c *Client) UpdateRepository(repo config.Repository) (string, error) {
	repoPath := c.RepoPath(repo)

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		c.logger.Debug("updating existing repository", logfields.Repository(repo.Name), logfields.Path(repoPath))
		return c.updateExistingRepo(repoPath, repo)
	}

	c.logger.Debug("repository not present, cloning", logfields.Repository(repo.Name))
	return c.CloneRepository(repo)
}

func (c *Client) updateExistingRepo(repoPath string, repo config.Repository) (string, error) {
	repository, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	pullOptions := &git.PullOptions{
		RemoteName: "origin",
	}

	if repo.Auth != nil {
		auth, err := c.getAuthentication(repo.Auth)
		if err != nil {
			return "", fmt.Errorf("failed to setup authentication: %w", err)
		}
		pullOptions.Auth = auth
	}

	err = worktree.Pull(pullOptions)
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return "", fmt.Errorf("failed to pull repository %s: %w", repo.URL, err)
	}

	if err == git.NoErrAlreadyUpToDate {
		c.logger.Info("repository already up to date", logfields.Repository(repo.Name))
	} else if ref, headErr := repository.Head(); headErr == nil {
		c.logger.Info("repository updated",
			logfields.Repository(repo.Name),
			slog.String("commit", shortHash(ref.Hash().String())))
	}

	return repoPath, nil
}

// getAuthentication creates authentication based on config.
func (c *Client) getAuthentication(auth *config.AuthConfig) (transport.AuthMethod, error) {
	switch auth.Type {
	case "none", "":
		return nil, nil // Public repository

	case "ssh":
		keyPath := auth.KeyPath
		if keyPath == "" {
			keyPath = filepath.Join(os.Getenv("HOME"), ".ssh", "id_rsa")
		}

		publicKeys, err := ssh.NewPublicKeysFromFile("git", keyPath, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load SSH key from %s: %w", keyPath, err)
		}
		return publicKeys, nil

	case "token":
		if auth.Token == "" {
			return nil, fmt.Errorf("token authentication requires a token")
		}
		return &http.BasicAuth{
			Username: "token", // GitHub/GitLab accept any non-empty username here
			Password: auth.Token,
		}, nil

	case "basic":
		if auth.Username == "" || auth.Password == "" {
			return nil, fmt.Errorf("basic authentication requires username and password")
		}
		return &http.BasicAuth{
			Username: auth.Username,
			Password: auth.Password,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported authentication type: %s", auth.Type)
	}
}

// EnsureWorkspace creates the workspace directory if it doesn't exist.
func (c *Client) EnsureWorkspace() error {
	if err := os.MkdirAll(c.workspaceDir, 0o755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	return nil
}

// CleanWorkspace removes all contents from the workspace directory.
func (c *Client) CleanWorkspace() error {
	entries, err := os.ReadDir(c.workspaceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Nothing to clean
		}
		return fmt.Errorf("failed to read workspace directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(c.workspaceDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	c.logger.Info("workspace cleaned", logfields.Path(c.workspaceDir))
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
