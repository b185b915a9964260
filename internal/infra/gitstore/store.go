// Package gitstore provides a Git plumbing-based implementation of domain.StateStore.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/kanban/internal/domain"
)

// Store implements domain.StateStore using Git refs that point at blobs.
//
// Data structure:
//
//	refs/<namespace>/
//	  state/
//	    <key>   → blob (board state JSON)
//
// Nothing is committed, so the working tree and branches stay untouched.
type Store struct {
	repo      *git.Repository
	repoPath  string // path to the repository
	namespace string // e.g., "kanban"
	mu        sync.RWMutex
}

// New opens the repository containing repoPath, initializing one there when
// none exists.
func New(repoPath, namespace string) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(repoPath, false)
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	s := NewWithRepo(repo, namespace)
	s.repoPath = repoPath
	return s, nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	if namespace == "" {
		namespace = domain.DefaultGitNamespace
	}
	return &Store{
		repo:      repo,
		namespace: namespace,
	}
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// stateRef returns the ref name for a state key.
func (s *Store) stateRef(key string) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "state/" + key)
}

// Get returns the blob stored under key, or nil if missing.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.stateRef(key), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get state ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return data, nil
}

// Set writes value as a new blob and points the key's ref at it.
func (s *Store) Set(key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := s.writeBlob(value)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.stateRef(key), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set state ref: %w", err)
	}
	return nil
}

// Delete removes the key's ref. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Storer.RemoveReference(s.stateRef(key)); err != nil {
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("remove state ref: %w", err)
		}
	}
	return nil
}

// Keys lists the stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	prefix := s.refPrefix() + "state/"
	var keys []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if key, ok := strings.CutPrefix(string(ref.Name()), prefix); ok && key != "" {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate refs: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}
	return hash, nil
}

// readBlob reads a blob's full contents.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}

// validKey rejects keys that cannot form a ref name.
func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, " ~^:?*[\\") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid state key %q", key)
	}
	return nil
}

// === Remote sync operations ===

// Push pushes state refs to the origin remote.
func (s *Store) Push() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// go-git push needs auth config, so shell out like a user would.
	refspec := fmt.Sprintf("refs/%s/*:refs/%s/*", s.namespace, s.namespace)
	cmd := exec.Command("git", "-C", s.repoDir(), "push", "origin", refspec) //nolint:gosec // refspec is constructed from trusted namespace
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("push failed: %s: %w", string(output), err)
	}
	return nil
}

// Fetch fetches state refs from the origin remote, overwriting local ones.
func (s *Store) Fetch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	refspec := fmt.Sprintf("+refs/%s/*:refs/%s/*", s.namespace, s.namespace)
	cmd := exec.Command("git", "-C", s.repoDir(), "fetch", "origin", refspec) //nolint:gosec // refspec is constructed from trusted namespace
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("fetch failed: %s: %w", string(output), err)
	}
	return nil
}

func (s *Store) repoDir() string {
	if s.repoPath != "" {
		return s.repoPath
	}
	if wt, err := s.repo.Worktree(); err == nil {
		return wt.Filesystem.Root()
	}
	return "."
}

// Ensure Store implements StateStore.
var _ domain.StateStore = (*Store)(nil)
