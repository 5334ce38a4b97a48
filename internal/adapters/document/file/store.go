package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/slotbot/internal/codec"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/spf13/viper"
)

const (
	documentsPathKey      = "documents.path"
	conditionalWritesKey  = "documents.conditional_writes"
	documentsConfigDir    = ".slotbot"
	documentsConfigSubdir = "documents"
	documentExtension     = ".md"
	storeDirMode          = 0o700
	documentFileMode      = 0o600
	tempFilePattern       = ".document-*.md.tmp"
)

// Store keeps one markdown file per event document. The revision of a
// document is the digest of its text.
type Store struct {
	root        string
	conditional bool
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.DocumentStore = (*Store)(nil)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(documentsPathKey, filepath.Join(homeDir, documentsConfigDir, documentsConfigSubdir))
	cfg.SetDefault(conditionalWritesKey, true)

	root := strings.TrimSpace(cfg.GetString(documentsPathKey))
	if root == "" {
		return nil, errors.New("documents path is empty")
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve documents path: %w", err)
	}

	return &Store{root: filepath.Clean(root), conditional: cfg.GetBool(conditionalWritesKey)}, nil
}

func (s *Store) Fetch(ctx context.Context, id domain.DocumentID) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	path, err := s.pathForID(id)
	if err != nil {
		return domain.Document{}, err
	}

	mu := lockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	return readDocument(id, path)
}

func (s *Store) Create(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	path, err := s.pathForID(doc.ID)
	if err != nil {
		return domain.Document{}, err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return domain.Document{}, fmt.Errorf("document %q: %w", doc.ID, domain.ErrDocumentExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return domain.Document{}, fmt.Errorf("stat document %q: %w", doc.ID, err)
	}

	return writeDocument(doc, path)
}

func (s *Store) Write(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	path, err := s.pathForID(doc.ID)
	if err != nil {
		return domain.Document{}, err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	current, err := readDocument(doc.ID, path)
	if err != nil {
		return domain.Document{}, err
	}
	if s.conditional && doc.Revision != "" && doc.Revision != current.Revision {
		return domain.Document{}, fmt.Errorf("document %q: %w", doc.ID, domain.ErrConcurrentModification)
	}

	return writeDocument(doc, path)
}

func (s *Store) pathForID(id domain.DocumentID) (string, error) {
	trimmed := strings.TrimSpace(string(id))
	if trimmed == "" {
		return "", errors.New("document id is empty")
	}
	if strings.ContainsAny(trimmed, `/\`) || trimmed == "." || trimmed == ".." {
		return "", fmt.Errorf("invalid document id %q", id)
	}

	return filepath.Join(s.root, trimmed+documentExtension), nil
}

func readDocument(id domain.DocumentID, path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Document{}, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
		}
		return domain.Document{}, fmt.Errorf("read document %q: %w", id, err)
	}

	text := string(data)
	return domain.Document{ID: id, Text: text, Revision: codec.Digest(text)}, nil
}

func writeDocument(doc domain.Document, path string) (domain.Document, error) {
	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return domain.Document{}, fmt.Errorf("create documents directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return domain.Document{}, fmt.Errorf("create temp document: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.WriteString(doc.Text); err != nil {
		_ = tempFile.Close()
		return domain.Document{}, fmt.Errorf("write temp document: %w", err)
	}
	if err := tempFile.Chmod(documentFileMode); err != nil {
		_ = tempFile.Close()
		return domain.Document{}, fmt.Errorf("chmod temp document: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return domain.Document{}, fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return domain.Document{}, fmt.Errorf("replace document %q: %w", doc.ID, err)
	}
	cleanup = false

	doc.Revision = codec.Digest(doc.Text)
	return doc, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
