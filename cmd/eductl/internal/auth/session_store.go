package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/educonnect/educonnect/pkg/sdk"
)

const sessionFile = "session.json"

// FileStore implements sdk.SessionStore using a JSON file under
// ~/.educonnect. This is the CLI's session persistence implementation; the
// whole session lives in one document so its fields can never be read as a
// torn subset.
type FileStore struct {
	path string
}

// Ensure FileStore implements sdk.SessionStore at compile time.
var _ sdk.SessionStore = (*FileStore)(nil)

// NewFileStore creates a new FileStore rooted in the user's home directory.
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	eduDir := filepath.Join(home, ".educonnect")
	if err := os.MkdirAll(eduDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create .educonnect directory: %w", err)
	}
	return &FileStore{
		path: filepath.Join(eduDir, sessionFile),
	}, nil
}

// NewFileStoreAt creates a FileStore backed by an explicit path. Tests use
// this to avoid touching the real home directory.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored session. A missing file means no session yet.
func (s *FileStore) Load() (*sdk.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var session sdk.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Save writes the session to the file.
func (s *FileStore) Save(session *sdk.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear deletes the session file.
func (s *FileStore) Clear() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}
