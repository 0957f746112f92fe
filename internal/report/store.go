package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Store provides persistent storage for check reports under:
//
//	<baseDir>/.treeproof/checks/<check-id>/report.json
type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("baseDir is required")
	}
	return &Store{baseDir: baseDir}, nil
}

// NewCheckID mints a fresh check identifier.
func (s *Store) NewCheckID() (string, error) {
	if s == nil {
		return "", errors.New("nil Store")
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("new check id: %w", err)
	}
	return id.String(), nil
}

func (s *Store) checksRootDir() string {
	return filepath.Join(s.baseDir, ".treeproof", "checks")
}

func (s *Store) checkDir(checkID string) string {
	return filepath.Join(s.checksRootDir(), checkID)
}

func (s *Store) reportPath(checkID string) string {
	return filepath.Join(s.checkDir(checkID), "report.json")
}

// ListCheckIDs returns all check IDs currently present on disk.
//
// Determinism: the returned slice is sorted lexicographically.
func (s *Store) ListCheckIDs() ([]string, error) {
	if s == nil {
		return nil, errors.New("nil Store")
	}
	root := s.checksRootDir()
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := strings.TrimSpace(e.Name())
		if name == "" {
			continue
		}
		ids = append(ids, name)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) Save(r Report) error {
	if s == nil {
		return errors.New("nil Store")
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid report: %w", err)
	}
	// Ensure violations serialize as [] rather than null.
	if r.Violations == nil {
		r.Violations = []Violation{}
	}
	if err := ensureDirDurable(s.checkDir(r.CheckID), 0o755); err != nil {
		return fmt.Errorf("ensure check dir: %w", err)
	}
	data, err := jsonMarshalStable(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := writeFileAtomicDurable(s.reportPath(r.CheckID), data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (s *Store) Load(checkID string) (Report, error) {
	var r Report
	if s == nil {
		return Report{}, errors.New("nil Store")
	}
	if strings.TrimSpace(checkID) == "" {
		return Report{}, errors.New("checkID is required")
	}
	if err := readJSONStrict(s.reportPath(checkID), &r); err != nil {
		return Report{}, err
	}
	if err := r.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid report on disk: %w", err)
	}
	return r, nil
}

func jsonMarshalStable(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func readJSONStrict(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Ensure no trailing junk.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("invalid JSON: trailing content")
	}
	return nil
}

func ensureDirDurable(dir string, perm os.FileMode) error {
	if err := os.MkdirAll(dir, perm); err != nil {
		return err
	}
	// Best-effort durability: sync the directory and its parent.
	if err := fsyncDir(dir); err != nil {
		return err
	}
	parent := filepath.Dir(dir)
	if parent != dir {
		if err := fsyncDir(parent); err != nil {
			return err
		}
	}
	return nil
}

func writeFileAtomicDurable(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
