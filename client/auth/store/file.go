package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/viant/afs"
)

// FileStore writes the session through to a JSON file on every change and
// reads it back at construction, so a login survives process restarts. All
// lookups and notifications are delegated to an in-memory store.
type FileStore struct {
	memory Store
	fs     afs.Service
	URL    string
}

// NewFileStore creates a Store persisted at the given afs URL
// (a plain path for the local file system).
func NewFileStore(URL string, options ...Option) (*FileStore, error) {
	ret := &FileStore{
		memory: NewMemoryStore(options...),
		fs:     afs.New(),
		URL:    URL,
	}
	if err := ret.load(context.Background()); err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *FileStore) Lookup() (Session, bool) {
	return f.memory.Lookup()
}

func (f *FileStore) Set(session Session) error {
	if err := f.memory.Set(session); err != nil {
		return err
	}
	return f.save(context.Background(), session)
}

func (f *FileStore) Clear() error {
	if err := f.memory.Clear(); err != nil {
		return err
	}
	return f.erase(context.Background())
}

func (f *FileStore) OnChange(listener Listener) func() {
	return f.memory.OnChange(listener)
}

func (f *FileStore) load(ctx context.Context) error {
	ok, err := f.fs.Exists(ctx, f.URL)
	if err != nil || !ok {
		return err
	}
	data, err := f.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return errors.Wrapf(err, "failed to read session file %v", f.URL)
	}
	var session Session
	if err = json.Unmarshal(data, &session); err != nil {
		return errors.Wrapf(err, "corrupted session file %v", f.URL)
	}
	if session.Empty() {
		return nil
	}
	return f.memory.Set(session)
}

func (f *FileStore) save(ctx context.Context, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err = f.fs.Upload(ctx, f.URL, os.FileMode(0o600), bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "failed to persist session to %v", f.URL)
	}
	return nil
}

func (f *FileStore) erase(ctx context.Context) error {
	ok, err := f.fs.Exists(ctx, f.URL)
	if err != nil || !ok {
		return err
	}
	return f.fs.Delete(ctx, f.URL)
}
