package service

import (
	"fmt"
	"sort"
	"sync"

	"inkwell-server/internal/domain"
	"inkwell-server/internal/repository"
)

// In-memory repositories. They copy on read and write like a real store,
// so tests can assert that failed operations left nothing mutated. Each
// method is individually thread-safe, but LatestNumber/Create pairs are
// deliberately NOT atomic: that atomicity is the service's job.

type mockNoteRepo struct {
	mu    sync.Mutex
	notes map[string]*domain.Note
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[string]*domain.Note)}
}

func copyNote(n *domain.Note) *domain.Note {
	c := *n
	if n.FolderID != nil {
		v := *n.FolderID
		c.FolderID = &v
	}
	if n.TrashedAt != nil {
		v := *n.TrashedAt
		c.TrashedAt = &v
	}
	if n.ShareToken != nil {
		v := *n.ShareToken
		c.ShareToken = &v
	}
	c.Tags = append([]domain.Tag(nil), n.Tags...)
	return &c
}

func (m *mockNoteRepo) Create(note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.ID] = copyNote(note)
	return nil
}

func (m *mockNoteRepo) FindByOwner(userID, noteID string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[noteID]
	if !ok || n.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return copyNote(n), nil
}

func (m *mockNoteRepo) FindByShareToken(token string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.IsShared && n.ShareToken != nil && *n.ShareToken == token {
			return copyNote(n), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockNoteRepo) List(userID string, trashed bool, folderID string) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Note
	for _, n := range m.notes {
		if n.UserID != userID || n.IsTrashed != trashed {
			continue
		}
		if folderID != "" && (n.FolderID == nil || *n.FolderID != folderID) {
			continue
		}
		out = append(out, copyNote(n))
	}
	return out, nil
}

func (m *mockNoteRepo) Update(note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[note.ID]; !ok {
		return repository.ErrNotFound
	}
	m.notes[note.ID] = copyNote(note)
	return nil
}

func (m *mockNoteRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *mockNoteRepo) CountByFolder(folderID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.notes {
		if n.FolderID != nil && *n.FolderID == folderID {
			count++
		}
	}
	return count, nil
}

func (m *mockNoteRepo) UnlinkFolder(userID, folderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.UserID == userID && n.FolderID != nil && *n.FolderID == folderID {
			n.FolderID = nil
		}
	}
	return nil
}

type mockVersionRepo struct {
	mu       sync.Mutex
	versions map[string]*domain.Version
}

func newMockVersionRepo() *mockVersionRepo {
	return &mockVersionRepo{versions: make(map[string]*domain.Version)}
}

func (m *mockVersionRepo) Create(version *domain.Version) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := *version
	m.versions[version.ID] = &v
	return nil
}

func (m *mockVersionRepo) FindByID(versionID string) (*domain.Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.versions[versionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *v
	return &c, nil
}

func (m *mockVersionRepo) ListByNote(noteID string) ([]*domain.Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Version
	for _, v := range m.versions {
		if v.NoteID == noteID {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].VersionNumber > out[j].VersionNumber
	})
	return out, nil
}

func (m *mockVersionRepo) LatestNumber(noteID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest int64
	for _, v := range m.versions {
		if v.NoteID == noteID && v.VersionNumber > latest {
			latest = v.VersionNumber
		}
	}
	return latest, nil
}

func (m *mockVersionRepo) DeleteAllForNote(noteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.versions {
		if v.NoteID == noteID {
			delete(m.versions, id)
		}
	}
	return nil
}

type mockFolderRepo struct {
	mu      sync.Mutex
	folders map[string]*domain.Folder
}

func newMockFolderRepo() *mockFolderRepo {
	return &mockFolderRepo{folders: make(map[string]*domain.Folder)}
}

func (m *mockFolderRepo) Create(folder *domain.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := *folder
	m.folders[folder.ID] = &f
	return nil
}

func (m *mockFolderRepo) FindByOwner(userID, folderID string) (*domain.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[folderID]
	if !ok || f.UserID != userID {
		return nil, repository.ErrNotFound
	}
	c := *f
	return &c, nil
}

func (m *mockFolderRepo) List(userID string) ([]*domain.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Folder
	for _, f := range m.folders {
		if f.UserID == userID {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockFolderRepo) Update(folder *domain.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.folders[folder.ID]; !ok {
		return repository.ErrNotFound
	}
	f := *folder
	m.folders[folder.ID] = &f
	return nil
}

func (m *mockFolderRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.folders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.folders, id)
	return nil
}

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *mockUserRepo) EmailExists(email string) (bool, error) {
	_, err := m.FindByEmail(email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// stubTokenGen returns queued tokens first, then sequential unique ones.
type stubTokenGen struct {
	mu     sync.Mutex
	queued []string
	next   int
}

func (g *stubTokenGen) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.queued) > 0 {
		t := g.queued[0]
		g.queued = g.queued[1:]
		return t, nil
	}
	g.next++
	return fmt.Sprintf("stub-token-%04d", g.next), nil
}
