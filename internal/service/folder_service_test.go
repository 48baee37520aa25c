package service

import (
	"testing"

	"inkwell-server/internal/domain"
)

func TestFolderService_Create_Defaults(t *testing.T) {
	svc := NewFolderService(newMockFolderRepo(), newMockNoteRepo())

	folder, err := svc.Create("user1", &domain.CreateFolderRequest{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if folder.Name != domain.DefaultFolderName {
		t.Errorf("name = %q, want %q", folder.Name, domain.DefaultFolderName)
	}
	if folder.Icon != domain.DefaultFolderIcon {
		t.Errorf("icon = %q, want %q", folder.Icon, domain.DefaultFolderIcon)
	}
}

func TestFolderService_List_CountsNotes(t *testing.T) {
	folderRepo := newMockFolderRepo()
	noteRepo := newMockNoteRepo()
	noteSvc := NewNoteService(noteRepo, newMockVersionRepo())
	svc := NewFolderService(folderRepo, noteRepo)

	folder, _ := svc.Create("user1", &domain.CreateFolderRequest{Name: "work"})
	empty, _ := svc.Create("user1", &domain.CreateFolderRequest{Name: "archive"})

	noteSvc.Create("user1", &domain.CreateNoteRequest{FolderID: &folder.ID})
	noteSvc.Create("user1", &domain.CreateNoteRequest{FolderID: &folder.ID})
	noteSvc.Create("user1", &domain.CreateNoteRequest{})

	folders, err := svc.List("user1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders))
	}

	counts := map[string]int64{}
	for _, f := range folders {
		counts[f.ID] = f.NoteCount
	}
	if counts[folder.ID] != 2 {
		t.Errorf("folder count = %d, want 2", counts[folder.ID])
	}
	if counts[empty.ID] != 0 {
		t.Errorf("empty folder count = %d, want 0", counts[empty.ID])
	}
}

func TestFolderService_Update_Partial(t *testing.T) {
	svc := NewFolderService(newMockFolderRepo(), newMockNoteRepo())

	folder, _ := svc.Create("user1", &domain.CreateFolderRequest{Name: "work", Icon: "💼"})

	name := "projects"
	updated, err := svc.Update("user1", folder.ID, &domain.UpdateFolderRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "projects" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Icon != "💼" {
		t.Errorf("unsupplied icon was overwritten: %q", updated.Icon)
	}
}

func TestFolderService_Delete_UnlinksNotes(t *testing.T) {
	folderRepo := newMockFolderRepo()
	noteRepo := newMockNoteRepo()
	noteSvc := NewNoteService(noteRepo, newMockVersionRepo())
	svc := NewFolderService(folderRepo, noteRepo)

	folder, _ := svc.Create("user1", &domain.CreateFolderRequest{Name: "doomed"})
	note, _ := noteSvc.Create("user1", &domain.CreateNoteRequest{FolderID: &folder.ID})

	if err := svc.Delete("user1", folder.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, _ := noteSvc.Get("user1", note.ID)
	if got.FolderID != nil {
		t.Error("note must be unlinked when its folder is deleted")
	}

	if _, err := svc.Update("user1", folder.ID, &domain.UpdateFolderRequest{}); err != ErrFolderNotFound {
		t.Errorf("deleted folder update error = %v, want %v", err, ErrFolderNotFound)
	}
}

func TestFolderService_OwnerScoping(t *testing.T) {
	svc := NewFolderService(newMockFolderRepo(), newMockNoteRepo())

	folder, _ := svc.Create("user1", &domain.CreateFolderRequest{Name: "mine"})

	if _, err := svc.Update("user2", folder.ID, &domain.UpdateFolderRequest{}); err != ErrFolderNotFound {
		t.Errorf("foreign update error = %v, want %v", err, ErrFolderNotFound)
	}
	if err := svc.Delete("user2", folder.ID); err != ErrFolderNotFound {
		t.Errorf("foreign delete error = %v, want %v", err, ErrFolderNotFound)
	}
}
