package dao

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Folder{}, &File{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func mustFolder(t *testing.T, d TreeDAO, owner int64, name string, parent *int64) Folder {
	t.Helper()
	f, err := d.InsertFolder(context.Background(), Folder{
		Name:     name,
		OwnerId:  owner,
		ParentId: nullable(parent),
	})
	if err != nil {
		t.Fatalf("failed to insert folder %q: %v", name, err)
	}
	return f
}

func mustFile(t *testing.T, d TreeDAO, owner int64, name string, parent *int64, content []byte) File {
	t.Helper()
	f, err := d.InsertFile(context.Background(), File{
		Name:     name,
		OwnerId:  owner,
		ParentId: nullable(parent),
		Content:  content,
		Size:     int64(len(content)),
		MimeType: "application/octet-stream",
	})
	if err != nil {
		t.Fatalf("failed to insert file %q: %v", name, err)
	}
	return f
}

func nullable(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func TestInsertFolderParentValidation(t *testing.T) {
	d := NewTreeDAO(testDB(t))
	ctx := context.Background()

	root := mustFolder(t, d, 1, "root", nil)
	child := mustFolder(t, d, 1, "child", &root.Id)
	if !child.ParentId.Valid || child.ParentId.Int64 != root.Id {
		t.Fatalf("child parent = %+v, want %d", child.ParentId, root.Id)
	}

	missing := int64(9999)
	_, err := d.InsertFolder(ctx, Folder{Name: "orphan", OwnerId: 1, ParentId: nullable(&missing)})
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("insert under missing parent: got %v, want ErrParentNotFound", err)
	}

	// A parent owned by someone else must look exactly like a missing one.
	_, err = d.InsertFolder(ctx, Folder{Name: "intruder", OwnerId: 2, ParentId: nullable(&root.Id)})
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("insert under foreign parent: got %v, want ErrParentNotFound", err)
	}
	var count int64
	if err := testCount(d, &count); err != nil {
		t.Fatalf("failed to count folders: %v", err)
	}
	if count != 2 {
		t.Fatalf("folder count after failed inserts = %d, want 2", count)
	}
}

func testCount(d TreeDAO, out *int64) error {
	return d.(*treeDAO).db.Model(&Folder{}).Count(out).Error
}

func TestOwnerIsolation(t *testing.T) {
	d := NewTreeDAO(testDB(t))
	ctx := context.Background()

	folder := mustFolder(t, d, 1, "private", nil)
	file := mustFile(t, d, 1, "secret.bin", &folder.Id, []byte{1, 2, 3})

	if _, err := d.FindFolder(ctx, folder.Id, 2); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("foreign FindFolder: got %v, want ErrRecordNotFound", err)
	}
	if _, err := d.FindFile(ctx, file.Id, 2); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("foreign FindFile: got %v, want ErrRecordNotFound", err)
	}
	if _, err := d.UpdateFolderName(ctx, folder.Id, 2, "mine now"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("foreign rename: got %v, want ErrRecordNotFound", err)
	}
	if err := d.DeleteFile(ctx, file.Id, 2); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("foreign delete: got %v, want ErrRecordNotFound", err)
	}
	if err := d.DeleteFolderTree(ctx, folder.Id, 2); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("foreign cascade: got %v, want ErrRecordNotFound", err)
	}

	// The owner still sees everything untouched.
	got, err := d.FindFolder(ctx, folder.Id, 1)
	if err != nil {
		t.Fatalf("owner FindFolder: %v", err)
	}
	if got.Name != "private" {
		t.Fatalf("folder name = %q after foreign attempts, want %q", got.Name, "private")
	}
	if _, err := d.FindFile(ctx, file.Id, 1); err != nil {
		t.Fatalf("owner FindFile: %v", err)
	}
}

func TestRenameFolderKeepsStructure(t *testing.T) {
	d := NewTreeDAO(testDB(t))
	ctx := context.Background()

	root := mustFolder(t, d, 1, "root", nil)
	child := mustFolder(t, d, 1, "child", &root.Id)
	mustFile(t, d, 1, "doc.txt", &child.Id, []byte("x"))

	renamed, err := d.UpdateFolderName(ctx, child.Id, 1, "renamed")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Id != child.Id || renamed.OwnerId != child.OwnerId {
		t.Fatalf("rename moved identity: got id=%d owner=%d", renamed.Id, renamed.OwnerId)
	}
	if renamed.Name != "renamed" {
		t.Fatalf("rename name = %q, want %q", renamed.Name, "renamed")
	}
	if !renamed.ParentId.Valid || renamed.ParentId.Int64 != root.Id {
		t.Fatalf("rename changed parent: %+v", renamed.ParentId)
	}
	files, err := d.FindChildFiles(ctx, child.Id, 1)
	if err != nil {
		t.Fatalf("list children after rename: %v", err)
	}
	if len(files) != 1 || files[0].Name != "doc.txt" {
		t.Fatalf("children changed by rename: %+v", files)
	}
}

func TestDeleteFolderTreeRemovesExactClosure(t *testing.T) {
	d := NewTreeDAO(testDB(t))
	ctx := context.Background()

	// Tree under deletion: target -> (a, b), a -> aa; files in target, a and aa.
	target := mustFolder(t, d, 1, "target", nil)
	a := mustFolder(t, d, 1, "a", &target.Id)
	b := mustFolder(t, d, 1, "b", &target.Id)
	aa := mustFolder(t, d, 1, "aa", &a.Id)
	doomed := []File{
		mustFile(t, d, 1, "f1", &target.Id, []byte("1")),
		mustFile(t, d, 1, "f2", &a.Id, []byte("2")),
		mustFile(t, d, 1, "f3", &aa.Id, []byte("3")),
	}

	// Off-limits: a sibling tree of the same user and another user's tree.
	sibling := mustFolder(t, d, 1, "sibling", nil)
	keptFile := mustFile(t, d, 1, "kept", &sibling.Id, []byte("k"))
	foreign := mustFolder(t, d, 2, "foreign", nil)
	foreignFile := mustFile(t, d, 2, "theirs", &foreign.Id, []byte("t"))

	if err := d.DeleteFolderTree(ctx, target.Id, 1); err != nil {
		t.Fatalf("cascade failed: %v", err)
	}

	for _, f := range []Folder{target, a, b, aa} {
		if _, err := d.FindFolder(ctx, f.Id, 1); !errors.Is(err, ErrRecordNotFound) {
			t.Fatalf("folder %q survived the cascade: %v", f.Name, err)
		}
	}
	for _, f := range doomed {
		if _, err := d.FindFile(ctx, f.Id, 1); !errors.Is(err, ErrRecordNotFound) {
			t.Fatalf("file %q survived the cascade: %v", f.Name, err)
		}
	}

	if _, err := d.FindFolder(ctx, sibling.Id, 1); err != nil {
		t.Fatalf("sibling folder was removed: %v", err)
	}
	if _, err := d.FindFile(ctx, keptFile.Id, 1); err != nil {
		t.Fatalf("sibling file was removed: %v", err)
	}
	if _, err := d.FindFolder(ctx, foreign.Id, 2); err != nil {
		t.Fatalf("foreign folder was removed: %v", err)
	}
	if _, err := d.FindFile(ctx, foreignFile.Id, 2); err != nil {
		t.Fatalf("foreign file was removed: %v", err)
	}
}

func TestDeleteFolderTreeDeepChain(t *testing.T) {
	d := NewTreeDAO(testDB(t))
	ctx := context.Background()

	// A chain far deeper than any realistic tree; the worklist must not
	// care about depth.
	root := mustFolder(t, d, 1, "depth-0", nil)
	parent := root.Id
	ids := []int64{root.Id}
	for i := 1; i < 200; i++ {
		f := mustFolder(t, d, 1, "nested", &parent)
		parent = f.Id
		ids = append(ids, f.Id)
	}
	leaf := mustFile(t, d, 1, "bottom", &parent, []byte("deep"))

	if err := d.DeleteFolderTree(ctx, root.Id, 1); err != nil {
		t.Fatalf("deep cascade failed: %v", err)
	}
	for _, id := range ids {
		if _, err := d.FindFolder(ctx, id, 1); !errors.Is(err, ErrRecordNotFound) {
			t.Fatalf("folder %d survived the deep cascade", id)
		}
	}
	if _, err := d.FindFile(ctx, leaf.Id, 1); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("leaf file survived the deep cascade")
	}
}

func TestDeleteFolderTreeRollsBackOnFailure(t *testing.T) {
	db := testDB(t)
	d := NewTreeDAO(db)
	ctx := context.Background()

	root := mustFolder(t, d, 1, "root", nil)
	child := mustFolder(t, d, 1, "child", &root.Id)
	file := mustFile(t, d, 1, "kept.txt", &child.Id, []byte("k"))

	// Make the folder bulk delete blow up after the file delete has
	// already run inside the transaction.
	injected := errors.New("disk failure")
	err := db.Callback().Delete().Before("gorm:delete").Register("fail_folder_delete", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.ModelType == reflect.TypeOf(Folder{}) {
			_ = tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("failed to register delete callback: %v", err)
	}

	if err := d.DeleteFolderTree(ctx, root.Id, 1); !errors.Is(err, injected) {
		t.Fatalf("cascade error = %v, want the injected failure", err)
	}

	// The whole subtree must still be there, files included.
	for _, f := range []Folder{root, child} {
		if _, err := d.FindFolder(ctx, f.Id, 1); err != nil {
			t.Fatalf("folder %q lost after failed cascade: %v", f.Name, err)
		}
	}
	got, err := d.FindFileWithContent(ctx, file.Id, 1)
	if err != nil {
		t.Fatalf("file lost after failed cascade: %v", err)
	}
	if string(got.Content) != "k" {
		t.Fatalf("file content = %q after failed cascade, want %q", got.Content, "k")
	}
}

func TestDeleteFile(t *testing.T) {
	d := NewTreeDAO(testDB(t))
	ctx := context.Background()

	f := mustFile(t, d, 1, "gone.txt", nil, []byte("bye"))
	if err := d.DeleteFile(ctx, f.Id, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := d.FindFile(ctx, f.Id, 1); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("file still found after delete: %v", err)
	}
	if err := d.DeleteFile(ctx, f.Id, 1); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("second delete: got %v, want ErrRecordNotFound", err)
	}
}

func TestFindChildrenOneLevelOnly(t *testing.T) {
	d := NewTreeDAO(testDB(t))
	ctx := context.Background()

	root := mustFolder(t, d, 1, "root", nil)
	child := mustFolder(t, d, 1, "child", &root.Id)
	mustFolder(t, d, 1, "grandchild", &child.Id)
	mustFile(t, d, 1, "direct.txt", &root.Id, []byte("d"))
	mustFile(t, d, 1, "nested.txt", &child.Id, []byte("n"))

	folders, err := d.FindChildFolders(ctx, root.Id, 1)
	if err != nil {
		t.Fatalf("FindChildFolders: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "child" {
		t.Fatalf("immediate subfolders = %+v, want only %q", folders, "child")
	}
	files, err := d.FindChildFiles(ctx, root.Id, 1)
	if err != nil {
		t.Fatalf("FindChildFiles: %v", err)
	}
	if len(files) != 1 || files[0].Name != "direct.txt" {
		t.Fatalf("immediate files = %+v, want only %q", files, "direct.txt")
	}
	if len(files[0].Content) != 0 {
		t.Fatalf("child listing leaked content: %d bytes", len(files[0].Content))
	}
}

func TestMoveFileParentValidation(t *testing.T) {
	d := NewTreeDAO(testDB(t))
	ctx := context.Background()

	src := mustFolder(t, d, 1, "src", nil)
	dst := mustFolder(t, d, 1, "dst", nil)
	foreign := mustFolder(t, d, 2, "foreign", nil)
	f := mustFile(t, d, 1, "mv.txt", &src.Id, []byte("m"))

	moved, err := d.UpdateFileParent(ctx, f.Id, 1, nullable(&dst.Id))
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if !moved.ParentId.Valid || moved.ParentId.Int64 != dst.Id {
		t.Fatalf("move parent = %+v, want %d", moved.ParentId, dst.Id)
	}

	if _, err := d.UpdateFileParent(ctx, f.Id, 1, nullable(&foreign.Id)); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("move to foreign folder: got %v, want ErrParentNotFound", err)
	}

	toRoot, err := d.UpdateFileParent(ctx, f.Id, 1, sql.NullInt64{})
	if err != nil {
		t.Fatalf("move to root failed: %v", err)
	}
	if toRoot.ParentId.Valid {
		t.Fatalf("move to root kept parent %+v", toRoot.ParentId)
	}
}
