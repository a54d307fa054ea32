package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound covers both a missing row and a row owned by a
	// different user. The two cases are never told apart.
	ErrRecordNotFound = gorm.ErrRecordNotFound
	ErrParentNotFound = errors.New("parent folder not found")
)

// Folder is one node of the tree. ParentId is NULL for root-level folders.
type Folder struct {
	Id       int64         `gorm:"primaryKey,autoIncrement"`
	Name     string        `gorm:"type:varchar(255);not null"`
	OwnerId  int64         `gorm:"not null;index:idx_folders_owner"`
	ParentId sql.NullInt64 `gorm:"index:idx_folders_parent"`

	Ctime int64
	Utime int64
}

type File struct {
	Id       int64         `gorm:"primaryKey,autoIncrement"`
	Name     string        `gorm:"type:varchar(255);not null"`
	OwnerId  int64         `gorm:"not null;index:idx_files_owner"`
	ParentId sql.NullInt64 `gorm:"index:idx_files_parent"`
	Content  []byte        `gorm:"type:blob"`
	Size     int64         `gorm:"not null"`
	MimeType string        `gorm:"type:varchar(128)"`

	Ctime int64
	Utime int64
}

// fileMetaColumns leaves the blob out of every query that does not hand
// content back to the caller.
var fileMetaColumns = []string{"id", "name", "owner_id", "parent_id", "size", "mime_type", "ctime", "utime"}

type TreeDAO interface {
	InsertFolder(ctx context.Context, f Folder) (Folder, error)
	FindFolder(ctx context.Context, id int64, ownerId int64) (Folder, error)
	FindChildFolders(ctx context.Context, parentId int64, ownerId int64) ([]Folder, error)
	UpdateFolderName(ctx context.Context, id int64, ownerId int64, name string) (Folder, error)
	DeleteFolderTree(ctx context.Context, id int64, ownerId int64) error

	InsertFile(ctx context.Context, f File) (File, error)
	FindFile(ctx context.Context, id int64, ownerId int64) (File, error)
	FindFileWithContent(ctx context.Context, id int64, ownerId int64) (File, error)
	FindChildFiles(ctx context.Context, parentId int64, ownerId int64) ([]File, error)
	UpdateFileName(ctx context.Context, id int64, ownerId int64, name string) (File, error)
	UpdateFileParent(ctx context.Context, id int64, ownerId int64, parentId sql.NullInt64) (File, error)
	DeleteFile(ctx context.Context, id int64, ownerId int64) error
}

type treeDAO struct {
	db *gorm.DB
}

func NewTreeDAO(db *gorm.DB) TreeDAO {
	return &treeDAO{
		db: db,
	}
}

// requireFolder resolves a folder only when it belongs to ownerId. Every
// lookup and parent validation funnels through here or requireFile, so
// ownership is enforced in exactly one place.
func (dao *treeDAO) requireFolder(tx *gorm.DB, id int64, ownerId int64) (Folder, error) {
	var f Folder
	err := tx.Where("id = ? AND owner_id = ?", id, ownerId).First(&f).Error
	return f, err
}

func (dao *treeDAO) requireFile(tx *gorm.DB, id int64, ownerId int64, withContent bool) (File, error) {
	var f File
	q := tx.Where("id = ? AND owner_id = ?", id, ownerId)
	if !withContent {
		q = q.Select(fileMetaColumns)
	}
	err := q.First(&f).Error
	return f, err
}

// checkParent validates that a prospective parent exists and is owned by
// ownerId. A missing or foreign parent is ErrParentNotFound, not
// ErrRecordNotFound: the caller named the parent as an input, not as the
// resource being operated on.
func (dao *treeDAO) checkParent(tx *gorm.DB, parentId sql.NullInt64, ownerId int64) error {
	if !parentId.Valid {
		return nil
	}
	if _, err := dao.requireFolder(tx, parentId.Int64, ownerId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	return nil
}

func (dao *treeDAO) InsertFolder(ctx context.Context, f Folder) (Folder, error) {
	err := dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dao.checkParent(tx, f.ParentId, f.OwnerId); err != nil {
			return err
		}
		now := time.Now().UnixMilli()
		f.Ctime = now
		f.Utime = now
		return tx.Create(&f).Error
	})
	return f, err
}

func (dao *treeDAO) FindFolder(ctx context.Context, id int64, ownerId int64) (Folder, error) {
	return dao.requireFolder(dao.db.WithContext(ctx), id, ownerId)
}

func (dao *treeDAO) FindChildFolders(ctx context.Context, parentId int64, ownerId int64) ([]Folder, error) {
	var folders []Folder
	err := dao.db.WithContext(ctx).
		Where("parent_id = ? AND owner_id = ?", parentId, ownerId).
		Order("id").
		Find(&folders).Error
	return folders, err
}

func (dao *treeDAO) UpdateFolderName(ctx context.Context, id int64, ownerId int64, name string) (Folder, error) {
	var f Folder
	err := dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if f, err = dao.requireFolder(tx, id, ownerId); err != nil {
			return err
		}
		f.Name = name
		f.Utime = time.Now().UnixMilli()
		return tx.Model(&Folder{}).Where("id = ?", f.Id).
			Updates(map[string]any{"name": f.Name, "utime": f.Utime}).Error
	})
	return f, err
}

// DeleteFolderTree removes a folder together with every descendant folder
// and file, as one transaction. The id closure is computed with an explicit
// stack before any delete runs, so the transaction either removes the whole
// subtree or rolls back to the pre-call state.
func (dao *treeDAO) DeleteFolderTree(ctx context.Context, id int64, ownerId int64) error {
	return dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		root, err := dao.requireFolder(tx, id, ownerId)
		if err != nil {
			return err
		}

		folderIds := []int64{root.Id}
		stack := []int64{root.Id}
		for len(stack) > 0 {
			parentId := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			var childIds []int64
			err := tx.Model(&Folder{}).
				Where("parent_id = ? AND owner_id = ?", parentId, ownerId).
				Pluck("id", &childIds).Error
			if err != nil {
				return err
			}
			folderIds = append(folderIds, childIds...)
			stack = append(stack, childIds...)
		}

		err = tx.Where("parent_id IN ? AND owner_id = ?", folderIds, ownerId).
			Delete(&File{}).Error
		if err != nil {
			return err
		}
		return tx.Where("id IN ?", folderIds).Delete(&Folder{}).Error
	})
}

func (dao *treeDAO) InsertFile(ctx context.Context, f File) (File, error) {
	err := dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dao.checkParent(tx, f.ParentId, f.OwnerId); err != nil {
			return err
		}
		now := time.Now().UnixMilli()
		f.Ctime = now
		f.Utime = now
		return tx.Create(&f).Error
	})
	return f, err
}

func (dao *treeDAO) FindFile(ctx context.Context, id int64, ownerId int64) (File, error) {
	return dao.requireFile(dao.db.WithContext(ctx), id, ownerId, false)
}

func (dao *treeDAO) FindFileWithContent(ctx context.Context, id int64, ownerId int64) (File, error) {
	return dao.requireFile(dao.db.WithContext(ctx), id, ownerId, true)
}

func (dao *treeDAO) FindChildFiles(ctx context.Context, parentId int64, ownerId int64) ([]File, error) {
	var files []File
	err := dao.db.WithContext(ctx).
		Select(fileMetaColumns).
		Where("parent_id = ? AND owner_id = ?", parentId, ownerId).
		Order("id").
		Find(&files).Error
	return files, err
}

func (dao *treeDAO) UpdateFileName(ctx context.Context, id int64, ownerId int64, name string) (File, error) {
	var f File
	err := dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if f, err = dao.requireFile(tx, id, ownerId, false); err != nil {
			return err
		}
		f.Name = name
		f.Utime = time.Now().UnixMilli()
		return tx.Model(&File{}).Where("id = ?", f.Id).
			Updates(map[string]any{"name": f.Name, "utime": f.Utime}).Error
	})
	return f, err
}

func (dao *treeDAO) UpdateFileParent(ctx context.Context, id int64, ownerId int64, parentId sql.NullInt64) (File, error) {
	var f File
	err := dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if f, err = dao.requireFile(tx, id, ownerId, false); err != nil {
			return err
		}
		if err = dao.checkParent(tx, parentId, ownerId); err != nil {
			return err
		}
		f.ParentId = parentId
		f.Utime = time.Now().UnixMilli()
		return tx.Model(&File{}).Where("id = ?", f.Id).
			Updates(map[string]any{"parent_id": f.ParentId, "utime": f.Utime}).Error
	})
	return f, err
}

func (dao *treeDAO) DeleteFile(ctx context.Context, id int64, ownerId int64) error {
	res := dao.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerId).
		Delete(&File{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
