package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hantaozhou/docvault/internal/domain"
	"github.com/hantaozhou/docvault/internal/repository/dao"
)

var (
	ErrNodeNotFound   = dao.ErrRecordNotFound
	ErrParentNotFound = dao.ErrParentNotFound
)

type TreeRepository interface {
	CreateFolder(ctx context.Context, f domain.Folder) (domain.Folder, error)
	FindFolder(ctx context.Context, id int64, ownerId int64) (domain.Folder, error)
	ListChildren(ctx context.Context, folderId int64, ownerId int64) ([]domain.Folder, []domain.File, error)
	RenameFolder(ctx context.Context, id int64, ownerId int64, name string) (domain.Folder, error)
	DeleteFolderTree(ctx context.Context, id int64, ownerId int64) error

	CreateFile(ctx context.Context, f domain.File, content []byte) (domain.File, error)
	FindFile(ctx context.Context, id int64, ownerId int64) (domain.File, error)
	FindFileContent(ctx context.Context, id int64, ownerId int64) (domain.File, []byte, error)
	RenameFile(ctx context.Context, id int64, ownerId int64, name string) (domain.File, error)
	MoveFile(ctx context.Context, id int64, ownerId int64, parentId *int64) (domain.File, error)
	DeleteFile(ctx context.Context, id int64, ownerId int64) error
}

type treeRepository struct {
	dao dao.TreeDAO
}

func NewTreeRepository(dao dao.TreeDAO) TreeRepository {
	return &treeRepository{
		dao: dao,
	}
}

func (repo *treeRepository) CreateFolder(ctx context.Context, f domain.Folder) (domain.Folder, error) {
	entity, err := repo.dao.InsertFolder(ctx, repo.toFolderEntity(f))
	if err != nil {
		return domain.Folder{}, err
	}
	return repo.toFolderDomain(entity), nil
}

func (repo *treeRepository) FindFolder(ctx context.Context, id int64, ownerId int64) (domain.Folder, error) {
	entity, err := repo.dao.FindFolder(ctx, id, ownerId)
	if err != nil {
		return domain.Folder{}, err
	}
	return repo.toFolderDomain(entity), nil
}

func (repo *treeRepository) ListChildren(ctx context.Context, folderId int64, ownerId int64) ([]domain.Folder, []domain.File, error) {
	folderEntities, err := repo.dao.FindChildFolders(ctx, folderId, ownerId)
	if err != nil {
		return nil, nil, err
	}
	fileEntities, err := repo.dao.FindChildFiles(ctx, folderId, ownerId)
	if err != nil {
		return nil, nil, err
	}
	folders := make([]domain.Folder, 0, len(folderEntities))
	for _, e := range folderEntities {
		folders = append(folders, repo.toFolderDomain(e))
	}
	files := make([]domain.File, 0, len(fileEntities))
	for _, e := range fileEntities {
		files = append(files, repo.toFileDomain(e))
	}
	return folders, files, nil
}

func (repo *treeRepository) RenameFolder(ctx context.Context, id int64, ownerId int64, name string) (domain.Folder, error) {
	entity, err := repo.dao.UpdateFolderName(ctx, id, ownerId, name)
	if err != nil {
		return domain.Folder{}, err
	}
	return repo.toFolderDomain(entity), nil
}

func (repo *treeRepository) DeleteFolderTree(ctx context.Context, id int64, ownerId int64) error {
	return repo.dao.DeleteFolderTree(ctx, id, ownerId)
}

func (repo *treeRepository) CreateFile(ctx context.Context, f domain.File, content []byte) (domain.File, error) {
	entity := repo.toFileEntity(f)
	entity.Content = content
	entity, err := repo.dao.InsertFile(ctx, entity)
	if err != nil {
		return domain.File{}, err
	}
	return repo.toFileDomain(entity), nil
}

func (repo *treeRepository) FindFile(ctx context.Context, id int64, ownerId int64) (domain.File, error) {
	entity, err := repo.dao.FindFile(ctx, id, ownerId)
	if err != nil {
		return domain.File{}, err
	}
	return repo.toFileDomain(entity), nil
}

func (repo *treeRepository) FindFileContent(ctx context.Context, id int64, ownerId int64) (domain.File, []byte, error) {
	entity, err := repo.dao.FindFileWithContent(ctx, id, ownerId)
	if err != nil {
		return domain.File{}, nil, err
	}
	return repo.toFileDomain(entity), entity.Content, nil
}

func (repo *treeRepository) RenameFile(ctx context.Context, id int64, ownerId int64, name string) (domain.File, error) {
	entity, err := repo.dao.UpdateFileName(ctx, id, ownerId, name)
	if err != nil {
		return domain.File{}, err
	}
	return repo.toFileDomain(entity), nil
}

func (repo *treeRepository) MoveFile(ctx context.Context, id int64, ownerId int64, parentId *int64) (domain.File, error) {
	entity, err := repo.dao.UpdateFileParent(ctx, id, ownerId, toNullInt64(parentId))
	if err != nil {
		return domain.File{}, err
	}
	return repo.toFileDomain(entity), nil
}

func (repo *treeRepository) DeleteFile(ctx context.Context, id int64, ownerId int64) error {
	return repo.dao.DeleteFile(ctx, id, ownerId)
}

func (repo *treeRepository) toFolderEntity(f domain.Folder) dao.Folder {
	return dao.Folder{
		Id:       f.Id,
		Name:     f.Name,
		OwnerId:  f.OwnerId,
		ParentId: toNullInt64(f.ParentId),
	}
}

func (repo *treeRepository) toFolderDomain(f dao.Folder) domain.Folder {
	return domain.Folder{
		Id:       f.Id,
		Name:     f.Name,
		OwnerId:  f.OwnerId,
		ParentId: fromNullInt64(f.ParentId),
		Ctime:    time.UnixMilli(f.Ctime),
	}
}

func (repo *treeRepository) toFileEntity(f domain.File) dao.File {
	return dao.File{
		Id:       f.Id,
		Name:     f.Name,
		OwnerId:  f.OwnerId,
		ParentId: toNullInt64(f.ParentId),
		Size:     f.Size,
		MimeType: f.MimeType,
	}
}

func (repo *treeRepository) toFileDomain(f dao.File) domain.File {
	return domain.File{
		Id:       f.Id,
		Name:     f.Name,
		OwnerId:  f.OwnerId,
		ParentId: fromNullInt64(f.ParentId),
		Size:     f.Size,
		MimeType: f.MimeType,
		Ctime:    time.UnixMilli(f.Ctime),
	}
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
