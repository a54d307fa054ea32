package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hantaozhou/docvault/internal/domain"
	"github.com/hantaozhou/docvault/internal/pkg/blob"
	"github.com/hantaozhou/docvault/internal/repository"
	"github.com/hantaozhou/docvault/pkg/log"
)

var (
	// ErrNameRequired rejects empty or blank names before anything is written.
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidParent   = repository.ErrParentNotFound
	ErrNotFound        = repository.ErrNodeNotFound
	ErrInvalidEncoding = blob.ErrInvalidEncoding
	// ErrStorage means a transaction failed and was rolled back; the tree is
	// unchanged.
	ErrStorage = errors.New("storage failure")
)

// StoreService is the façade over a user's folder/file tree. The owner id
// is an explicit parameter on every call; nothing here reads ambient
// request state.
type StoreService interface {
	CreateFolder(ctx context.Context, ownerId int64, name string, parentId *int64) (domain.Folder, error)
	FolderView(ctx context.Context, ownerId int64, folderId int64) (domain.FolderView, error)
	RenameFolder(ctx context.Context, ownerId int64, folderId int64, name string) (domain.Folder, error)
	DeleteFolder(ctx context.Context, ownerId int64, folderId int64) error

	UploadFile(ctx context.Context, ownerId int64, name string, parentId *int64, encoded string) (domain.File, error)
	FileStat(ctx context.Context, ownerId int64, fileId int64) (domain.File, error)
	DownloadFile(ctx context.Context, ownerId int64, fileId int64) (domain.FileDownload, error)
	RenameFile(ctx context.Context, ownerId int64, fileId int64, name string) (domain.File, error)
	MoveFile(ctx context.Context, ownerId int64, fileId int64, parentId *int64) (domain.File, error)
	DeleteFile(ctx context.Context, ownerId int64, fileId int64) error
}

type storeService struct {
	repo repository.TreeRepository
}

func NewStoreService(repo repository.TreeRepository) StoreService {
	return &storeService{
		repo: repo,
	}
}

func (svc *storeService) CreateFolder(ctx context.Context, ownerId int64, name string, parentId *int64) (domain.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Folder{}, ErrNameRequired
	}
	folder, err := svc.repo.CreateFolder(ctx, domain.Folder{
		Name:     name,
		OwnerId:  ownerId,
		ParentId: parentId,
	})
	return folder, svc.mutationErr(err, "create folder")
}

func (svc *storeService) FolderView(ctx context.Context, ownerId int64, folderId int64) (domain.FolderView, error) {
	folder, err := svc.repo.FindFolder(ctx, folderId, ownerId)
	if err != nil {
		return domain.FolderView{}, svc.lookupErr(err, "fetch folder")
	}
	subfolders, files, err := svc.repo.ListChildren(ctx, folderId, ownerId)
	if err != nil {
		return domain.FolderView{}, svc.lookupErr(err, "list folder children")
	}
	return domain.FolderView{
		Folder:     folder,
		Subfolders: subfolders,
		Files:      files,
	}, nil
}

func (svc *storeService) RenameFolder(ctx context.Context, ownerId int64, folderId int64, name string) (domain.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Folder{}, ErrNameRequired
	}
	folder, err := svc.repo.RenameFolder(ctx, folderId, ownerId, name)
	return folder, svc.mutationErr(err, "rename folder")
}

func (svc *storeService) DeleteFolder(ctx context.Context, ownerId int64, folderId int64) error {
	return svc.mutationErr(svc.repo.DeleteFolderTree(ctx, folderId, ownerId), "delete folder tree")
}

func (svc *storeService) UploadFile(ctx context.Context, ownerId int64, name string, parentId *int64, encoded string) (domain.File, error) {
	if strings.TrimSpace(name) == "" {
		return domain.File{}, ErrNameRequired
	}
	content, err := blob.Decode(encoded)
	if err != nil {
		return domain.File{}, err
	}
	file, err := svc.repo.CreateFile(ctx, domain.File{
		Name:     name,
		OwnerId:  ownerId,
		ParentId: parentId,
		Size:     int64(len(content)),
		MimeType: blob.SniffMime(content, name),
	}, content)
	return file, svc.mutationErr(err, "create file")
}

func (svc *storeService) FileStat(ctx context.Context, ownerId int64, fileId int64) (domain.File, error) {
	file, err := svc.repo.FindFile(ctx, fileId, ownerId)
	return file, svc.lookupErr(err, "fetch file")
}

func (svc *storeService) DownloadFile(ctx context.Context, ownerId int64, fileId int64) (domain.FileDownload, error) {
	file, content, err := svc.repo.FindFileContent(ctx, fileId, ownerId)
	if err != nil {
		return domain.FileDownload{}, svc.lookupErr(err, "fetch file content")
	}
	return domain.FileDownload{
		File:    file,
		Content: blob.Encode(content),
	}, nil
}

func (svc *storeService) RenameFile(ctx context.Context, ownerId int64, fileId int64, name string) (domain.File, error) {
	if strings.TrimSpace(name) == "" {
		return domain.File{}, ErrNameRequired
	}
	file, err := svc.repo.RenameFile(ctx, fileId, ownerId, name)
	return file, svc.mutationErr(err, "rename file")
}

func (svc *storeService) MoveFile(ctx context.Context, ownerId int64, fileId int64, parentId *int64) (domain.File, error) {
	file, err := svc.repo.MoveFile(ctx, fileId, ownerId, parentId)
	return file, svc.mutationErr(err, "move file")
}

func (svc *storeService) DeleteFile(ctx context.Context, ownerId int64, fileId int64) error {
	return svc.mutationErr(svc.repo.DeleteFile(ctx, fileId, ownerId), "delete file")
}

// lookupErr passes the not-found sentinel through and degrades everything
// else to ErrStorage after logging the cause.
func (svc *storeService) lookupErr(err error, op string) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	log.WithError(err).Errorf("store: %s failed", op)
	return ErrStorage
}

func (svc *storeService) mutationErr(err error, op string) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidParent) {
		return err
	}
	log.WithError(err).Errorf("store: %s failed", op)
	return ErrStorage
}
