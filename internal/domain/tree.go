package domain

import "time"

// Folder is one node of a user's tree. ParentId is nil for root-level
// folders; when set it always references a folder of the same owner.
type Folder struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	OwnerId  int64  `json:"-"`
	ParentId *int64 `json:"parent_folder_id"`

	Ctime time.Time `json:"created_at"`
}

// File metadata. Content is kept out of this struct so listing and stat
// responses never drag the blob along.
type File struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	OwnerId  int64  `json:"-"`
	ParentId *int64 `json:"parent_folder_id"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`

	Ctime time.Time `json:"created_at"`
}

// FolderView is one folder plus its immediate children.
type FolderView struct {
	Folder
	Subfolders []Folder `json:"subfolders"`
	Files      []File   `json:"files"`
}

// FileDownload carries the transport-encoded content of a single file.
type FileDownload struct {
	File
	Content string `json:"content"`
}
