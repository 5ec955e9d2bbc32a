package types

type FileType string

const (
	FILE_TYPE_IMAGE FileType = "image"
	FILE_TYPE_VIDEO FileType = "video"
	FILE_TYPE_OTHER FileType = "other"
)

// Content is the JSON document pinned under a post's CID.
type Content struct {
	Content    string           `json:"content"`
	Files      []File           `json:"files"`
	ReplyingTo []ContentReplyTo `json:"replyingTo,omitempty"`
}

type File struct {
	Cid      string   `json:"cid"`
	FileType FileType `json:"fileType"`
}

// Kind folds unknown file types into FILE_TYPE_OTHER.
func (f File) Kind() FileType {
	switch f.FileType {
	case FILE_TYPE_IMAGE, FILE_TYPE_VIDEO:
		return f.FileType
	default:
		return FILE_TYPE_OTHER
	}
}

type ContentReplyTo struct {
	Address  string `json:"address"`
	Username string `json:"username"`
	Cid      string `json:"cid"`
}
