package storage

import (
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
)

var ErrNotFound = errors.New("handoff not found")

type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{
		RootFolder: rootFolder,
	}
}

func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(ds.RootFolder, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

// SessionSnapshot is one live session written to disk on shutdown.
type SessionSnapshot struct {
	ID            string                `json:"id"`
	DefaultStatus string                `json:"defaultStatus"`
	State         jsoncompat.RawMessage `json:"state"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}
