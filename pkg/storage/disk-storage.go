package storage

import (
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
)

const sessionsFile = "sessions.json.gz"

func (d *DiskStorage) SaveSessions(sessions []SessionSnapshot) error {
	return d.SaveGzippedJson(sessions, sessionsFile)
}

// LoadSessions returns an empty list when no snapshot has been written yet.
func (d *DiskStorage) LoadSessions() ([]SessionSnapshot, error) {
	sessions := []SessionSnapshot{}
	err := d.LoadGzippedJson(&sessions, sessionsFile)
	if errors.Is(err, os.ErrNotExist) {
		return sessions, nil
	}
	return sessions, err
}

func (d *DiskStorage) SaveGzippedJson(data any, filename string) error {
	if err := os.MkdirAll(d.RootFolder, 0o755); err != nil {
		return err
	}
	fileName, tmpFileName := d.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFileName)

	zipWriter := gzip.NewWriter(file)
	enc := jsoncompat.NewEncoder(zipWriter)
	if err = enc.Encode(data); err != nil {
		file.Close()
		return err
	}
	if err = zipWriter.Close(); err != nil {
		file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = jsoncompat.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
