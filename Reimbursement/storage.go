package Reimbursement

import (
	"fmt"
	"os"
	"path/filepath"
)

// KitStorage persists a finished kit artifact and returns the reference the
// request record keeps. Storing under the same name overwrites the previous
// artifact, which makes kit regeneration idempotent.
type KitStorage interface {
	Store(data []byte, patientID uint, filename string) (string, error)
}

// LocalKitStorage writes kits under Root, one directory per patient, served
// statically the same way patient record files are.
type LocalKitStorage struct {
	Root    string
	BaseURL string
}

func NewLocalKitStorage(root, baseURL string) *LocalKitStorage {
	return &LocalKitStorage{Root: root, BaseURL: baseURL}
}

func (s *LocalKitStorage) Store(data []byte, patientID uint, filename string) (string, error) {
	dir := filepath.Join(s.Root, fmt.Sprintf("%v", patientID))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%v/%s", s.BaseURL, patientID, filename), nil
}
