package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"
	"fitpulse/fitness-backend/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---
type FileService interface {
	// Upload stores the object under a generated unique key and records a
	// FileEntity row for it.
	Upload(ctx context.Context, originalFilename, contentType string, body io.Reader) (*domain.FileEntity, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FileEntity, error)
	// GetURL returns a presigned download URL for the stored object.
	GetURL(ctx context.Context, filename string) (string, error)
	// ResolveURLs maps stored filenames to download URLs, preserving order.
	ResolveURLs(ctx context.Context, filenames []string) ([]string, error)
	AttachToExercise(ctx context.Context, fileID, exerciseID primitive.ObjectID) error
	ListExercisePhotos(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.FileEntity, error)
	// Delete removes both the stored object and its metadata row.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

type fileService struct {
	fileRepo repository.FileEntityRepository
	storage  storage.FileStorage
}

// NewFileService creates a new instance of fileService.
func NewFileService(fileRepo repository.FileEntityRepository, fileStorage storage.FileStorage) FileService {
	return &fileService{
		fileRepo: fileRepo,
		storage:  fileStorage,
	}
}

func (s *fileService) Upload(ctx context.Context, originalFilename, contentType string, body io.Reader) (*domain.FileEntity, error) {
	// Random key plus the original extension; collisions are not a concern
	// and the unique index on filename is the backstop.
	objectKey := uuid.NewString() + filepath.Ext(originalFilename)

	if err := s.storage.Upload(ctx, objectKey, contentType, body); err != nil {
		return nil, err
	}

	file := &domain.FileEntity{Filename: objectKey}
	fileID, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		// Keep storage consistent when the metadata write fails.
		_ = s.storage.DeleteObject(ctx, objectKey)
		return nil, err
	}
	file.ID = fileID
	return file, nil
}

func (s *fileService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FileEntity, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *fileService) GetURL(ctx context.Context, filename string) (string, error) {
	if _, err := s.fileRepo.GetByFilename(ctx, filename); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	return s.storage.GeneratePresignedDownloadURL(ctx, filename, storage.DefaultPresignedURLExpiry)
}

func (s *fileService) ResolveURLs(ctx context.Context, filenames []string) ([]string, error) {
	urls := make([]string, 0, len(filenames))
	for _, name := range filenames {
		url, err := s.GetURL(ctx, name)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *fileService) AttachToExercise(ctx context.Context, fileID, exerciseID primitive.ObjectID) error {
	file, err := s.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	file.ExerciseID = &exerciseID
	return s.fileRepo.Update(ctx, file)
}

func (s *fileService) ListExercisePhotos(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.FileEntity, error) {
	return s.fileRepo.ListByExerciseID(ctx, exerciseID)
}

func (s *fileService) Delete(ctx context.Context, id primitive.ObjectID) error {
	file, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, file.Filename); err != nil {
		return err
	}
	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}
