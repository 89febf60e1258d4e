package services

import (
	"context"
	"fmt"
	"time"

	"github.com/BerylCAtieno/file-query-client/internal/form"
	"github.com/BerylCAtieno/file-query-client/internal/models"
	"github.com/BerylCAtieno/file-query-client/internal/repository"
	"github.com/BerylCAtieno/file-query-client/internal/storage"
	"github.com/BerylCAtieno/file-query-client/internal/utils"
)

type QueryService interface {
	form.Predictor
	ListSubmissions(ctx context.Context, limit int) ([]models.Submission, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	GetSubmissionFile(ctx context.Context, id string) (*models.File, error)
}

type queryService struct {
	predictor form.Predictor
	repo      repository.Repository
	storage   storage.Storage
	logger    *utils.Logger
}

// NewService wraps predictor so that every answered submission is recorded.
// repo and store may be nil to disable history and archiving.
func NewService(predictor form.Predictor, repo repository.Repository, store storage.Storage, logger *utils.Logger) QueryService {
	if logger == nil {
		logger = utils.NopLogger()
	}

	return &queryService{
		predictor: predictor,
		repo:      repo,
		storage:   store,
		logger:    logger,
	}
}

func (s *queryService) Predict(ctx context.Context, fileType models.FileType, file models.File, query string) (string, error) {
	start := time.Now()

	result, err := s.predictor.Predict(ctx, fileType, file, query)
	if err != nil {
		return "", err
	}

	s.logger.Info("Query answered",
		"file_type", fileType,
		"filename", file.Name,
		"size", len(file.Content),
		"result_length", len(result),
		"duration", time.Since(start))

	// Recording failures are only logged.
	if err := s.record(context.WithoutCancel(ctx), fileType, file, query, result); err != nil {
		s.logger.Error("Failed to record submission", "error", err, "filename", file.Name)
	}

	return result, nil
}

func (s *queryService) record(ctx context.Context, fileType models.FileType, file models.File, query, result string) error {
	if s.repo == nil {
		return nil
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = fileType.ContentType()
	}

	sub := &models.Submission{
		ID:          utils.GenerateID(),
		Filename:    file.Name,
		FileSize:    file.Size(),
		ContentType: contentType,
		FileType:    string(fileType),
		Query:       query,
		Result:      result,
		CreatedAt:   time.Now().UTC(),
	}

	if s.storage != nil {
		key := fmt.Sprintf("submissions/%s/%s", sub.ID, file.Name)
		if err := s.storage.Upload(ctx, key, file.Content, contentType); err != nil {
			s.logger.Error("Failed to archive file", "error", err, "s3_key", key)
		} else {
			sub.S3Key = &key
		}
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		if sub.S3Key != nil {
			_ = s.storage.Delete(ctx, *sub.S3Key)
		}
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

func (s *queryService) ListSubmissions(ctx context.Context, limit int) ([]models.Submission, error) {
	if s.repo == nil {
		return []models.Submission{}, nil
	}

	subs, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list submissions", "error", err)
		return nil, utils.NewInternalError("Failed to retrieve submissions")
	}

	return subs, nil
}

func (s *queryService) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	if s.repo == nil {
		return nil, utils.NewNotFoundError("Submission history is disabled")
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get submission", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve submission")
	}
	if sub == nil {
		return nil, utils.NewNotFoundError("Submission not found")
	}

	return sub, nil
}

func (s *queryService) GetSubmissionFile(ctx context.Context, id string) (*models.File, error) {
	sub, err := s.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.storage == nil || sub.S3Key == nil {
		return nil, utils.NewNotFoundError("File was not archived")
	}

	data, err := s.storage.Download(ctx, *sub.S3Key)
	if err != nil {
		s.logger.Error("Failed to download archived file", "error", err, "s3_key", *sub.S3Key)
		return nil, utils.NewInternalError("Failed to retrieve archived file")
	}

	return &models.File{
		Name:        sub.Filename,
		ContentType: sub.ContentType,
		Content:     data,
	}, nil
}
