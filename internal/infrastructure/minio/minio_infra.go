package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/shop-console/internal/cfg"
	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/internal/infrastructure"
	"github.com/DRSN-tech/shop-console/internal/usecase"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/jitter"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/google/uuid"
)

const (
	cleanupAttempts   = 3
	cleanupBaseDelay  = time.Second
	cleanupMaxDelay   = 8 * time.Second
	cleanupJobTimeout = 30 * time.Second
)

// MinioInfrastructure управляет загрузкой и очисткой изображений в MinIO.
type MinioInfrastructure struct {
	imageRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
	baseDelay   time.Duration
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo:   imageRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		baseDelay:   cleanupBaseDelay,
	}
}

// UploadImages загружает изображения параллельно, не более UploadImagesLimit одновременно.
// При первой ошибке отменяет остальные загрузки и в фоне удаляет уже загруженные объекты.
// Ключи и URL в ответе идут в порядке req.Images.
func (m *MinioInfrastructure) UploadImages(ctx context.Context, req *usecase.UploadImagesReq) (*usecase.UploadImagesRes, error) {
	const op = "MinioInfrastructure.UploadImages"

	if len(req.Images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limit := m.cfg.UploadImagesLimit
	if limit <= 0 {
		limit = 1
	}

	type result struct {
		idx int
		key string
		err error
	}

	resCh := make(chan result, len(req.Images))
	sem := make(chan struct{}, limit)

	var uploadWg sync.WaitGroup
	for i, image := range req.Images {
		uploadWg.Add(1)
		go func() {
			defer uploadWg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				resCh <- result{idx: i, err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			ext, err := infrastructure.GetExtensionFromMIME(image.MimeType)
			if err != nil {
				resCh <- result{idx: i, err: fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err)}
				return
			}

			imageID := uuid.NewString()
			objKey := fmt.Sprintf("%s/%s.%s", req.Prefix, imageID, ext)
			newImage := domain.NewImage(imageID, m.cfg.BucketName, objKey, image.Data, image.Size, image.MimeType)

			key, err := m.imageRepo.Upload(ctx, newImage)
			if err != nil {
				resCh <- result{idx: i, err: fmt.Errorf("upload %s failed: %w", image.Name, err)}
				return
			}

			resCh <- result{idx: i, key: key}
		}()
	}

	go func() {
		uploadWg.Wait()
		close(resCh)
	}()

	keys := make([]string, len(req.Images))
	var firstErr error
	for res := range resCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		keys[res.idx] = res.key
	}

	if firstErr != nil {
		uploaded := make([]string, 0, len(keys))
		for _, key := range keys {
			if key != "" {
				uploaded = append(uploaded, key)
			}
		}
		m.CleanupImages(uploaded)

		return nil, e.Wrap(op, firstErr)
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		urls = append(urls, m.PublicURL(key))
	}

	return usecase.NewUploadImagesRes(keys, urls), nil
}

// PublicURL возвращает адрес объекта, по которому его загрузит браузер.
func (m *MinioInfrastructure) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", m.cfg.PublicURL, m.cfg.BucketName, key)
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO.
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}

	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет объекты с экспоненциальной задержкой и jitter между попытками.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: cleaning up %d uploaded keys", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupJobTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.imageRepo.Delete(ctx, m.cfg.BucketName, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key %s", op, key)
				break
			}

			delay := jitter.ExponentialBackoff(m.baseDelay, cleanupMaxDelay, attempt, jitter.DefaultJitter)
			if err := jitter.Sleep(ctx, delay); err != nil {
				m.logger.Warnf("%s: interrupted by shutdown, key=%s", op, key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения фоновых очисток с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
