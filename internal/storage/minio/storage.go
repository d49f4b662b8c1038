package minio

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/tags"

	"github.com/mkoval24/printflow/config"
	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/internal/ports"
)

// Storage — хранилище макетов поверх S3-совместимого бакета.
// Поиск идёт по базовому имени объекта без учёта регистра и расширения;
// ссылка на скачивание — presigned URL с ограниченным сроком жизни.
type Storage struct {
	client  *minio.Client
	log     ports.Logger
	bucket  string
	prefix  string
	linkTTL time.Duration
}

var _ ports.FileStorage = (*Storage)(nil)

func New(cfg config.Storage, log ports.Logger) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	return &Storage{
		client:  client,
		log:     log,
		bucket:  cfg.Bucket,
		prefix:  prefix,
		linkTTL: cfg.LinkTTL,
	}, nil
}

func (s *Storage) Search(ctx context.Context, names []string) ([]domain.FileInfo, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[baseName(n)] = struct{}{}
	}

	var found []domain.FileInfo
	opts := minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}

		objName := path.Base(obj.Key)
		if _, ok := wanted[baseName(objName)]; !ok {
			continue
		}

		link, err := s.client.PresignedGetObject(ctx, s.bucket, obj.Key, s.linkTTL, url.Values{})
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", obj.Key, err)
		}

		found = append(found, domain.FileInfo{
			ID:          obj.Key,
			Name:        strings.ToLower(objName),
			WebViewLink: link.String(),
		})
	}

	s.log.Infof(ctx, "minio: search matched %d of %d names", len(found), len(names))
	return found, nil
}

// GrantAccess помечает объект тегом получателя. Права на чтение по тегам
// навешивает bucket policy, само приложение политики не трогает.
func (s *Storage) GrantAccess(ctx context.Context, fileID, recipient string) error {
	objTags, err := tags.NewTags(map[string]string{"shared-with": recipient}, true)
	if err != nil {
		return fmt.Errorf("build tags: %w", err)
	}
	if err := s.client.PutObjectTagging(ctx, s.bucket, fileID, objTags, minio.PutObjectTaggingOptions{}); err != nil {
		return fmt.Errorf("tag %s: %w", fileID, err)
	}
	return nil
}

func (s *Storage) Health(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket probe: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q not found", s.bucket)
	}
	return nil
}

// baseName — имя в нижнем регистре без расширения .pdf.
func baseName(name string) string {
	return strings.TrimSuffix(strings.ToLower(name), ".pdf")
}
