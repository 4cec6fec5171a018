package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/inventario-monitor/pkg/config"
)

// SchemeS3 prefijo de rutas de dataset en almacenamiento de objetos.
const SchemeS3 = "s3://"

// ObjectStorage lee datasets desde un bucket S3-compatible (MinIO, S3, R2...).
type ObjectStorage struct {
	client *minio.Client
}

// NewObjectStorage construye el cliente con credenciales estáticas.
func NewObjectStorage(cfg config.StorageConfig) (*ObjectStorage, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("object storage: STORAGE_ENDPOINT requerido para rutas s3://")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage: crear cliente: %w", err)
	}
	return &ObjectStorage{client: client}, nil
}

// Opener devuelve un Opener para bucket/key. Stat se hace al abrir para
// reportar "no existe" como error de apertura y no a mitad de lectura.
func (s *ObjectStorage) Opener(bucket, key string) Opener {
	return func(ctx context.Context) (io.ReadCloser, error) {
		obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("obtener s3://%s/%s: %w", bucket, key, err)
		}
		if _, err := obj.Stat(); err != nil {
			obj.Close()
			return nil, fmt.Errorf("obtener s3://%s/%s: %w", bucket, key, err)
		}
		return obj, nil
	}
}

// ParseObjectPath separa "s3://bucket/clave/archivo.csv" en bucket y clave.
func ParseObjectPath(path string) (bucket, key string, err error) {
	if !strings.HasPrefix(path, SchemeS3) {
		return "", "", fmt.Errorf("ruta sin prefijo %s: %q", SchemeS3, path)
	}
	rest := strings.TrimPrefix(path, SchemeS3)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("ruta s3 inválida %q (esperado s3://bucket/clave)", path)
	}
	return bucket, key, nil
}
