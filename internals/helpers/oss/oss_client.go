// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/sirupsen/logrus"
)

// batas ukuran upload attachment
const MaxUploadSize = int64(10 * 1024 * 1024)

// Stored: hasil upload yang disimpan di task/dokumen.
type Stored struct {
	Key         string
	URL         string
	Filename    string
	ContentType string
	Size        int64
}

// BlobStore: facade upload/hapus yang seragam untuk controller.
type BlobStore interface {
	Upload(ctx context.Context, dir string, fh *multipart.FileHeader) (Stored, error)
	Delete(ctx context.Context, key string) error
}

type OSSConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	Prefix     string // optional: "hse/"
	PublicBase string // optional CDN base
}

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
	PublicBase string
	WebP       WebPOptions
	log        *logrus.Logger
}

func NewOSSService(cfg OSSConfig, log *logrus.Logger) (*OSSService, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			log.Warnf("[OSS] skip location check (AccessDenied) bucket=%s", cfg.Bucket)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Infof("[OSS] bucket %s location: %s", cfg.Bucket, loc)
	}

	return &OSSService{
		Bucket:     bkt,
		Endpoint:   cfg.Endpoint,
		BucketName: cfg.Bucket,
		Prefix:     strings.Trim(cfg.Prefix, "/"),
		PublicBase: strings.TrimRight(cfg.PublicBase, "/"),
		WebP:       DefaultWebPOptions(),
		log:        log,
	}, nil
}

// Upload: gambar di-recompress ke .webp, file lain apa adanya.
func (s *OSSService) Upload(ctx context.Context, dir string, fh *multipart.FileHeader) (Stored, error) {
	if fh == nil {
		return Stored{}, fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize {
		return Stored{}, fmt.Errorf("file too large (max %d bytes)", MaxUploadSize)
	}
	src, err := fh.Open()
	if err != nil {
		return Stored{}, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return Stored{}, fmt.Errorf("read file: %w", err)
	}

	filename := fh.Filename
	ct := DetectContentType(data, filename)
	if IsImage(data, filename) {
		if webpData, err := ConvertToWebP(bytes.NewReader(data), filename, s.WebP); err == nil {
			data = webpData
			ct = "image/webp"
			filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp"
		} else {
			s.log.WithError(err).Warnf("[OSS] webp convert gagal, upload original: %s", fh.Filename)
		}
	}

	key := BuildObjectKey(s.Prefix, dir, filename, time.Now())
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(ct),
		oss.ContentDisposition("inline"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return Stored{}, fmt.Errorf("put object: %w", err)
	}
	return Stored{
		Key:         key,
		URL:         s.PublicURL(key),
		Filename:    filename,
		ContentType: ct,
		Size:        int64(len(data)),
	}, nil
}

func (s *OSSService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

/* =======================================================================
   Misc utils
======================================================================= */

// BuildObjectKey: {prefix}/{dir}/{slug}_{yyyymmdd_hhmmss}_{rand6}{ext}
func BuildObjectKey(prefix, dir, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	parts := make([]string, 0, 3)
	for _, p := range []string{prefix, dir} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, fmt.Sprintf("%s_%s_%s%s", slugify(base), now.Format("20060102_150405"), randHex(3), ext))
	return strings.Join(parts, "/")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// DetectContentType: ekstensi dulu, fallback sniff 512B
func DetectContentType(data []byte, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	if ct := mime.TypeByExtension(ext); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(data[:min(len(data), 512)])
}
