// Package reliability provides the cloud backup service: periodic tar.gz
// snapshots of the sqlite databases uploaded to an S3-compatible bucket.
package reliability

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/version"
)

const backupPrefix = "backups/"

// BackupService creates database backup archives and manages them in an
// S3-compatible bucket.
type BackupService struct {
	client        *s3.Client
	uploader      *manager.Uploader
	bucket        string
	dataDir       string
	retentionDays int
	log           zerolog.Logger
}

// NewBackupService creates a backup service over an S3 client.
func NewBackupService(client *s3.Client, bucket, dataDir string, retentionDays int, log zerolog.Logger) *BackupService {
	return &BackupService{
		client:        client,
		uploader:      manager.NewUploader(client),
		bucket:        bucket,
		dataDir:       dataDir,
		retentionDays: retentionDays,
		log:           log.With().Str("service", "backup").Logger(),
	}
}

// Manifest describes the contents of one backup archive.
type Manifest struct {
	Timestamp time.Time          `json:"timestamp"`
	Version   string             `json:"version"`
	Databases []DatabaseManifest `json:"databases"`
}

// DatabaseManifest describes one database file inside a backup.
type DatabaseManifest struct {
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	Checksum  string `json:"checksum"` // sha256, hex
}

// BackupInfo describes one backup stored in the bucket.
type BackupInfo struct {
	Key       string    `json:"key"`
	SizeBytes int64     `json:"size_bytes"`
	Modified  time.Time `json:"modified"`
}

// CreateAndUploadBackup archives every .db file in the data directory into a
// tar.gz with a manifest and uploads it. Run by the nightly cron job.
func (s *BackupService) CreateAndUploadBackup(ctx context.Context) error {
	start := time.Now()
	s.log.Info().Msg("Starting backup")

	dbFiles, err := filepath.Glob(filepath.Join(s.dataDir, "*.db"))
	if err != nil {
		return fmt.Errorf("failed to list database files: %w", err)
	}
	if len(dbFiles) == 0 {
		return fmt.Errorf("no database files found in %s", s.dataDir)
	}

	archivePath := filepath.Join(s.dataDir, fmt.Sprintf("backup-%s.tar.gz", start.UTC().Format("20060102-150405")))
	defer func() { _ = os.Remove(archivePath) }()

	if err := s.writeArchive(archivePath, dbFiles, start); err != nil {
		return err
	}

	key := backupPrefix + filepath.Base(archivePath)
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open backup archive: %w", err)
	}
	defer file.Close()

	if _, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file,
	}); err != nil {
		return fmt.Errorf("failed to upload backup %s: %w", key, err)
	}

	s.log.Info().
		Str("key", key).
		Dur("elapsed", time.Since(start)).
		Msg("Backup uploaded")

	return s.PruneOldBackups(ctx)
}

// writeArchive builds the tar.gz with the database files and the manifest.
func (s *BackupService) writeArchive(archivePath string, dbFiles []string, timestamp time.Time) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create backup archive: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	defer gz.Close()
	tw := tar.NewWriter(gz)
	defer tw.Close()

	manifest := Manifest{Timestamp: timestamp.UTC(), Version: version.Version}

	for _, path := range dbFiles {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		checksum, err := fileChecksum(path)
		if err != nil {
			return err
		}
		manifest.Databases = append(manifest.Databases, DatabaseManifest{
			Filename:  filepath.Base(path),
			SizeBytes: info.Size(),
			Checksum:  checksum,
		})

		if err := addFileToTar(tw, path, info); err != nil {
			return err
		}
	}

	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup manifest: %w", err)
	}
	if err := tw.WriteHeader(&tar.Header{
		Name:    "manifest.json",
		Mode:    0644,
		Size:    int64(len(manifestJSON)),
		ModTime: timestamp,
	}); err != nil {
		return fmt.Errorf("failed to write manifest header: %w", err)
	}
	if _, err := tw.Write(manifestJSON); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// ListBackups returns the backups in the bucket, newest first.
func (s *BackupService) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	output, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(backupPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	backups := make([]BackupInfo, 0, len(output.Contents))
	for _, obj := range output.Contents {
		if obj.Key == nil || !strings.HasSuffix(*obj.Key, ".tar.gz") {
			continue
		}
		info := BackupInfo{Key: *obj.Key}
		if obj.Size != nil {
			info.SizeBytes = *obj.Size
		}
		if obj.LastModified != nil {
			info.Modified = *obj.LastModified
		}
		backups = append(backups, info)
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].Modified.After(backups[j].Modified) })
	return backups, nil
}

// PruneOldBackups deletes backups older than the retention window.
func (s *BackupService) PruneOldBackups(ctx context.Context) error {
	if s.retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	backups, err := s.ListBackups(ctx)
	if err != nil {
		return err
	}
	for _, backup := range backups {
		if backup.Modified.After(cutoff) {
			continue
		}
		if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(backup.Key),
		}); err != nil {
			return fmt.Errorf("failed to delete old backup %s: %w", backup.Key, err)
		}
		s.log.Info().Str("key", backup.Key).Msg("Pruned old backup")
	}
	return nil
}

func fileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for checksum: %w", path, err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to checksum %s: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func addFileToTar(tw *tar.Writer, path string, info os.FileInfo) error {
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("failed to build tar header for %s: %w", path, err)
	}
	header.Name = filepath.Base(path)
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write tar header for %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(tw, file); err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return nil
}
