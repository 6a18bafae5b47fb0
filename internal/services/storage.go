package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

var (
	s3Client  *s3.S3
	uploader  *s3manager.Uploader
	useS3     bool
	baseURL   string
	uploadDir string
)

// Buckets accepted by UploadImage. Each maps to a folder (local) or key
// prefix (S3).
var allowedBuckets = map[string]bool{
	"trips":        true,
	"gallery":      true,
	"testimonials": true,
	"services":     true,
}

var bucketPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// MaxUploadSize caps the size of a single uploaded file.
const MaxUploadSize = 10 << 20

// ErrInvalidUpload marks uploads rejected for their content rather than
// a storage failure.
var ErrInvalidUpload = errors.New("invalid upload")

// InitStorage initializes either S3 or local storage based on configuration
func InitStorage() error {
	awsRegion := os.Getenv("AWS_REGION")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if awsRegion != "" && awsAccessKey != "" && awsSecretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(awsRegion),
			Credentials: credentials.NewStaticCredentials(
				awsAccessKey,
				awsSecretKey,
				"",
			),
		})
		if err != nil {
			return fmt.Errorf("failed to create AWS session: %v", err)
		}

		s3Client = s3.New(sess)
		uploader = s3manager.NewUploader(sess)
		useS3 = true

		log.Println("AWS S3 storage initialized")
		return nil
	}

	return InitLocalStorage(os.Getenv("UPLOAD_DIR"), os.Getenv("BASE_URL"))
}

// InitLocalStorage stores uploads on disk under dir and serves them from
// baseURL + "/uploads".
func InitLocalStorage(dir, publicBaseURL string) error {
	useS3 = false
	uploadDir = dir
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	baseURL = strings.TrimRight(publicBaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %v", err)
	}

	log.Printf("AWS S3 not configured. Using local file storage in %s", uploadDir)
	return nil
}

// UploadDir returns the local directory served at /uploads.
func UploadDir() string {
	return uploadDir
}

// ValidBucket reports whether uploads may target bucket.
func ValidBucket(bucket string) bool {
	return bucketPattern.MatchString(bucket) && allowedBuckets[bucket]
}

// objectName returns a collision-free name that keeps the original extension.
func objectName(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

// UploadImage stores file under bucket and returns its public URL.
func UploadImage(file *multipart.FileHeader, bucket string) (string, error) {
	if !ValidBucket(bucket) {
		return "", fmt.Errorf("%w: unknown bucket %q", ErrInvalidUpload, bucket)
	}
	if file.Size > MaxUploadSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, MaxUploadSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer src.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, src); err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}

	contentType := http.DetectContentType(buffer.Bytes())
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: unsupported content type %s", ErrInvalidUpload, contentType)
	}

	name := objectName(file.Filename)
	if useS3 {
		return uploadToS3(buffer.Bytes(), contentType, bucket+"/"+name)
	}
	return uploadLocally(buffer.Bytes(), bucket, name)
}

func uploadToS3(data []byte, contentType, key string) (string, error) {
	bucketName := os.Getenv("AWS_S3_BUCKET")
	if bucketName == "" {
		return "", fmt.Errorf("S3 bucket name not configured")
	}

	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, os.Getenv("AWS_REGION"), key), nil
}

func uploadLocally(data []byte, bucket, name string) (string, error) {
	folderPath := filepath.Join(uploadDir, bucket)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create folder directory: %v", err)
	}

	if err := os.WriteFile(filepath.Join(folderPath, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", baseURL, bucket, name), nil
}

// DeleteImage removes an object previously returned by UploadImage.
// URLs that do not belong to this storage are ignored.
func DeleteImage(imageURL string) error {
	if useS3 {
		return deleteFromS3(imageURL)
	}
	return deleteLocally(imageURL)
}

func deleteFromS3(fileURL string) error {
	if s3Client == nil {
		return fmt.Errorf("S3 client not initialized")
	}

	bucketName := os.Getenv("AWS_S3_BUCKET")
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", bucketName, os.Getenv("AWS_REGION"))
	if !strings.HasPrefix(fileURL, prefix) {
		return nil
	}

	_, err := s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(strings.TrimPrefix(fileURL, prefix)),
	})
	return err
}

func deleteLocally(imageURL string) error {
	prefix := baseURL + "/uploads/"
	if !strings.HasPrefix(imageURL, prefix) {
		return nil
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(imageURL, prefix)))
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return nil
	}
	err := os.Remove(filepath.Join(uploadDir, rel))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsUsingS3 returns true if S3 storage is being used
func IsUsingS3() bool {
	return useS3
}
