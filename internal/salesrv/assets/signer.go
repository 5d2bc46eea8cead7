package assets

import (
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
)

// URLSigner produces time-limited URLs for direct-to-storage uploads and
// downloads. The API server never proxies file bytes.
type URLSigner interface {
	SignUpload(key, contentType string, validity time.Duration) (string, apperrors.Error)
	SignDownload(key string, validity time.Duration) (string, apperrors.Error)
}

type s3Signer struct {
	bucket string
	svc    *s3.S3
}

func (s *s3Signer) SignUpload(key, contentType string, validity time.Duration) (string, apperrors.Error) {
	req, _ := s.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	url, err := req.Presign(validity)
	if err != nil {
		return "", ErrSignURL.Err(err)
	}
	return url, nil
}

func (s *s3Signer) SignDownload(key string, validity time.Duration) (string, apperrors.Error) {
	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(validity)
	if err != nil {
		return "", ErrSignURL.Err(err)
	}
	return url, nil
}

var (
	signerOnce sync.Once
	signer     URLSigner
	signerErr  apperrors.Error
)

func getSigner() (URLSigner, apperrors.Error) {
	signerOnce.Do(func() {
		ac := config.Config().Assets
		if ac.Bucket == "" {
			signerErr = ErrNoStorage
			return
		}
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(ac.Region),
		})
		if err != nil {
			signerErr = ErrNoStorage.Err(err)
			return
		}
		signer = &s3Signer{bucket: ac.Bucket, svc: s3.New(sess)}
	})
	return signer, signerErr
}

// SetURLSigner replaces the signer. Tests use this to avoid AWS calls.
func SetURLSigner(s URLSigner) {
	signerOnce.Do(func() {})
	signer = s
	signerErr = nil
}
