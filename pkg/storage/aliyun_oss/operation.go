package aliyun_oss

import (
	"bytes"
	"io"
	"time"

	"github.com/haierkeys/dev-toolbox-service/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

// SendFile uploads a stream to the bucket
// SendFile 上传数据流到存储桶
func (p *OSS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {

	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return "", errors.Wrap(err, "aliyun_oss")
		}
	}

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	options := []oss.Option{oss.ContentType(cType)}
	if !modTime.IsZero() {
		options = append(options, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}

	if err := p.Bucket.PutObject(fileKey, file, options...); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}

	return fileurl.PathSuffixCheckAdd(p.Config.BucketName, "/") + fileKey, nil
}

// SendContent uploads binary content to the bucket
// SendContent 上传二进制内容到存储桶
func (p *OSS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {

	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return "", errors.Wrap(err, "aliyun_oss")
		}
	}

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	var options []oss.Option
	if !modTime.IsZero() {
		options = append(options, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}

	if err := p.Bucket.PutObject(fileKey, bytes.NewReader(content), options...); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}

	return fileurl.PathSuffixCheckAdd(p.Config.BucketName, "/") + fileKey, nil
}
