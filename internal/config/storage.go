// Package config 提供存储后端配置定义
package config

import (
	"github.com/haierkeys/dev-toolbox-service/pkg/storage"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage/aliyun_oss"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage/aws_s3"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage/cloudflare_r2"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage/local_fs"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage/minio"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage/webdav"
)

// StorageConfig Storage configuration
// StorageConfig 存储配置
type StorageConfig struct {
	// Type selects the active backend for generated output files
	// Type 选择生成文件使用的存储后端
	Type storage.Type `yaml:"type" default:"localfs"`

	// AccessUrlPrefix is the public URL prefix of the bucket for non-local backends
	// Downloads redirect to prefix + file key when set
	// AccessUrlPrefix 云存储的公开访问前缀, 配置后下载接口重定向到 前缀+文件键
	AccessUrlPrefix string `yaml:"access-url-prefix"`

	LocalFS      local_fs.Config      `yaml:"local-fs"`
	AliyunOSS    aliyun_oss.Config    `yaml:"aliyun-oss"`
	AwsS3        aws_s3.Config        `yaml:"aws-s3"`
	CloudflareR2 cloudflare_r2.Config `yaml:"cloudflare-r2"`
	MinIO        minio.Config         `yaml:"minio"`
	WebDAV       webdav.Config        `yaml:"webdav"`
}

// Unified maps the active provider block onto the dispatcher configuration
// Unified 将选中的后端配置映射为统一存储配置
func (s *StorageConfig) Unified() *storage.Config {
	switch s.Type {
	case storage.LOCAL:
		return &storage.Config{
			Type:           storage.LOCAL,
			IsEnabled:      s.LocalFS.IsEnabled,
			IsUserEnabled:  s.LocalFS.IsUserEnabled,
			HttpfsIsEnable: s.LocalFS.HttpfsIsEnable,
			SavePath:       s.LocalFS.SavePath,
		}
	case storage.OSS:
		return &storage.Config{
			Type:            storage.OSS,
			IsEnabled:       s.AliyunOSS.IsEnabled,
			IsUserEnabled:   s.AliyunOSS.IsUserEnabled,
			Endpoint:        s.AliyunOSS.Endpoint,
			BucketName:      s.AliyunOSS.BucketName,
			AccessKeyID:     s.AliyunOSS.AccessKeyID,
			AccessKeySecret: s.AliyunOSS.AccessKeySecret,
			CustomPath:      s.AliyunOSS.CustomPath,
		}
	case storage.S3:
		return &storage.Config{
			Type:            storage.S3,
			IsEnabled:       s.AwsS3.IsEnabled,
			IsUserEnabled:   s.AwsS3.IsUserEnabled,
			Region:          s.AwsS3.Region,
			BucketName:      s.AwsS3.BucketName,
			AccessKeyID:     s.AwsS3.AccessKeyID,
			AccessKeySecret: s.AwsS3.AccessKeySecret,
			CustomPath:      s.AwsS3.CustomPath,
		}
	case storage.R2:
		return &storage.Config{
			Type:            storage.R2,
			IsEnabled:       s.CloudflareR2.IsEnabled,
			IsUserEnabled:   s.CloudflareR2.IsUserEnabled,
			AccountID:       s.CloudflareR2.AccountID,
			BucketName:      s.CloudflareR2.BucketName,
			AccessKeyID:     s.CloudflareR2.AccessKeyID,
			AccessKeySecret: s.CloudflareR2.AccessKeySecret,
			CustomPath:      s.CloudflareR2.CustomPath,
		}
	case storage.MinIO:
		return &storage.Config{
			Type:            storage.MinIO,
			IsEnabled:       s.MinIO.IsEnabled,
			IsUserEnabled:   s.MinIO.IsUserEnabled,
			Endpoint:        s.MinIO.Endpoint,
			Region:          s.MinIO.Region,
			BucketName:      s.MinIO.BucketName,
			AccessKeyID:     s.MinIO.AccessKeyID,
			AccessKeySecret: s.MinIO.AccessKeySecret,
			CustomPath:      s.MinIO.CustomPath,
		}
	case storage.WebDAV:
		return &storage.Config{
			Type:          storage.WebDAV,
			IsEnabled:     s.WebDAV.IsEnabled,
			IsUserEnabled: s.WebDAV.IsUserEnabled,
			Endpoint:      s.WebDAV.Endpoint,
			Path:          s.WebDAV.Path,
			User:          s.WebDAV.User,
			Password:      s.WebDAV.Password,
			CustomPath:    s.WebDAV.CustomPath,
		}
	}
	return nil
}
