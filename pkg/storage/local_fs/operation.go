package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// SendFile writes a stream to the local save path
// SendFile 将数据流写入本地保存目录
func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {

	dstFileKey := p.getSavePath() + fileKey

	if err := os.MkdirAll(filepath.Dir(dstFileKey), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dstFileKey)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	_, err = io.Copy(out, file)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dstFileKey, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	return dstFileKey, nil
}

// SendContent writes binary content to the local save path
// SendContent 将二进制内容写入本地保存目录
func (p *LocalFS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {

	dstFileKey := p.getSavePath() + fileKey

	if err := os.MkdirAll(filepath.Dir(dstFileKey), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if err := os.WriteFile(dstFileKey, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dstFileKey, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	return dstFileKey, nil
}
