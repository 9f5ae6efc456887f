package fileurl

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GetDatePath gets date save path
// GetDatePath 获取日期保存路径
func GetDatePath(timeFormat string) string {
	now := time.Now()
	if timeFormat == "" {
		timeFormat = "200601/02"
	}
	datePath := PathSuffixCheckAdd(now.Format(timeFormat), "/")
	return datePath
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否不存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst) // os.Stat gets file info
	// os.Stat获取文件信息
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates path
// CreatePath 创建路径
func CreatePath(dst string, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	err := os.MkdirAll(dir, perm)
	if err != nil {
		return err
	}
	return nil
}

// PathSuffixCheckAdd checks path suffix, adds it if not exists
// PathSuffixCheckAdd 检查路径后缀，如果没有则添加
func PathSuffixCheckAdd(path string, suffix string) string {
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}

// CopyFile copies temporary file to target save path
// CopyFile 将临时文件复制到目标保存路径
// srcPath: absolute or relative path of source file
// srcPath: 源文件的绝对或相对路径
// destPath: full path of target save file (including file name)
// destPath: 目标保存文件的完整路径（包含文件名）
func CopyFile(srcPath, destPath string) error {
	// 1. Open source file
	// 1. 打开源文件
	sourceFile, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	// 2. Ensure target directory exists
	// 2. 确保目标目录存在
	// Recursively create directory, permissions set to 0754
	// 递归创建目录，权限设置为 0754
	if err := os.MkdirAll(filepath.Dir(destPath), 0754); err != nil {
		return err
	}

	// 3. Create target file
	// 3. 创建目标文件
	destFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer destFile.Close()

	// 4. Perform copy operation
	// 4. 执行复制操作
	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return nil
}

// MoveFile moves a file, falling back to copy+delete when rename crosses devices
// MoveFile 移动文件, rename 跨设备失败时降级为复制后删除
func MoveFile(srcPath, destPath string) error {
	if err := os.Rename(srcPath, destPath); err == nil {
		return nil
	}

	if err := CopyFile(srcPath, destPath); err != nil {
		return err
	}
	return os.Remove(srcPath)
}
