// Package service 实现业务逻辑层
package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ImageUpload 上传的图片文件
type ImageUpload struct {
	FileName string
	Content  []byte
}

// ImageService 图片处理服务接口
type ImageService interface {
	// Compress 压缩图片, 等比缩放到边界框内, 不放大
	Compress(ctx context.Context, uid int64, file ImageUpload, params *dto.ImageCompressRequest) (*dto.ImageCompressDTO, error)

	// Metadata 读取图片尺寸/格式/EXIF
	Metadata(ctx context.Context, uid int64, file ImageUpload) (*dto.ImageMetadataDTO, error)

	// StripMetadata 重编码去除 EXIF
	StripMetadata(ctx context.Context, uid int64, file ImageUpload) (*dto.ImageCompressDTO, error)
}

// imageService 实现 ImageService 接口
type imageService struct {
	historyService HistoryService
	outputService  OutputService
	config         *ServiceConfig
}

// NewImageService 创建 ImageService 实例
func NewImageService(historySvc HistoryService, outputSvc OutputService, config *ServiceConfig) ImageService {
	return &imageService{
		historyService: historySvc,
		outputService:  outputSvc,
		config:         config,
	}
}

// checkUpload 校验上传大小
func (s *imageService) checkUpload(file ImageUpload) error {
	if int64(len(file.Content)) > s.config.Tools.ImageMaxUploadSize {
		return code.ErrorUploadTooLarge
	}
	if len(file.Content) == 0 {
		return code.ErrorInvalidParams.WithDetails("uploaded file is empty")
	}
	return nil
}

// detectFormat 识别图片格式
func detectFormat(content []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	return format, nil
}

// outputFileName 替换扩展名并加前缀
func outputFileName(prefix string, name string, format string) string {
	base := sanitizeFileName(name)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	ext := ".png"
	if format == "jpeg" {
		ext = ".jpg"
	}
	return prefix + base + ext
}

// encodeImage 按目标格式编码
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format == "jpeg" {
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	} else {
		err = imaging.Encode(&buf, img, imaging.PNG)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Compress 压缩图片, 等比缩放到边界框内, 不放大
func (s *imageService) Compress(ctx context.Context, uid int64, file ImageUpload, params *dto.ImageCompressRequest) (*dto.ImageCompressDTO, error) {
	if err := s.checkUpload(file); err != nil {
		return nil, err
	}

	quality := params.Quality
	if quality == 0 {
		quality = 80
	}
	if quality < 1 || quality > 100 {
		return nil, code.ErrorInvalidParams.WithDetails("quality must be between 1 and 100")
	}

	srcFormat, err := detectFormat(file.Content)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	outFormat := params.Format
	if outFormat == "" {
		if srcFormat == "jpeg" {
			outFormat = "jpeg"
		} else {
			outFormat = "png"
		}
	}
	if outFormat != "jpeg" && outFormat != "png" {
		return nil, code.ErrorInvalidParams.WithDetails("format must be jpeg or png")
	}

	// EXIF 方向在解码时纠正, 重编码后不再携带方向标签
	img, err := imaging.Decode(bytes.NewReader(file.Content), imaging.AutoOrientation(true))
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	if params.MaxWidth > 0 || params.MaxHeight > 0 {
		maxW := params.MaxWidth
		maxH := params.MaxHeight
		bounds := img.Bounds()
		if maxW <= 0 {
			maxW = bounds.Dx()
		}
		if maxH <= 0 {
			maxH = bounds.Dy()
		}
		// Fit 只缩小不放大
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	compressed, err := encodeImage(img, outFormat, quality)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	outName := outputFileName("compressed-", file.FileName, outFormat)
	contentType := "image/png"
	if outFormat == "jpeg" {
		contentType = "image/jpeg"
	}
	stored, err := s.outputService.Store(ctx, uid, ToolImage, outName, compressed, contentType)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	result := &dto.ImageCompressDTO{
		File:           stored,
		OriginalSize:   int64(len(file.Content)),
		CompressedSize: int64(len(compressed)),
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		Format:         outFormat,
	}
	if result.OriginalSize > 0 {
		result.Ratio = float64(result.CompressedSize) / float64(result.OriginalSize)
	}

	s.historyService.Record(ctx, uid, ToolImage,
		fmt.Sprintf("Compressed %s from %d to %d bytes", file.FileName, result.OriginalSize, result.CompressedSize),
		map[string]any{"mode": "compress", "fileName": file.FileName, "originalSize": result.OriginalSize, "compressedSize": result.CompressedSize})

	return result, nil
}

// exifCollector 收集 EXIF 标签
type exifCollector struct {
	tags map[string]string
}

func (c *exifCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.tags[string(name)] = strings.Trim(tag.String(), `"`)
	return nil
}

// Metadata 读取图片尺寸/格式/EXIF
func (s *imageService) Metadata(ctx context.Context, uid int64, file ImageUpload) (*dto.ImageMetadataDTO, error) {
	if err := s.checkUpload(file); err != nil {
		return nil, err
	}

	config, format, err := image.DecodeConfig(bytes.NewReader(file.Content))
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	result := &dto.ImageMetadataDTO{
		FileName: file.FileName,
		Width:    config.Width,
		Height:   config.Height,
		Format:   format,
		Size:     int64(len(file.Content)),
		Exif:     map[string]string{},
	}

	// EXIF 只存在于 jpeg/tiff, 解析失败视为无标签
	if x, err := exif.Decode(bytes.NewReader(file.Content)); err == nil {
		collector := &exifCollector{tags: result.Exif}
		_ = x.Walk(collector)
	}

	s.historyService.Record(ctx, uid, ToolImage,
		fmt.Sprintf("Read metadata of %s %dx%d", file.FileName, result.Width, result.Height),
		map[string]any{"mode": "metadata", "fileName": file.FileName, "format": format, "exifTags": len(result.Exif)})

	return result, nil
}

// StripMetadata 重编码去除 EXIF
func (s *imageService) StripMetadata(ctx context.Context, uid int64, file ImageUpload) (*dto.ImageCompressDTO, error) {
	if err := s.checkUpload(file); err != nil {
		return nil, err
	}

	srcFormat, err := detectFormat(file.Content)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}
	outFormat := "png"
	if srcFormat == "jpeg" {
		outFormat = "jpeg"
	}

	img, err := imaging.Decode(bytes.NewReader(file.Content), imaging.AutoOrientation(true))
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	stripped, err := encodeImage(img, outFormat, 95)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	outName := outputFileName("stripped-", file.FileName, outFormat)
	contentType := "image/png"
	if outFormat == "jpeg" {
		contentType = "image/jpeg"
	}
	stored, err := s.outputService.Store(ctx, uid, ToolImage, outName, stripped, contentType)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	result := &dto.ImageCompressDTO{
		File:           stored,
		OriginalSize:   int64(len(file.Content)),
		CompressedSize: int64(len(stripped)),
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		Format:         outFormat,
	}
	if result.OriginalSize > 0 {
		result.Ratio = float64(result.CompressedSize) / float64(result.OriginalSize)
	}

	s.historyService.Record(ctx, uid, ToolImage,
		fmt.Sprintf("Stripped metadata from %s", file.FileName),
		map[string]any{"mode": "strip", "fileName": file.FileName})

	return result, nil
}

// 确保 imageService 实现了 ImageService 接口
var _ ImageService = (*imageService)(nil)
