// Package service 实现业务逻辑层
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
)

// Base64Service Base64 编解码服务接口
type Base64Service interface {
	// EncodeText 编码文本
	EncodeText(ctx context.Context, uid int64, params *dto.Base64EncodeRequest) (*dto.Base64EncodeDTO, error)

	// DecodeText 解码文本, 非法输入返回解码器原始错误
	DecodeText(ctx context.Context, uid int64, params *dto.Base64DecodeRequest) (*dto.Base64DecodeDTO, error)

	// EncodeFile 编码上传文件的原始字节
	EncodeFile(ctx context.Context, uid int64, fileName string, content []byte, contentType string) (*dto.Base64FileEncodeDTO, error)

	// DecodeToFile 解码并保存为产物文件
	DecodeToFile(ctx context.Context, uid int64, params *dto.Base64DecodeToFileRequest) (*dto.OutputFileDTO, error)
}

// base64Service 实现 Base64Service 接口
type base64Service struct {
	historyService HistoryService
	outputService  OutputService
}

// NewBase64Service 创建 Base64Service 实例
func NewBase64Service(historySvc HistoryService, outputSvc OutputService) Base64Service {
	return &base64Service{
		historyService: historySvc,
		outputService:  outputSvc,
	}
}

// decodeBase64 严格解码, 先按标准字符表再按 URL 安全字符表
func decodeBase64(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if data, err := base64.StdEncoding.DecodeString(encoded); err == nil {
		return data, nil
	}
	return base64.URLEncoding.DecodeString(encoded)
}

// EncodeText 编码文本
func (s *base64Service) EncodeText(ctx context.Context, uid int64, params *dto.Base64EncodeRequest) (*dto.Base64EncodeDTO, error) {
	var encoded string
	if params.URLSafe {
		encoded = base64.URLEncoding.EncodeToString([]byte(params.Text))
	} else {
		encoded = base64.StdEncoding.EncodeToString([]byte(params.Text))
	}

	result := &dto.Base64EncodeDTO{
		Encoded: encoded,
		URLSafe: params.URLSafe,
		Size:    len(params.Text),
	}

	s.historyService.Record(ctx, uid, ToolBase64,
		fmt.Sprintf("Encoded %d bytes to Base64", result.Size),
		map[string]any{"mode": "encode", "text": previewText(params.Text), "urlSafe": params.URLSafe})

	return result, nil
}

// DecodeText 解码文本, 非法输入返回解码器原始错误
func (s *base64Service) DecodeText(ctx context.Context, uid int64, params *dto.Base64DecodeRequest) (*dto.Base64DecodeDTO, error) {
	data, err := decodeBase64(params.Encoded)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	result := &dto.Base64DecodeDTO{
		Text: string(data),
		Size: len(data),
	}

	s.historyService.Record(ctx, uid, ToolBase64,
		fmt.Sprintf("Decoded Base64 to %d bytes", result.Size),
		map[string]any{"mode": "decode", "encoded": previewText(params.Encoded)})

	return result, nil
}

// EncodeFile 编码上传文件的原始字节
func (s *base64Service) EncodeFile(ctx context.Context, uid int64, fileName string, content []byte, contentType string) (*dto.Base64FileEncodeDTO, error) {
	result := &dto.Base64FileEncodeDTO{
		FileName:    fileName,
		Size:        int64(len(content)),
		ContentType: contentType,
		Encoded:     base64.StdEncoding.EncodeToString(content),
	}

	s.historyService.Record(ctx, uid, ToolBase64,
		fmt.Sprintf("Encoded file %s to Base64", fileName),
		map[string]any{"mode": "encode-file", "fileName": fileName, "size": result.Size})

	return result, nil
}

// DecodeToFile 解码并保存为产物文件
func (s *base64Service) DecodeToFile(ctx context.Context, uid int64, params *dto.Base64DecodeToFileRequest) (*dto.OutputFileDTO, error) {
	data, err := decodeBase64(params.Encoded)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	fileName := params.FileName
	if fileName == "" {
		fileName = "decoded.bin"
	}

	file, err := s.outputService.Store(ctx, uid, ToolBase64, fileName, data, "application/octet-stream")
	if err != nil {
		return nil, err
	}

	s.historyService.Record(ctx, uid, ToolBase64,
		fmt.Sprintf("Decoded Base64 into file %s", fileName),
		map[string]any{"mode": "decode-file", "fileName": fileName, "size": file.Size})

	return file, nil
}

// 确保 base64Service 实现了 Base64Service 接口
var _ Base64Service = (*base64Service)(nil)
