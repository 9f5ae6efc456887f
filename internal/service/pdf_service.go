// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// 水印位置白名单
var pdfPositions = map[string]bool{"c": true, "tl": true, "tr": true, "bl": true, "br": true}

// 水印颜色格式 #RGB 或 #RRGGBB
var pdfColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// PdfUpload 上传的 PDF 文件
type PdfUpload struct {
	FileName string
	Content  []byte
}

// PdfService PDF 页面操作服务接口
// pdfcpu 以文件为单位工作, 上传内容经临时目录中转
type PdfService interface {
	// Merge 合并多个 PDF, 按上传顺序
	Merge(ctx context.Context, uid int64, files []PdfUpload) (*dto.PdfResultDTO, error)

	// ExtractPages 提取指定页到新文件
	ExtractPages(ctx context.Context, uid int64, file PdfUpload, rangeSpec string) (*dto.PdfResultDTO, error)

	// Watermark 添加文字水印
	Watermark(ctx context.Context, uid int64, file PdfUpload, params *dto.PdfWatermarkRequest) (*dto.PdfResultDTO, error)

	// Encrypt AES-256 加密
	Encrypt(ctx context.Context, uid int64, file PdfUpload, params *dto.PdfEncryptRequest) (*dto.PdfResultDTO, error)

	// Info 读取文档信息
	Info(ctx context.Context, uid int64, file PdfUpload) (*dto.PdfInfoDTO, error)
}

// pdfService 实现 PdfService 接口
type pdfService struct {
	historyService HistoryService
	outputService  OutputService
	config         *ServiceConfig
}

// NewPdfService 创建 PdfService 实例
func NewPdfService(historySvc HistoryService, outputSvc OutputService, config *ServiceConfig) PdfService {
	return &pdfService{
		historyService: historySvc,
		outputService:  outputSvc,
		config:         config,
	}
}

// parsePageRanges 解析页码范围
// 逗号分隔的 a 和 a-b, 越界裁剪到文档页数, 去重升序
func parsePageRanges(spec string, pageCount int) ([]int, error) {
	clamp := func(n int) int {
		if n < 1 {
			return 1
		}
		if n > pageCount {
			return pageCount
		}
		return n
	}

	selected := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty page range part in %q", spec)
		}

		if idx := strings.Index(part, "-"); idx >= 0 {
			from, err := strconv.Atoi(strings.TrimSpace(part[:idx]))
			if err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
			to, err := strconv.Atoi(strings.TrimSpace(part[idx+1:]))
			if err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
			if from > to {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
			for p := clamp(from); p <= clamp(to); p++ {
				selected[p] = true
			}
		} else {
			p, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid page number %q", part)
			}
			selected[clamp(p)] = true
		}
	}

	pages := make([]int, 0, len(selected))
	for p := range selected {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// checkUploads 校验上传大小
func (s *pdfService) checkUploads(files ...PdfUpload) error {
	for _, f := range files {
		if int64(len(f.Content)) > s.config.Tools.PdfMaxUploadSize {
			return code.ErrorUploadTooLarge
		}
		if len(f.Content) == 0 {
			return code.ErrorInvalidParams.WithDetails("uploaded file is empty")
		}
	}
	return nil
}

// stageUploads 把上传内容写入临时目录, 返回目录和各文件路径
func stageUploads(files []PdfUpload) (string, []string, error) {
	dir, err := os.MkdirTemp("", "pdf-tools-*")
	if err != nil {
		return "", nil, err
	}

	paths := make([]string, 0, len(files))
	for i, f := range files {
		p := filepath.Join(dir, fmt.Sprintf("in-%d-%s", i, sanitizeFileName(f.FileName)))
		if err := os.WriteFile(p, f.Content, 0600); err != nil {
			os.RemoveAll(dir)
			return "", nil, err
		}
		paths = append(paths, p)
	}
	return dir, paths, nil
}

// storeOutput 读取产物临时文件并保存
func (s *pdfService) storeOutput(ctx context.Context, uid int64, outPath string, outName string) (*dto.OutputFileDTO, error) {
	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, code.ErrorFileReadFailed.WithDetails(err.Error())
	}
	return s.outputService.Store(ctx, uid, ToolPdf, outName, data, "application/pdf")
}

// Merge 合并多个 PDF, 按上传顺序
func (s *pdfService) Merge(ctx context.Context, uid int64, files []PdfUpload) (*dto.PdfResultDTO, error) {
	if len(files) < 2 {
		return nil, code.ErrorInvalidParams.WithDetails("merge needs at least 2 files")
	}
	if err := s.checkUploads(files...); err != nil {
		return nil, err
	}

	dir, paths, err := stageUploads(files)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}
	defer os.RemoveAll(dir)

	outName := fmt.Sprintf("merged-%d-files.pdf", len(files))
	outPath := filepath.Join(dir, outName)
	if err := api.MergeCreateFile(paths, outPath, false, model.NewDefaultConfiguration()); err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	pageCount, err := api.PageCountFile(outPath)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	file, err := s.storeOutput(ctx, uid, outPath, outName)
	if err != nil {
		return nil, err
	}

	s.historyService.Record(ctx, uid, ToolPdf,
		fmt.Sprintf("Merged %d PDFs into %d pages", len(files), pageCount),
		map[string]any{"mode": "merge", "files": len(files), "pageCount": pageCount})

	return &dto.PdfResultDTO{File: file, PageCount: pageCount}, nil
}

// ExtractPages 提取指定页到新文件
func (s *pdfService) ExtractPages(ctx context.Context, uid int64, file PdfUpload, rangeSpec string) (*dto.PdfResultDTO, error) {
	if err := s.checkUploads(file); err != nil {
		return nil, err
	}

	dir, paths, err := stageUploads([]PdfUpload{file})
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}
	defer os.RemoveAll(dir)

	pageCount, err := api.PageCountFile(paths[0])
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	pages, err := parsePageRanges(rangeSpec, pageCount)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	selected := make([]string, 0, len(pages))
	for _, p := range pages {
		selected = append(selected, strconv.Itoa(p))
	}

	outName := "extracted-" + sanitizeFileName(file.FileName)
	outPath := filepath.Join(dir, outName)
	if err := api.TrimFile(paths[0], outPath, selected, model.NewDefaultConfiguration()); err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	stored, err := s.storeOutput(ctx, uid, outPath, outName)
	if err != nil {
		return nil, err
	}

	s.historyService.Record(ctx, uid, ToolPdf,
		fmt.Sprintf("Extracted %d pages from %s", len(pages), file.FileName),
		map[string]any{"mode": "extract", "fileName": file.FileName, "ranges": rangeSpec, "pages": len(pages)})

	return &dto.PdfResultDTO{File: stored, PageCount: len(pages), Pages: pages}, nil
}

// Watermark 添加文字水印
func (s *pdfService) Watermark(ctx context.Context, uid int64, file PdfUpload, params *dto.PdfWatermarkRequest) (*dto.PdfResultDTO, error) {
	if err := s.checkUploads(file); err != nil {
		return nil, err
	}

	position := params.Position
	if position == "" {
		position = "c"
	}
	if !pdfPositions[position] {
		return nil, code.ErrorInvalidParams.WithDetails("position must be c, tl, tr, bl or br")
	}

	rotation := params.Rotation
	if rotation == 0 {
		rotation = 45
	}
	opacity := params.Opacity
	if opacity == 0 {
		opacity = 0.3
	}
	if opacity < 0 || opacity > 1 {
		return nil, code.ErrorInvalidParams.WithDetails("opacity must be between 0 and 1")
	}
	fontSize := params.FontSize
	if fontSize == 0 {
		fontSize = 48
	}
	color := params.Color
	if color == "" {
		color = "#808080"
	}
	if !pdfColorPattern.MatchString(color) {
		return nil, code.ErrorInvalidParams.WithDetails("color must be a hex RGB value like #808080")
	}

	dir, paths, err := stageUploads([]PdfUpload{file})
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}
	defer os.RemoveAll(dir)

	desc := fmt.Sprintf("fontname:Helvetica, points:%d, rotation:%v, opacity:%v, position:%s, fillcolor:%s",
		fontSize, rotation, opacity, position, color)
	wm, err := api.TextWatermark(params.Text, desc, true, false, types.POINTS)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	outName := "watermarked-" + sanitizeFileName(file.FileName)
	outPath := filepath.Join(dir, outName)
	if err := api.AddWatermarksFile(paths[0], outPath, nil, wm, model.NewDefaultConfiguration()); err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	pageCount, err := api.PageCountFile(outPath)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	stored, err := s.storeOutput(ctx, uid, outPath, outName)
	if err != nil {
		return nil, err
	}

	s.historyService.Record(ctx, uid, ToolPdf,
		fmt.Sprintf("Watermarked %s", file.FileName),
		map[string]any{"mode": "watermark", "fileName": file.FileName, "text": previewText(params.Text)})

	return &dto.PdfResultDTO{File: stored, PageCount: pageCount}, nil
}

// Encrypt AES-256 加密
func (s *pdfService) Encrypt(ctx context.Context, uid int64, file PdfUpload, params *dto.PdfEncryptRequest) (*dto.PdfResultDTO, error) {
	if err := s.checkUploads(file); err != nil {
		return nil, err
	}

	ownerPassword := params.OwnerPassword
	if ownerPassword == "" {
		ownerPassword = params.UserPassword
	}

	dir, paths, err := stageUploads([]PdfUpload{file})
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}
	defer os.RemoveAll(dir)

	pageCount, err := api.PageCountFile(paths[0])
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	outName := "encrypted-" + sanitizeFileName(file.FileName)
	outPath := filepath.Join(dir, outName)
	conf := model.NewAESConfiguration(params.UserPassword, ownerPassword, 256)
	if err := api.EncryptFile(paths[0], outPath, conf); err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	stored, err := s.storeOutput(ctx, uid, outPath, outName)
	if err != nil {
		return nil, err
	}

	s.historyService.Record(ctx, uid, ToolPdf,
		fmt.Sprintf("Encrypted %s with AES-256", file.FileName),
		map[string]any{"mode": "encrypt", "fileName": file.FileName})

	return &dto.PdfResultDTO{File: stored, PageCount: pageCount}, nil
}

// Info 读取文档信息
func (s *pdfService) Info(ctx context.Context, uid int64, file PdfUpload) (*dto.PdfInfoDTO, error) {
	if err := s.checkUploads(file); err != nil {
		return nil, err
	}

	dir, paths, err := stageUploads([]PdfUpload{file})
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}
	defer os.RemoveAll(dir)

	pdfCtx, err := api.ReadContextFile(paths[0])
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	result := &dto.PdfInfoDTO{
		FileName:  file.FileName,
		PageCount: pdfCtx.PageCount,
		Encrypted: pdfCtx.Encrypt != nil,
		Size:      int64(len(file.Content)),
	}
	if pdfCtx.HeaderVersion != nil {
		result.Version = pdfCtx.HeaderVersion.String()
	}

	s.historyService.Record(ctx, uid, ToolPdf,
		fmt.Sprintf("Inspected %s with %d pages", file.FileName, result.PageCount),
		map[string]any{"mode": "info", "fileName": file.FileName, "pageCount": result.PageCount})

	return result, nil
}

// 确保 pdfService 实现了 PdfService 接口
var _ PdfService = (*pdfService)(nil)
