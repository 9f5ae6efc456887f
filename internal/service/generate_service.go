// Package service 实现业务逻辑层
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/brianvoe/gofakeit/v7"
	qrcode "github.com/skip2/go-qrcode"
)

// 密码字符集
const (
	passwordUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordLowercase = "abcdefghijklmnopqrstuvwxyz"
	passwordDigits    = "0123456789"
	passwordSymbols   = "!@#$%^&*()-_=+[]{};:,.<>?/~"
	passwordAmbiguous = "0O1lI|"
)

// 经典开头
const loremClassic = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."

// qrcodeLevels 纠错级别映射
var qrcodeLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// GenerateService 生成类工具服务接口
// 覆盖二维码 / 密码 / 占位文本
type GenerateService interface {
	// Qrcode 生成二维码 PNG
	Qrcode(ctx context.Context, uid int64, params *dto.QrcodeGenerateRequest) (*dto.QrcodeGenerateDTO, error)

	// Password 生成随机密码
	Password(ctx context.Context, uid int64, params *dto.PasswordGenerateRequest) (*dto.PasswordGenerateDTO, error)

	// Lorem 生成占位文本
	Lorem(ctx context.Context, uid int64, params *dto.LoremGenerateRequest) (*dto.LoremGenerateDTO, error)
}

// generateService 实现 GenerateService 接口
type generateService struct {
	historyService HistoryService
	outputService  OutputService
}

// NewGenerateService 创建 GenerateService 实例
func NewGenerateService(historySvc HistoryService, outputSvc OutputService) GenerateService {
	return &generateService{
		historyService: historySvc,
		outputService:  outputSvc,
	}
}

// Qrcode 生成二维码 PNG
func (s *generateService) Qrcode(ctx context.Context, uid int64, params *dto.QrcodeGenerateRequest) (*dto.QrcodeGenerateDTO, error) {
	if len([]rune(params.Content)) > 2048 {
		return nil, code.ErrorInvalidParams.WithDetails("content exceeds 2048 characters")
	}

	size := params.Size
	if size == 0 {
		size = 256
	}
	if size < 64 || size > 1024 {
		return nil, code.ErrorInvalidParams.WithDetails("size must be between 64 and 1024")
	}

	levelName := strings.ToUpper(params.Level)
	if levelName == "" {
		levelName = "M"
	}
	level, ok := qrcodeLevels[levelName]
	if !ok {
		return nil, code.ErrorInvalidParams.WithDetails("level must be L, M, Q or H")
	}

	png, err := qrcode.Encode(params.Content, level, size)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	result := &dto.QrcodeGenerateDTO{
		DataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		Size:    size,
		Level:   levelName,
	}

	if params.Store {
		fileName := fmt.Sprintf("qrcode-%d.png", time.Now().Unix())
		file, err := s.outputService.Store(ctx, uid, ToolQrcode, fileName, png, "image/png")
		if err != nil {
			return nil, err
		}
		result.File = file
	}

	s.historyService.Record(ctx, uid, ToolQrcode,
		fmt.Sprintf("Generated %dpx QR code", size),
		map[string]any{"content": previewText(params.Content), "size": size, "level": levelName})

	return result, nil
}

// randomIndex 用加密随机源取 [0, n) 的下标
func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// stripAmbiguous 从字符集中移除易混淆字符
func stripAmbiguous(charset string) string {
	var b strings.Builder
	for _, r := range charset {
		if !strings.ContainsRune(passwordAmbiguous, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// generatePassword 生成一个密码, 每个启用的字符类至少出现一次
func generatePassword(length int, classes []string, pool string) (string, error) {
	chars := make([]byte, 0, length)
	for _, class := range classes {
		idx, err := randomIndex(len(class))
		if err != nil {
			return "", err
		}
		chars = append(chars, class[idx])
	}
	for len(chars) < length {
		idx, err := randomIndex(len(pool))
		if err != nil {
			return "", err
		}
		chars = append(chars, pool[idx])
	}

	// Fisher-Yates 打乱, 避免类保证字符固定在开头
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars), nil
}

// passwordStrength 按熵位数评级
func passwordStrength(entropyBits float64) string {
	switch {
	case entropyBits < 40:
		return "weak"
	case entropyBits < 60:
		return "fair"
	case entropyBits < 80:
		return "strong"
	default:
		return "very_strong"
	}
}

// Password 生成随机密码
func (s *generateService) Password(ctx context.Context, uid int64, params *dto.PasswordGenerateRequest) (*dto.PasswordGenerateDTO, error) {
	length := params.Length
	if length == 0 {
		length = 16
	}
	if length < 4 || length > 128 {
		return nil, code.ErrorInvalidParams.WithDetails("length must be between 4 and 128")
	}

	count := params.Count
	if count <= 0 {
		count = 1
	}
	if count > 100 {
		count = 100
	}

	uppercase, lowercase, digits, symbols := params.Uppercase, params.Lowercase, params.Digits, params.Symbols
	if !uppercase && !lowercase && !digits && !symbols {
		uppercase, lowercase, digits = true, true, true
	}

	var classes []string
	appendClass := func(enabled bool, charset string) {
		if !enabled {
			return
		}
		if params.ExcludeAmbiguous {
			charset = stripAmbiguous(charset)
		}
		if charset != "" {
			classes = append(classes, charset)
		}
	}
	appendClass(uppercase, passwordUppercase)
	appendClass(lowercase, passwordLowercase)
	appendClass(digits, passwordDigits)
	appendClass(symbols, passwordSymbols)

	if len(classes) > length {
		return nil, code.ErrorInvalidParams.WithDetails("length is too short for the enabled character classes")
	}

	pool := strings.Join(classes, "")
	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		p, err := generatePassword(length, classes, pool)
		if err != nil {
			return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
		}
		passwords = append(passwords, p)
	}

	entropyBits := math.Log2(float64(len(pool))) * float64(length)
	result := &dto.PasswordGenerateDTO{
		Passwords:   passwords,
		Length:      length,
		EntropyBits: math.Round(entropyBits*10) / 10,
		Strength:    passwordStrength(entropyBits),
	}

	// 历史不存密码本身
	s.historyService.Record(ctx, uid, ToolPassword,
		fmt.Sprintf("Generated %d passwords of length %d", count, length),
		map[string]any{"length": length, "count": count, "strength": result.Strength})

	return result, nil
}

// Lorem 生成占位文本
func (s *generateService) Lorem(ctx context.Context, uid int64, params *dto.LoremGenerateRequest) (*dto.LoremGenerateDTO, error) {
	unit := params.Unit
	if unit == "" {
		unit = "paragraphs"
	}

	count := params.Count
	if count <= 0 {
		count = 1
	}

	var text string
	switch unit {
	case "paragraphs":
		if count > 50 {
			count = 50
		}
		text = gofakeit.LoremIpsumParagraph(count, 5, 12, "\n\n")
	case "sentences":
		if count > 100 {
			count = 100
		}
		sentences := make([]string, 0, count)
		for i := 0; i < count; i++ {
			sentences = append(sentences, gofakeit.LoremIpsumSentence(12))
		}
		text = strings.Join(sentences, " ")
	case "words":
		if count > 500 {
			count = 500
		}
		words := make([]string, 0, count)
		for i := 0; i < count; i++ {
			words = append(words, gofakeit.LoremIpsumWord())
		}
		text = strings.Join(words, " ")
	default:
		return nil, code.ErrorInvalidParams.WithDetails("unit must be paragraphs, sentences or words")
	}

	if params.ClassicStart {
		if unit == "words" {
			text = "lorem ipsum dolor sit amet " + text
		} else {
			text = loremClassic + " " + text
		}
	}

	result := &dto.LoremGenerateDTO{
		Text:  text,
		Unit:  unit,
		Count: count,
	}

	s.historyService.Record(ctx, uid, ToolLorem,
		fmt.Sprintf("Generated %d lorem %s", count, unit),
		map[string]any{"unit": unit, "count": count})

	return result, nil
}

// 确保 generateService 实现了 GenerateService 接口
var _ GenerateService = (*generateService)(nil)
