// Package validator provides the gin binding validator used by the API layer
// Package validator 提供 API 层使用的 gin 绑定验证器
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

// base58Alphabet Bitcoin 风格 Base58 字母表（Solana 地址使用）
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// CustomValidator implements binding.StructValidator with lazy initialization
// CustomValidator 实现 binding.StructValidator，延迟初始化
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

var _ binding.StructValidator = (*CustomValidator)(nil)

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 校验结构体（指针自动解引用）
func (v *CustomValidator) ValidateStruct(obj any) error {
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		v.lazyInit()
		return v.validate.Struct(obj)
	}
	return nil
}

// Engine 返回底层 validator 实例
func (v *CustomValidator) Engine() any {
	v.lazyInit()
	return v.validate
}

func (v *CustomValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
		registerCustomOn(v.validate)
	})
}

// RegisterCustom registers the custom tags on the active gin binding validator
// RegisterCustom 将自定义标签注册到当前 gin 绑定验证器上
func RegisterCustom() {
	if validate, ok := binding.Validator.Engine().(*val.Validate); ok {
		registerCustomOn(validate)
	}
}

func registerCustomOn(validate *val.Validate) {
	// base58: 仅允许 Base58 字母表字符（地址模式校验）
	_ = validate.RegisterValidation("base58", func(fl val.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		for _, r := range s {
			if !strings.ContainsRune(base58Alphabet, r) {
				return false
			}
		}
		return true
	})

	// toolid: 工具 ID 形如 base64 / jwt-debugger，小写字母与连字符
	_ = validate.RegisterValidation("toolid", func(fl val.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for _, r := range s {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				return false
			}
		}
		return true
	})
}
