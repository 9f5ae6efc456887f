package app

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    1 * time.Hour,
		Issuer:    "test-issuer",
	}
	tm := NewTokenManager(cfg)

	// 测试数据
	uid := int64(1001)
	nickname := "tester"
	ip := "127.0.0.1"

	// 1. 测试生成和解析
	token, err := tm.Generate(uid, nickname, ip)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if claims.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, claims.UID)
	}
	if claims.Nickname != nickname {
		t.Errorf("Expected nickname %q, got %q", nickname, claims.Nickname)
	}
	if claims.IP != ip {
		t.Errorf("Expected ip %q, got %q", ip, claims.IP)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("Expected issuer %q, got %q", "test-issuer", claims.Issuer)
	}

	// 2. Validate 对合法 Token 应该通过
	if err := tm.Validate(token); err != nil {
		t.Errorf("Validate failed for valid token: %v", err)
	}
}

func TestTokenManager_Defaults(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "user-secret"})

	token, err := tm.Generate(1, "n", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 未配置时使用默认签发者
	if claims.Issuer != DefaultTokenIssuer {
		t.Errorf("Expected default issuer %q, got %q", DefaultTokenIssuer, claims.Issuer)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    -1 * time.Hour, // 生成即过期
	}
	tm := NewTokenManager(cfg)

	token, err := tm.Generate(1001, "tester", "127.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tm.Parse(token); err == nil {
		t.Error("Expected error for expired token, got nil")
	}
	if err := tm.Validate(token); err == nil {
		t.Error("Expected Validate to fail for expired token")
	}
}

func TestTokenManager_WrongKey(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "user-secret", Expiry: time.Hour})

	token, err := tm.Generate(1001, "tester", "127.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// 正确密钥可以解析
	if _, err := ParseTokenWithKey(token, "user-secret"); err != nil {
		t.Errorf("ParseTokenWithKey with correct key failed: %v", err)
	}

	// 错误密钥必须拒绝
	if _, err := ParseTokenWithKey(token, "other-secret"); err == nil {
		t.Error("Expected error for wrong secret key, got nil")
	}
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "user-secret"})

	if _, err := tm.Parse("not-a-jwt"); err == nil {
		t.Error("Expected error for malformed token, got nil")
	}
}
