package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"TandaXN/config"
)

// HashPassword 盐值哈希，输出 64 位十六进制字符串。
// 全局盐由 PASSWORD_HASH_SALT 提供，换盐会使所有已存哈希失效。
func HashPassword(password string) string {
	h := sha256.Sum256([]byte(config.Cfg.PasswordHashSalt + ":" + password))
	return hex.EncodeToString(h[:])
}
