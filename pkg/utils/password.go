package utils

import "golang.org/x/crypto/bcrypt"

// MaskedPassword 列表类接口中代替真实密码/哈希输出
const MaskedPassword = "********"

// MaxPasswordBytes bcrypt 只接受不超过 72 字节的密码
const MaxPasswordBytes = 72

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword 恒定时间比较
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
