package utils

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes bcrypt 只接受 72 字节以内的输入
const MaxPasswordBytes = 72

var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashPassword bcrypt（每次随机盐，结果自带 cost 与 salt）；超过 72 字节返回 ErrPasswordTooLong
func HashPassword(pw string) (string, error) {
	if len(pw) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 哈希格式不合法时返回 false，不会 panic
func CheckPassword(pw, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
