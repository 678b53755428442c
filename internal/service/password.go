package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher 密码哈希
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) error
}

// BcryptHasher bcrypt 实现
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher cost 为 0 时使用默认强度
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Compare(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}
