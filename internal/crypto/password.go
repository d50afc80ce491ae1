package crypto

import "golang.org/x/crypto/bcrypt"

// passwordHasher is the private bcrypt-backed implementation of
// [PasswordHasher].
type passwordHasher struct {
	cost int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given bcrypt cost
// factor. A cost outside the range bcrypt accepts falls back to
// bcrypt.DefaultCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &passwordHasher{cost: cost}
}

// Hash implements [PasswordHasher].
func (p *passwordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify implements [PasswordHasher]. The comparison is constant time.
func (p *passwordHasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
