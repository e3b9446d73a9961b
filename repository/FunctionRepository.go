package repository

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateQuoteNumber produces a human-facing quote reference like
// "QT-48213". Uniqueness is enforced by the quotes table, not here.
func GenerateQuoteNumber() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	number := rng.Intn(90000) + 10000

	return fmt.Sprintf("QT-%d", number)
}
