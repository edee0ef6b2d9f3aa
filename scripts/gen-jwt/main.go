// Gen-jwt prints a host token for GET /api/host/summary.
// Run from project root: go run ./scripts/gen-jwt [-ttl 72h]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	ttl := flag.Duration("ttl", 7*24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   "host",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Sign failed:", err)
		os.Exit(1)
	}
	fmt.Println(signed)
}
