//go:build ignore

// This script generates the admin secrets for the order service.
// Run with: go run scripts/generate_keys.go [admin-password]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
	os.Exit(1)
}

func main() {
	fmt.Println("=== College Order Service Key Generator ===")
	fmt.Println()

	// 32 bytes = 256 bits
	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fail("JWT secret", err)
	}

	apiKey, err := generateSecureKey(24)
	if err != nil {
		fail("API key", err)
	}

	password := ""
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		password, err = generateSecureKey(12)
		if err != nil {
			fail("admin password", err)
		}
		fmt.Printf("Generated admin password: %s\n\n", password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fail("admin password hash", err)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# Admin login")
	fmt.Println("ADMIN_USERNAME=admin")
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Println()
	fmt.Println("# Upstream proxy API key (used when AUTH_ENABLED=true)")
	fmt.Printf("API_KEYS=%s\n", apiKey)
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Bcrypt hashes contain '$'; quote the value if your shell expands it")
}
