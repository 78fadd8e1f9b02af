//go:build ignore

// Herramienta puntual: encripta un token con el codec del servicio, útil para
// sembrar fixtures o migrar tokens de otra instalación.
//
//	SOCIALPOST_INSTALLATION_SECRET=... go run tools/encrypt_token.go <plaintext_token>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dropDatabas3/socialpost/internal/security/secretbox"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run encrypt_token.go <plaintext_token>")
	}

	codec, err := secretbox.New(os.Getenv("SOCIALPOST_INSTALLATION_SECRET"))
	if err != nil {
		log.Fatalf("codec init failed: %v", err)
	}

	encrypted, err := codec.Encrypt(os.Args[1])
	if err != nil {
		log.Fatalf("Encryption failed: %v", err)
	}

	fmt.Printf("Encrypted: %s\n", encrypted)
}
