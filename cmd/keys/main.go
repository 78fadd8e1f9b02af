// Generador de secretos para socialpost.
//
//	go run ./cmd/keys            # genera un installation secret nuevo
//	go run ./cmd/keys -check     # valida el secret de SOCIALPOST_INSTALLATION_SECRET
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/socialpost/internal/security/secretbox"
)

func main() {
	var (
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env")
		flagCheck   = flag.Bool("check", false, "validar el secret configurado en vez de generar uno")
	)
	flag.Parse()

	if *flagEnvFile != "" {
		_ = godotenv.Load(*flagEnvFile)
	}

	if *flagCheck {
		secret := os.Getenv("SOCIALPOST_INSTALLATION_SECRET")
		codec, err := secretbox.New(secret)
		if err != nil {
			log.Fatalf("secret inválido: %v", err)
		}
		// round-trip de humo
		ct, err := codec.Encrypt("ping")
		if err != nil {
			log.Fatalf("encrypt falló: %v", err)
		}
		if pt, err := codec.Decrypt(ct); err != nil || pt != "ping" {
			log.Fatalf("round-trip falló: %v", err)
		}
		fmt.Println("ok")
		return
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("rand: %v", err)
	}
	fmt.Printf("SOCIALPOST_INSTALLATION_SECRET=%s\n", base64.RawURLEncoding.EncodeToString(b))
}
