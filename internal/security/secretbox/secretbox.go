// Package secretbox cifra tokens de acceso antes de persistirlos.
//
// El codec se construye una vez en el arranque con el secreto de instalación
// y se inyecta explícitamente donde se necesita (sin singleton de proceso).
// La clave AES-256 se deriva del secreto con HKDF-SHA256, así el secreto
// puede ser cualquier string no vacío y no necesita ser exactamente 32 bytes.
package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	nonceSizeGCM = 12  // nonce recomendado para AES-GCM (96 bits)
	keyLength    = 32  // 32 bytes => AES-256
	sep          = "|" // base64(ciphertext)|base64(nonce)
)

// hkdfInfo fija el contexto de derivación; cambiarlo invalida todo lo cifrado.
const hkdfInfo = "socialpost/token-codec/v1"

var (
	// ErrMissingKey indica que no hay secreto de instalación configurado.
	// El codec falla cerrado: nunca cifra con una clave por defecto.
	ErrMissingKey = errors.New("secretbox: installation secret not configured")

	// ErrDecrypt indica que el blob es inválido o la autenticación falló.
	ErrDecrypt = errors.New("secretbox: cannot decrypt token")
)

// Codec cifra y descifra strings con AES-256-GCM.
// Es seguro para uso concurrente: la clave es inmutable tras New.
type Codec struct {
	key []byte
}

// New deriva la clave del secreto de instalación y construye el codec.
// Retorna ErrMissingKey si el secreto está vacío.
func New(installationSecret string) (*Codec, error) {
	if strings.TrimSpace(installationSecret) == "" {
		return nil, ErrMissingKey
	}
	key := make([]byte, keyLength)
	kdf := hkdf.New(sha256.New, []byte(installationSecret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("secretbox: derive key: %w", err)
	}
	return &Codec{key: key}, nil
}

// Encrypt cifra plainText y devuelve base64(ciphertext)|base64(nonce).
// El nonce es aleatorio y fresco en cada llamada; nunca se reutiliza.
func (c *Codec) Encrypt(plainText string) (string, error) {
	if c == nil || len(c.key) != keyLength {
		return "", ErrMissingKey
	}

	aesgcm, err := c.newGCM()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSizeGCM)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("secretbox: nonce random: %w", err)
	}

	ct := aesgcm.Seal(nil, nonce, []byte(plainText), nil)

	ctB64 := base64.StdEncoding.EncodeToString(ct)
	nonceB64 := base64.StdEncoding.EncodeToString(nonce)
	return ctB64 + sep + nonceB64, nil
}

// Decrypt recibe base64(ciphertext)|base64(nonce) y devuelve el texto plano.
// Retorna ErrDecrypt si el formato es inválido o la autenticación falla.
func (c *Codec) Decrypt(cipherText string) (string, error) {
	if c == nil || len(c.key) != keyLength {
		return "", ErrMissingKey
	}

	ctPart, noncePart, found := strings.Cut(cipherText, sep)
	if !found {
		return "", fmt.Errorf("%w: missing separator", ErrDecrypt)
	}
	ct, err := base64.StdEncoding.DecodeString(ctPart)
	if err != nil {
		return "", fmt.Errorf("%w: decode ciphertext: %v", ErrDecrypt, err)
	}
	nonce, err := base64.StdEncoding.DecodeString(noncePart)
	if err != nil {
		return "", fmt.Errorf("%w: decode nonce: %v", ErrDecrypt, err)
	}
	if len(nonce) != nonceSizeGCM {
		return "", fmt.Errorf("%w: nonce length %d", ErrDecrypt, len(nonce))
	}

	aesgcm, err := c.newGCM()
	if err != nil {
		return "", err
	}

	pt, err := aesgcm.Open(nil, nonce, ct, nil)
	if err != nil {
		// No envolvemos el error de la librería: podría filtrar detalles del blob.
		return "", ErrDecrypt
	}
	return string(pt), nil
}

func (c *Codec) newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("secretbox: aes.NewCipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("secretbox: cipher.NewGCM: %w", err)
	}
	return aesgcm, nil
}
