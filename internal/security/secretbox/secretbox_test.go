package secretbox

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	c, err := New("una clave de instalación cualquiera")
	if err != nil {
		t.Fatalf("New err: %v", err)
	}

	for _, msg := range []string{
		"tok-abc",
		"",
		"hola mundo ✓ — secreto",
		strings.Repeat("x", 4096),
		`{"access_token":"ya29.a0","refresh_token":"1//r"}`,
	} {
		ct, err := c.Encrypt(msg)
		if err != nil {
			t.Fatalf("Encrypt err: %v", err)
		}
		pt, err := c.Decrypt(ct)
		if err != nil {
			t.Fatalf("Decrypt err: %v", err)
		}
		if pt != msg {
			t.Fatalf("plaintext mismatch: got %q want %q", pt, msg)
		}
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	t.Parallel()

	c, err := New("clave")
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.Encrypt("same input")
	b, _ := c.Encrypt("same input")
	if a == b {
		t.Fatalf("two encryptions of the same plaintext produced identical blobs")
	}
}

func TestDecrypt_DetectsTamper(t *testing.T) {
	t.Parallel()

	c, err := New("clave de prueba")
	if err != nil {
		t.Fatal(err)
	}
	ct, err := c.Encrypt("top secret")
	if err != nil {
		t.Fatalf("Encrypt err: %v", err)
	}
	parts := strings.SplitN(ct, "|", 2)
	if len(parts) != 2 {
		t.Fatalf("unexpected ct format")
	}
	// corromper un byte del ciphertext (base64 -> bytes -> flip -> base64)
	bs, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatal(err)
	}
	bs[0] ^= 0x01
	corrupted := base64.StdEncoding.EncodeToString(bs) + "|" + parts[1]

	if _, err := c.Decrypt(corrupted); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got %v", err)
	}
}

func TestDecrypt_MalformedBlob(t *testing.T) {
	t.Parallel()

	c, err := New("clave")
	if err != nil {
		t.Fatal(err)
	}
	for _, blob := range []string{
		"",
		"sin-separador",
		"no-base64!!|AAAA",
		"AAAA|no-base64!!",
		"AAAA|AAAA", // nonce con largo inválido
	} {
		if _, err := c.Decrypt(blob); !errors.Is(err, ErrDecrypt) {
			t.Fatalf("blob %q: expected ErrDecrypt, got %v", blob, err)
		}
	}
}

func TestNew_ErrorWhenNoSecret(t *testing.T) {
	t.Parallel()

	for _, secret := range []string{"", "   ", "\t\n"} {
		if _, err := New(secret); !errors.Is(err, ErrMissingKey) {
			t.Fatalf("secret %q: expected ErrMissingKey, got %v", secret, err)
		}
	}
}

func TestDecrypt_DifferentSecretFails(t *testing.T) {
	t.Parallel()

	a, _ := New("secreto A")
	b, _ := New("secreto B")
	ct, err := a.Encrypt("token")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Decrypt(ct); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt with wrong key, got %v", err)
	}
}
