package deb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
)

const clearsignHeader = "-----BEGIN PGP SIGNED MESSAGE-----"

// IsClearsigned reports whether text starts like a clearsigned message, as
// InRelease files and signed .dsc files do.
func IsClearsigned(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), clearsignHeader)
}

// StripSignature returns the payload of a clearsigned message, terminated by
// a newline. Text that is not clearsigned is returned as is, with signed
// false. The signature is not verified.
func StripSignature(text string) (payload string, signed bool, err error) {
	if !IsClearsigned(text) {
		return text, false, nil
	}
	b, _ := clearsign.Decode([]byte(text))
	if b == nil {
		return "", true, fmt.Errorf("decoding clearsigned message: %w", ErrNoSignature)
	}
	payload = string(b.Plaintext)
	if payload != "" && !strings.HasSuffix(payload, "\n") {
		payload += "\n"
	}
	return payload, true, nil
}

// VerifySignature checks the signature of a clearsigned message against
// keyring and returns the signer and the payload.
func VerifySignature(text string, keyring openpgp.KeyRing) (*openpgp.Entity, string, error) {
	b, _ := clearsign.Decode([]byte(text))
	if b == nil {
		return nil, "", ErrNoSignature
	}
	signer, err := b.VerifySignature(keyring, nil)
	if err != nil {
		return nil, "", fmt.Errorf("verifying signature: %w", err)
	}
	payload, _, err := StripSignature(text)
	return signer, payload, err
}

// Sign clearsigns payload with the first private key of the ASCII-armored
// key ring.
func Sign(payload, armoredKey string) (string, error) {
	signer, err := privateKey(armoredKey)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	w, err := clearsign.Encode(&out, signer.PrivateKey, nil)
	if err != nil {
		return "", err
	}
	if _, err := w.Write([]byte(payload)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// PublicKey extracts the public key from an ASCII-armored private key.
// If armored is true, it returns the public key in ASCII-armored format,
// as Signed-By fields embed it. Otherwise, it returns the binary serialized
// key, as found in /usr/share/keyrings.
func PublicKey(armoredKey string, armored bool) ([]byte, error) {
	signer, err := privateKey(armoredKey)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if !armored {
		if err := signer.Serialize(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return nil, err
	}
	if err := signer.Serialize(w); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func privateKey(armoredKey string) (*openpgp.Entity, error) {
	entities, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armoredKey))
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}
	for _, e := range entities {
		if e.PrivateKey != nil {
			return e, nil
		}
	}
	return nil, ErrNoPrivateKey
}
