package secure

// Field is an encrypted column value. The only ways to build one are
// FromPlaintext (encrypts) and FromCiphertext (stores as-is), and the only
// way to read the content back is Reveal, so plaintext cannot leak into a
// model by accident.
type Field struct {
	ciphertext string
}

func (c *Codec) FromPlaintext(plaintext string) (Field, error) {
	ct, err := c.Encrypt(plaintext)
	if err != nil {
		return Field{}, err
	}
	return Field{ciphertext: ct}, nil
}

func FromCiphertext(ciphertext string) Field {
	return Field{ciphertext: ciphertext}
}

// Ciphertext returns the stored form, suitable for persistence.
func (f Field) Ciphertext() string {
	return f.ciphertext
}

// Reveal decrypts the field.
func (f Field) Reveal(c *Codec) (string, error) {
	if f.ciphertext == "" {
		return "", nil
	}
	return c.Decrypt(f.ciphertext)
}
