package blurhash

import "fmt"

const base83Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz#$%*+,-.:;=?@[]^_{|}~"

// base83Index maps an ASCII byte to its digit value, -1 if not in the alphabet.
var base83Index [256]int8

func init() {
	for i := range base83Index {
		base83Index[i] = -1
	}
	for i := 0; i < len(base83Chars); i++ {
		base83Index[base83Chars[i]] = int8(i)
	}
}

// AppendBase83 appends value as exactly length base-83 digits, most
// significant first. Values of 83^length or more wrap silently.
func AppendBase83(dst []byte, value, length int) []byte {
	divisor := 1
	for i := 1; i < length; i++ {
		divisor *= 83
	}
	for ; length > 0; length-- {
		dst = append(dst, base83Chars[(value/divisor)%83])
		divisor /= 83
	}
	return dst
}

// EncodeBase83 is AppendBase83 into a fresh string.
func EncodeBase83(value, length int) string {
	return string(AppendBase83(make([]byte, 0, length), value, length))
}

// DecodeBase83 parses a base-83 digit string.
func DecodeBase83(s string) (int, error) {
	value := 0
	for i := 0; i < len(s); i++ {
		d := base83Index[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w: invalid base83 character %q at %d", ErrInvalidHash, s[i], i)
		}
		value = value*83 + int(d)
	}
	return value, nil
}
