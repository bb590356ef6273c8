package blurhash

import "fmt"

// Components reads the component grid from the hash's size flag.
func Components(hash string) (nx, ny int, err error) {
	if len(hash) < 6 {
		return 0, 0, fmt.Errorf("%w: length %d, want at least 6", ErrInvalidHash, len(hash))
	}
	flag, err := DecodeBase83(hash[:1])
	if err != nil {
		return 0, 0, err
	}
	nx = flag%9 + 1
	ny = flag/9 + 1
	if ny > MaxComponents {
		return 0, 0, fmt.Errorf("%w: size flag %d out of range", ErrInvalidHash, flag)
	}
	return nx, ny, nil
}

// AverageColor returns the sRGB colour stored in the DC field.
func AverageColor(hash string) ([3]uint8, error) {
	if len(hash) < 6 {
		return [3]uint8{}, fmt.Errorf("%w: length %d, want at least 6", ErrInvalidHash, len(hash))
	}
	v, err := DecodeBase83(hash[2:6])
	if err != nil {
		return [3]uint8{}, err
	}
	if v > 0xFFFFFF {
		return [3]uint8{}, fmt.Errorf("%w: dc value %d exceeds 24 bits", ErrInvalidHash, v)
	}
	return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// Validate checks that hash is well formed: alphabet, header fields and a
// length matching the size flag.
func Validate(hash string) error {
	nx, ny, err := Components(hash)
	if err != nil {
		return err
	}
	if want := EncodedLen(nx, ny); len(hash) != want {
		return fmt.Errorf("%w: length %d, want %d for %dx%d components",
			ErrInvalidHash, len(hash), want, nx, ny)
	}
	for i := 0; i < len(hash); i++ {
		if base83Index[hash[i]] < 0 {
			return fmt.Errorf("%w: invalid base83 character %q at %d", ErrInvalidHash, hash[i], i)
		}
	}
	_, err = AverageColor(hash)
	return err
}
