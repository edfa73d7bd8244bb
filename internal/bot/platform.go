package bot

import (
	"errors"
	"fmt"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform")

// CheckPlatform refuses to run the bot on Windows.
func CheckPlatform(goos string) error {
	if goos == "windows" {
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
	return nil
}
