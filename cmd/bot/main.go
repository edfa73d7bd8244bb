// claritybot runs a Telegram bot next to an interactive terminal.
package main

import (
	"os"

	"github.com/eliseohh/claritybot/internal/app"
)

func main() {
	os.Exit(app.Main())
}
