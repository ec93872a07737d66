// Package debuglog writes opt-in diagnostic lines to a file in the temp dir.
package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileName = "dinotris-debug.log"

var (
	enabled bool
	mu      sync.Mutex
	file    *os.File
)

func Enable(on bool) {
	mu.Lock()
	enabled = on
	mu.Unlock()
}

func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Path is where log lines go once the first one is written.
func Path() string {
	return filepath.Join(os.TempDir(), fileName)
}

func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	if file == nil {
		f, err := os.OpenFile(Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		file = f
	}
	timestamp := time.Now().Format(time.RFC3339)
	message := fmt.Sprintf(format, args...)
	message = strings.ReplaceAll(message, "\n", " ")
	_, _ = fmt.Fprintf(file, "%s %s\n", timestamp, message)
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}
