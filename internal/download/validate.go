package download

import (
	"os"
	"strings"

	"github.com/ytget/nobsytdl/internal/model"
)

// ValidateURL checks that the trimmed URL is not empty
func ValidateURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrEmptyURL
	}
	return nil
}

// Validate checks download preconditions. The destination is checked once;
// it is not re-checked when the engine starts writing.
func Validate(req model.DownloadRequest) error {
	if err := ValidateURL(req.URL); err != nil {
		return err
	}

	info, err := os.Stat(req.DestinationDir)
	if err != nil || !info.IsDir() {
		return newDestinationNotFound(req.DestinationDir)
	}
	return nil
}
