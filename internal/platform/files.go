package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// Output template placeholders understood by ExpandTemplate
const (
	TitlePlaceholder     = "%(title)s"
	ExtPlaceholder       = "%(ext)s"
	DefaultFileTitle     = "video"
	MaxFileTitleLength   = 180
	FilenameReplacement  = "_"
	DownloadsDirName     = "Downloads"
	PartialFileExtension = ".part"
)

// Characters that are not allowed in file names on at least one desktop OS
var invalidFilenameChars = strings.NewReplacer(
	"/", FilenameReplacement,
	"\\", FilenameReplacement,
	":", FilenameReplacement,
	"*", FilenameReplacement,
	"?", FilenameReplacement,
	"\"", FilenameReplacement,
	"<", FilenameReplacement,
	">", FilenameReplacement,
	"|", FilenameReplacement,
	"\x00", "",
)

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens the directory containing the file.
// File selection is not standardized on Linux.
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist. A regular
// file at dirPath is an error.
func CreateDirectoryIfNotExists(dirPath string) error {
	if DirExists(dirPath) {
		return nil
	}
	return os.MkdirAll(dirPath, DefaultDirPermissions)
}

// DirExists reports whether path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// SanitizeFilename makes title safe to use as a single path element
func SanitizeFilename(title string) string {
	name := invalidFilenameChars.Replace(title)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	name = strings.Trim(strings.TrimSpace(name), ".")

	if runes := []rune(name); len(runes) > MaxFileTitleLength {
		name = strings.TrimSpace(string(runes[:MaxFileTitleLength]))
	}
	if name == "" {
		return DefaultFileTitle
	}
	return name
}

// ExpandTemplate fills the title and ext placeholders of a yt-dlp style output
// template. Only the file name part is sanitized.
func ExpandTemplate(template, title, ext string) string {
	name := strings.ReplaceAll(template, TitlePlaceholder, SanitizeFilename(title))
	return strings.ReplaceAll(name, ExtPlaceholder, strings.TrimPrefix(ext, "."))
}

// ReplaceExtension swaps the extension of path for ext
func ReplaceExtension(path, ext string) string {
	if path == "" {
		return ""
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + strings.TrimPrefix(ext, ".")
}
