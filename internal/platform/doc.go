// Package platform contains the download engines and the OS glue they need:
// the yt-dlp and native engines, ffmpeg MP3 conversion, playlist listing,
// and filesystem helpers.
package platform
