package system

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// MediaDuration returns the length of an audio or video file in seconds.
func MediaDuration(ctx context.Context, ffprobe, path string) (float64, error) {
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, ffprobe, "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return duration, nil
}

// GetBestH264Encoder picks a hardware encoder when ffmpeg offers one.
// Приоритеты: VideoToolbox (macOS), NVENC, затем libx264.
func GetBestH264Encoder(ffmpeg string) string {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	out, err := exec.Command(ffmpeg, "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out), runtime.GOOS)
}

func pickEncoder(listing, goos string) string {
	candidates := []string{"h264_nvenc"}
	if goos == "darwin" {
		candidates = []string{"h264_videotoolbox", "h264_nvenc"}
	}
	for _, name := range candidates {
		if strings.Contains(listing, " "+name+" ") {
			return name
		}
	}
	return "libx264"
}
