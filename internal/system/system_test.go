package system

import "testing"

func TestPickEncoder(t *testing.T) {
	listing := " V....D h264_nvenc           NVIDIA NVENC H.264 encoder\n V....D h264_videotoolbox    VideoToolbox H.264 Encoder\n"
	tests := []struct {
		listing, goos, want string
	}{
		{listing, "darwin", "h264_videotoolbox"},
		{listing, "linux", "h264_nvenc"},
		{" V....D libx264 libx264 H.264\n", "linux", "libx264"},
		{"", "darwin", "libx264"},
	}
	for _, tt := range tests {
		if got := pickEncoder(tt.listing, tt.goos); got != tt.want {
			t.Errorf("pickEncoder(%q) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestDefaultWorkers(t *testing.T) {
	tests := []struct {
		name  string
		stats HostStats
		want  int
	}{
		{"physical cores", HostStats{PhysicalCores: 8, LogicalCores: 16}, 8},
		{"logical only", HostStats{LogicalCores: 4}, 4},
		{"memory bound", HostStats{PhysicalCores: 32, LogicalCores: 64, AvailMemory: 8 * frameBytes * 4}, 8},
		{"never zero", HostStats{LogicalCores: 4, AvailMemory: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultWorkers(tt.stats); got != tt.want {
				t.Errorf("DefaultWorkers = %d, want %d", got, tt.want)
			}
		})
	}
}
