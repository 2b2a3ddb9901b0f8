package processor

import (
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v4/disk"
)

// checkFreeSpace warns when dir has less than need bytes free. It never fails
// the operation; ffmpeg reports the real write error if space runs out.
func checkFreeSpace(logger hclog.Logger, dir string, need uint64) bool {
	usage, err := disk.Usage(dir)
	if err != nil {
		logger.Debug("could not determine free disk space", "dir", dir, "error", err)
		return true
	}
	if usage.Free < need {
		logger.Warn("output directory may not have enough free space",
			"dir", dir,
			"free", humanize.IBytes(usage.Free),
			"need", humanize.IBytes(need))
		return false
	}
	return true
}
