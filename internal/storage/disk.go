package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// PathUsage is the on-disk size of one labelled storage location.
type PathUsage struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// DiskUsage measures each labelled path, sorted by label, plus their total.
// Empty, in-memory and missing paths report 0 bytes.
func DiskUsage(paths map[string]string) ([]PathUsage, int64, error) {
	labels := make([]string, 0, len(paths))
	for label := range paths {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var (
		out   = make([]PathUsage, 0, len(labels))
		total int64
	)
	for _, label := range labels {
		p := paths[label]
		n, err := DiskUsageBytes(p)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, PathUsage{Label: label, Path: p, Bytes: n})
		total += n
	}
	return out, total, nil
}

// DiskUsageBytes returns the total size in bytes of the given paths.
// Each path may be a file or a directory (recursively summed). A SQLite database
// also counts its -wal and -shm companions.
func DiskUsageBytes(paths ...string) (int64, error) {
	var total int64
	for _, p := range paths {
		if p == "" || p == ":memory:" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		if info.IsDir() {
			n, err := dirSize(p)
			if err != nil {
				return 0, err
			}
			total += n
			continue
		}
		total += info.Size()
		for _, suffix := range []string{"-wal", "-shm"} {
			if side, err := os.Stat(p + suffix); err == nil && !side.IsDir() {
				total += side.Size()
			}
		}
	}
	return total, nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
