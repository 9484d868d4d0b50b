package agent

import (
	"os"
	"path/filepath"
)

// SeedFile is one entry of the on-disk seed list an ingress zone draws its
// legitimate payload metadata from. Only names and sizes are used; file
// contents are never transmitted.
type SeedFile struct {
	Name string
	Size int64
}

// ListSeeds enumerates regular files in dir. A missing or unreadable
// directory yields an empty list: the zone then simply produces no
// legitimate candidates.
func ListSeeds(dir string) []SeedFile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var seeds []SeedFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		seeds = append(seeds, SeedFile{Name: e.Name(), Size: info.Size()})
	}
	return seeds
}
