package common

import (
	"fts/internal/plat"
	"fts/internal/types"
	"hash/crc32"
	"os"
	"path/filepath"
)

func IsExist(f string) bool {
	_, err := os.Stat(f)
	return err == nil || os.IsExist(err)
}

func GetCrc32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

func GetFileSize(f *os.File) int64 {
	f.Sync()
	st, err := f.Stat()
	if err != nil {
		panic(err)
	}
	return st.Size()
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func CopyTokenMetaArray(src []types.TokenMeta) (dst []types.TokenMeta) {
	for _, r := range src {
		dst = append(dst, r.Copy())
	}
	return
}

func GetPlatFormFsBlockSize(filename string) uint64 {
	return uint64(plat.GetFsBlockSize(filename))
}

// BlockSizeHint sizes a buffered writer from the filesystem block size
// of stem's directory, falling back to 0 (the caller's own default)
// when that directory cannot be stat'd.
func BlockSizeHint(stem string) int {
	dir := filepath.Dir(stem)
	if _, err := os.Stat(dir); err != nil {
		return 0
	}
	return int(GetPlatFormFsBlockSize(dir))
}
