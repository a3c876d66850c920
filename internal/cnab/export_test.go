package cnab

import "os"

// FileHandle exposes fileHandle to the external tests.
type FileHandle = fileHandle

// SetOpenFile swaps the function Save uses to create files and returns a
// func restoring it.
func SetOpenFile(fn func(path string) (FileHandle, error)) func() {
	prev := openFile
	openFile = fn
	return func() { openFile = prev }
}

var _ FileHandle = (*os.File)(nil)
