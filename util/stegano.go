package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func PickFileAtRandom(files []string) (string, []string) {
	idx := RandInt(len(files))
	file := files[idx]
	files = append(files[:idx], files[idx+1:]...)
	return file, files
}

// ReadFiles lists files of the folder having one of the extensions.
func ReadFiles(folder string, supportedExtensions []string) ([]string, error) {
	allFiles, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, f := range allFiles {
		if f.IsDir() {
			continue
		}
		for _, ext := range supportedExtensions {
			if strings.HasSuffix(f.Name(), "."+ext) {
				result = append(result, filepath.Join(folder, f.Name()))
				break
			}
		}
	}
	return result, nil
}

func PickDecoy(folder string, extensions []string) (string, error) {
	files, err := ReadFiles(folder, extensions)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no decoy files in %s", folder)
	}
	file, _ := PickFileAtRandom(files)
	return file, nil
}
