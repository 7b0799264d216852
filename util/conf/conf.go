// Package conf reads line-oriented resource files and YAML training
// parameters.
package conf

import (
	"io"
	"os"
	"strings"
)

type Conf struct {
	Values []string
}

// Read collects the non-empty lines of reader, skipping '#' comments.
func Read(reader io.Reader) (*Conf, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	retval := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if len(strings.TrimSpace(line)) > 0 && line[0] != '#' {
			retval = append(retval, line)
		}
	}
	return &Conf{retval}, nil
}

func ReadFile(filename string) (*Conf, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}
