package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"stegtext/cryptography"
	"stegtext/util"
)

const (
	Folder         = ".stegtext"
	ConfigFilename = "config.yaml"
	LogFilename    = "log.log"
)

// defaults applied to every encode call unless overridden by flags
type EncoderConfig struct {
	Compress       bool `yaml:"compress"`
	VisibleChannel bool `yaml:"visible_channel"`
}

/*
 * Configuration for steganography: where to pick decoy texts from when no
 * host text is given, and which files count as text.
 */
type SteganoConfig struct {
	Folder     string   `yaml:"decoy_files_folder"`
	Extensions []string `yaml:"extensions"`
}

type OutputConfig struct {
	FileMode os.FileMode `yaml:"file_mode"`
}

type FullConfig struct {
	Logger     util.LoggerInfo `yaml:"logger_config"`
	Encoder    EncoderConfig   `yaml:"encoder_config"`
	StegConfig SteganoConfig   `yaml:"steganography_config"`
	Output     OutputConfig    `yaml:"output_config"`
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, Folder, ConfigFilename), nil
}

func DefaultConfig(folder string) *FullConfig {
	logFile := ""
	if folder != "" {
		logFile = filepath.Join(folder, LogFilename)
	}
	return &FullConfig{
		Logger: util.LoggerInfo{
			Filename:  logFile,
			IsColored: false,
			SaveTime:  true,
			Mode:      util.Error | util.Warning,
		},
		Encoder: EncoderConfig{},
		StegConfig: SteganoConfig{
			Extensions: []string{"txt", "md", "markdown", "text", "rst", "html", "htm", "csv"},
		},
		Output: OutputConfig{
			FileMode: 0600,
		},
	}
}

/*
 * Functions for loading and saving configuration in YAML format.
 * a nil key means the file is kept in plaintext.
 */
func LoadConfig(filename string, key []byte) (*FullConfig, error) {
	data, err := LoadEncrypted(filename, key)
	if err != nil {
		return nil, err
	}

	conf := DefaultConfig(filepath.Dir(filename))
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// LoadOrDefault returns defaults when the file does not exist yet.
func LoadOrDefault(filename string, key []byte) (*FullConfig, error) {
	conf, err := LoadConfig(filename, key)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(filepath.Dir(filename)), nil
	}
	return conf, err
}

func SaveConfig(filename string, key []byte, c *FullConfig) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return err
	}
	return SaveEncrypted(filename, key, data)
}

/*
 * Functions for saving and loading encrypted files.
 */
func LoadEncrypted(filename string, key []byte) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if len(key) == cryptography.SymKeySize {
		return cryptography.Decrypt(data, key)
	}
	// return unencrypted data
	return data, nil
}

func SaveEncrypted(filename string, key, data []byte) error {
	var err error
	if len(key) == cryptography.SymKeySize {
		data, err = cryptography.Encrypt(data, key)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(filename, data, 0600)
}
