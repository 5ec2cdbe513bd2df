package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/moyu-x/photo-importer/internal"
)

type Config struct {
	Library struct {
		Root         string
		FolderFormat string `mapstructure:"folder_format"`
	}
	Volumes struct {
		Roots      []string
		Prefix     string
		MediaTypes []string `mapstructure:"media_types"`
		ImageDir   string   `mapstructure:"image_dir"`
	}
	Scanner struct {
		MountBoundary string `mapstructure:"mount_boundary"`
		Extensions    []string
	}
	Dates struct {
		Source string
	}
	Journal struct {
		Enabled bool
		Path    string
	}
	Logging struct {
		Level string
		File  string
	}
	ExitDelay time.Duration `mapstructure:"exit_delay"`
}

var cfg Config

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("$HOME/.photo-importer")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/photo-importer")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return decode(v)
}

// LoadFile 从指定文件加载配置
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return decode(v)
}

func Get() *Config {
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("library.root", internal.DefaultLibraryRoot)
	v.SetDefault("library.folder_format", internal.DefaultFolderFormat)
	v.SetDefault("volumes.roots", defaultVolumeRoots(runtime.GOOS))
	v.SetDefault("volumes.prefix", defaultMountPrefix(runtime.GOOS))
	v.SetDefault("volumes.media_types", []string{string(internal.MediaRemovable), string(internal.MediaFixed)})
	v.SetDefault("volumes.image_dir", internal.DefaultImageDir)
	v.SetDefault("scanner.mount_boundary", defaultMountBoundary(runtime.GOOS))
	v.SetDefault("scanner.extensions", internal.DefaultExtensions)
	v.SetDefault("dates.source", "created")
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", internal.DefaultJournalPath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("exit_delay", internal.DefaultExitDelay)
}

func decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	root, err := ExpandPath(c.Library.Root)
	if err != nil {
		return nil, err
	}
	c.Library.Root = root

	for i, r := range c.Volumes.Roots {
		c.Volumes.Roots[i] = os.ExpandEnv(r)
	}

	cfg = c
	return &cfg, nil
}

// ExpandPath 展开路径开头的 ~
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// MediaTypes 返回可接受的介质类型
func (c *Config) MediaTypes() []internal.MediaType {
	types := make([]internal.MediaType, 0, len(c.Volumes.MediaTypes))
	for _, t := range c.Volumes.MediaTypes {
		types = append(types, internal.MediaType(strings.ToLower(t)))
	}
	return types
}

func defaultVolumeRoots(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"/Volumes"}
	case "linux":
		return []string{"/media/$USER", "/run/media/$USER"}
	default:
		return []string{}
	}
}

func defaultMountPrefix(goos string) string {
	switch goos {
	case "darwin":
		return "/Volumes"
	case "windows":
		return ""
	default:
		return "/"
	}
}

func defaultMountBoundary(goos string) string {
	if goos == "darwin" {
		return "Volumes"
	}
	return "media"
}
