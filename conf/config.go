package conf

import (
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const DefaultPath = "conf/config.ini"

type Config struct {
	Server     ServerConfig
	Library    LibraryConfig
	Simulation SimulationConfig
	Log        LogConfig
}

type ServerConfig struct {
	Addr            string `env:"ROASTSIM_ADDR"`
	ReadBufferSize  int    `env:"ROASTSIM_READ_BUFFER_SIZE"`
	WriteBufferSize int    `env:"ROASTSIM_WRITE_BUFFER_SIZE"`
}

type LibraryConfig struct {
	Driver string `env:"ROASTSIM_LIBRARY_DRIVER"` // memory | sqlite
	Path   string `env:"ROASTSIM_LIBRARY_PATH"`
}

type SimulationConfig struct {
	Variant      string `env:"ROASTSIM_VARIANT"`
	Speed        string `env:"ROASTSIM_SPEED"`
	CompareLimit int    `env:"ROASTSIM_COMPARE_LIMIT"`
	WindowSize   int    `env:"ROASTSIM_WINDOW_SIZE"`
}

type LogConfig struct {
	Level  string `env:"ROASTSIM_LOG_LEVEL"`
	Format string `env:"ROASTSIM_LOG_FORMAT"`
}

// 读取配置：ini 文件 -> .env -> 环境变量覆盖
// 配置文件不存在时使用默认值
func Load(path string) (*Config, error) {
	file := ini.Empty()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			file, err = ini.Load(path)
			if err != nil {
				return nil, err
			}
		} else {
			log.WithField("path", path).Warn("配置文件不存在，使用默认配置")
		}
	}

	cfg := loadCfg(file)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn(".env 读取失败")
	}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadCfg(file *ini.File) *Config {
	server := file.Section("server")
	library := file.Section("library")
	simulation := file.Section("simulation")
	logSection := file.Section("log")
	return &Config{
		Server: ServerConfig{
			Addr:            server.Key("Addr").MustString(":9000"),
			ReadBufferSize:  server.Key("ReadBufferSize").MustInt(1024),
			WriteBufferSize: server.Key("WriteBufferSize").MustInt(1024),
		},
		Library: LibraryConfig{
			Driver: library.Key("Driver").In("memory", []string{"memory", "sqlite"}),
			Path:   library.Key("Path").MustString("roasts.db"),
		},
		Simulation: SimulationConfig{
			Variant:      simulation.Key("Variant").MustString("phase"),
			Speed:        simulation.Key("Speed").MustString("instant"),
			CompareLimit: simulation.Key("CompareLimit").MustInt(4),
			WindowSize:   simulation.Key("WindowSize").MustInt(120),
		},
		Log: LogConfig{
			Level:  logSection.Key("Level").MustString("info"),
			Format: logSection.Key("Format").In("text", []string{"text", "json"}),
		},
	}
}

// 按配置设置 logrus
func SetupLogger(c LogConfig) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		log.WithField("level", c.Level).Warn("未知日志级别，使用 info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
