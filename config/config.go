package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr  string
	DBUrl string
	Debug bool
	Dev   bool
}

// ParseFlags reads configuration from command line flags, with environment
// variables (optionally from a .env file) providing the defaults.
func ParseFlags() (cfg Config, err error) {
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envString("HOST", "0.0.0.0"), "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", envUint("PORT", 3001), "listen port number (default 3001)")
	flag.StringVar(&cfg.DBUrl, "db-url", envString("DB_URL", "qforms.sqlite"), "path to SQLite3 DB file (default qforms.sqlite)")
	flag.BoolVar(&cfg.Debug, "debug", envBool("DEBUG"), "log at DEBUG level")
	flag.BoolVar(&cfg.Dev, "dev", envBool("DEV"), "include error details in 500 responses")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	if cfg.DBUrl == "" {
		err = errors.New("missing parameter -db-url")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envUint(name string, fallback uint) uint {
	if v, err := strconv.ParseUint(os.Getenv(name), 10, 16); err == nil {
		return uint(v)
	}
	return fallback
}

func envBool(name string) bool {
	v, _ := strconv.ParseBool(os.Getenv(name))
	return v
}
