package main

import (
	"flag"
	"net"
	"regexp"
	"strconv"
)

type config struct {
	Addr     string
	DBPath   string
	Theme    string
	SeedSize uint
	Debug    bool
}

func parseFlags() config {
	cfg := config{}

	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 8080, "listen port number (default 8080)")
	flag.StringVar(&cfg.DBPath, "db-path", "formbuilder.sqlite", "path to SQLite3 DB file, empty for in-memory storage")
	flag.StringVar(&cfg.Theme, "theme", "", "initial viewer theme (light or dark), overrides the stored preference")
	flag.UintVar(&cfg.SeedSize, "seed", 0, "number of demo submissions to seed the admin panel with")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	return cfg
}

func (cfg config) URL() string {
	url := regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(cfg.Addr, "localhost")
	return "http://" + url
}
