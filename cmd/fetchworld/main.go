package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		url  = flag.String("url", "", "go-getter source of the world bundle (git::, s3::, https://...)")
		out  = flag.String("o", "./data", "data directory")
		name = flag.String("name", "world", "subdirectory to unpack into")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *url == "" {
		log.Error("source url required")
		os.Exit(2)
	}
	if *out == "" || *name == "" {
		log.Error("output directory required")
		os.Exit(2)
	}

	path := filepath.Join(*out, *name)
	if err := os.RemoveAll(path); err != nil {
		log.Error("clear destination", "path", path, "error", err)
		os.Exit(1)
	}

	log.Info("downloading world", "url", *url, "path", path)
	if err := get.Get(path, *url); err != nil {
		log.Error("download world", "error", err)
		os.Exit(1)
	}
	log.Info("download finished", "path", path)
}
