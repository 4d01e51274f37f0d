package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/engine"
	"github.com/fieldjoshua/LightBox-2.0/fbsink"
	"github.com/fieldjoshua/LightBox-2.0/frame"
	"github.com/fieldjoshua/LightBox-2.0/pattern/builtin"
	"github.com/fieldjoshua/LightBox-2.0/usb"
	"github.com/fieldjoshua/LightBox-2.0/web"
)

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)

	var (
		addr       = flag.String("addr", ":5000", "control surface listen address")
		sinkName   = flag.String("sink", "usb", "output sink: usb, fb, none")
		fbDevice   = flag.String("fb", "/dev/fb0", "framebuffer device for -sink fb")
		targetFPS  = flag.Float64("fps", 60, "target frame rate")
		configPath = flag.String("config", "lightbox.json", "persisted configuration file")
		statsPath  = flag.String("stats", "/tmp/lightbox_stats.json", "runtime stats file")
		pluginDir  = flag.String("plugins", "patterns", "directory scanned for pattern plugins")
	)
	flag.Parse()

	store := config.NewStore()
	if err := store.LoadFile(*configPath); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("config %s not loaded: %v", *configPath, err)
		}
	} else {
		log.Printf("loaded configuration from %s", *configPath)
	}

	registry := builtin.NewRegistry()
	for _, name := range registry.LoadPlugins(*pluginDir) {
		log.Printf("discovered pattern %q", name)
	}

	sink, err := openSink(*sinkName, *fbDevice, store)
	if err != nil {
		log.Fatalf("sink: %v", err)
	}

	eng := engine.New(store, registry, sink, engine.WithTargetFPS(*targetFPS))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.New(store, registry, eng)
	server.ConfigPath = *configPath
	go func() {
		if err := server.Run(*addr); err != nil {
			log.Printf("web: %v", err)
		}
	}()
	go eng.WriteStats(ctx, *statsPath, time.Second)

	if err := eng.Run(ctx); err != nil {
		log.Fatalf("engine: %v", err)
	}
	log.Println("shutdown complete")
}

func openSink(name, fbDevice string, store *config.Store) (frame.Sink, error) {
	switch name {
	case "usb":
		return usb.Open()
	case "fb":
		return fbsink.Open(fbDevice, store.Snapshot().Geometry)
	case "none":
		return frame.Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown sink %q", name)
	}
}
