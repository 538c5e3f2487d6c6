package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2/app"

	"LocalAnnotate/internal/config"
	"LocalAnnotate/internal/engine"
	annonet "LocalAnnotate/internal/net"
	"LocalAnnotate/internal/ui"
)

const appID = "io.localannotate.app"

func main() {
	if os.Getenv("LOCALANNOTATE_DEBUG") != "" {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	args := os.Args
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], config.URLScheme):
		runPanel(strings.TrimSuffix(strings.TrimPrefix(args[1], config.URLScheme), "/"))
	case len(args) > 1 && args[1] == "panel":
		runPanel("")
	default:
		runHost()
	}
}

func runHost() {
	log.Println("Starting annotator")
	a := app.NewWithID(appID)
	cfg := config.Load(a.Preferences())
	host := ui.NewHost(a, cfg)

	server := annonet.NewServer(host.Channel, host.Dispatch)
	host.Engine.Events().Subscribe(server.Notify)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := server.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Printf("[NET] Command endpoint stopped: %v", err)
		}
	}()

	if cfg.MDNS {
		mdnsServer, err := annonet.Advertise(config.ServiceType, cfg.Port)
		if err != nil {
			log.Printf("[NET] mDNS disabled: %v", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	host.SetShareLink(annonet.ShareLink(config.URLScheme, cfg.Port))
	a.Lifecycle().SetOnStopped(func() {
		cfg.Capture(host.Engine).Save(a.Preferences())
		cancel()
	})
	host.Window.ShowAndRun()
}

func runPanel(addr string) {
	log.Println("Starting remote control panel")
	if addr == "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		found, err := annonet.Browse(ctx, config.ServiceType, 2*time.Second)
		cancel()
		if err != nil {
			log.Printf("[PANEL] Discovery failed: %v", err)
		}
		if len(found) == 0 {
			log.Fatal("No annotator found on the local network")
		}
		addr = found[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := annonet.Dial(ctx, addr)
	if err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer client.Close()
	log.Println("Connected to annotator at", addr)

	a := app.NewWithID(appID + ".panel")
	ui.RunPanel(a, client, addr)
}
