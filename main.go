package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tactica/server"
	"tactica/world"
)

// Tactica 入口：加载配置与属性卡，启动 HTTP + WebSocket 服务
func main() {
	var (
		addr       string
		configPath string
		logPath    string
		debug      bool
	)
	flag.StringVar(&addr, "addr", ":8080", "server listen address, e.g. :8080")
	flag.StringVar(&configPath, "config", "", "encounter config (TOML); empty uses built-in defaults")
	flag.StringVar(&logPath, "log", "", "log file, overrides log_file in config")
	flag.BoolVar(&debug, "debug", false, "log command lifecycle at debug level")
	flag.Parse()

	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}
	if logPath != "" {
		cfg.LogFile = logPath
	}
	if err := server.InitLogger(cfg.LogFile, debug); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	statblocks, err := world.LoadStatblocks(cfg.StatblockDir)
	if err != nil {
		server.Log.Fatalf("load statblocks: %v", err)
	}
	server.Log.Infof("loaded %d statblocks from %s", len(statblocks), cfg.StatblockDir)

	rm := server.GetEncounterManager()
	rm.Configure(cfg, statblocks)
	// 预创建默认遭遇，配置错误在启动时暴露
	if _, err := rm.GetOrCreate(server.DefaultEncounterID); err != nil {
		server.Log.Fatalf("default encounter: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.Handle("/", http.FileServer(http.Dir("web")))
	mux.HandleFunc("/admin/config", server.HandleAdminConfig)
	mux.HandleFunc("/metrics", server.HandleMetrics)
	mux.HandleFunc("/schema", server.HandleSchema)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		server.Log.Infof("Tactica listening on %s; open http://localhost%v/", addr, addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
	rm.StopAll()
}
