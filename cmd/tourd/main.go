// Command tourd serves the route optimizer over HTTP.
//
//	tourd -config tourplan.yaml [-addr :8080]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/tourplan/config"
	"github.com/katalvlaran/tourplan/server"
	"github.com/plan-systems/klog"
)

func main() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	var (
		configPath = flag.String("config", "", "YAML configuration file")
		envFile    = flag.String("env", ".env", "dotenv file with secrets")
		addr       = flag.String("addr", "", "listen address (overrides server.addr)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := serve(ctx, *configPath, *envFile, *addr)
	stop()
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tourd:", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, configPath, envFile, addr string) error {
	if err := config.LoadEnv(envFile); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	p, closeCache, err := cfg.OpenProvider()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeCache(); cerr != nil {
			klog.Warningf("tourd: closing cache: %v", cerr)
		}
	}()

	app := server.New(cfg, p)
	errc := make(chan error, 1)
	go func() {
		klog.Infof("tourd: listening on %s (%s provider, %s cache)", cfg.Server.Addr, cfg.Provider.Kind, cfg.Cache.Kind)
		errc <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err = <-errc:
		return err
	case <-ctx.Done():
	}
	klog.Infof("tourd: shutting down")

	return app.Shutdown()
}
