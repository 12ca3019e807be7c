package system

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/julianstephens/thirtyday/internal/authserver"
	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/logger"
)

// DevServerCmd runs the local auth server used for development.
type DevServerCmd struct {
	Addr   string `help:"Address to listen on." default:"127.0.0.1:8787"`
	Secret string `help:"Secret used to sign session tokens. Random when empty." env:"THIRTYDAY_DEV_SECRET"`
}

func (c *DevServerCmd) Run(ctx *cli.Context) error {
	srv := authserver.New(authserver.Options{Secret: []byte(c.Secret)})

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	ctx.Printf("Auth dev server listening on http://%s\n", ln.Addr())
	ctx.Printf("Point the client at it with --api-url http://%s\n", ln.Addr())
	logger.Info("Dev server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
		logger.Info("Dev server stopping")
		return srv.Shutdown()
	}
}
