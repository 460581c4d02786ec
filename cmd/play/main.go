package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwebster45206/dungeon/internal/app"
	"github.com/jwebster45206/dungeon/internal/logger"
	"github.com/jwebster45206/dungeon/pkg/l10n"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run plays one game over in and out. args may carry the locale ("en" or
// "ru").
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	a, err := app.New(ctx, args)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.WithError(a.Logger, err).Error("Failed to shut down cleanly")
		}
	}()

	out, err := l10n.EncodingWriter(stdout, a.Config.Encoding)
	if err != nil {
		return err
	}
	decoded, err := l10n.EncodingReader(stdin, a.Config.Encoding)
	if err != nil {
		return err
	}
	in := bufio.NewReader(decoded)
	tr := a.Translator

	fmt.Fprint(out, tr.Text("Tell me your name: "))
	name, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read name: %w", err)
	}

	s, err := a.NewSession(name)
	if err != nil {
		return err
	}
	if err := s.Run(ctx, in, out); err != nil {
		return err
	}

	if s.Over() {
		fmt.Fprint(out, tr.Text("Press Enter to exit."))
		_, _ = in.ReadString('\n')
	}
	fmt.Fprintln(out)
	return nil
}
