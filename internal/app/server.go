package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
)

// Start runs the login screen or the dev API and returns a channel closed
// when the process should shut down.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})
	done := make(chan struct{})

	if a.mode == ModeDevAPI {
		go func() {
			slog.Info("http server listening", "address", a.httpServer.Addr)

			if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				slog.Error("failed to listen and serve http server", "error", err)
				os.Exit(1)
			}
		}()
	} else {
		a.programDone = done
		go func() {
			defer close(done)

			if _, err := a.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				slog.Error("login screen stopped with error", "error", err)
			}

			if claims := a.identity.Model.Claims(); claims != nil {
				fmt.Fprintf(os.Stdout, "Signed in as %s, session saved to %s\n",
					claims.Email, a.identity.Session.Path())
			}
		}()
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigint)

		select {
		case <-sigint:
		case <-done:
		}

		if a.cancel != nil {
			a.cancel()
		}

		close(terminateChan)

		slog.Info("application gracefully shutdown")
	}()

	return terminateChan
}

// Serve runs the dev API on the provided listener for tests.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- a.httpServer.Serve(l)
		close(errChan)
	}()

	return errChan
}

// Logout removes the stored session.
func (a *App) Logout(ctx context.Context) error {
	return a.identity.Session.Clear(ctx)
}

// Whoami writes who the stored session belongs to.
func (a *App) Whoami(ctx context.Context, w io.Writer) error {
	sess, err := a.identity.Session.Load(ctx)
	if errors.Is(err, goerror.ErrNotFound) {
		_, err = fmt.Fprintln(w, "Not signed in")
		return err
	}
	if err != nil {
		return err
	}

	claims, err := a.identity.Session.Claims(sess.Credential.AccessToken)
	if err != nil {
		_, err = fmt.Fprintf(w, "Signed in as %s (saved %s)\n", sess.Email, sess.SavedAt.Format("2006-01-02 15:04"))
		return err
	}

	_, err = fmt.Fprintf(w, "Signed in as %s, access token expires %s\n",
		claims.Email, claims.ExpiresAt.Format("2006-01-02 15:04"))
	return err
}

// StopAfter blocks until wait is closed and then stops the application. The
// shutdown timeout starts only once wait is closed.
func (a *App) StopAfter(wait <-chan struct{}, timeout time.Duration) {
	<-wait

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	a.Stop(ctx)
}

// Stop gracefully shuts down the server or the screen and closes resources.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		}
	}

	if a.programDone != nil {
		a.program.Quit()
		select {
		case <-a.programDone:
		case <-ctx.Done():
			a.program.Kill()
		}
	}

	if a.goroutine != nil {
		slog.InfoContext(ctx, "waiting for all goroutine to finish")
		if err := a.goroutine.Wait(); err != nil {
			slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
		}
		slog.InfoContext(ctx, "all goroutines have finished successfully")
	}

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
}
