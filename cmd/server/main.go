package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/Mshel/micromouse/internal/config"
	"github.com/Mshel/micromouse/internal/finder"
	"github.com/Mshel/micromouse/internal/history"
	"github.com/Mshel/micromouse/internal/layouts"
	"github.com/Mshel/micromouse/internal/maze"
	"github.com/Mshel/micromouse/internal/simulation"
	"github.com/Mshel/micromouse/internal/ui"
)

// connectionLimiter caps the number of open sessions per remote IP.
type connectionLimiter struct {
	max       int
	mu        sync.Mutex
	ipCounter map[string]int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{max: limit, ipCounter: make(map[string]int)}
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire counts a new session from ip, or reports false when ip is at the limit.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ipCounter[ip] >= l.max {
		return l.ipCounter[ip], false
	}
	l.ipCounter[ip]++
	return l.ipCounter[ip], true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
	return l.ipCounter[ip]
}

func (l *connectionLimiter) middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count+1, "current_limit", l.max)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", count+1, l.max)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.max)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
	}
}

// server hands every SSH session its own picker and simulations.
type server struct {
	cfg      config.Config
	registry *layouts.Registry
	store    simulation.RunStore
}

func main() {
	cfg := config.Load()
	cfg.ApplyLogLevel()

	srv := &server{cfg: cfg, registry: layouts.NewRegistry()}

	historyService, err := history.NewRunHistoryService(cfg.DBPath)
	if err != nil {
		log.Error("Run history disabled", "error", err)
	} else {
		defer historyService.Close()
		srv.store = historyService
	}

	limiter := newConnectionLimiter(cfg.MaxConnectionsPerIP)
	address := net.JoinHostPort(cfg.SSHHost, cfg.SSHPort)

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.middleware,
		),
	)
	if serverCreateErr != nil {
		log.Error("Failed to create ssh server", "error", serverCreateErr)
		os.Exit(1)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", cfg.SSHHost, "port", cfg.SSHPort)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

func (srv *server) viewHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()
	logger := log.With("user", sshSession.User(), "session", sshSession.Context().SessionID())

	var mu sync.Mutex
	var sessions []*simulation.Session
	go func() {
		<-sshSession.Context().Done()
		mu.Lock()
		defer mu.Unlock()
		for _, s := range sessions {
			s.Close()
		}
		logger.Debug("Session resources released", "simulations", len(sessions))
	}()

	launch := func(layoutName, finderName string) (ui.SimulationModel, error) {
		session, err := simulation.NewSession(srv.registry, simulation.Options{
			Layout: layoutName,
			Finder: finderName,
			Script: srv.cfg.Script,
			Logger: logger,
		})
		if err != nil {
			return ui.SimulationModel{}, err
		}

		mu.Lock()
		sessions = append(sessions, session)
		mu.Unlock()

		logger.Info("Simulation started", "layout", session.LayoutName, "finder", session.FinderName)
		return ui.NewSimulationModel(session.Maze, ui.SimulationConfig{
			Title:        session.Title(),
			Info:         session.Finder,
			InfoLen:      srv.cfg.InfoLen,
			TickInterval: srv.cfg.TickInterval,
			Logger:       logger,
			OnFinish: func(result maze.RunResult) {
				if _, err := session.Record(srv.store, result); err != nil {
					logger.Error("Failed to record run", "error", err)
				}
			},
		}), nil
	}

	controllerModel := ui.NewControllerModel(srv.registry.Names(), finder.Names(), launch, pty.Window.Width, pty.Window.Height)
	return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
}
