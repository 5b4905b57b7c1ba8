package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/reflect/internal/config"
	"github.com/dmitrijs2005/reflect/internal/filex"
	"github.com/dmitrijs2005/reflect/internal/logging"
	"github.com/dmitrijs2005/reflect/internal/services"
	"github.com/dmitrijs2005/reflect/internal/storage"
	"github.com/dmitrijs2005/reflect/internal/ui"
)

// App is the interactive journal client. It owns the services built over one
// storage.Store and tracks user activity for the idle lock.
type App struct {
	store   storage.Store
	audit   *services.AuditRecorder
	vault   *services.Vault
	rotator *services.Rotator
	session *services.Session
	privacy *services.Privacy
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	idleLock   time.Duration
	lastActive atomic.Int64
	now        func() time.Time
}

// OpenStore opens the backend selected by cfg.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return storage.NewMemoryStore(), nil
	case config.StorageSQLite:
		if filex.IsPlainPath(cfg.DSN) {
			if err := filex.EnsureParentDir(cfg.DSN); err != nil {
				return nil, err
			}
		}
		return storage.OpenSQLite(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

// NewApp wires the journal services over store. Commands read from in and
// write to out.
func NewApp(store storage.Store, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) *App {
	audit := services.NewAuditRecorder(store, cfg.AuditLogLimit, log.With("component", "audit"))
	vault := services.NewVault(store, audit, log.With("component", "vault"))
	rotator := services.NewRotator(store, vault, audit, log.With("component", "rotation"))
	session := services.NewSession(services.NewVerifier(store), rotator, audit, log.With("component", "session"))
	privacy := services.NewPrivacy(store, vault, session, audit, log.With("component", "privacy"))

	a := &App{
		store:    store,
		audit:    audit,
		vault:    vault,
		rotator:  rotator,
		session:  session,
		privacy:  privacy,
		log:      log,
		out:      out,
		idleLock: cfg.IdleLock,
		now:      time.Now,
	}
	a.reader = bufio.NewReader(activityReader{r: in, touch: a.touch})
	a.touch()
	return a
}

// activityReader counts every read of user input as activity, so typing a
// long entry does not trip the idle lock.
type activityReader struct {
	r     io.Reader
	touch func()
}

func (r activityReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.touch()
	}
	return n, err
}

// Run prints the greeting and serves commands until the input ends or the
// user exits. The session is locked on return.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.session.Lock(context.WithoutCancel(ctx))

	setup, err := a.session.IsSetup(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Reflect journal (type 'help' for commands)")
	if !setup {
		fmt.Fprintln(a.out, ui.Info.Sprint("No passphrase yet. Run"), ui.Code.Sprint("setup"), ui.Info.Sprint("to create one."))
	} else {
		fmt.Fprintln(a.out, ui.Info.Sprint("Journal is locked. Run"), ui.Code.Sprint("unlock"), ui.Info.Sprint("to open it."))
	}

	if a.idleLock > 0 {
		go a.StartIdleWatcher(ctx, idleCheckInterval(a.idleLock))
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) status() string {
	if a.session.IsUnlocked() {
		return "(unlocked) "
	}
	return "(locked) "
}

func (a *App) isUnlocked() bool {
	return a.session.IsUnlocked()
}

func (a *App) touch() {
	a.lastActive.Store(a.now().UnixNano())
}

// lockIfIdle locks an unlocked session whose last activity is older than
// the idle limit, and reports whether it did.
func (a *App) lockIfIdle(ctx context.Context) bool {
	if a.idleLock <= 0 || !a.session.IsUnlocked() {
		return false
	}
	last := time.Unix(0, a.lastActive.Load())
	if a.now().Sub(last) < a.idleLock {
		return false
	}
	a.log.Info(ctx, "idle limit reached", "idle", a.idleLock.String())
	a.session.Lock(ctx)
	return true
}

// StartIdleWatcher checks for inactivity every interval until ctx is done.
func (a *App) StartIdleWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if a.lockIfIdle(ctx) {
				fmt.Fprintln(a.out, "\n"+ui.Warning.Sprint("Journal locked after inactivity."))
			}
		case <-ctx.Done():
			return
		}
	}
}

func idleCheckInterval(idle time.Duration) time.Duration {
	interval := idle / 10
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}
