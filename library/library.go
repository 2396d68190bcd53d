package library

import (
	"time"

	"github.com/andrebq/talebox/account"
	"github.com/andrebq/talebox/audiostore"
	"github.com/andrebq/talebox/catalog"
	"github.com/andrebq/talebox/progress"
)

type (
	// L bundles every store of one running talebox: accounts, the book
	// catalog, the on-disk audio assets and the per-user playback progress.
	// All record state lives in process memory and is lost on restart, only
	// the uploaded files persist under UploadsDir.
	L struct {
		users    *account.Store
		tokens   *account.TokenIssuer
		books    *catalog.Store
		audio    *audiostore.Store
		progress *progress.Tracker
	}

	Options struct {
		UploadsDir  string
		TokenSecret []byte
		TokenTTL    time.Duration
	}
)

func New(opts Options) (*L, error) {
	audio, err := audiostore.NewStore(opts.UploadsDir)
	if err != nil {
		return nil, err
	}
	return &L{
		users:    account.NewStore(),
		tokens:   account.NewTokenIssuer(opts.TokenSecret, opts.TokenTTL),
		books:    catalog.NewStore(),
		audio:    audio,
		progress: progress.NewTracker(),
	}, nil
}

func (l *L) Users() *account.Store { return l.users }

func (l *L) Tokens() *account.TokenIssuer { return l.tokens }

func (l *L) Books() *catalog.Store { return l.books }

func (l *L) Audio() *audiostore.Store { return l.audio }

func (l *L) Progress() *progress.Tracker { return l.progress }
