package testutil

import (
	"os"
	"time"

	"github.com/andrebq/talebox/library"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireLibrary returns a library backed by a temporary uploads directory
// and a deterministic token secret, plus the cleanup to dispose of it.
func AcquireLibrary(t TestLog) (*library.L, func()) {
	dir, err := os.MkdirTemp("", "talebox-tests")
	if err != nil {
		t.Fatal(err)
	}
	lib, err := library.New(library.Options{
		UploadsDir:  dir,
		TokenSecret: []byte("talebox-test-secret"),
		TokenTTL:    time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}
	return lib, func() {
		err := os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}
