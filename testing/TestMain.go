package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("BUDGETLY_TEST_MODE", "1")
		if os.Getenv("MAIL_TRANSPORT") == "" {
			_ = os.Setenv("MAIL_TRANSPORT", "log")
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
