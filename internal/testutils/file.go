package testutils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func AssertFileExists(t *testing.T, path string) {
	_, err := os.Stat(path)
	assert.NoError(t, err, "file should exist")
}

// SetupFakeConfigUpdater rewrites configPath with every update once started is closed.
func SetupFakeConfigUpdater(t *testing.T, updates []*TestConfig,
	initialSleep, sleepBetweenEvents time.Duration, started <-chan struct{}, configPath string,
) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-started
		t.Log("Starting fake config writer")
		time.Sleep(initialSleep)

		for _, update := range updates {
			// ensure it materializes in the same config
			update.WithConfigPath(configPath).FillDefaults().SaveToFile()
			t.Log("Wrote configuration update")
			time.Sleep(sleepBetweenEvents)
		}
	}()
	return done
}
