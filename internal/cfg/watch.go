package cfg

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher watches the configuration file in the background.
type Watcher struct {
	stop chan bool
}

// Watch spawns a goroutine that re-reads the configuration file whenever it
// is written to and delivers each successful parse on ch. Parse failures go
// to errch and watching continues.
func Watch(path string, ch chan<- Config, errch chan<- error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}
	stop := make(chan bool, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == 0 {
					continue
				}
				conf, err := GetConfig()
				if err != nil {
					errch <- err
					continue
				}
				ch <- *conf
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				errch <- err
			case <-stop:
				return
			}
		}
	}()
	return &Watcher{stop: stop}, nil
}

// Stop ends the watch.
func (w *Watcher) Stop() {
	w.stop <- true
}
